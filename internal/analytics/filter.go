// Package analytics holds the pure computations behind the expense views:
// filtering, approved-spend aggregation, the linear projection and the
// dashboard KPIs. Nothing here performs I/O or mutates its input.
package analytics

import (
	"strings"

	"expensereport/internal/core"
)

// All is the category/status sentinel that disables the predicate.
const All = "all"

// Criteria is the filter specification. Empty fields are inactive.
type Criteria struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// Clear resets every predicate.
func (c *Criteria) Clear() {
	*c = Criteria{Category: All, Status: All}
}

// IsZero reports whether no predicate is active.
func (c Criteria) IsZero() bool {
	return c.SearchTerm == "" && isAll(c.Category) && isAll(c.Status) && c.StartDate == "" && c.EndDate == ""
}

// Key is a stable representation used for cache keys.
func (c Criteria) Key() string {
	return strings.Join([]string{c.SearchTerm, c.Category, c.Status, c.StartDate, c.EndDate}, "\x1f")
}

func isAll(s string) bool {
	return s == "" || strings.EqualFold(s, All)
}

// Match reports whether e satisfies every active predicate.
func (c Criteria) Match(e core.Expense) bool {
	if term := strings.ToLower(c.SearchTerm); term != "" {
		found := strings.Contains(strings.ToLower(e.Description), term) ||
			strings.Contains(strings.ToLower(e.InvoiceNumber), term) ||
			(e.Receipt != nil && strings.Contains(strings.ToLower(e.Receipt.Name), term))
		if !found {
			return false
		}
	}
	if !isAll(c.Category) && string(e.Category.Kind()) != c.Category {
		return false
	}
	if !isAll(c.Status) && string(e.Status) != c.Status {
		return false
	}
	// Fixed-width ISO dates compare chronologically as strings.
	date := e.Date.String()
	if c.StartDate != "" && date < c.StartDate {
		return false
	}
	if c.EndDate != "" && date > c.EndDate {
		return false
	}
	return true
}

// Filter returns the expenses matching c, in input order.
func Filter(expenses []core.Expense, c Criteria) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// IDs returns the ids of expenses in order.
func IDs(expenses []core.Expense) []string {
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	return ids
}
