package analytics

import (
	"sort"

	"expensereport/internal/core"
)

// TopN is how many expenses the dashboard ranks.
const TopN = 5

// Summary carries the dashboard KPIs over one (already filtered) collection.
type Summary struct {
	Count                  int                   `json:"count"`
	TotalApproved          core.Money            `json:"totalApproved"`
	TotalPending           core.Money            `json:"totalPending"`
	ReceiptCount           int                   `json:"receiptCount"`
	ReceiptPercentage      float64               `json:"receiptPercentage"`
	ExpensesWithoutReceipt int                   `json:"expensesWithoutReceipt"`
	TopExpenses            []core.Expense        `json:"topExpenses"`
	Categories             []core.CategoryAmount `json:"categories"`
	Monthly                []MonthTotal          `json:"monthly"`
}

// Total sums the amounts of every expense regardless of status.
func Total(expenses []core.Expense) core.Money {
	var m core.Money
	for _, e := range expenses {
		m = m.Add(e.Amount)
	}
	return m
}

// Top returns the n largest expenses by amount. Ties keep input order.
func Top(expenses []core.Expense, n int) []core.Expense {
	sorted := make([]core.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Cents > sorted[j].Amount.Cents
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func Summarize(expenses []core.Expense) Summary {
	s := Summary{
		Count:       len(expenses),
		TopExpenses: Top(expenses, TopN),
		Categories:  CategoryBreakdown(expenses),
		Monthly:     ByMonth(expenses),
	}
	for _, e := range expenses {
		switch e.Status {
		case core.StatusApproved:
			s.TotalApproved = s.TotalApproved.Add(e.Amount)
		case core.StatusPending:
			s.TotalPending = s.TotalPending.Add(e.Amount)
		}
		if e.HasReceipt() {
			s.ReceiptCount++
		}
	}
	s.ExpensesWithoutReceipt = s.Count - s.ReceiptCount
	if s.Count > 0 {
		s.ReceiptPercentage = float64(s.ReceiptCount) / float64(s.Count) * 100
	}
	return s
}
