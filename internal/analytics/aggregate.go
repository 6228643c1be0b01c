package analytics

import (
	"sort"

	"expensereport/internal/core"
)

// Trend compares a month with the one before it.
type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecrease Trend = "decrease"
	TrendSame     Trend = "same"
)

// MonthTotal is one approved-spend month with its trend tag.
type MonthTotal struct {
	Month  core.Month `json:"month"`
	Amount core.Money `json:"amount"`
	Trend  Trend      `json:"trend"`
}

func approved(expenses []core.Expense) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Status == core.StatusApproved {
			out = append(out, e)
		}
	}
	return out
}

// ByCategory sums approved amounts per category. Categories without
// approved expenses are absent.
func ByCategory(expenses []core.Expense) map[core.CategoryKind]core.Money {
	totals := make(map[core.CategoryKind]core.Money)
	for _, e := range approved(expenses) {
		k := e.Category.Kind()
		totals[k] = totals[k].Add(e.Amount)
	}
	return totals
}

// CategoryBreakdown is ByCategory as a slice sorted by amount descending,
// ties in category display order, with each entry's share of the total.
func CategoryBreakdown(expenses []core.Expense) []core.CategoryAmount {
	totals := ByCategory(expenses)
	var sum int64
	out := make([]core.CategoryAmount, 0, len(totals))
	for _, k := range core.Categories {
		amt, ok := totals[k]
		if !ok {
			continue
		}
		sum += amt.Cents
		out = append(out, core.CategoryAmount{Category: k, Amount: amt})
	}
	for i := range out {
		if sum > 0 {
			out[i].Share = float64(out[i].Amount.Cents) / float64(sum) * 100
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// ByMonth sums approved amounts per calendar month, ascending. The first
// month is tagged TrendSame.
func ByMonth(expenses []core.Expense) []MonthTotal {
	sums := make(map[core.Month]core.Money)
	for _, e := range approved(expenses) {
		m := e.Date.MonthKey()
		sums[m] = sums[m].Add(e.Amount)
	}
	out := make([]MonthTotal, 0, len(sums))
	for m, amt := range sums {
		out = append(out, MonthTotal{Month: m, Amount: amt, Trend: TrendSame})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	for i := 1; i < len(out); i++ {
		switch prev := out[i-1].Amount.Cents; {
		case out[i].Amount.Cents > prev:
			out[i].Trend = TrendIncrease
		case out[i].Amount.Cents < prev:
			out[i].Trend = TrendDecrease
		}
	}
	return out
}
