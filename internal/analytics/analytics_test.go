package analytics

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensereport/internal/core"
)

func exp(id, date string, cents int64, kind core.CategoryKind, st core.Status) core.Expense {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Expense{
		ID:          id,
		Date:        d,
		Description: "expense " + id,
		Amount:      core.Money{Cents: cents},
		Category:    core.MustCategory(kind, ""),
		Status:      st,
	}
}

func monthly(amounts ...int64) []core.Expense {
	out := make([]core.Expense, 0, len(amounts))
	m := core.Month{Year: 2024, Month: 11}
	for i, a := range amounts {
		out = append(out, exp(fmt.Sprint(i), fmt.Sprintf("%s-10", m), a*100, core.CategoryTravel, core.StatusApproved))
		m = m.Next()
	}
	return out
}

func TestFilterSearchMatchesDescriptionInvoiceAndReceipt(t *testing.T) {
	a := exp("a", "2024-01-05", 100, core.CategoryMeals, core.StatusPending)
	a.Description = "Cena con Cliente"
	b := exp("b", "2024-01-06", 100, core.CategoryMeals, core.StatusPending)
	b.InvoiceNumber = "INV-042"
	c := exp("c", "2024-01-07", 100, core.CategoryMeals, core.StatusPending)
	c.Receipt = &core.Receipt{Name: "ticket-CLIENTE.pdf", Type: "application/pdf"}
	d := exp("d", "2024-01-08", 100, core.CategoryMeals, core.StatusPending)

	got := Filter([]core.Expense{a, b, c, d}, Criteria{SearchTerm: "cliente"})
	assert.Equal(t, []string{"a", "c"}, IDs(got))

	got = Filter([]core.Expense{a, b, c, d}, Criteria{SearchTerm: "inv-04"})
	assert.Equal(t, []string{"b"}, IDs(got))
}

func TestFilterDateBoundsAreInclusiveAndOneSided(t *testing.T) {
	in := []core.Expense{
		exp("1", "2024-01-31", 1, core.CategoryTravel, core.StatusPending),
		exp("2", "2024-02-01", 1, core.CategoryTravel, core.StatusPending),
		exp("3", "2024-02-15", 1, core.CategoryTravel, core.StatusPending),
		exp("4", "2024-03-01", 1, core.CategoryTravel, core.StatusPending),
	}
	assert.Equal(t, []string{"2", "3", "4"}, IDs(Filter(in, Criteria{StartDate: "2024-02-01"})))
	assert.Equal(t, []string{"1", "2"}, IDs(Filter(in, Criteria{EndDate: "2024-02-01"})))
	assert.Equal(t, []string{"2", "3"}, IDs(Filter(in, Criteria{StartDate: "2024-02-01", EndDate: "2024-02-15"})))
}

func TestFilterSentinelAll(t *testing.T) {
	in := []core.Expense{
		exp("1", "2024-01-01", 1, core.CategoryTravel, core.StatusApproved),
		exp("2", "2024-01-01", 1, core.CategoryMeals, core.StatusRejected),
	}
	var c Criteria
	c.Clear()
	assert.True(t, c.IsZero())
	assert.Len(t, Filter(in, c), 2)
	assert.Equal(t, []string{"2"}, IDs(Filter(in, Criteria{Category: "Meals", Status: All})))
	assert.Equal(t, []string{"1"}, IDs(Filter(in, Criteria{Category: All, Status: "Approved"})))
	assert.Empty(t, Filter(in, Criteria{Category: "Travel", Status: "Rejected"}))
}

func TestFilterIsOrderedSubsetSatisfyingAllPredicates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"taxi", "hotel", "Cena", "papel", "vuelo"}
	cats := append([]string{All}, "Travel", "Meals", "Other")
	stats := append([]string{All}, "Pending", "Approved", "Rejected")
	dates := []string{"", "2024-02-10", "2024-04-01", "2024-06-30"}

	for iter := 0; iter < 200; iter++ {
		in := make([]core.Expense, 30)
		for i := range in {
			e := exp(fmt.Sprintf("%d-%d", iter, i),
				fmt.Sprintf("2024-%02d-%02d", rng.Intn(8)+1, rng.Intn(28)+1),
				int64(rng.Intn(10000)),
				core.Categories[rng.Intn(len(core.Categories))],
				core.Statuses[rng.Intn(len(core.Statuses))])
			e.Description = words[rng.Intn(len(words))]
			in[i] = e
		}
		c := Criteria{
			SearchTerm: []string{"", "a", "TAXI", "zz"}[rng.Intn(4)],
			Category:   cats[rng.Intn(len(cats))],
			Status:     stats[rng.Intn(len(stats))],
			StartDate:  dates[rng.Intn(len(dates))],
			EndDate:    dates[rng.Intn(len(dates))],
		}
		before := append([]core.Expense(nil), in...)
		got := Filter(in, c)

		require.Equal(t, before, in, "input mutated")
		want := []string{}
		for _, e := range in {
			if expectMatch(t, c, e) {
				want = append(want, e.ID)
			}
		}
		require.Equal(t, want, IDs(got), "criteria %+v", c)
	}
}

// expectMatch evaluates the filter predicates without going through Criteria.
func expectMatch(t *testing.T, c Criteria, e core.Expense) bool {
	t.Helper()
	if c.SearchTerm != "" {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(c.SearchTerm))
		receiptName := ""
		if e.Receipt != nil {
			receiptName = e.Receipt.Name
		}
		if !re.MatchString(e.Description) && !re.MatchString(e.InvoiceNumber) && !re.MatchString(receiptName) {
			return false
		}
	}
	if c.Category != All && c.Category != "" && e.Category.Kind() != core.CategoryKind(c.Category) {
		return false
	}
	if c.Status != All && c.Status != "" && e.Status != core.Status(c.Status) {
		return false
	}
	if c.StartDate != "" {
		start, err := time.Parse("2006-01-02", c.StartDate)
		require.NoError(t, err)
		if e.Date.Time.Before(start) {
			return false
		}
	}
	if c.EndDate != "" {
		end, err := time.Parse("2006-01-02", c.EndDate)
		require.NoError(t, err)
		if e.Date.Time.After(end) {
			return false
		}
	}
	return true
}

func TestByCategoryApprovedOnly(t *testing.T) {
	in := []core.Expense{
		exp("1", "2024-01-01", 1000, core.CategoryTravel, core.StatusApproved),
		exp("2", "2024-01-02", 500, core.CategoryTravel, core.StatusApproved),
		exp("3", "2024-01-03", 700, core.CategoryMeals, core.StatusPending),
		exp("4", "2024-01-04", 300, core.CategoryLodging, core.StatusApproved),
	}
	got := ByCategory(in)
	assert.Equal(t, map[core.CategoryKind]core.Money{
		core.CategoryTravel:  {Cents: 1500},
		core.CategoryLodging: {Cents: 300},
	}, got)
	_, ok := got[core.CategoryMeals]
	assert.False(t, ok, "category with no approved expense must be absent")

	breakdown := CategoryBreakdown(in)
	require.Len(t, breakdown, 2)
	assert.Equal(t, core.CategoryTravel, breakdown[0].Category)
	assert.InDelta(t, 83.33, breakdown[0].Share, 0.01)
}

func TestByMonthSortedWithTrend(t *testing.T) {
	in := []core.Expense{
		exp("1", "2024-03-05", 300, core.CategoryTravel, core.StatusApproved),
		exp("2", "2023-12-20", 500, core.CategoryTravel, core.StatusApproved),
		exp("3", "2024-01-02", 500, core.CategoryTravel, core.StatusApproved),
		exp("4", "2024-01-09", 400, core.CategoryMeals, core.StatusApproved),
		exp("5", "2024-02-01", 9999, core.CategoryMeals, core.StatusRejected),
	}
	got := ByMonth(in)
	require.Len(t, got, 3)
	assert.Equal(t, "2023-12", got[0].Month.String())
	assert.Equal(t, "2024-01", got[1].Month.String())
	assert.Equal(t, "2024-03", got[2].Month.String())
	assert.Equal(t, int64(900), got[1].Amount.Cents)
	assert.Equal(t, []Trend{TrendSame, TrendIncrease, TrendDecrease}, []Trend{got[0].Trend, got[1].Trend, got[2].Trend})
}

func TestProjectLinear(t *testing.T) {
	p, err := Project(monthly(1000, 1200, 1100), core.Money{})
	require.NoError(t, err)
	require.True(t, p.Available)
	require.Len(t, p.Projected, 3)

	assert.Equal(t, int64(115000), p.Projected[0].Amount.Cents)
	assert.Equal(t, int64(120000), p.Projected[1].Amount.Cents)
	assert.Equal(t, int64(125000), p.Projected[2].Amount.Cents)
	assert.Equal(t, int64(5000), p.AverageChange.Cents)
	assert.Equal(t, int64(110000), p.AverageMonthly.Cents)
	assert.Equal(t, int64(360000), p.TotalProjected.Cents)
	assert.Equal(t, DirectionIncrease, p.Direction)

	// history ends 2025-01, so labels continue into 2025
	assert.Equal(t, "2025-02", p.Projected[0].Month.String())
	assert.Equal(t, "2025-04", p.Projected[2].Month.String())
}

func TestProjectFloorsAtZero(t *testing.T) {
	p, err := Project(monthly(500, 100), core.Money{})
	require.NoError(t, err)
	for _, m := range p.Projected {
		assert.Equal(t, int64(0), m.Amount.Cents)
	}
	assert.Equal(t, int64(-40000), p.AverageChange.Cents)
	assert.Equal(t, DirectionDecrease, p.Direction)
}

func TestProjectWrapsYear(t *testing.T) {
	in := []core.Expense{
		exp("1", "2024-10-01", 100, core.CategoryTravel, core.StatusApproved),
		exp("2", "2024-11-01", 100, core.CategoryTravel, core.StatusApproved),
	}
	p, err := Project(in, core.Money{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-02"},
		[]string{p.Projected[0].Month.String(), p.Projected[1].Month.String(), p.Projected[2].Month.String()})
	assert.Equal(t, DirectionStable, p.Direction)
}

func TestProjectUsesLastSixMonths(t *testing.T) {
	p, err := Project(monthly(9000, 100, 200, 300, 400, 500, 600), core.Money{})
	require.NoError(t, err)
	require.Len(t, p.Historical, 6)
	assert.Equal(t, int64(10000), p.AverageChange.Cents)
	assert.Equal(t, int64(70000), p.Projected[0].Amount.Cents)
}

func TestProjectInsufficientData(t *testing.T) {
	p, err := Project(monthly(1000), core.Money{})
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.False(t, p.Available)
	assert.Empty(t, p.Projected)
	assert.Len(t, p.Historical, 1)

	_, err = Project(nil, core.Money{})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestProjectBudgetComparison(t *testing.T) {
	p, err := Project(monthly(1000, 1200, 1100), core.Money{Cents: 120000})
	require.NoError(t, err)
	assert.False(t, p.Projected[0].OverBudget)
	assert.False(t, p.Projected[1].OverBudget, "equal to budget is not over")
	assert.True(t, p.Projected[2].OverBudget)
	assert.Equal(t, 1, p.MonthsOver)
}

func TestSummarize(t *testing.T) {
	in := []core.Expense{
		exp("1", "2024-01-01", 1000, core.CategoryTravel, core.StatusApproved),
		exp("2", "2024-01-02", 3000, core.CategoryMeals, core.StatusPending),
		exp("3", "2024-01-03", 2000, core.CategoryMeals, core.StatusRejected),
		exp("4", "2024-01-04", 3000, core.CategoryOther, core.StatusApproved),
		exp("5", "2024-01-05", 10, core.CategoryOther, core.StatusPending),
		exp("6", "2024-01-06", 20, core.CategoryOther, core.StatusPending),
	}
	in[0].Receipt = &core.Receipt{Name: "r.png"}
	in[3].Receipt = &core.Receipt{Name: "r.pdf"}

	s := Summarize(in)
	assert.Equal(t, int64(4000), s.TotalApproved.Cents)
	assert.Equal(t, int64(3030), s.TotalPending.Cents)
	assert.Equal(t, 2, s.ReceiptCount)
	assert.Equal(t, 4, s.ExpensesWithoutReceipt)
	assert.InDelta(t, 33.33, s.ReceiptPercentage, 0.01)
	assert.Equal(t, []string{"2", "4", "3", "1", "6"}, IDs(s.TopExpenses))
	assert.Equal(t, int64(9030), Total(in).Cents)

	empty := Summarize(nil)
	assert.Zero(t, empty.ReceiptPercentage)
	assert.Empty(t, empty.TopExpenses)
}
