package analytics

import (
	"errors"
	"math"

	"expensereport/internal/core"
)

const (
	// ProjectionWindow is how many of the most recent months feed the projection.
	ProjectionWindow = 6
	// ProjectionHorizon is how many months are extrapolated.
	ProjectionHorizon = 3
)

// ErrInsufficientData is returned when fewer than two months of approved spend exist.
var ErrInsufficientData = errors.New("insufficient data for projection")

// Direction summarizes the sign of the average change.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionStable   Direction = "stable"
)

// ProjectedMonth is one extrapolated month.
type ProjectedMonth struct {
	Month      core.Month `json:"month"`
	Amount     core.Money `json:"amount"`
	OverBudget bool       `json:"overBudget"`
}

// Projection is a linear first-difference extrapolation of approved monthly spend.
type Projection struct {
	Available      bool               `json:"available"`
	Historical     []core.MonthAmount `json:"historical"`
	Projected      []ProjectedMonth   `json:"projected"`
	AverageMonthly core.Money         `json:"averageMonthly"`
	AverageChange  core.Money         `json:"averageChange"`
	TotalProjected core.Money         `json:"totalProjected"`
	Direction      Direction          `json:"direction"`
	Budget         core.Money         `json:"budget"`
	MonthsOver     int                `json:"monthsOverBudget"`
}

// Project extrapolates ProjectionHorizon months from the last ProjectionWindow
// months of approved spend. Each projected month is floored at zero; the running
// value that the next month builds on is not. A zero budget disables the comparison.
//
// With fewer than two months the returned projection carries the history that
// exists, Available=false, and ErrInsufficientData.
func Project(expenses []core.Expense, budget core.Money) (Projection, error) {
	months := ByMonth(expenses)
	if len(months) > ProjectionWindow {
		months = months[len(months)-ProjectionWindow:]
	}

	p := Projection{
		Historical: make([]core.MonthAmount, len(months)),
		Projected:  []ProjectedMonth{},
		Direction:  DirectionStable,
		Budget:     budget,
	}
	var total float64
	for i, m := range months {
		p.Historical[i] = core.MonthAmount{Month: m.Month, Amount: m.Amount}
		total += float64(m.Amount.Cents)
	}
	if len(months) > 0 {
		p.AverageMonthly = core.Money{Cents: int64(math.Round(total / float64(len(months))))}
	}
	if len(months) < 2 {
		return p, ErrInsufficientData
	}

	var deltaSum float64
	for i := 1; i < len(months); i++ {
		deltaSum += float64(months[i].Amount.Sub(months[i-1].Amount).Cents)
	}
	avgChange := deltaSum / float64(len(months)-1)

	p.Available = true
	p.AverageChange = core.Money{Cents: int64(math.Round(avgChange))}
	switch {
	case avgChange > 0:
		p.Direction = DirectionIncrease
	case avgChange < 0:
		p.Direction = DirectionDecrease
	}

	last := months[len(months)-1]
	running := float64(last.Amount.Cents)
	month := last.Month
	var projectedTotal int64
	for i := 0; i < ProjectionHorizon; i++ {
		running += avgChange
		month = month.Next()
		amt := core.Money{Cents: int64(math.Round(math.Max(0, running)))}
		over := budget.Cents > 0 && amt.Cents > budget.Cents
		if over {
			p.MonthsOver++
		}
		p.Projected = append(p.Projected, ProjectedMonth{Month: month, Amount: amt, OverBudget: over})
		projectedTotal += amt.Cents
	}
	p.TotalProjected = core.Money{Cents: projectedTotal}
	return p, nil
}
