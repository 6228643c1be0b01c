package storage

import (
	"time"

	"github.com/google/uuid"

	"expensereport/internal/core"
)

type seedRow struct {
	monthsAgo   int
	day         int // 0 means today's day of month
	description string
	kind        core.CategoryKind
	detail      string
	cents       int64
	status      core.Status
	invoice     string
}

var seedRows = []seedRow{
	{5, 15, "Vuelos a conferencia", core.CategoryTravel, "", 450000, core.StatusApproved, "INV-001"},
	{5, 20, "Comida con equipo de ventas", core.CategoryMeals, "", 125050, core.StatusApproved, "INV-002"},
	{4, 10, "Suministros de Oficina", core.CategorySupplies, "", 80000, core.StatusApproved, "INV-003"},
	{4, 22, "Transporte Aeropuerto", core.CategoryTransport, "", 60000, core.StatusApproved, ""},
	{3, 5, "Hotel para viaje de negocios", core.CategoryLodging, "", 620000, core.StatusApproved, "INV-004"},
	{3, 18, "Cena con cliente potencial", core.CategoryMeals, "", 180000, core.StatusApproved, "INV-005"},
	{2, 1, "Software de diseño", core.CategoryOther, "Software", 300000, core.StatusApproved, ""},
	{2, 25, "Alquiler de coche", core.CategoryTransport, "", 250000, core.StatusApproved, "INV-006"},
	{1, 12, "Billetes de tren", core.CategoryTravel, "", 150000, core.StatusApproved, "INV-007"},
	{1, 28, "Gastos de internet", core.CategorySupplies, "", 75000, core.StatusApproved, ""},
	{0, 7, "Almuerzo de equipo", core.CategoryMeals, "", 210000, core.StatusApproved, "INV-008"},
	{0, 0, "Reporte pendiente", core.CategoryOther, "", 50000, core.StatusPending, ""},
}

// Seed returns the demo dataset used when nothing valid is persisted. Dates
// are relative to now: six months of approved history ending this month.
func Seed(now time.Time) []core.Expense {
	y, m, today := now.Date()
	out := make([]core.Expense, 0, len(seedRows))
	for _, r := range seedRows {
		day := r.day
		if day == 0 {
			day = today
		}
		// Day 1 first, so the month arithmetic never overflows into the next month.
		first := time.Date(y, m-time.Month(r.monthsAgo), 1, 0, 0, 0, 0, time.UTC)
		out = append(out, core.Expense{
			ID:            uuid.NewString(),
			Date:          core.NewDate(first.Year(), int(first.Month()), day),
			Description:   r.description,
			Amount:        core.Money{Cents: r.cents},
			Category:      core.MustCategory(r.kind, r.detail),
			Status:        r.status,
			InvoiceNumber: r.invoice,
		})
	}
	return out
}
