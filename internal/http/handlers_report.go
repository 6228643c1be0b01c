package http

import (
	"errors"
	"fmt"
	"net/http"

	"expensereport/internal/analytics"
	"expensereport/internal/core"
	"expensereport/internal/i18n"
	"expensereport/internal/log"
	"expensereport/internal/report"
)

type saveResponse struct {
	Version uint64 `json:"version"`
	Count   int    `json:"count"`
}

// labelled pairs a raw key with its localized label and formatted amount.
type labelled struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type dashboardDisplay struct {
	TotalApproved      string     `json:"totalApproved"`
	TotalPending       string     `json:"totalPending"`
	ReceiptDescription string     `json:"receiptDescription"`
	Categories         []labelled `json:"categories"`
	Months             []labelled `json:"months"`
	Empty              string     `json:"empty,omitempty"`
}

type dashboardResponse struct {
	Summary analytics.Summary `json:"summary"`
	Display dashboardDisplay  `json:"display"`
	Version uint64            `json:"version"`
	Cached  bool              `json:"cached"`
}

type projectionDisplay struct {
	Budget         string     `json:"budget"`
	AverageMonthly string     `json:"averageMonthly"`
	AverageChange  string     `json:"averageChange"`
	TotalProjected string     `json:"totalProjected"`
	Direction      string     `json:"direction"`
	Historical     []labelled `json:"historical"`
	Projected      []labelled `json:"projected"`
	Message        string     `json:"message,omitempty"`
}

type projectionResponse struct {
	Projection analytics.Projection `json:"projection"`
	Display    projectionDisplay    `json:"display"`
	Version    uint64               `json:"version"`
	Cached     bool                 `json:"cached"`
}

// handleSave persists the whole collection. The in-memory session is left
// untouched when the write fails.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentStorage)

	expenses, version := s.store.Snapshot()
	if err := s.local.SaveExpenses(r.Context(), expenses); err != nil {
		logger.ErrorContext(r.Context(), "Failed to save report",
			log.NewFields().WithOperation(log.OpSave).WithError(err).ToSlice()...)
		InternalServerError(tr, "saveError", err).Write(w)
		return
	}
	s.store.MarkSaved(version)
	logger.InfoContext(r.Context(), "Report saved",
		log.FieldOperation, log.OpSave, log.FieldCount, len(expenses), log.FieldVersion, version)

	NewResponse().
		Notify(tr, NotificationSuccess, "saveSuccess", nil).
		Data(saveResponse{Version: version, Count: len(expenses)}).
		Write(w)
}

// handleExportCSV downloads the filtered rows.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	expenses, _ := s.store.Snapshot()
	filtered := analytics.Filter(expenses, crit)

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)
	if err := report.WriteCSV(w, filtered, tr); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentExport).ErrorContext(r.Context(), "CSV export interrupted",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		return
	}
	log.FromContext(r.Context()).WithComponent(log.ComponentExport).InfoContext(r.Context(), "CSV exported",
		log.FieldOperation, log.OpExport, log.FieldCount, len(filtered), log.FieldLocale, tr.Locale())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	expenses, version := s.store.Snapshot()
	summary, hit := s.views.Summary(version, crit, func() analytics.Summary {
		return analytics.Summarize(analytics.Filter(expenses, crit))
	})

	NewResponse().Data(dashboardResponse{
		Summary: summary,
		Display: dashboardLabels(tr, summary),
		Version: version,
		Cached:  hit,
	}).Write(w)
}

func dashboardLabels(tr *i18n.Translator, s analytics.Summary) dashboardDisplay {
	d := dashboardDisplay{
		TotalApproved: tr.Currency(s.TotalApproved),
		TotalPending:  tr.Currency(s.TotalPending),
		ReceiptDescription: tr.T("dashboard.receiptPercentageDesc", i18n.Vars{
			"receiptCount": s.ReceiptCount,
			"totalCount":   s.Count,
		}),
		Categories: make([]labelled, 0, len(s.Categories)),
		Months:     make([]labelled, 0, len(s.Monthly)),
	}
	for _, c := range s.Categories {
		d.Categories = append(d.Categories, labelled{
			Key:    string(c.Category),
			Label:  tr.Category(c.Category),
			Amount: tr.Currency(c.Amount),
		})
	}
	for _, m := range s.Monthly {
		d.Months = append(d.Months, labelled{Key: m.Month.String(), Label: tr.MonthLabel(m.Month), Amount: tr.Currency(m.Amount)})
	}
	if len(s.Categories) == 0 {
		d.Empty = tr.T("dashboard.noApprovedData", nil)
	}
	return d
}

// handleProjection extrapolates approved spend against the saved budget.
// Too little history is not an error: the body reports available=false.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	budget := s.local.Budget(r.Context())
	expenses, version := s.store.Snapshot()
	p, hit, err := s.views.Projection(version, crit, budget, func() (analytics.Projection, error) {
		return analytics.Project(analytics.Filter(expenses, crit), budget)
	})
	if err != nil && !errors.Is(err, analytics.ErrInsufficientData) {
		InternalServerError(tr, "invalidInput", err).Write(w)
		return
	}

	NewResponse().Data(projectionResponse{
		Projection: p,
		Display:    projectionLabels(tr, p),
		Version:    version,
		Cached:     hit,
	}).Write(w)
}

func projectionLabels(tr *i18n.Translator, p analytics.Projection) projectionDisplay {
	d := projectionDisplay{
		Budget:         tr.Currency(p.Budget),
		AverageMonthly: tr.Currency(p.AverageMonthly),
		AverageChange:  signedCurrency(tr, p.AverageChange),
		TotalProjected: tr.Currency(p.TotalProjected),
		Historical:     make([]labelled, 0, len(p.Historical)),
		Projected:      make([]labelled, 0, len(p.Projected)),
	}
	if p.Direction != "" {
		d.Direction = tr.T("projectionDashboard."+string(p.Direction), nil)
	}
	for _, h := range p.Historical {
		d.Historical = append(d.Historical, labelled{Key: h.Month.String(), Label: tr.MonthLabel(h.Month), Amount: tr.Currency(h.Amount)})
	}
	for _, m := range p.Projected {
		d.Projected = append(d.Projected, labelled{Key: m.Month.String(), Label: tr.MonthLabel(m.Month), Amount: tr.Currency(m.Amount)})
	}
	if !p.Available {
		d.Message = tr.T("projectionDashboard.noData", nil)
	}
	return d
}

func signedCurrency(tr *i18n.Translator, m core.Money) string {
	if m.Cents < 0 {
		return "-" + tr.Currency(core.Money{Cents: -m.Cents})
	}
	return "+" + tr.Currency(m)
}
