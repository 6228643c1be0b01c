package http

import (
	"net/http"
	"strings"

	"expensereport/internal/analytics"
	"expensereport/internal/i18n"
	"expensereport/internal/log"
)

type selectionResponse struct {
	Selected []string `json:"selected"`
	Count    int      `json:"count"`
	Label    string   `json:"label"`
}

type toggleRequest struct {
	ID string `json:"id"`
}

type bulkResponse struct {
	Affected int    `json:"affected"`
	Version  uint64 `json:"version"`
}

func (s *Server) selection(r *http.Request) selectionResponse {
	ids := s.store.Selected()
	tr := s.translator(r)
	return selectionResponse{
		Selected: ids,
		Count:    len(ids),
		Label:    tr.T("bulkActions.selected", i18n.Vars{"count": len(ids)}),
	}
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	NewResponse().Data(s.selection(r)).Write(w)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.store.ClearSelection()
	NewResponse().Data(s.selection(r)).Write(w)
}

func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	var req toggleRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	if _, err := s.store.Toggle(strings.TrimSpace(req.ID)); err != nil {
		storeError(tr, err).Write(w)
		return
	}
	NewResponse().Data(s.selection(r)).Write(w)
}

// handleToggleAll applies the header checkbox to the rows the filter query shows.
func (s *Server) handleToggleAll(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	expenses, _ := s.store.Snapshot()
	s.store.ToggleAll(analytics.IDs(analytics.Filter(expenses, crit)))
	NewResponse().Data(s.selection(r)).Write(w)
}

func (s *Server) handleBulkApprove(w http.ResponseWriter, r *http.Request) {
	s.writeBulk(w, r, log.OpBulkApprove, s.store.BulkApprove())
}

func (s *Server) handleBulkReject(w http.ResponseWriter, r *http.Request) {
	s.writeBulk(w, r, log.OpBulkReject, s.store.BulkReject())
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	s.writeBulk(w, r, log.OpBulkDelete, s.store.BulkDelete())
}

func (s *Server) writeBulk(w http.ResponseWriter, r *http.Request, op string, n int) {
	version := s.store.Version()
	log.FromContext(r.Context()).WithComponent(log.ComponentExpense).InfoContext(r.Context(), "Bulk action applied",
		log.FieldOperation, op, log.FieldCount, n, log.FieldVersion, version)

	b := NewResponse().Data(bulkResponse{Affected: n, Version: version})
	if n > 0 {
		b.TriggerReportChanged(version)
	}
	b.Write(w)
}
