package http

import (
	"errors"
	"net/http"

	"expensereport/internal/analytics"
	"expensereport/internal/core"
	"expensereport/internal/log"
	"expensereport/internal/receipt"
	"expensereport/internal/store"
)

// expenseView is an expense plus the row display flags.
type expenseView struct {
	expense  core.Expense
	selected bool
}

// MarshalJSON keeps the flattened expense fields next to the display flags.
func (v expenseView) MarshalJSON() ([]byte, error) {
	return marshalMerged(v.expense, map[string]bool{
		"descriptionInvalid": v.expense.DescriptionInvalid(),
		"amountInvalid":      v.expense.AmountInvalid(),
		"selected":           v.selected,
	})
}

type listResponse struct {
	Expenses           []expenseView      `json:"expenses"`
	Count              int                `json:"count"`
	Total              core.Money         `json:"total"`
	TotalFormatted     string             `json:"totalFormatted"`
	Criteria           analytics.Criteria `json:"criteria"`
	Selected           []string           `json:"selected"`
	AllVisibleSelected bool               `json:"allVisibleSelected"`
	Version            uint64             `json:"version"`
	Dirty              bool               `json:"dirty"`
}

func newExpenseView(e core.Expense, selected map[string]bool) expenseView {
	return expenseView{expense: e, selected: selected[e.ID]}
}

func setOf(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}

	expenses, version := s.store.Snapshot()
	filtered := analytics.Filter(expenses, crit)
	selectedIDs := s.store.Selected()
	selected := setOf(selectedIDs)

	views := make([]expenseView, len(filtered))
	allSelected := len(filtered) > 0
	for i, e := range filtered {
		views[i] = newExpenseView(e, selected)
		allSelected = allSelected && views[i].selected
	}
	total := analytics.Total(filtered)

	NewResponse().Data(listResponse{
		Expenses:           views,
		Count:              len(views),
		Total:              total,
		TotalFormatted:     tr.Currency(total),
		Criteria:           crit,
		Selected:           selectedIDs,
		AllVisibleSelected: allSelected,
		Version:            version,
		Dirty:              s.store.Dirty(),
	}).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e := s.store.Add()
	log.FromContext(r.Context()).WithComponent(log.ComponentExpense).InfoContext(r.Context(), "Expense added",
		log.FieldOperation, log.OpCreate, log.FieldExpenseID, e.ID)

	NewResponse().
		Status(http.StatusCreated).
		TriggerReportChanged(s.store.Version()).
		Data(newExpenseView(e, nil)).
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	var patch store.Patch
	if err := DecodeJSON(w, r, &patch); err != nil {
		BadRequestError(tr, err).Write(w)
		return
	}
	if patch.IsEmpty() {
		BadRequestError(tr, errors.New("no fields to update")).Write(w)
		return
	}

	e, err := s.store.Update(r.PathValue("id"), patch)
	if err != nil {
		storeError(tr, err).Write(w)
		return
	}
	log.FromContext(r.Context()).WithComponent(log.ComponentExpense).DebugContext(r.Context(), "Expense updated",
		log.NewFields().WithOperation(log.OpUpdate).WithExpense(e.ID, e.Amount.Cents).ToSlice()...)
	NewResponse().
		TriggerReportChanged(s.store.Version()).
		Data(newExpenseView(e, setOf(s.store.Selected()))).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	id := r.PathValue("id")
	if err := s.store.Delete(id); err != nil {
		storeError(tr, err).Write(w)
		return
	}
	log.FromContext(r.Context()).WithComponent(log.ComponentExpense).InfoContext(r.Context(), "Expense deleted",
		log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)

	NewResponse().
		Status(http.StatusNoContent).
		TriggerReportChanged(s.store.Version()).
		Write(w)
}

func receiptStatus(err error) int {
	switch {
	case errors.Is(err, receipt.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, receipt.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) handleAttachReceipt(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	id := r.PathValue("id")
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentReceipt)

	rc, err := ParseReceiptUpload(w, r, s.maxReceipt)
	if err != nil {
		logger.WarnContext(r.Context(), "Receipt rejected",
			log.FieldOperation, log.OpAttach, log.FieldExpenseID, id, log.FieldError, err)
		ErrorResponse(receiptStatus(err), tr, receipt.NotificationKey(err), err).Write(w)
		return
	}

	if !s.store.SetReceipt(id, rc) {
		NotFoundError(tr, store.ErrNotFound).Write(w)
		return
	}
	e, err := s.store.Get(id)
	if err != nil {
		// Deleted between attach and read.
		NotFoundError(tr, err).Write(w)
		return
	}
	logger.InfoContext(r.Context(), "Receipt attached",
		log.FieldOperation, log.OpAttach, log.FieldExpenseID, id,
		log.FieldFileName, rc.Name, log.FieldFileType, rc.Type)

	NewResponse().
		TriggerReportChanged(s.store.Version()).
		Data(newExpenseView(e, setOf(s.store.Selected()))).
		Write(w)
}

func (s *Server) handleRemoveReceipt(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	id := r.PathValue("id")
	if !s.store.RemoveReceipt(id) {
		NotFoundError(tr, store.ErrNotFound).Write(w)
		return
	}
	e, err := s.store.Get(id)
	if err != nil {
		NotFoundError(tr, err).Write(w)
		return
	}
	NewResponse().
		TriggerReportChanged(s.store.Version()).
		Data(newExpenseView(e, setOf(s.store.Selected()))).
		Write(w)
}
