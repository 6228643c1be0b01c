package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"expensereport/internal/core"
)

// savedRow is the loose shape of one stored expense. Fields that fail the
// strict decode are read here and repaired one by one.
type savedRow struct {
	ID                  string          `json:"id"`
	Date                string          `json:"date"`
	Description         string          `json:"description"`
	Amount              json.Number     `json:"amount"`
	Category            string          `json:"category"`
	OtherCategoryDetail string          `json:"otherCategoryDetail"`
	Status              string          `json:"status"`
	InvoiceNumber       string          `json:"invoiceNumber"`
	Receipt             json.RawMessage `json:"receipt"`
}

// decodeRow decodes one stored expense. A row that fails strict decoding is
// repaired: bad dates become today, negative or unreadable amounts become
// zero, unknown categories become Other with the stored name as detail,
// unknown statuses become Pending and a malformed receipt is dropped.
// repaired lists the fields that changed. An error means the row is not an
// object and cannot be kept.
func decodeRow(raw json.RawMessage, today core.Date) (e core.Expense, repaired []string, err error) {
	if err := json.Unmarshal(raw, &e); err == nil && e.Date.Validate() == nil && e.Amount.Validate() == nil {
		return e, nil, nil
	}

	if strings.TrimSpace(string(raw)) == "null" {
		return core.Expense{}, nil, errors.New("decode saved expense: null row")
	}
	var row savedRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return core.Expense{}, nil, fmt.Errorf("decode saved expense: %w", err)
	}

	e = core.NewExpense(row.ID, today)
	e.Description = row.Description
	e.InvoiceNumber = row.InvoiceNumber

	if d, err := core.ParseDate(row.Date); err == nil && d.Validate() == nil {
		e.Date = d
	} else {
		repaired = append(repaired, "date")
	}

	if f, err := row.Amount.Float64(); err == nil && f >= 0 {
		e.Amount = core.FromFloat(f)
	} else {
		repaired = append(repaired, "amount")
	}

	kind, err := core.ParseCategoryKind(row.Category)
	detail := row.OtherCategoryDetail
	if err != nil {
		kind, detail = core.CategoryOther, strings.TrimSpace(row.Category)
		repaired = append(repaired, "category")
	}
	if e.Category, err = core.NewCategory(kind, detail); err != nil {
		return core.Expense{}, nil, err
	}

	if st, err := core.ParseStatus(row.Status); err == nil {
		e.Status = st
	} else {
		repaired = append(repaired, "status")
	}

	if len(row.Receipt) > 0 && string(row.Receipt) != "null" {
		var r core.Receipt
		if err := json.Unmarshal(row.Receipt, &r); err == nil {
			e.Receipt = &r
		} else {
			repaired = append(repaired, "receipt")
		}
	}
	return e, repaired, nil
}
