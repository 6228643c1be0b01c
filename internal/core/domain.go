package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CategoryTravel    CategoryKind = "Travel"
	CategoryMeals     CategoryKind = "Meals"
	CategorySupplies  CategoryKind = "Supplies"
	CategoryTransport CategoryKind = "Transport"
	CategoryLodging   CategoryKind = "Lodging"
	CategoryOther     CategoryKind = "Other"
)

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// DateLayout is the fixed-width ISO layout used for every stored date.
const DateLayout = "2006-01-02"

type (
	// CategoryKind is the closed set of expense categories.
	CategoryKind string

	// Status is the approval state of an expense. Any status is reachable from any other.
	Status string

	// Category is a CategoryKind plus the free-text detail that only Other may carry.
	Category struct {
		kind   CategoryKind
		detail string
	}

	Date struct {
		time.Time
	}

	// Receipt is an attached file inlined as a data URL.
	Receipt struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Data string `json:"data"`
	}

	Expense struct {
		ID            string
		Date          Date
		Description   string
		Amount        Money
		Category      Category
		Status        Status
		InvoiceNumber string
		Receipt       *Receipt
	}
)

var (
	ErrInvalidDay      = errors.New("invalid day")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStatus   = errors.New("unknown status")
	ErrEmptyID         = errors.New("empty expense id")
)

// Categories lists every category in display order.
var Categories = []CategoryKind{
	CategoryTravel,
	CategoryMeals,
	CategorySupplies,
	CategoryTransport,
	CategoryLodging,
	CategoryOther,
}

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// Reports saved by the first release of the editor used Spanish enum values.
var legacyCategories = map[string]CategoryKind{
	"viajes":      CategoryTravel,
	"comidas":     CategoryMeals,
	"suministros": CategorySupplies,
	"transporte":  CategoryTransport,
	"alojamiento": CategoryLodging,
	"otros":       CategoryOther,
}

var legacyStatuses = map[string]Status{
	"pendiente": StatusPending,
	"aprobado":  StatusApproved,
	"rechazado": StatusRejected,
}

// ParseCategoryKind accepts a category name case-insensitively, including legacy Spanish names.
func ParseCategoryKind(s string) (CategoryKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Categories {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	if k, ok := legacyCategories[strings.ToLower(s)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (k CategoryKind) IsValid() bool {
	for _, c := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

func (k *CategoryKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseCategoryKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseStatus accepts a status name case-insensitively. Empty input means Pending.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusPending, nil
	}
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	if st, ok := legacyStatuses[strings.ToLower(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NewCategory builds a category. The detail is kept only for CategoryOther.
func NewCategory(kind CategoryKind, detail string) (Category, error) {
	if !kind.IsValid() {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, kind)
	}
	c := Category{kind: kind}
	if kind == CategoryOther {
		c.detail = strings.TrimSpace(detail)
	}
	return c, nil
}

// MustCategory is NewCategory for compile-time constants.
func MustCategory(kind CategoryKind, detail string) Category {
	c, err := NewCategory(kind, detail)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Category) Kind() CategoryKind { return c.kind }

func (c Category) Detail() string { return c.detail }

func (c Category) IsOther() bool { return c.kind == CategoryOther }

// String renders the category the way the export does: "Other (Software)".
func (c Category) String() string {
	if c.kind == CategoryOther && c.detail != "" {
		return string(c.kind) + " (" + c.detail + ")"
	}
	return string(c.kind)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	// Check basic ranges
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String returns the ISO form. Lexical order of these strings is chronological order.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MonthKey returns the calendar month the date falls in.
func (d Date) MonthKey() Month {
	return Month{Year: d.Year(), Month: d.Time.Month()}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NewExpense returns an expense with the editor defaults: the given day, zero amount,
// Travel category and Pending status.
func NewExpense(id string, today Date) Expense {
	return Expense{
		ID:       id,
		Date:     today,
		Category: Category{kind: CategoryTravel},
		Status:   StatusPending,
	}
}

// DescriptionInvalid reports whether the row should be flagged for a blank description.
// Blank descriptions are still saved.
func (e Expense) DescriptionInvalid() bool {
	return strings.TrimSpace(e.Description) == ""
}

// AmountInvalid reports whether the row should be flagged for a non-positive amount.
func (e Expense) AmountInvalid() bool {
	return e.Amount.Cents <= 0
}

func (e Expense) HasReceipt() bool {
	return e.Receipt != nil
}

// Validate checks structural integrity only: the display flags above are not errors.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.kind.IsValid() {
		return ErrUnknownCategory
	}
	if !e.Status.IsValid() {
		return ErrUnknownStatus
	}
	return nil
}

type expenseJSON struct {
	ID                  string       `json:"id"`
	Date                Date         `json:"date"`
	Description         string       `json:"description"`
	Amount              Money        `json:"amount"`
	Category            CategoryKind `json:"category"`
	OtherCategoryDetail string       `json:"otherCategoryDetail,omitempty"`
	Status              Status       `json:"status"`
	InvoiceNumber       string       `json:"invoiceNumber,omitempty"`
	Receipt             *Receipt     `json:"receipt,omitempty"`
}

func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		ID:                  e.ID,
		Date:                e.Date,
		Description:         e.Description,
		Amount:              e.Amount,
		Category:            e.Category.kind,
		OtherCategoryDetail: e.Category.detail,
		Status:              e.Status,
		InvoiceNumber:       e.InvoiceNumber,
		Receipt:             e.Receipt,
	})
}

func (e *Expense) UnmarshalJSON(b []byte) error {
	var raw expenseJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	cat, err := NewCategory(raw.Category, raw.OtherCategoryDetail)
	if err != nil {
		return err
	}
	status := raw.Status
	if status == "" {
		status = StatusPending
	}
	*e = Expense{
		ID:            raw.ID,
		Date:          raw.Date,
		Description:   raw.Description,
		Amount:        raw.Amount,
		Category:      cat,
		Status:        status,
		InvoiceNumber: raw.InvoiceNumber,
		Receipt:       raw.Receipt,
	}
	return nil
}
