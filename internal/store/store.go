// Package store owns the in-memory expense collection and the row selection.
//
// Every mutation builds a new collection and swaps it in under the lock, then
// bumps Version. Readers take snapshots and never observe a partial update.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"expensereport/internal/core"
)

var ErrNotFound = errors.New("expense not found")

// Patch is a field-by-field edit. Nil fields are left unchanged.
type Patch struct {
	Date                *core.Date         `json:"date,omitempty"`
	Description         *string            `json:"description,omitempty"`
	Amount              *core.Money        `json:"amount,omitempty"`
	Category            *core.CategoryKind `json:"category,omitempty"`
	OtherCategoryDetail *string            `json:"otherCategoryDetail,omitempty"`
	Status              *core.Status       `json:"status,omitempty"`
	InvoiceNumber       *string            `json:"invoiceNumber,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Description == nil && p.Amount == nil && p.Category == nil &&
		p.OtherCategoryDetail == nil && p.Status == nil && p.InvoiceNumber == nil
}

// apply returns e with the patch applied. Switching away from Other drops the detail.
func (p Patch) apply(e core.Expense) (core.Expense, error) {
	if p.Date != nil {
		if err := p.Date.Validate(); err != nil {
			return e, err
		}
		e.Date = *p.Date
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		if err := p.Amount.Validate(); err != nil {
			return e, err
		}
		e.Amount = *p.Amount
	}
	if p.Category != nil || p.OtherCategoryDetail != nil {
		kind := e.Category.Kind()
		if p.Category != nil {
			kind = *p.Category
		}
		detail := e.Category.Detail()
		if p.OtherCategoryDetail != nil {
			detail = *p.OtherCategoryDetail
		}
		cat, err := core.NewCategory(kind, detail)
		if err != nil {
			return e, err
		}
		e.Category = cat
	}
	if p.Status != nil {
		if !p.Status.IsValid() {
			return e, fmt.Errorf("%w: %q", core.ErrUnknownStatus, *p.Status)
		}
		e.Status = *p.Status
	}
	if p.InvoiceNumber != nil {
		e.InvoiceNumber = strings.TrimSpace(*p.InvoiceNumber)
	}
	return e, nil
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for new expense dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides expense id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

type Store struct {
	mu           sync.RWMutex
	expenses     []core.Expense
	selected     map[string]struct{}
	version      uint64
	savedVersion uint64
	now          func() time.Time
	newID        func() string
}

// New returns a store holding a copy of initial. The initial state counts as saved.
func New(initial []core.Expense, opts ...Option) *Store {
	s := &Store{
		expenses: clone(initial),
		selected: make(map[string]struct{}),
		version:  1,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.savedVersion = s.version
	return s
}

func clone(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	copy(out, in)
	return out
}

// swap installs next as the collection. Caller holds the write lock.
func (s *Store) swap(next []core.Expense) {
	s.expenses = next
	s.version++
	for id := range s.selected {
		if s.indexOf(id) < 0 {
			delete(s.selected, id)
		}
	}
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot returns a copy of the collection together with its version.
func (s *Store) Snapshot() ([]core.Expense, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.expenses), s.version
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dirty reports whether the collection changed since the last MarkSaved.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version != s.savedVersion
}

// MarkSaved records that version has been persisted.
func (s *Store) MarkSaved(version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version > s.savedVersion {
		s.savedVersion = version
	}
}

func (s *Store) Get(id string) (core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.expenses[i], nil
	}
	return core.Expense{}, ErrNotFound
}

// Add appends a new expense with the editor defaults and a fresh id.
func (s *Store) Add() core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := core.NewExpense(s.newID(), core.DateOf(s.now()))
	next := append(clone(s.expenses), e)
	s.swap(next)
	return e
}

// Update applies p to the expense with the given id.
func (s *Store) Update(id string, p Patch) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, ErrNotFound
	}
	updated, err := p.apply(s.expenses[i])
	if err != nil {
		return core.Expense{}, err
	}
	next := clone(s.expenses)
	next[i] = updated
	s.swap(next)
	return updated, nil
}

// SetReceipt attaches r. An absent id is a no-op and reports false, so late
// uploads for a deleted row are dropped.
func (s *Store) SetReceipt(id string, r core.Receipt) bool {
	return s.mutateReceipt(id, &r)
}

// RemoveReceipt detaches the receipt. An absent id is a no-op.
func (s *Store) RemoveReceipt(id string) bool {
	return s.mutateReceipt(id, nil)
}

func (s *Store) mutateReceipt(id string, r *core.Receipt) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := clone(s.expenses)
	next[i].Receipt = r
	s.swap(next)
	return true
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	next := make([]core.Expense, 0, len(s.expenses)-1)
	next = append(next, s.expenses[:i]...)
	next = append(next, s.expenses[i+1:]...)
	s.swap(next)
	return nil
}

// Replace installs a whole new collection and clears the selection.
func (s *Store) Replace(expenses []core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
	s.swap(clone(expenses))
}
