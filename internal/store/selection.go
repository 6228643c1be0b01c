package store

import "expensereport/internal/core"

// Toggle flips the selection of id and reports whether it is now selected.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false, ErrNotFound
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false, nil
	}
	s.selected[id] = struct{}{}
	return true, nil
}

// ToggleAll acts on the currently visible ids: if every one of them is already
// selected they are all deselected, otherwise they are added to the selection.
// Selected ids outside the visible set are kept either way.
func (s *Store) ToggleAll(visible []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(visible) == 0 {
		return
	}
	all := true
	for _, id := range visible {
		if _, ok := s.selected[id]; !ok {
			all = false
			break
		}
	}
	for _, id := range visible {
		if all {
			delete(s.selected, id)
		} else if s.indexOf(id) >= 0 {
			s.selected[id] = struct{}{}
		}
	}
}

// Selected returns the selected ids in collection order.
func (s *Store) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selected))
	for _, e := range s.expenses {
		if _, ok := s.selected[e.ID]; ok {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// BulkApprove sets every selected expense to Approved and clears the selection.
func (s *Store) BulkApprove() int {
	return s.bulkStatus(core.StatusApproved)
}

// BulkReject sets every selected expense to Rejected and clears the selection.
func (s *Store) BulkReject() int {
	return s.bulkStatus(core.StatusRejected)
}

func (s *Store) bulkStatus(status core.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.clearSelectionLocked()
	if len(s.selected) == 0 {
		return 0
	}
	next := clone(s.expenses)
	n := 0
	for i := range next {
		if _, ok := s.selected[next[i].ID]; ok {
			next[i].Status = status
			n++
		}
	}
	s.swap(next)
	return n
}

// BulkDelete removes every selected expense and clears the selection.
func (s *Store) BulkDelete() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.clearSelectionLocked()
	if len(s.selected) == 0 {
		return 0
	}
	next := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if _, ok := s.selected[e.ID]; !ok {
			next = append(next, e)
		}
	}
	n := len(s.expenses) - len(next)
	s.swap(next)
	return n
}

func (s *Store) clearSelectionLocked() {
	s.selected = make(map[string]struct{})
}
