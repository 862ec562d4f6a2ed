package grid

import "sort"

// Selection is an immutable set of committed cell IDs.
// Each mutation returns a new Selection; snapshots held elsewhere
// (history, renders in flight) stay valid.
type Selection struct {
	cells map[string]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{cells: make(map[string]struct{})}
}

// SelectionOf creates a selection holding the given cell IDs.
func SelectionOf(ids ...string) *Selection {
	s := NewSelection()
	for _, id := range ids {
		s.cells[id] = struct{}{}
	}
	return s
}

// Contains reports whether the cell is in the selection.
func (s *Selection) Contains(id string) bool {
	_, ok := s.cells[id]
	return ok
}

// Len returns the number of selected cells.
func (s *Selection) Len() int {
	return len(s.cells)
}

// IDs returns the selected cell IDs in sorted order.
// Slot IDs sort chronologically, so the order is stable and meaningful.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// With returns a selection that also contains the given cells.
func (s *Selection) With(ids ...string) *Selection {
	next := s.clone()
	for _, id := range ids {
		next.cells[id] = struct{}{}
	}
	return next
}

// Without returns a selection with the given cells removed.
func (s *Selection) Without(ids ...string) *Selection {
	next := s.clone()
	for _, id := range ids {
		delete(next.cells, id)
	}
	return next
}

// Toggle returns a selection with the cell's membership flipped.
func (s *Selection) Toggle(id string) *Selection {
	if s.Contains(id) {
		return s.Without(id)
	}
	return s.With(id)
}

func (s *Selection) clone() *Selection {
	next := &Selection{cells: make(map[string]struct{}, len(s.cells))}
	for id := range s.cells {
		next.cells[id] = struct{}{}
	}
	return next
}
