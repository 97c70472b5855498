package replace

import "sync/atomic"

// Store publishes the current Table to concurrent readers. A reader keeps the
// Table it got for as long as it needs it; Set never mutates a published
// Table.
type Store struct {
	cur atomic.Pointer[Table]
}

// NewStore returns a Store holding t, or an empty Table when t is nil.
func NewStore(t *Table) *Store {
	s := &Store{}
	s.Set(t)
	return s
}

// Current returns the Table in effect. It is never nil.
func (s *Store) Current() *Table {
	return s.cur.Load()
}

// Set replaces the Table in effect.
func (s *Store) Set(t *Table) {
	if t == nil {
		t = Empty()
	}
	s.cur.Store(t)
}
