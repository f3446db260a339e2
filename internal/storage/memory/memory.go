// Package memory is an in-process record store used by tests and by the
// CLI when no database file is wanted.
package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

func New(seed ...core.Expense) *Store {
	s := &Store{}
	for _, e := range seed {
		s.insert(e)
	}
	return s
}

// Insert stores the expense and assigns the next identifier.
func (s *Store) Insert(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(e), nil
}

func (s *Store) insert(e core.Expense) int64 {
	s.nextID++
	e.ID = s.nextID
	s.items = append(s.items, e)
	return e.ID
}

// ListAll returns a copy of every record, newest identifier first.
func (s *Store) ListAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

// Delete removes the record with id; unknown ids are ignored.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}
