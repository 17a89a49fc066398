package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
)

type recordKey struct {
	id   string
	kind domain.StateKind
}

// Store implements ports.RecordStore in memory.
// Records keep their navigable reference. Safe for concurrent use.
type Store struct {
	data map[recordKey]domain.StateRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[recordKey]domain.StateRecord),
	}
}

// Put keeps rec as the last-known record for its navigable and kind.
func (s *Store) Put(ctx context.Context, rec domain.StateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[recordKey{id: rec.NavigableID, kind: rec.Kind}] = rec
	return nil
}

// Last returns the last-known record.
func (s *Store) Last(ctx context.Context, navigableID string, kind domain.StateKind) (domain.StateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[recordKey{id: navigableID, kind: kind}]
	if !ok {
		return domain.StateRecord{}, domain.ErrRecordNotFound
	}
	return rec, nil
}

// List returns all last-known records.
func (s *Store) List(ctx context.Context) ([]domain.StateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.StateRecord, 0, len(s.data))
	for _, rec := range s.data {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].NavigableID != records[j].NavigableID {
			return records[i].NavigableID < records[j].NavigableID
		}
		return records[i].Kind < records[j].Kind
	})
	return records, nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[recordKey]domain.StateRecord)
	return nil
}
