// Package roundstate holds the in-memory mapping from task IDs to their
// round-1 outcomes. The store is the only state shared between rounds of
// the same task; it is deliberately non-durable and is lost on restart,
// in which case round 2 of an affected task fails with a missing
// prerequisite rather than silently recreating the repository.
package roundstate

import (
	"sync"

	"github.com/phrazzld/appforge-api/internal/domain"
)

// Store maps task identifiers to their round-1 records. Safe for
// concurrent use; reads of different keys never block each other beyond
// the shared read lock.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.RoundRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.RoundRecord),
	}
}

// Put records the round-1 outcome for a task. Each task ID is written once
// (round 1 of a given task runs once); a second write simply overwrites.
func (s *Store) Put(taskID string, record domain.RoundRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[taskID] = record
}

// Get looks up the round-1 record for a task. Absence is a normal checked
// outcome, reported via the boolean, not an error.
func (s *Store) Get(taskID string) (domain.RoundRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[taskID]
	return record, ok
}

// Count returns the number of recorded tasks.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns a copy of the current records, keyed by task ID.
// Used by the debug task-listing endpoint.
func (s *Store) Snapshot() map[string]domain.RoundRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.RoundRecord, len(s.records))
	for id, record := range s.records {
		out[id] = record
	}
	return out
}
