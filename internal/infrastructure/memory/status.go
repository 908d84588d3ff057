// Package memory holds process-local implementations of application ports.
package memory

import (
	"sync"

	"videosvc/internal/domain/media"
)

// StatusStore keeps task records in a map guarded by a read/write lock.
// Records are stored and returned by value so readers never observe a
// partially written record. Entries are never evicted.
type StatusStore struct {
	mu      sync.RWMutex
	records map[string]media.TaskRecord
}

// NewStatusStore creates an empty store.
func NewStatusStore() *StatusStore {
	return &StatusStore{records: make(map[string]media.TaskRecord)}
}

// Create inserts record unless taskID already exists.
func (s *StatusStore) Create(taskID string, record media.TaskRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[taskID]; ok {
		return false
	}
	s.records[taskID] = record
	return true
}

// Set overwrites the record for taskID.
func (s *StatusStore) Set(taskID string, record media.TaskRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[taskID] = record
}

// Get returns the latest record for taskID.
func (s *StatusStore) Get(taskID string) (media.TaskRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[taskID]
	return record, ok
}

// Len returns the number of tracked tasks.
func (s *StatusStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
