// Package mockapi is the development API server. It speaks the endpoint
// convention the generated clients expect for any entity name, backed by
// either an in-memory table or a SQLite file, so generated code can be
// exercised before a real backend exists.
package mockapi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one stored entity instance. Attribute names are the declared
// snake_case property names plus the server-assigned identity and
// timestamp fields.
type Record map[string]any

// ErrNoRecord reports a uuid miss within an entity collection.
var ErrNoRecord = errors.New("no record found")

// Store persists records per entity collection. Deletes are always soft:
// the record stays listed with deleted_at set until restored.
type Store interface {
	List(entity string) ([]Record, error)
	Get(entity, uuid string) (Record, error)
	Create(entity string, attrs Record) (Record, error)
	Update(entity, uuid string, attrs Record) (Record, error)
	Delete(entity, uuid string) (Record, error)
	Restore(entity, uuid string) (Record, error)
	Close() error
}

// serverFields are assigned here and never taken from a request body.
var serverFields = map[string]bool{
	"id": true, "uuid": true, "created_at": true, "updated_at": true, "deleted_at": true,
}

func timestamp() string { return time.Now().UTC().Format(time.RFC3339) }

// stamp builds a fresh record from client attrs plus the server fields.
func stamp(attrs Record, id int64) Record {
	rec := Record{}
	for k, v := range attrs {
		if !serverFields[k] {
			rec[k] = v
		}
	}
	now := timestamp()
	rec["id"] = id
	rec["uuid"] = uuid.NewString()
	rec["created_at"] = now
	rec["updated_at"] = now
	rec["deleted_at"] = nil
	return rec
}

// merge applies client attrs onto an existing record, protecting the
// server fields, and bumps updated_at.
func merge(rec, attrs Record) {
	for k, v := range attrs {
		if !serverFields[k] {
			rec[k] = v
		}
	}
	rec["updated_at"] = timestamp()
}

// MemoryStore keeps every collection in process memory. Collections spring
// into existence on first use; ids are assigned per entity.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Record
	nextID map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Record),
		nextID: make(map[string]int64),
	}
}

// List returns copies of every record in the collection, oldest first.
func (s *MemoryStore) List(entity string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.tables[entity]))
	for _, rec := range s.tables[entity] {
		out = append(out, copyRecord(rec))
	}
	return out, nil
}

// Get returns a copy of the record with the given uuid.
func (s *MemoryStore) Get(entity, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.tables[entity] {
		if rec["uuid"] == id {
			return copyRecord(rec), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNoRecord)
}

// Create stores a new record with fresh identity and timestamps.
func (s *MemoryStore) Create(entity string, attrs Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID[entity]++
	rec := stamp(attrs, s.nextID[entity])
	s.tables[entity] = append(s.tables[entity], rec)
	return copyRecord(rec), nil
}

// Update merges attrs into the record with the given uuid.
func (s *MemoryStore) Update(entity, id string, attrs Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tables[entity] {
		if rec["uuid"] == id {
			merge(rec, attrs)
			return copyRecord(rec), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNoRecord)
}

// Delete soft-deletes the record. A second delete keeps the original
// deleted_at timestamp.
func (s *MemoryStore) Delete(entity, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tables[entity] {
		if rec["uuid"] == id {
			if rec["deleted_at"] == nil {
				rec["deleted_at"] = timestamp()
			}
			return copyRecord(rec), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNoRecord)
}

// Restore clears the record's soft delete.
func (s *MemoryStore) Restore(entity, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tables[entity] {
		if rec["uuid"] == id {
			rec["deleted_at"] = nil
			return copyRecord(rec), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNoRecord)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
