package crud

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is the per-entity in-memory read model: the fetched records plus
// loading/error flags and a search term. It exists purely to mirror what
// the client layer fetched — mutators never touch the network. Guarded by a
// RWMutex because several goroutines may consume one store.
type Store[T any, PT Record[T]] struct {
	mu         sync.RWMutex
	items      []T
	loading    bool
	err        string
	searchTerm string

	sortKey      func(*T) string   // nil: insertion order
	searchFields func(*T) []string // nil: uuid only
}

// StoreOption configures a Store at construction time.
type StoreOption[T any] func(*storeConfig[T])

type storeConfig[T any] struct {
	sortKey      func(*T) string
	searchFields func(*T) []string
}

// WithSortKey sets the display field AddItem keeps the collection sorted
// by. Without it the store preserves insertion order.
func WithSortKey[T any](key func(*T) string) StoreOption[T] {
	return func(c *storeConfig[T]) { c.sortKey = key }
}

// WithSearchFields sets the values FilteredItems matches the search term
// against.
func WithSearchFields[T any](fields func(*T) []string) StoreOption[T] {
	return func(c *storeConfig[T]) { c.searchFields = fields }
}

// NewStore creates an empty store.
func NewStore[T any, PT Record[T]](opts ...StoreOption[T]) *Store[T, PT] {
	var cfg storeConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[T, PT]{sortKey: cfg.sortKey, searchFields: cfg.searchFields}
}

// SetItems replaces the collection, re-applying the configured sort.
func (s *Store[T, PT]) SetItems(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), items...)
	s.sortLocked()
}

// Items returns a copy of the full collection.
func (s *Store[T, PT]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// SetLoading sets the loading flag.
func (s *Store[T, PT]) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading reports the loading flag.
func (s *Store[T, PT]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError sets the error message; "" clears it.
func (s *Store[T, PT]) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

// Error returns the current error message, "" when none.
func (s *Store[T, PT]) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SetSearchTerm sets the term FilteredItems matches against.
func (s *Store[T, PT]) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// SearchTerm returns the current search term.
func (s *Store[T, PT]) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchTerm
}

// AddItem prepends item and, when a sort key is configured, re-sorts the
// whole collection by it.
func (s *Store[T, PT]) AddItem(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
	s.sortLocked()
}

func (s *Store[T, PT]) sortLocked() {
	if s.sortKey == nil {
		return
	}
	sort.SliceStable(s.items, func(i, j int) bool {
		return strings.ToLower(s.sortKey(&s.items[i])) < strings.ToLower(s.sortKey(&s.items[j]))
	})
}

// UpdateItem applies the merge function to the record with the given uuid.
// A missing uuid is a no-op, not an error.
func (s *Store[T, PT]) UpdateItem(uuid string, apply func(PT)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if PT(&s.items[i]).EntityUUID() == uuid {
			apply(PT(&s.items[i]))
			return
		}
	}
}

// DeleteItem soft-deletes the record with the given uuid: it stays in the
// collection with DeletedAt set. Deleting an already-suspended record keeps
// the original timestamp.
func (s *Store[T, PT]) DeleteItem(uuid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		p := PT(&s.items[i])
		if p.EntityUUID() == uuid {
			if p.Deleted() == nil {
				now := time.Now().UTC()
				p.SetDeleted(&now)
			}
			return
		}
	}
}

// RestoreItem clears DeletedAt on the record with the given uuid.
func (s *Store[T, PT]) RestoreItem(uuid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		p := PT(&s.items[i])
		if p.EntityUUID() == uuid {
			p.SetDeleted(nil)
			return
		}
	}
}

// FilteredItems returns the records whose searchable fields contain the
// search term, case-insensitively. An empty term returns the full
// collection in order.
func (s *Store[T, PT]) FilteredItems() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.searchTerm == "" {
		return append([]T(nil), s.items...)
	}
	term := strings.ToLower(s.searchTerm)
	var out []T
	for i := range s.items {
		for _, v := range s.fieldsOf(&s.items[i]) {
			if strings.Contains(strings.ToLower(v), term) {
				out = append(out, s.items[i])
				break
			}
		}
	}
	return out
}

func (s *Store[T, PT]) fieldsOf(item *T) []string {
	if s.searchFields != nil {
		return s.searchFields(item)
	}
	return []string{PT(item).EntityUUID()}
}

// Clear resets the store to its initial empty state.
func (s *Store[T, PT]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loading = false
	s.err = ""
	s.searchTerm = ""
}
