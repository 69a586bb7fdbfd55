package crud

import "context"

// SyncClient mirrors a Client's results into a shared Store after every
// operation, so view code reads one place. Mutations refetch once inside
// the base client and once more after the mirror; the double refetch is
// intentional — the store must never be ahead of the last known server
// state.
type SyncClient[T any, PT Record[T], C, U any] struct {
	*Client[T, PT, C, U]
	store *Store[T, PT]
}

// NewSyncClient binds a client to the store it keeps in sync.
func NewSyncClient[T any, PT Record[T], C, U any](client *Client[T, PT, C, U], store *Store[T, PT]) *SyncClient[T, PT, C, U] {
	return &SyncClient[T, PT, C, U]{Client: client, store: store}
}

// Store returns the mirrored store.
func (s *SyncClient[T, PT, C, U]) Store() *Store[T, PT] { return s.store }

func (s *SyncClient[T, PT, C, U]) mirror() {
	s.store.SetItems(s.Client.Items())
	s.store.SetError(s.Client.Err())
	s.store.SetLoading(s.Client.Loading())
}

// Refresh refetches the collection and mirrors it into the store.
func (s *SyncClient[T, PT, C, U]) Refresh(ctx context.Context) error {
	err := s.Client.FetchItems(ctx)
	s.mirror()
	return err
}

// Create creates a record, mirrors, then refreshes once more.
func (s *SyncClient[T, PT, C, U]) Create(ctx context.Context, dto C) (*T, error) {
	rec, err := s.Client.CreateItem(ctx, dto)
	s.mirror()
	if err != nil {
		return rec, err
	}
	return rec, s.Refresh(ctx)
}

// Update updates a record, mirrors, then refreshes once more.
func (s *SyncClient[T, PT, C, U]) Update(ctx context.Context, uuid string, dto U) (*T, error) {
	rec, err := s.Client.UpdateItem(ctx, uuid, dto)
	s.mirror()
	if err != nil {
		return rec, err
	}
	return rec, s.Refresh(ctx)
}

// Delete soft-deletes a record, mirrors, then refreshes once more.
func (s *SyncClient[T, PT, C, U]) Delete(ctx context.Context, uuid string) error {
	err := s.Client.DeleteItem(ctx, uuid)
	s.mirror()
	if err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Restore clears a soft delete, mirrors, then refreshes once more.
func (s *SyncClient[T, PT, C, U]) Restore(ctx context.Context, uuid string) (*T, error) {
	rec, err := s.Client.RestoreItem(ctx, uuid)
	s.mirror()
	if err != nil {
		return rec, err
	}
	return rec, s.Refresh(ctx)
}

// Get loads a single record through the base client and mirrors state.
func (s *SyncClient[T, PT, C, U]) Get(ctx context.Context, uuid string) (*T, error) {
	rec, err := s.Client.GetItem(ctx, uuid)
	s.mirror()
	return rec, err
}
