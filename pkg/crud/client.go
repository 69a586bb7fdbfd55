package crud

import (
	"context"
	"fmt"
	"sync"
)

// TokenSource supplies the bearer token for outgoing calls. An empty token
// means "not yet authenticated"; fetches become no-ops rather than errors.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource for a fixed token string.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Client owns the request lifecycle for one entity: items, the current
// record, loading and error state. Every successful mutation refetches the
// collection — server truth wins over optimistic local patching. There is
// no de-duplication of concurrent calls; rapid double submits race and the
// refetch reconciles.
type Client[T any, PT Record[T], C, U any] struct {
	mu      sync.Mutex
	actions Actions[T, C, U]
	tokens  TokenSource
	name    string // lowercase display name for error messages

	items   []T
	current *T
	loading bool
	err     string
}

// NewClient creates a client over the given action bundle. name is the
// human-readable entity name used in error messages ("claim").
func NewClient[T any, PT Record[T], C, U any](name string, actions Actions[T, C, U], tokens TokenSource) *Client[T, PT, C, U] {
	return &Client[T, PT, C, U]{actions: actions, tokens: tokens, name: name}
}

// Items returns a copy of the last fetched collection.
func (c *Client[T, PT, C, U]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// Current returns the record loaded by the last GetItem, nil when none.
func (c *Client[T, PT, C, U]) Current() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Loading reports whether a request is in flight.
func (c *Client[T, PT, C, U]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last error message, "" when none.
func (c *Client[T, PT, C, U]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client[T, PT, C, U]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

// fail records the error message and clears the collection so callers never
// render stale data next to an error.
func (c *Client[T, PT, C, U]) fail(err error) error {
	c.mu.Lock()
	c.err = errMessage(err)
	c.items = nil
	c.mu.Unlock()
	return err
}

func (c *Client[T, PT, C, U]) finish() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// errMessage maps any failure to a human-readable message, with a generic
// fallback for malformed shapes.
func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// FetchItems loads the full collection. Without a token it is a no-op.
func (c *Client[T, PT, C, U]) FetchItems(ctx context.Context) error {
	token := c.tokens.Token()
	if token == "" {
		return nil
	}
	c.begin()
	defer c.finish()

	resp, err := c.actions.List(ctx, token)
	if err != nil {
		return c.fail(err)
	}
	if err := envelopeError(resp.Success, resp.Message); err != nil {
		return c.fail(err)
	}
	c.mu.Lock()
	c.items = resp.Data
	c.mu.Unlock()
	return nil
}

// GetItem loads a single record by uuid. A well-formed success response
// without data is a not-found error, never a silent nil.
func (c *Client[T, PT, C, U]) GetItem(ctx context.Context, uuid string) (*T, error) {
	c.begin()
	defer c.finish()

	resp, err := c.actions.Get(ctx, c.tokens.Token(), uuid)
	if err != nil {
		return nil, c.setErr(err)
	}
	if err := envelopeError(resp.Success, resp.Message); err != nil {
		return nil, c.setErr(err)
	}
	if resp.Data == nil {
		return nil, c.setErr(fmt.Errorf("no %s found: %w", c.name, ErrNotFound))
	}
	c.mu.Lock()
	c.current = resp.Data
	c.mu.Unlock()
	return resp.Data, nil
}

// setErr records the message without clearing items; single-record and
// mutation failures keep the last good collection.
func (c *Client[T, PT, C, U]) setErr(err error) error {
	c.mu.Lock()
	c.err = errMessage(err)
	c.mu.Unlock()
	return err
}

// CreateItem creates a record and refetches the collection on success.
func (c *Client[T, PT, C, U]) CreateItem(ctx context.Context, dto C) (*T, error) {
	c.begin()
	defer c.finish()

	resp, err := c.actions.Create(ctx, c.tokens.Token(), dto)
	if err != nil {
		return nil, c.setErr(err)
	}
	if err := envelopeError(resp.Success, resp.Message); err != nil {
		return nil, c.setErr(err)
	}
	if err := c.FetchItems(ctx); err != nil {
		return resp.Data, err
	}
	return resp.Data, nil
}

// UpdateItem updates a record and refetches the collection on success.
func (c *Client[T, PT, C, U]) UpdateItem(ctx context.Context, uuid string, dto U) (*T, error) {
	c.begin()
	defer c.finish()

	resp, err := c.actions.Update(ctx, c.tokens.Token(), uuid, dto)
	if err != nil {
		return nil, c.setErr(err)
	}
	if err := envelopeError(resp.Success, resp.Message); err != nil {
		return nil, c.setErr(err)
	}
	if err := c.FetchItems(ctx); err != nil {
		return resp.Data, err
	}
	return resp.Data, nil
}

// DeleteItem soft-deletes a record and refetches the collection on success.
func (c *Client[T, PT, C, U]) DeleteItem(ctx context.Context, uuid string) error {
	c.begin()
	defer c.finish()

	resp, err := c.actions.Delete(ctx, c.tokens.Token(), uuid)
	if err != nil {
		return c.setErr(err)
	}
	if err := envelopeError(resp.Success, resp.Message); err != nil {
		return c.setErr(err)
	}
	return c.FetchItems(ctx)
}

// RestoreItem clears a record's soft delete and refetches on success.
func (c *Client[T, PT, C, U]) RestoreItem(ctx context.Context, uuid string) (*T, error) {
	c.begin()
	defer c.finish()

	resp, err := c.actions.Restore(ctx, c.tokens.Token(), uuid)
	if err != nil {
		return nil, c.setErr(err)
	}
	if err := envelopeError(resp.Success, resp.Message); err != nil {
		return nil, c.setErr(err)
	}
	if err := c.FetchItems(ctx); err != nil {
		return resp.Data, err
	}
	return resp.Data, nil
}
