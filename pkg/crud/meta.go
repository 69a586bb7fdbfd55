// Package crud is the runtime library consumed by crudgen-generated code.
// Generated artifacts are thin, name-consistent wiring over the generic
// pieces here: response envelopes, the shared request helper, the in-memory
// store, and the client/sync layers.
package crud

import "time"

// Meta holds the server-assigned identity and lifecycle fields every
// generated record embeds. The server, never the client, populates these.
// A non-nil DeletedAt marks the record Suspended; nil marks it Available.
// UUID is the externally addressable identifier; ID is an internal numeric
// key that never appears in URLs.
type Meta struct {
	ID        *int64     `json:"id,omitempty"`
	UUID      *string    `json:"uuid,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EntityUUID returns the record's UUID, or "" when the server has not
// assigned one yet.
func (m *Meta) EntityUUID() string {
	if m.UUID == nil {
		return ""
	}
	return *m.UUID
}

// Deleted returns the soft-delete timestamp, nil when Available.
func (m *Meta) Deleted() *time.Time { return m.DeletedAt }

// SetDeleted sets or clears the soft-delete timestamp.
func (m *Meta) SetDeleted(t *time.Time) { m.DeletedAt = t }

// Suspended reports whether the record is soft-deleted.
func (m *Meta) Suspended() bool { return m.DeletedAt != nil }

// Record is satisfied by pointers to generated record structs through the
// embedded Meta. It is what lets Store and Client mutate lifecycle fields
// without knowing the concrete shape.
type Record[T any] interface {
	*T
	EntityUUID() string
	Deleted() *time.Time
	SetDeleted(*time.Time)
}
