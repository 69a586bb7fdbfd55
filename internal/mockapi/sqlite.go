package mockapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists collections in a single SQLite file, one JSON body
// per record, so mock data survives server restarts. The schema is
// entity-agnostic; whatever configs exist, the table fits.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	entity TEXT NOT NULL,
	id     INTEGER NOT NULL,
	uuid   TEXT NOT NULL,
	body   TEXT NOT NULL,
	PRIMARY KEY (entity, uuid)
);
CREATE INDEX IF NOT EXISTS records_entity_id ON records (entity, id);
`

// OpenSQLiteStore opens the store at path, creating the file and schema on
// first use.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// List returns every record in the collection, oldest first.
func (s *SQLiteStore) List(entity string) ([]Record, error) {
	rows, err := s.db.Query(`SELECT body FROM records WHERE entity = ? ORDER BY id`, entity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", entity, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns the record with the given uuid.
func (s *SQLiteStore) Get(entity, id string) (Record, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM records WHERE entity = ? AND uuid = ?`, entity, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNoRecord)
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", entity, err)
	}
	return rec, nil
}

// Create stores a new record with fresh identity and timestamps.
func (s *SQLiteStore) Create(entity string, attrs Record) (Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM records WHERE entity = ?`, entity).Scan(&next); err != nil {
		return nil, err
	}
	rec := stamp(attrs, next)
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO records (entity, id, uuid, body) VALUES (?, ?, ?, ?)`,
		entity, next, rec["uuid"], body); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges attrs into the record with the given uuid.
func (s *SQLiteStore) Update(entity, id string, attrs Record) (Record, error) {
	return s.mutate(entity, id, func(rec Record) {
		merge(rec, attrs)
	})
}

// Delete soft-deletes the record, keeping the original timestamp when it
// is already suspended.
func (s *SQLiteStore) Delete(entity, id string) (Record, error) {
	return s.mutate(entity, id, func(rec Record) {
		if rec["deleted_at"] == nil {
			rec["deleted_at"] = timestamp()
		}
	})
}

// Restore clears the record's soft delete.
func (s *SQLiteStore) Restore(entity, id string) (Record, error) {
	return s.mutate(entity, id, func(rec Record) {
		rec["deleted_at"] = nil
	})
}

// mutate applies fn to the stored record body inside one transaction.
func (s *SQLiteStore) mutate(entity, id string, fn func(Record)) (Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var body []byte
	err = tx.QueryRow(`SELECT body FROM records WHERE entity = ? AND uuid = ?`, entity, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNoRecord)
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", entity, err)
	}
	fn(rec)
	updated, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE records SET body = ? WHERE entity = ? AND uuid = ?`, updated, entity, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
