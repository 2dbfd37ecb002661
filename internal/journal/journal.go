// Package journal keeps a sqlite history of profile operations for a working directory.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Op names a profile operation.
type Op string

const (
	OpCreate Op = "create"
	OpSave   Op = "save"
	OpLoad   Op = "load"
	OpDelete Op = "delete"
)

// Entry is one recorded operation.
type Entry struct {
	ID      int64
	Op      Op
	Profile string
	At      time.Time
}

const schema = `CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	op TEXT NOT NULL,
	profile TEXT NOT NULL DEFAULT '',
	at INTEGER NOT NULL
)`

// Journal is an open history database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends an entry for op on profile. profile is empty for create.
func (j *Journal) Record(op Op, profile string) error {
	_, err := j.db.Exec("INSERT INTO history (op, profile, at) VALUES (?, ?, ?)",
		string(op), profile, j.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", op, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query("SELECT id, op, profile, at FROM history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			op string
			at int64
		)
		if err := rows.Scan(&e.ID, &op, &e.Profile, &at); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		e.Op = Op(op)
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastSaved returns when profile was last saved.
func (j *Journal) LastSaved(profile string) (time.Time, bool, error) {
	var at int64
	err := j.db.QueryRow("SELECT at FROM history WHERE op = ? AND profile = ? ORDER BY id DESC LIMIT 1",
		string(OpSave), profile).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query last save of %s: %w", profile, err)
	}
	return time.Unix(0, at), true, nil
}
