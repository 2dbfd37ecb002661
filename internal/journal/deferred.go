package journal

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Deferred opens the history database only when it is first needed. Lookups
// against a database that does not exist yet report nothing instead of creating it.
type Deferred struct {
	path string
	j    *Journal
}

// NewDeferred returns a Deferred journal for the database at path.
func NewDeferred(path string) *Deferred {
	return &Deferred{path: path}
}

// Record opens (creating if needed) the database and appends an entry.
func (d *Deferred) Record(op Op, profile string) error {
	j, err := d.open()
	if err != nil {
		return err
	}
	return j.Record(op, profile)
}

// LastSaved reports when profile was last saved, or nothing if no database exists.
func (d *Deferred) LastSaved(profile string) (time.Time, bool, error) {
	if !d.exists() {
		return time.Time{}, false, nil
	}
	j, err := d.open()
	if err != nil {
		return time.Time{}, false, err
	}
	return j.LastSaved(profile)
}

// Recent returns up to limit entries, newest first, or none if no database exists.
func (d *Deferred) Recent(limit int) ([]Entry, error) {
	if !d.exists() {
		return nil, nil
	}
	j, err := d.open()
	if err != nil {
		return nil, err
	}
	return j.Recent(limit)
}

// Close releases the database if it was opened.
func (d *Deferred) Close() error {
	if d.j == nil {
		return nil
	}
	err := d.j.Close()
	d.j = nil
	return err
}

func (d *Deferred) exists() bool {
	if d.j != nil {
		return true
	}
	_, err := os.Stat(d.path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (d *Deferred) open() (*Journal, error) {
	if d.j != nil {
		return d.j, nil
	}
	j, err := Open(d.path)
	if err != nil {
		return nil, err
	}
	d.j = j
	return j, nil
}
