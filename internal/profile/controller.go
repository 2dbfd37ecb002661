// Package profile implements the profile lifecycle of a mod working directory:
// reset to the pristine archives, save, load, delete and status.
package profile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mod-profile/internal/config"
	"mod-profile/internal/journal"
	"mod-profile/internal/utils"
)

// StatusStore is the persistence the Controller needs.
type StatusStore interface {
	WorkingDirectory() (string, error)
	Status() (config.Status, error)
	SaveStatus(config.Status) error
}

// Journal records operations. *journal.Journal satisfies it.
type Journal interface {
	Record(op journal.Op, profile string) error
	LastSaved(profile string) (time.Time, bool, error)
}

// Summary describes one saved profile for listings.
type Summary struct {
	Name    string
	Active  bool
	Size    int64
	SavedAt time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithJournal records every successful mutation in j.
func WithJournal(j Journal) Option {
	return func(c *Controller) {
		c.journal = j
	}
}

// Controller drives the profile state machine.
type Controller struct {
	store   StatusStore
	journal Journal
	logger  *slog.Logger
}

// NewController returns a Controller over store.
func NewController(store StatusStore, opts ...Option) *Controller {
	c := &Controller{store: store}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Create wipes data and tags and extracts them again from data.zip and tags.zip.
// The active profile becomes none; saved profiles are left alone.
func (c *Controller) Create() error {
	wd, st, err := c.load()
	if err != nil {
		return err
	}

	for _, folder := range utils.ModFolders {
		if err := utils.CheckZip(utils.ArchivePath(wd, folder)); err != nil {
			return err
		}
	}

	for _, folder := range utils.ModFolders {
		dest := filepath.Join(wd, folder)
		if err := utils.RemoveFolder(dest); err != nil {
			return err
		}
		n, err := utils.ExtractZip(utils.ArchivePath(wd, folder), dest, folder)
		if err != nil {
			return err
		}
		c.logger.Debug("extracted archive", "folder", folder, "files", n)
	}

	st.Active = config.None()
	return c.commit(st, journal.OpCreate, "")
}

// Save snapshots data and tags under name. An empty name means the active profile.
// It returns the name the snapshot was stored under.
func (c *Controller) Save(name string) (string, error) {
	wd, st, err := c.load()
	if err != nil {
		return "", err
	}

	if name == "" {
		active, ok := st.Active.Name()
		if !ok {
			return "", ErrNoActiveProfile
		}
		name = active
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}

	for _, folder := range utils.ModFolders {
		if err := utils.RequireDir(filepath.Join(wd, folder)); err != nil {
			return "", err
		}
	}

	root := utils.SnapshotRoot(wd)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", root, err)
	}
	tmp, err := os.MkdirTemp(root, ".save-")
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot in %s: %w", root, err)
	}
	defer os.RemoveAll(tmp)

	for _, folder := range utils.ModFolders {
		if err := utils.CopyFolder(filepath.Join(wd, folder), filepath.Join(tmp, folder)); err != nil {
			return "", err
		}
	}

	dest := utils.SnapshotPath(wd, name)
	if err := utils.RemoveFolder(dest); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", fmt.Errorf("failed to move snapshot to %s: %w", dest, err)
	}
	c.logger.Debug("saved snapshot", "profile", name, "path", dest)

	st.Add(name)
	st.Active = config.Named(name)
	return name, c.commit(st, journal.OpSave, name)
}

// Load replaces data and tags with the snapshot of name.
func (c *Controller) Load(name string) error {
	wd, st, err := c.load()
	if err != nil {
		return err
	}
	if !st.Has(name) {
		return fmt.Errorf("%w: '%s'", ErrUnknownProfile, name)
	}

	snapshot := utils.SnapshotPath(wd, name)
	for _, folder := range utils.ModFolders {
		if err := utils.RequireDir(filepath.Join(snapshot, folder)); err != nil {
			return err
		}
	}

	for _, folder := range utils.ModFolders {
		if err := utils.CopyFolder(filepath.Join(snapshot, folder), filepath.Join(wd, folder)); err != nil {
			return err
		}
	}
	c.logger.Debug("restored snapshot", "profile", name, "path", snapshot)

	st.Active = config.Named(name)
	return c.commit(st, journal.OpLoad, name)
}

// Delete removes the snapshot of name and forgets it. No profile is active afterwards.
func (c *Controller) Delete(name string) error {
	wd, st, err := c.load()
	if err != nil {
		return err
	}
	if !st.Has(name) {
		return fmt.Errorf("%w: '%s'", ErrUnknownProfile, name)
	}

	if err := utils.RemoveFolder(utils.SnapshotPath(wd, name)); err != nil {
		return err
	}

	st.Remove(name)
	st.Active = config.None()
	return c.commit(st, journal.OpDelete, name)
}

// Status returns the current status without modifying anything.
func (c *Controller) Status() (config.Status, error) {
	return c.store.Status()
}

// List summarises every saved profile in saved order.
func (c *Controller) List() ([]Summary, error) {
	wd, st, err := c.load()
	if err != nil {
		return nil, err
	}
	active, _ := st.Active.Name()

	summaries := make([]Summary, 0, len(st.Saved))
	for _, name := range st.Saved {
		s := Summary{Name: name, Active: name == active}
		path := utils.SnapshotPath(wd, name)

		if info, err := os.Stat(path); err == nil {
			s.SavedAt = info.ModTime()
			if size, err := utils.DirSize(path); err == nil {
				s.Size = size
			}
		} else {
			c.logger.Debug("snapshot missing", "profile", name, "path", path)
		}

		if c.journal != nil {
			at, ok, err := c.journal.LastSaved(name)
			if err != nil {
				c.logger.Warn("journal lookup failed", "profile", name, "error", err)
			} else if ok {
				s.SavedAt = at
			}
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (c *Controller) load() (string, config.Status, error) {
	wd, err := c.store.WorkingDirectory()
	if err != nil {
		return "", config.Status{}, err
	}
	st, err := c.store.Status()
	if err != nil {
		return "", config.Status{}, err
	}
	return wd, st, nil
}

func (c *Controller) commit(st config.Status, op journal.Op, name string) error {
	if err := c.store.SaveStatus(st); err != nil {
		return err
	}
	if c.journal != nil {
		if err := c.journal.Record(op, name); err != nil {
			c.logger.Warn("journal record failed", "op", op, "error", err)
		}
	}
	return nil
}
