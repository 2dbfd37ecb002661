package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"mod-profile/internal/utils"

	"gopkg.in/ini.v1"
)

var (
	// ErrNotConfigured means first-run setup has not happened yet.
	ErrNotConfigured = errors.New("no working directory configured")
	// ErrAlreadyInitialized is returned by InitializeWorkingDirectory on a configured store.
	ErrAlreadyInitialized = errors.New("working directory already configured")
)

const (
	sectionWorkingDirs = "Working_Directories"
	keyDefault         = "default"

	sectionProfiles = "Profiles"
	keyActive       = "active"
	keySaved        = "saved_profiles"
)

// Values are read back verbatim: no inline comments, no quote stripping.
var loadOptions = ini.LoadOptions{
	Loose:                   true,
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
}

// Status is the persisted profile state of a working directory.
type Status struct {
	Active ActiveProfile
	Saved  []string
}

// Has reports whether name is a saved profile.
func (s Status) Has(name string) bool {
	return slices.Contains(s.Saved, name)
}

// Add records name as saved, keeping insertion order and ignoring duplicates.
func (s *Status) Add(name string) {
	if name == NoProfile || s.Has(name) {
		return
	}
	s.Saved = append(s.Saved, name)
}

// Remove forgets name.
func (s *Status) Remove(name string) {
	s.Saved = slices.DeleteFunc(s.Saved, func(n string) bool { return n == name })
}

// Store persists the working-directory config and the per-directory status file.
type Store struct {
	path string
}

// NewStore returns a Store backed by the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// WorkingDirectory returns the configured working directory.
func (s *Store) WorkingDirectory() (string, error) {
	cfg, err := loadINI(s.path)
	if err != nil {
		return "", err
	}
	dir := cfg.Section(sectionWorkingDirs).Key(keyDefault).String()
	if dir == "" {
		return "", ErrNotConfigured
	}
	return dir, nil
}

// InitializeWorkingDirectory performs first-run setup.
func (s *Store) InitializeWorkingDirectory(path string) error {
	if _, err := s.WorkingDirectory(); err == nil {
		return ErrAlreadyInitialized
	} else if !errors.Is(err, ErrNotConfigured) {
		return err
	}
	return s.SetWorkingDirectory(path)
}

// SetWorkingDirectory stores path as the working directory, replacing any previous value.
func (s *Store) SetWorkingDirectory(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	cfg, err := loadINI(s.path)
	if err != nil {
		return err
	}
	cfg.Section(sectionWorkingDirs).Key(keyDefault).SetValue(abs)
	return writeAtomic(s.path, cfg)
}

// Status reads the status file of the working directory.
// A missing file yields the pristine state with no saved profiles.
func (s *Store) Status() (Status, error) {
	dir, err := s.WorkingDirectory()
	if err != nil {
		return Status{}, err
	}
	path := utils.StatusPath(dir)

	cfg, err := loadINI(path)
	if err != nil {
		return Status{}, err
	}
	sec := cfg.Section(sectionProfiles)

	st := Status{
		Active: parseActive(sec.Key(keyActive).String()),
		Saved:  []string{},
	}
	if raw := sec.Key(keySaved).String(); raw != "" {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return Status{}, fmt.Errorf("status parse %s: %w", path, err)
		}
		for _, n := range names {
			st.Add(n)
		}
	}
	return st, nil
}

// SaveStatus overwrites the status file with st.
func (s *Store) SaveStatus(st Status) error {
	dir, err := s.WorkingDirectory()
	if err != nil {
		return err
	}

	saved := st.Saved
	if saved == nil {
		saved = []string{}
	}
	names, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("status marshal: %w", err)
	}

	cfg := ini.Empty(loadOptions)
	sec := cfg.Section(sectionProfiles)
	sec.Key(keyActive).SetValue(st.Active.encode())
	sec.Key(keySaved).SetValue(string(names))

	return writeAtomic(utils.StatusPath(dir), cfg)
}

func loadINI(path string) (*ini.File, error) {
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("config load %s: %w", path, err)
	}
	return cfg, nil
}

// writeAtomic writes cfg next to path and renames it into place, so readers only
// ever see the old or the new file.
func writeAtomic(path string, cfg *ini.File) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config save mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("config save temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := cfg.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("config save write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("config save sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config save close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("config save chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("config save rename %s: %w", path, err)
	}
	return nil
}
