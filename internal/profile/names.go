package profile

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"mod-profile/internal/config"
)

var (
	// ErrUnknownProfile means the name is not in the saved profile list.
	ErrUnknownProfile = errors.New("profile not found")
	// ErrNoActiveProfile is returned by an argument-less save while nothing is active.
	ErrNoActiveProfile = errors.New("no profile is active")
	// ErrReservedName rejects the "no profile" marker as a profile name.
	ErrReservedName = errors.New("reserved profile name")
	// ErrInvalidName rejects names that cannot be stored as a snapshot directory.
	ErrInvalidName = errors.New("invalid profile name")
)

// ValidateName checks that name can be stored as a snapshot directory and
// read back unchanged from the status file.
func ValidateName(name string) error {
	switch {
	case name == config.NoProfile:
		return fmt.Errorf("%w %q", ErrReservedName, name)
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w %q: must not start with '.'", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w %q: must not contain path separators", ErrInvalidName, name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w %q: must not start or end with whitespace", ErrInvalidName, name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w %q: must not contain control characters", ErrInvalidName, name)
	}
	return nil
}

// IsUsageError reports whether err is a caller mistake rather than a failure.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUnknownProfile) ||
		errors.Is(err, ErrNoActiveProfile) ||
		errors.Is(err, ErrReservedName) ||
		errors.Is(err, ErrInvalidName)
}
