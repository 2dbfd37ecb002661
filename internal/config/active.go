package config

// NoProfile is the on-disk marker for "no profile active".
const NoProfile = "*"

// ActiveProfile is either a named profile or none (the pristine state).
type ActiveProfile struct {
	name string
}

// None returns the pristine, no-profile state.
func None() ActiveProfile {
	return ActiveProfile{}
}

// Named returns the active state for profile name.
func Named(name string) ActiveProfile {
	if name == NoProfile {
		return None()
	}
	return ActiveProfile{name: name}
}

// Name returns the profile name and whether one is active.
func (a ActiveProfile) Name() (string, bool) {
	return a.name, a.name != ""
}

// IsNone reports whether no profile is active.
func (a ActiveProfile) IsNone() bool {
	return a.name == ""
}

// String returns the profile name, or "None".
func (a ActiveProfile) String() string {
	if a.IsNone() {
		return "None"
	}
	return a.name
}

func parseActive(raw string) ActiveProfile {
	return Named(raw)
}

func (a ActiveProfile) encode() string {
	if a.IsNone() {
		return NoProfile
	}
	return a.name
}
