package configmanager

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects how snapshots are presented.
type Mode string

const (
	// ModeTUI runs the interactive view.
	ModeTUI Mode = "tui"
	// ModeExpand prints every new version together with its diff.
	ModeExpand Mode = "expand"
	// ModeSimple prints one NAME/AGE row per observed version.
	ModeSimple Mode = "simple"
)

// ValidModes returns the supported output modes.
func ValidModes() []Mode {
	return []Mode{ModeTUI, ModeExpand, ModeSimple}
}

// Set implements pflag.Value.
func (m *Mode) Set(value string) error {
	for _, mode := range ValidModes() {
		if strings.EqualFold(value, string(mode)) {
			*m = mode

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s)",
		ErrInvalidMode,
		value,
		ModeTUI,
		ModeExpand,
		ModeSimple,
	)
}

// UnmarshalText lets configuration decoders parse mode names.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// IsValid reports whether the mode is supported.
func (m *Mode) IsValid() bool {
	return slices.Contains(ValidModes(), *m)
}

// String returns the mode name.
func (m *Mode) String() string {
	return string(*m)
}

// Type returns the flag type name.
func (m *Mode) Type() string {
	return "Mode"
}
