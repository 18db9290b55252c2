package diagram

import (
	"strings"

	"github.com/matzehuels/treechart/pkg/errors"
)

// Status classifies a leaf. It drives both leaf styling and visibility.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusPriority   Status = "priority"
	StatusIncomplete Status = "incomplete"
)

// Statuses lists every status in legend order.
var Statuses = []Status{StatusCompleted, StatusPriority, StatusIncomplete}

// ParseStatus converts a status name to a Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusPriority:
		return StatusPriority, nil
	case StatusIncomplete:
		return StatusIncomplete, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStatus,
		"unknown status %q (must be one of: completed, priority, incomplete)", s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s.bit() != 0
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so dataset decoders reject
// unknown statuses while reading.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Status) bit() Visibility {
	switch s {
	case StatusCompleted:
		return 1 << 0
	case StatusPriority:
		return 1 << 1
	case StatusIncomplete:
		return 1 << 2
	}
	return 0
}

// Visibility is the set of statuses currently shown. The zero value hides
// every leaf.
type Visibility uint8

// All returns a Visibility containing every status.
func All() Visibility {
	var v Visibility
	for _, s := range Statuses {
		v |= s.bit()
	}
	return v
}

// None returns an empty Visibility.
func None() Visibility { return 0 }

// Has reports whether s is visible.
func (v Visibility) Has(s Status) bool {
	b := s.bit()
	return b != 0 && v&b != 0
}

// With returns a copy of v with s added.
func (v Visibility) With(s Status) Visibility { return v | s.bit() }

// Without returns a copy of v with s removed.
func (v Visibility) Without(s Status) Visibility { return v &^ s.bit() }

// Toggle returns a copy of v with membership of s flipped.
func (v Visibility) Toggle(s Status) Visibility { return v ^ s.bit() }

// Statuses returns the members of v in legend order.
func (v Visibility) Statuses() []Status {
	out := make([]Status, 0, len(Statuses))
	for _, s := range Statuses {
		if v.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// String returns the members of v as a comma-separated list.
func (v Visibility) String() string {
	names := make([]string, 0, len(Statuses))
	for _, s := range v.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ",")
}

// ParseVisibility parses a comma-separated list of statuses. An empty string
// or "all" yields every status; "none" yields the empty set.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All(), nil
	case "none":
		return None(), nil
	}
	var v Visibility
	for _, part := range strings.Split(s, ",") {
		st, err := ParseStatus(part)
		if err != nil {
			return 0, err
		}
		v = v.With(st)
	}
	return v, nil
}

// VisibilityOf builds a Visibility from a list of statuses.
func VisibilityOf(statuses ...Status) Visibility {
	var v Visibility
	for _, s := range statuses {
		v = v.With(s)
	}
	return v
}
