package persistence

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=AccessType -output=access_string.go

// AccessType selects how a persistent property's value is read and written.
type AccessType int

const (
	_ AccessType = iota // zero value is not a valid access type

	FIELD
	PROPERTY
)

// ParseAccessType parses an access value case-insensitively. Unknown values
// are rejected rather than defaulted.
func ParseAccessType(s string) (AccessType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIELD":
		return FIELD, nil
	case "PROPERTY":
		return PROPERTY, nil
	default:
		return 0, fmt.Errorf("unknown access type %q", s)
	}
}

// Opposite returns the other access type.
func (a AccessType) Opposite() AccessType {
	switch a {
	case FIELD:
		return PROPERTY
	case PROPERTY:
		return FIELD
	default:
		return a
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a AccessType) MarshalText() ([]byte, error) {
	switch a {
	case FIELD, PROPERTY:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("invalid access type %d", int(a))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccessType) UnmarshalText(text []byte) error {
	v, err := ParseAccessType(string(text))
	if err != nil {
		return err
	}

	*a = v

	return nil
}
