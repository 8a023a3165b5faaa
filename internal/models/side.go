// Package models provides value types for exchange positions, quotes and hedge results.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSide is returned when a side is neither BACK nor LAY.
var ErrInvalidSide = errors.New("invalid side")

// Side is the directional stance taken on a selection.
type Side string

const (
	// Back wins if the selection wins.
	Back Side = "BACK"
	// Lay wins if the selection loses.
	Lay Side = "LAY"
)

// Valid returns true if the Side is one of the defined constants
func (s Side) Valid() bool {
	switch s {
	case Back, Lay:
		return true
	default:
		return false
	}
}

// Opposite returns the side that closes a position opened on s.
func (s Side) Opposite() Side {
	if s == Back {
		return Lay
	}
	return Back
}

func (s Side) String() string {
	return string(s)
}

// ParseSide converts user input such as "back" or " LAY " to a Side.
func ParseSide(v string) (Side, error) {
	s := Side(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, v)
	}
	return s, nil
}

// UnmarshalText lets YAML and JSON decoders reject unknown sides.
func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s), nil
}
