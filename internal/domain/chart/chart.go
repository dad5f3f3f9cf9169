package chart

import "fmt"

// Kind is the visual representation of the type distribution.
type Kind string

// Chart kinds.
const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Bar || k == Pie
}

// Toggle returns the other kind.
func (k Kind) Toggle() Kind {
	if k == Pie {
		return Bar
	}
	return Pie
}

// Parse converts a user-supplied string into a Kind.
func Parse(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown chart kind %q (want bar or pie)", s)
	}
	return k, nil
}
