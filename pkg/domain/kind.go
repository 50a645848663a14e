package domain

import "strings"

// Kind identifies a concrete state implementation.
// It is assigned by hand (a constant per implementation) and doubles as the
// display identifier that relays match against.
type Kind string

// String returns the display identifier.
func (k Kind) String() string {
	return string(k)
}

// Matches reports whether name refers to this kind, ignoring case.
func (k Kind) Matches(name string) bool {
	return strings.EqualFold(string(k), name)
}

// IsZero reports whether the kind is empty.
func (k Kind) IsZero() bool {
	return k == ""
}
