package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// It keeps registry keys compact when the same package names recur across many entries.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}
