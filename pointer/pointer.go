// Package pointer provides small helpers for working with pointers to
// values, common in optional model fields.
package pointer

// From returns a pointer to the provided value.
func From[T any](v T) *T {
	return &v
}

// ValueOrZero returns the value behind the pointer, or the zero value if
// the pointer is nil.
func ValueOrZero[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
