package register

import "fmt"

// InvariantError reports a catalog that fails the disjoint-and-covering
// check. It invalidates every bit position, so callers must not attempt
// any assignment after seeing one.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "register catalog invariant violated: " + e.Detail
}

// OutOfRangeError reports a value that does not fit its field's width.
// Only strict assignment produces it; the default mode clamps instead.
type OutOfRangeError struct {
	Field string
	Value int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %d for field %s out of range (max %d)", e.Value, e.Field, e.Max)
}

// MalformedInputError reports a raw value that could not be normalized
// to a non-negative integer.
type MalformedInputError struct {
	Field string
	Value any
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("field %s has malformed value %v", e.Field, e.Value)
}
