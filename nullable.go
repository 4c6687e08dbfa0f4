package flexpay

import (
	"bytes"
	"encoding/json"
)

// Nullable is a JSON field with three states: absent from the payload, an
// explicit null, or a value. The gateway schema distinguishes null from
// absence on many fields, so the two must never collapse into each other.
//
// The zero Nullable is the absent state and is skipped by marshaling when the
// field carries the omitzero tag option.
type Nullable[T any] struct {
	value T
	set   bool
	null  bool
}

// NullableOf returns a Nullable holding v.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, set: true}
}

// NullOf returns a Nullable that marshals as an explicit null.
func NullOf[T any]() Nullable[T] {
	return Nullable[T]{set: true, null: true}
}

// IsZero reports the absent state. encoding/json consults it for omitzero.
func (n Nullable[T]) IsZero() bool { return !n.set }

// IsSet reports whether the field is present in the payload, either as a
// value or as an explicit null.
func (n Nullable[T]) IsSet() bool { return n.set }

// IsNull reports whether the field is present as an explicit null.
func (n Nullable[T]) IsNull() bool { return n.set && n.null }

// Value returns the held value and whether one is present.
func (n Nullable[T]) Value() (T, bool) {
	if !n.set || n.null {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Or returns the held value, or fallback when the field is absent or null.
func (n Nullable[T]) Or(fallback T) T {
	if v, ok := n.Value(); ok {
		return v
	}
	return fallback
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	// Absent fields are dropped by omitzero before this runs; an absent
	// Nullable marshaled directly (no omitzero) degrades to null.
	if !n.set || n.null {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.set = true
	if bytes.Equal(data, []byte("null")) {
		n.null = true
		var zero T
		n.value = zero
		return nil
	}
	n.null = false
	return json.Unmarshal(data, &n.value)
}
