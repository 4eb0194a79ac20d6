// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package vartype provides an optional value used for caller overrides. A resolver fills in a
// default and an override only replaces it when it was explicitly set.
package vartype

import (
	"fmt"
)

type (
	// Float is an optional float64 such as a line width or font size.
	Float = Variable[float64]

	// Int is an optional int such as a decimation stride.
	Int = Variable[int]

	// Bool is an optional bool such as a layer visibility flag.
	Bool = Variable[bool]

	// String is an optional string such as a line style or colour name.
	String = Variable[string]
)

// Variable holds a value and whether it was set.
type Variable[T any] struct {
	value T
	isset bool
}

// Of returns a set Variable holding value.
func Of[T any](value T) Variable[T] {
	return Variable[T]{value: value, isset: true}
}

// Value returns the held value, the zero value if unset.
func (v Variable[T]) Value() T {
	return v.value
}

// IsSet reports whether the Variable was set.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// Set stores val and marks the Variable as set.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// Reset clears the Variable.
func (v *Variable[T]) Reset() {
	var zero T
	v.value = zero
	v.isset = false
}

// Or returns the held value if set, def otherwise.
func (v Variable[T]) Or(def T) T {
	if !v.isset {
		return def
	}
	return v.value
}

// Apply overwrites *dst with the held value if set.
func (v Variable[T]) Apply(dst *T) {
	if v.isset && dst != nil {
		*dst = v.value
	}
}

// String returns the value or a placeholder if unset.
func (v Variable[T]) String() string {
	if !v.isset {
		return "<unset>"
	}
	return fmt.Sprint(v.value)
}
