// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package errs defines the error kinds a rendering run can fail with. Every error returned by the
// pipeline wraps exactly one of the Err* kinds so callers can branch with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrDataFetch indicates a network or upstream data service failure.
	ErrDataFetch = errors.New("data fetch failed")
	// ErrDataShape indicates mismatched or malformed grids, e.g. a current/prior pair that differs
	// in dimensions or valid time.
	ErrDataShape = errors.New("invalid data shape")
	// ErrConfiguration indicates an ambiguous, missing or invalid configuration.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrRender indicates a failure while drawing the map.
	ErrRender = errors.New("render failed")
	// ErrOutput indicates a failure while resolving output paths or writing files.
	ErrOutput = errors.New("output failed")
)

// Error is a classified error. Kind is one of the Err* sentinels, Op names the failing operation.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns a classified error for the given kind and operation.
func New(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is like New but formats the cause.
func Newf(kind error, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Fetch wraps err as an ErrDataFetch.
func Fetch(op string, err error) error { return New(ErrDataFetch, op, err) }

// Shape wraps err as an ErrDataShape.
func Shape(op string, err error) error { return New(ErrDataShape, op, err) }

// Config wraps err as an ErrConfiguration.
func Config(op string, err error) error { return New(ErrConfiguration, op, err) }

// Render wraps err as an ErrRender.
func Render(op string, err error) error { return New(ErrRender, op, err) }

// Output wraps err as an ErrOutput.
func Output(op string, err error) error { return New(ErrOutput, op, err) }

// KindOf returns the kind of err or nil if err is not classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrDataFetch, ErrDataShape, ErrConfiguration, ErrRender, ErrOutput} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
