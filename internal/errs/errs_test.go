// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package errs

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestError(t *testing.T) {
	t.Run("classified errors match their kind through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", Config("region", errors.New("state and gacc both set")))
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("expected error to be %s, got %s", ErrConfiguration, err)
		}
		if errors.Is(err, ErrDataFetch) {
			t.Errorf("did not expect error to be %s", ErrDataFetch)
		}
	})
	t.Run("the cause is preserved", func(t *testing.T) {
		err := Fetch("nomads", io.ErrUnexpectedEOF)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("expected cause to be preserved, got %s", err)
		}
		want := "nomads: data fetch failed: unexpected EOF"
		if err.Error() != want {
			t.Errorf("expected error string %q, got %q", want, err.Error())
		}
	})
	t.Run("errors without cause render op and kind", func(t *testing.T) {
		err := New(ErrRender, "render", nil)
		if err.Error() != "render: render failed" {
			t.Errorf("unexpected error string: %q", err.Error())
		}
	})
	t.Run("KindOf reports the kind", func(t *testing.T) {
		tests := []struct {
			err  error
			want error
		}{
			{Fetch("a", io.EOF), ErrDataFetch},
			{Shape("a", io.EOF), ErrDataShape},
			{Config("a", io.EOF), ErrConfiguration},
			{Render("a", io.EOF), ErrRender},
			{Output("a", io.EOF), ErrOutput},
			{io.EOF, nil},
		}
		for _, tc := range tests {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf(%s): expected %v, got %v", tc.err, tc.want, got)
			}
		}
	})
}
