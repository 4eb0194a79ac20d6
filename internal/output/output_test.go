// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/logger"
)

var testValid = time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)

func testImage(c color.Color) image.Image {
	return sizedImage(8, 6, c)
}

func sizedImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func decodeAnimation(t *testing.T, dir string) *gif.GIF {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, AnimationName))
	if err != nil {
		t.Fatalf("failed to open animation: %s", err)
	}
	defer func() { _ = f.Close() }()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("failed to decode animation: %s", err)
	}
	return anim
}

func testWriter(t *testing.T, frames int) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, frames, 0, logger.NewLogger(slog.LevelDebug, io.Discard)), dir
}

func TestKey_Dir(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			"state with preset", Key{Region: "co", ReferenceSystem: "States & Counties", Product: "temperature"},
			filepath.Join("out", "RTMA", "CO", "STATES_AND_COUNTIES", "temperature"),
		},
		{
			"no reference system", Key{Region: "OSCC", Product: "dew_point"},
			filepath.Join("out", "RTMA", "OSCC", "NONE", "dew_point"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.key.Dir("out"); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	key := Key{Region: "CO", ReferenceSystem: "States Only", Product: "temperature"}

	t.Run("still, latest and animation are written", func(t *testing.T) {
		w, base := testWriter(t, 3)
		path, err := w.Write(testImage(color.White), key, testValid)
		if err != nil {
			t.Fatalf("failed to write map: %s", err)
		}
		want := filepath.Join(key.Dir(base), "20250704T1800Z.png")
		if path != want {
			t.Errorf("expected path %s, got %s", want, path)
		}
		for _, name := range []string{"20250704T1800Z.png", LatestName, AnimationName} {
			if _, err = os.Stat(filepath.Join(key.Dir(base), name)); err != nil {
				t.Errorf("expected %s to exist: %s", name, err)
			}
		}
	})
	t.Run("template file name is used", func(t *testing.T) {
		w, base := testWriter(t, 3)
		named := key
		named.FileName = "CO_temperature_2025070418"
		path, err := w.Write(testImage(color.White), named, testValid)
		if err != nil {
			t.Fatalf("failed to write map: %s", err)
		}
		if path != filepath.Join(named.Dir(base), "CO_temperature_2025070418.png") {
			t.Errorf("unexpected path %s", path)
		}
	})
	t.Run("old stills are pruned and the animation holds the rest", func(t *testing.T) {
		w, base := testWriter(t, 3)
		for i := range 5 {
			valid := testValid.Add(time.Duration(i) * time.Hour)
			if _, err := w.Write(testImage(color.Gray{Y: uint8(i * 40)}), key, valid); err != nil {
				t.Fatalf("failed to write map %d: %s", i, err)
			}
		}
		dir := key.Dir(base)
		got, err := Stills(dir)
		if err != nil {
			t.Fatalf("failed to list stills: %s", err)
		}
		want := []string{
			filepath.Join(dir, "20250704T2000Z.png"),
			filepath.Join(dir, "20250704T2100Z.png"),
			filepath.Join(dir, "20250704T2200Z.png"),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("stills mismatch (-want +got):\n%s", diff)
		}

		f, err := os.Open(filepath.Join(dir, AnimationName))
		if err != nil {
			t.Fatalf("failed to open animation: %s", err)
		}
		defer func() { _ = f.Close() }()
		anim, err := gif.DecodeAll(f)
		if err != nil {
			t.Fatalf("failed to decode animation: %s", err)
		}
		if len(anim.Image) != 3 {
			t.Errorf("expected 3 frames, got %d", len(anim.Image))
		}
		if anim.Delay[0] != 50 {
			t.Errorf("expected frame delay of 50, got %d", anim.Delay[0])
		}
	})
	t.Run("stills of another size are left out of the animation", func(t *testing.T) {
		w, base := testWriter(t, 4)
		sizes := []image.Point{{X: 20, Y: 10}, {X: 40, Y: 20}, {X: 40, Y: 20}}
		for i, size := range sizes {
			valid := testValid.Add(time.Duration(i) * time.Hour)
			if _, err := w.Write(sizedImage(size.X, size.Y, color.White), key, valid); err != nil {
				t.Fatalf("failed to write map %d: %s", i, err)
			}
		}
		anim := decodeAnimation(t, key.Dir(base))
		if len(anim.Image) != 2 {
			t.Fatalf("expected 2 frames, got %d", len(anim.Image))
		}
		for i, frame := range anim.Image {
			if got := frame.Bounds().Size(); got != sizes[2] {
				t.Errorf("frame %d: expected size %s, got %s", i, sizes[2], got)
			}
		}
		if got := len(mustStills(t, key.Dir(base))); got != 3 {
			t.Errorf("expected all 3 stills to be kept, got %d", got)
		}
	})
	t.Run("stills are ordered by valid time, not by write order", func(t *testing.T) {
		w, base := testWriter(t, 2)
		for _, h := range []int{3, 1, 2} {
			if _, err := w.Write(testImage(color.White), key, testValid.Add(time.Duration(h)*time.Hour)); err != nil {
				t.Fatalf("failed to write map: %s", err)
			}
		}
		dir := key.Dir(base)
		got, err := Stills(dir)
		if err != nil {
			t.Fatalf("failed to list stills: %s", err)
		}
		want := []string{filepath.Join(dir, "20250704T2000Z.png"), filepath.Join(dir, "20250704T2100Z.png")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("stills mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("nil image fails", func(t *testing.T) {
		w, _ := testWriter(t, 3)
		_, err := w.Write(nil, key, testValid)
		if !errors.Is(err, errs.ErrOutput) || !errors.Is(err, ErrNoImage) {
			t.Errorf("expected output error, got %v", err)
		}
	})
	t.Run("file names must stay in the product directory", func(t *testing.T) {
		w, _ := testWriter(t, 3)
		for _, name := range []string{"../escape", "latest", ".."} {
			bad := key
			bad.FileName = name
			if _, err := w.Write(testImage(color.White), bad, testValid); !errors.Is(err, ErrBadFileName) {
				t.Errorf("expected ErrBadFileName for %q, got %v", name, err)
			}
		}
	})
	t.Run("unwritable base fails", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create file: %s", err)
		}
		w := New(file, 3, 0, logger.NewLogger(slog.LevelDebug, io.Discard))
		if _, err := w.Write(testImage(color.White), key, testValid); !errors.Is(err, errs.ErrOutput) {
			t.Errorf("expected output error, got %v", err)
		}
	})
}

func mustStills(t *testing.T, dir string) []string {
	t.Helper()
	list, err := Stills(dir)
	if err != nil {
		t.Fatalf("failed to list stills: %s", err)
	}
	return list
}
