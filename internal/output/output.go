// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package output writes rendered maps below a fixed directory layout and keeps a rolling animation
// of the most recent frames.
package output

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/logger"
	"github.com/wneessen/wxmaps/internal/refsys"
)

const (
	// LatestName is the copy of the newest still in every product directory.
	LatestName = "latest.png"
	// AnimationName is the animation of the retained stills.
	AnimationName = "recent.gif"

	DefaultFrames = 12
	DefaultDelay  = 500 * time.Millisecond

	rootDir = "RTMA"
	noneDir = "NONE"
	pngExt  = ".png"
)

var (
	ErrNoImage = errors.New("image is nil")
	// ErrBadFileName is returned for file names that would leave the product directory.
	ErrBadFileName = errors.New("invalid file name")
)

// Key identifies the directory and file name of one still.
type Key struct {
	Region          string
	ReferenceSystem string
	Product         string
	// FileName is the still name without extension. The valid time is used when empty.
	FileName string
}

// Dir returns the product directory below base.
func (k Key) Dir(base string) string {
	rs := refsys.Slug(k.ReferenceSystem)
	if rs == "" {
		rs = noneDir
	}
	return filepath.Join(base, rootDir, strings.ToUpper(k.Region), rs, k.Product)
}

// Writer stores stills and maintains latest.png and recent.gif. Writes to the same directory are
// serialized.
type Writer struct {
	base   string
	frames int
	delay  time.Duration
	logger *logger.Logger

	mu sync.Mutex
}

// New returns a Writer rooted at base. Non-positive frames or delay select the defaults.
func New(base string, frames int, delay time.Duration, log *logger.Logger) *Writer {
	if frames <= 0 {
		frames = DefaultFrames
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Writer{base: base, frames: frames, delay: delay, logger: log}
}

// Write stores img as a still, refreshes latest.png, prunes stills beyond the frame count and rebuilds
// recent.gif. It returns the path of the still.
func (w *Writer) Write(img image.Image, key Key, valid time.Time) (string, error) {
	if img == nil {
		return "", errs.Output("write map", ErrNoImage)
	}
	name := key.FileName
	if name == "" {
		name = valid.UTC().Format("20060102T1504Z")
	}
	if name != filepath.Base(name) || name == "." || name == ".." ||
		name+pngExt == LatestName {
		return "", errs.Output("write map", fmt.Errorf("%w: %q", ErrBadFileName, name))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dir := key.Dir(w.base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Output("create output directory", err)
	}
	path := filepath.Join(dir, name+pngExt)
	if err := writePNG(path, img); err != nil {
		return "", errs.Output("write map", err)
	}
	// Stills are ordered by valid time through their modification time.
	if !valid.IsZero() {
		if err := os.Chtimes(path, valid, valid); err != nil {
			return "", errs.Output("stamp map", err)
		}
	}
	if err := writePNG(filepath.Join(dir, LatestName), img); err != nil {
		return "", errs.Output("write latest map", err)
	}

	stills, err := w.retain(dir)
	if err != nil {
		return "", errs.Output("prune stills", err)
	}
	if err = w.animate(dir, stills); err != nil {
		return "", errs.Output("write animation", err)
	}
	w.logger.Debug("map written", slog.String("path", path), slog.Int("frames", len(stills)))
	return path, nil
}

type still struct {
	path string
	mod  time.Time
}

// Stills returns the stills of dir, oldest first.
func Stills(dir string) ([]string, error) {
	list, err := stills(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(list))
	for i, s := range list {
		paths[i] = s.path
	}
	return paths, nil
}

func stills(dir string) ([]still, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var list []still
	for _, e := range entries {
		if e.IsDir() || e.Name() == LatestName || filepath.Ext(e.Name()) != pngExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", e.Name(), err)
		}
		list = append(list, still{path: filepath.Join(dir, e.Name()), mod: info.ModTime()})
	}
	slices.SortFunc(list, func(a, b still) int {
		if c := a.mod.Compare(b.mod); c != 0 {
			return c
		}
		return strings.Compare(a.path, b.path)
	})
	return list, nil
}

// retain removes all but the newest stills and returns the kept ones, oldest first.
func (w *Writer) retain(dir string) ([]string, error) {
	list, err := stills(dir)
	if err != nil {
		return nil, err
	}
	cut := max(0, len(list)-w.frames)
	for _, s := range list[:cut] {
		if err = os.Remove(s.path); err != nil {
			return nil, fmt.Errorf("failed to remove old still: %w", err)
		}
		w.logger.Debug("pruned still", slog.String("path", s.path))
	}
	kept := make([]string, 0, len(list)-cut)
	for _, s := range list[cut:] {
		kept = append(kept, s.path)
	}
	return kept, nil
}

// animate stitches the stills into recent.gif. Only stills sized like the newest one are used.
func (w *Writer) animate(dir string, stills []string) error {
	anim := &gif.GIF{LoopCount: 0}
	delay := int(w.delay / (10 * time.Millisecond))
	var size image.Rectangle
	for i := len(stills) - 1; i >= 0; i-- {
		img, err := readPNG(stills[i])
		if err != nil {
			return err
		}
		if i == len(stills)-1 {
			size = img.Bounds()
		}
		if img.Bounds() != size {
			w.logger.Debug("skipping still of different size", slog.String("path", stills[i]),
				slog.String("size", img.Bounds().Size().String()))
			continue
		}
		anim.Image = append(anim.Image, paletted(img))
		anim.Delay = append(anim.Delay, delay)
	}
	if len(anim.Image) == 0 {
		return nil
	}
	slices.Reverse(anim.Image)
	return atomicWrite(filepath.Join(dir, AnimationName), func(f *os.File) error {
		return gif.EncodeAll(f, anim)
	})
}

func paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(out, b, img, b.Min)
	return out
}
