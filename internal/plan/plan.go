// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package plan turns region, reference system and style options into a RenderingPlan.
package plan

import (
	"fmt"
	"math"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
	"github.com/wneessen/wxmaps/internal/refsys"
	"github.com/wneessen/wxmaps/internal/region"
	"github.com/wneessen/wxmaps/internal/vartype"
)

// FigureLayout is the geometry and type table of the figure.
type FigureLayout = region.Layout

// NativeSpacing is the approximate RTMA 2.5 km grid spacing in degrees. Decimation strides are
// expressed in native grid points.
const NativeSpacing = 0.0225

// Options are the caller inputs of a single map.
type Options struct {
	Region          region.Selector
	Layout          region.LayoutOverrides
	ReferenceSystem string
	Custom          refsys.Flags
	Boundaries      BoundaryStyle
	Samples         SamplePointStyle
	// ShowSamples is the product default, used when Samples.Show is unset.
	ShowSamples bool
	Alpha       vartype.Float
}

// RenderingPlan is the resolved set of drawing instructions for one map. It is built per call and
// never shared.
type RenderingPlan struct {
	Region          region.Profile
	Bounds          geo.Bounds
	Layout          FigureLayout
	ReferenceSystem string
	Boundaries      refsys.Boundaries
	Lines           []Line
	Features        Features
	Samples         Samples
	Alpha           float64
}

// New resolves opts. All nested style structs are validated here so the renderer can trust the
// plan.
func New(opts Options) (*RenderingPlan, error) {
	profile, err := region.Resolve(opts.Region, opts.Layout)
	if err != nil {
		return nil, err
	}
	boundaries := refsys.Resolve(opts.ReferenceSystem, profile.National(), opts.Custom)

	lines, err := opts.Boundaries.lines(boundaries)
	if err != nil {
		return nil, errs.Config("resolve boundary style", err)
	}
	features, err := opts.Boundaries.features()
	if err != nil {
		return nil, errs.Config("resolve boundary style", err)
	}
	samples, err := opts.Samples.resolve(Decimation(profile.Bounds), profile.Layout.SampleSize, opts.ShowSamples)
	if err != nil {
		return nil, errs.Config("resolve sample style", err)
	}
	alpha := opts.Alpha.Or(1)
	if alpha < 0 || alpha > 1 {
		return nil, errs.Config("resolve plan", fmt.Errorf("alpha must be within [0, 1], got %.2f", alpha))
	}

	return &RenderingPlan{
		Region:          profile,
		Bounds:          profile.Bounds,
		Layout:          profile.Layout,
		ReferenceSystem: opts.ReferenceSystem,
		Boundaries:      boundaries,
		Lines:           lines,
		Features:        features,
		Samples:         samples,
		Alpha:           alpha,
	}, nil
}

// National reports whether the plan covers the whole country.
func (p *RenderingPlan) National() bool {
	return p.Region.National()
}

// SampleStep converts the decimation stride into a step on a grid with the given spacing.
func (p *RenderingPlan) SampleStep(spacing float64) int {
	if !(spacing > 0) {
		return p.Samples.Stride
	}
	return max(1, int(math.Round(float64(p.Samples.Stride)*NativeSpacing/spacing)))
}

var decimationSteps = []struct {
	extent float64
	stride int
}{
	{5, 10},
	{10, 20},
	{20, 40},
	{40, 80},
}

// Decimation returns the sample stride for a map of the given bounds. Larger maps sample sparser.
func Decimation(b geo.Bounds) int {
	extent := b.Extent()
	for _, s := range decimationSteps {
		if extent <= s.extent {
			return s.stride
		}
	}
	return 160
}
