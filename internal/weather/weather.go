// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wneessen/wxmaps/internal/errs"
	"github.com/wneessen/wxmaps/internal/geo"
)

// Variable names as published by the NOMADS RTMA analysis.
const (
	VarTemperature = "tmp2m"
	VarDewPoint    = "dpt2m"
	VarWindSpeed   = "wind10m"
	VarWindU       = "ugrd10m"
	VarWindV       = "vgrd10m"
	VarWindGust    = "gust10m"
	VarCloudCover  = "tcdcclm"
)

// axisTolerance is the maximum difference in degrees for two axes to be considered equal.
const axisTolerance = 1e-6

var (
	ErrMissingVariable = errors.New("variable not present in dataset")
	ErrEmptyGrid       = errors.New("grid has no points")
)

// Provider is implemented by each gridded analysis backend.
type Provider interface {
	Name() string
	// Latest returns the most recent available analysis at or before now.
	Latest(ctx context.Context, now time.Time, vars []string, bounds geo.Bounds) (*Dataset, error)
	// At returns the analysis valid at the given time.
	At(ctx context.Context, valid time.Time, vars []string, bounds geo.Bounds) (*Dataset, error)
}

// Grid holds the latitude and longitude axes shared by all fields of a dataset. Row r of every
// field lies at Lats[r] and column c at Lons[c].
type Grid struct {
	Lats []float64
	Lons []float64
}

// Dims returns the number of rows and columns.
func (g Grid) Dims() (int, int) {
	return len(g.Lats), len(g.Lons)
}

// Equal reports whether both grids have identical axes.
func (g Grid) Equal(o Grid) bool {
	return axesEqual(g.Lats, o.Lats) && axesEqual(g.Lons, o.Lons)
}

// Bounds returns the box spanned by the axes.
func (g Grid) Bounds() geo.Bounds {
	if len(g.Lats) == 0 || len(g.Lons) == 0 {
		return geo.Bounds{}
	}
	return geo.Bounds{
		West:  floats.Min(g.Lons),
		East:  floats.Max(g.Lons),
		South: floats.Min(g.Lats),
		North: floats.Max(g.Lats),
	}
}

// Spacing returns the mean latitude spacing in degrees.
func (g Grid) Spacing() float64 {
	if len(g.Lats) < 2 {
		return 0
	}
	return math.Abs(g.Lats[len(g.Lats)-1]-g.Lats[0]) / float64(len(g.Lats)-1)
}

func axesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.EqualApprox(a, b, axisTolerance)
}

// Field is a named 2-D grid of values in the given units. Missing values are NaN.
type Field struct {
	Name  string
	Units string
	Data  *mat.Dense
}

// NewField creates a field from row-major values.
func NewField(name, units string, rows, cols int, values []float64) (Field, error) {
	if rows <= 0 || cols <= 0 {
		return Field{}, errs.Shape("new field "+name, ErrEmptyGrid)
	}
	if len(values) != rows*cols {
		return Field{}, errs.Newf(errs.ErrDataShape, "new field "+name,
			"got %d values for a %dx%d grid", len(values), rows, cols)
	}
	data := make([]float64, len(values))
	copy(data, values)
	return Field{Name: name, Units: units, Data: mat.NewDense(rows, cols, data)}, nil
}

// MustField is like NewField but panics on error. It is meant for fixtures.
func MustField(name, units string, rows [][]float64) Field {
	if len(rows) == 0 {
		panic("weather: empty field fixture")
	}
	values := make([]float64, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		values = append(values, row...)
	}
	f, err := NewField(name, units, len(rows), len(rows[0]), values)
	if err != nil {
		panic(err)
	}
	return f
}

// Dims returns the number of rows and columns.
func (f Field) Dims() (int, int) {
	if f.Data == nil {
		return 0, 0
	}
	return f.Data.Dims()
}

// At returns the value at row r, column c.
func (f Field) At(r, c int) float64 {
	return f.Data.At(r, c)
}

// Map returns a new field with fn applied to every value.
func (f Field) Map(name, units string, fn func(float64) float64) Field {
	out := mat.DenseCopyOf(f.Data)
	out.Apply(func(_, _ int, v float64) float64 { return fn(v) }, out)
	return Field{Name: name, Units: units, Data: out}
}

// Combine returns a new field with fn applied cell-wise to f and o. Both must share dimensions.
func (f Field) Combine(o Field, name, units string, fn func(a, b float64) float64) (Field, error) {
	if err := sameDims(f, o); err != nil {
		return Field{}, errs.Shape("combine "+name, err)
	}
	out := mat.DenseCopyOf(f.Data)
	out.Apply(func(r, c int, v float64) float64 { return fn(v, o.Data.At(r, c)) }, out)
	return Field{Name: name, Units: units, Data: out}, nil
}

// Range returns the minimum and maximum finite values. ok is false if no value is finite.
func (f Field) Range() (lo, hi float64, ok bool) {
	finite := f.finite()
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}

func (f Field) finite() []float64 {
	if f.Data == nil {
		return nil
	}
	rows, cols := f.Data.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := f.Data.At(r, c); !math.IsNaN(v) && !math.IsInf(v, 0) {
				out = append(out, v)
			}
		}
	}
	return out
}

// Delta returns current minus prior, cell-wise. Both fields must share dimensions.
func Delta(current, prior Field) (Field, error) {
	if err := sameDims(current, prior); err != nil {
		return Field{}, errs.Shape("delta "+current.Name, err)
	}
	out := new(mat.Dense)
	out.Sub(current.Data, prior.Data)
	return Field{Name: current.Name + "_24h_delta", Units: current.Units, Data: out}, nil
}

func sameDims(a, b Field) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar == 0 || ac == 0 || br == 0 || bc == 0 {
		return ErrEmptyGrid
	}
	if ar != br || ac != bc {
		return fmt.Errorf("grid dimensions differ: %dx%d vs %dx%d", ar, ac, br, bc)
	}
	return nil
}

// Dataset is one analysis cycle as delivered by a Provider.
type Dataset struct {
	Source    string
	ValidTime time.Time
	Grid      Grid
	Fields    map[string]Field
}

// NewDataset returns an empty dataset for the given grid.
func NewDataset(source string, valid time.Time, grid Grid) *Dataset {
	return &Dataset{
		Source:    source,
		ValidTime: valid.UTC(),
		Grid:      grid,
		Fields:    make(map[string]Field),
	}
}

// Add stores a field after checking it is co-dimensioned with the grid.
func (d *Dataset) Add(f Field) error {
	rows, cols := d.Grid.Dims()
	fr, fc := f.Dims()
	if rows != fr || cols != fc {
		return errs.Newf(errs.ErrDataShape, "add field "+f.Name,
			"field is %dx%d but grid is %dx%d", fr, fc, rows, cols)
	}
	d.Fields[f.Name] = f
	return nil
}

// Field returns the named field.
func (d *Dataset) Field(name string) (Field, error) {
	f, ok := d.Fields[name]
	if !ok {
		return Field{}, errs.Shape("dataset "+d.Source, fmt.Errorf("%w: %s", ErrMissingVariable, name))
	}
	return f, nil
}

// Validate checks that the dataset has a non-empty grid and every field matches it.
func (d *Dataset) Validate() error {
	if d == nil {
		return errs.Shape("validate dataset", errors.New("dataset is nil"))
	}
	rows, cols := d.Grid.Dims()
	if rows == 0 || cols == 0 {
		return errs.Shape("validate dataset", ErrEmptyGrid)
	}
	if d.ValidTime.IsZero() {
		return errs.Shape("validate dataset", errors.New("dataset has no valid time"))
	}
	for name, f := range d.Fields {
		fr, fc := f.Dims()
		if fr != rows || fc != cols {
			return errs.Newf(errs.ErrDataShape, "validate dataset",
				"field %s is %dx%d but grid is %dx%d", name, fr, fc, rows, cols)
		}
	}
	return nil
}

// ValidatePair checks that current and prior can be differenced: identical axes and valid times
// 24 hours apart within tolerance.
func ValidatePair(current, prior *Dataset, tolerance time.Duration) error {
	if err := current.Validate(); err != nil {
		return err
	}
	if err := prior.Validate(); err != nil {
		return err
	}
	if !current.Grid.Equal(prior.Grid) {
		cr, cc := current.Grid.Dims()
		pr, pc := prior.Grid.Dims()
		return errs.Newf(errs.ErrDataShape, "validate pair",
			"grids differ: %dx%d vs %dx%d", cr, cc, pr, pc)
	}
	gap := current.ValidTime.Sub(prior.ValidTime)
	drift := gap - 24*time.Hour
	if drift < 0 {
		drift = -drift
	}
	if drift > tolerance {
		return errs.Newf(errs.ErrDataShape, "validate pair",
			"valid times are %s apart, want 24h ± %s", gap, tolerance)
	}
	return nil
}

// FieldSet is the set of fields needed for one plot, ready for rendering. It is not mutated once
// built.
type FieldSet struct {
	Grid      Grid
	ValidTime time.Time
	LocalTime time.Time
	PriorTime time.Time

	// Primary is the field drawn as filled contours.
	Primary Field
	// Extra holds overlay fields such as wind components or the masks of combined products.
	Extra map[string]Field
}

// Extra field keys.
const (
	ExtraWindU    = "u"
	ExtraWindV    = "v"
	ExtraSpeed    = "speed"
	ExtraHumidity = "rh"
	ExtraCurrent  = "current"
	ExtraPrior    = "prior"
)

// IsDelta reports whether the primary field is a 24-hour difference.
func (fs *FieldSet) IsDelta() bool {
	return !fs.PriorTime.IsZero()
}

// Validate checks the set is non-empty and co-dimensioned.
func (fs *FieldSet) Validate() error {
	if fs == nil || fs.Primary.Data == nil {
		return errs.Render("validate field set", errors.New("no primary field"))
	}
	rows, cols := fs.Grid.Dims()
	check := func(f Field) error {
		fr, fc := f.Dims()
		if fr != rows || fc != cols {
			return errs.Newf(errs.ErrDataShape, "validate field set",
				"field %s is %dx%d but grid is %dx%d", f.Name, fr, fc, rows, cols)
		}
		return nil
	}
	if err := check(fs.Primary); err != nil {
		return err
	}
	for _, f := range fs.Extra {
		if err := check(f); err != nil {
			return err
		}
	}
	return nil
}
