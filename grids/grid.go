package grids

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gospectral/CS1D"
	"github.com/notargets/gospectral/FS1D"
	"github.com/notargets/gospectral/utils"
)

/*
Package grids composes single-axis transform engines into product
grids. A compact radial axis can stand alone, pair with a compact
vertical axis, or carry one spectral ring per radial quadrature point,
with ring resolution growing alongside circumference.
*/

var (
	ErrConfiguration = errors.New("grids: invalid grid configuration")
)

// Kind enumerates the supported grid topologies.
type Kind uint8

const (
	// R is a single radial line.
	R Kind = iota
	// RZ is the tensor product of radial and vertical compact axes.
	RZ
	// RL hangs one periodic azimuthal ring on every radial mish point.
	RL
	// RLZ extends RL with a compact vertical axis.
	RLZ
)

var kindNames = map[Kind]string{
	R:   "R",
	RZ:  "RZ",
	RL:  "RL",
	RLZ: "RLZ",
}

// KindNameMap resolves lowercased external names to kinds.
var KindNameMap = map[string]Kind{
	"r":   R,
	"rz":  RZ,
	"rl":  RL,
	"rlz": RLZ,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKindName maps a case-insensitive kind name to its value.
func ParseKindName(name string) (k Kind, err error) {
	var ok bool
	if k, ok = KindNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("%w: unknown grid kind %q", ErrConfiguration, name)
	}
	return
}

// AxisEngine is the per-axis transform contract shared by the compact
// and spectral implementations, which lets grid sweeps treat a
// direction generically.
type AxisEngine interface {
	MishPoints() []float64
	SetSamples(u []float64) error
	ForwardTransform()
	SolveTransform(backgroundO ...[]float64) error
	Evaluate(points []float64, deriv int) ([]float64, error)
	EvaluateTo(out, points []float64, deriv int) error
}

var (
	_ AxisEngine = (*CS1D.Axis)(nil)
	_ AxisEngine = (*FS1D.Axis)(nil)
)

// GridOperator is the whole-grid transform contract: physical points,
// samples to coefficients, coefficients back to samples.
type GridOperator interface {
	Gridpoints() [][]float64
	SpectralTransform(field []float64) error
	GridTransform() ([]float64, error)
}

// GridParameters collects everything needed to build any kind.
type GridParameters struct {
	Kind               Kind
	Radial             CS1D.AxisParameters
	Vertical           CS1D.AxisParameters // RZ and RLZ only
	MinAzimuthalPoints int                 // RL and RLZ only
	AzimuthalLq        float64
	RingScaling        bool // grow ring resolution with circumference
}

// Grid implements GridOperator for every kind through kind-dispatched
// sweeps. Coefficient storage lives on the grid so a spectral
// transform can be followed by any number of grid transforms.
type Grid struct {
	GridParameters
	RadialAxis   *CS1D.Axis
	VerticalAxis *CS1D.Axis
	Rings        []*FS1D.Axis

	// Coefficient stores, filled by kind: RZ uses AMat, RL uses
	// RadRe/RadIm (mode by radial node), RLZ uses AzRe/AzIm (one
	// radial by vertical matrix per azimuthal mode).
	AMat         utils.Matrix
	RadRe, RadIm utils.Matrix
	AzRe, AzIm   []utils.Matrix
	solved       bool

	maxMode int
	offsets []int // flat field offset per ring
	npts    int

	ccache *CS1D.AxisCache
	fcache *FS1D.AxisCache
}

var _ GridOperator = (*Grid)(nil)

// NewGrid dispatches to the kind-specific constructor.
func NewGrid(gp GridParameters) (g *Grid, err error) {
	switch gp.Kind {
	case R:
		return NewGridR(gp.Radial)
	case RZ:
		return NewGridRZ(gp.Radial, gp.Vertical)
	case RL:
		return NewGridRL(gp.Radial, gp.MinAzimuthalPoints, gp.AzimuthalLq, gp.RingScaling)
	case RLZ:
		return NewGridRLZ(gp.Radial, gp.Vertical, gp.MinAzimuthalPoints, gp.AzimuthalLq, gp.RingScaling)
	}
	err = fmt.Errorf("%w: unknown grid kind %d", ErrConfiguration, uint8(gp.Kind))
	return
}

// NewGridR builds a bare radial line.
func NewGridR(radial CS1D.AxisParameters) (g *Grid, err error) {
	g = &Grid{
		GridParameters: GridParameters{Kind: R, Radial: radial},
		ccache:         CS1D.NewAxisCache(),
	}
	if g.RadialAxis, err = g.ccache.NewAxis(radial); err != nil {
		g = nil
		return
	}
	g.npts = len(g.RadialAxis.MishPoints())
	return
}

// NewGridRZ builds the radial by vertical product.
func NewGridRZ(radial, vertical CS1D.AxisParameters) (g *Grid, err error) {
	g = &Grid{
		GridParameters: GridParameters{Kind: RZ, Radial: radial, Vertical: vertical},
		ccache:         CS1D.NewAxisCache(),
	}
	if g.RadialAxis, err = g.ccache.NewAxis(radial); err != nil {
		g = nil
		return
	}
	if g.VerticalAxis, err = g.ccache.NewAxis(vertical); err != nil {
		g = nil
		return
	}
	g.npts = len(g.RadialAxis.MishPoints()) * len(g.VerticalAxis.MishPoints())
	g.AMat = utils.NewMatrix(g.RadialAxis.Mdim, g.VerticalAxis.Mdim)
	return
}

// NewGridRL builds rings over a radial line.
func NewGridRL(radial CS1D.AxisParameters, minAzPts int, azLq float64, ringScaling bool) (g *Grid, err error) {
	g = &Grid{
		GridParameters: GridParameters{
			Kind: RL, Radial: radial,
			MinAzimuthalPoints: minAzPts, AzimuthalLq: azLq, RingScaling: ringScaling,
		},
		ccache: CS1D.NewAxisCache(),
		fcache: FS1D.NewAxisCache(),
	}
	if g.RadialAxis, err = g.ccache.NewAxis(radial); err != nil {
		g = nil
		return
	}
	if err = g.buildRings(1); err != nil {
		g = nil
		return
	}
	g.RadRe = utils.NewMatrix(g.maxMode+1, g.RadialAxis.Mdim)
	g.RadIm = utils.NewMatrix(g.maxMode+1, g.RadialAxis.Mdim)
	return
}

// NewGridRLZ builds rings over a radial line swept along a vertical
// axis.
func NewGridRLZ(radial, vertical CS1D.AxisParameters, minAzPts int, azLq float64, ringScaling bool) (g *Grid, err error) {
	g = &Grid{
		GridParameters: GridParameters{
			Kind: RLZ, Radial: radial, Vertical: vertical,
			MinAzimuthalPoints: minAzPts, AzimuthalLq: azLq, RingScaling: ringScaling,
		},
		ccache: CS1D.NewAxisCache(),
		fcache: FS1D.NewAxisCache(),
	}
	if g.RadialAxis, err = g.ccache.NewAxis(radial); err != nil {
		g = nil
		return
	}
	if g.VerticalAxis, err = g.ccache.NewAxis(vertical); err != nil {
		g = nil
		return
	}
	if err = g.buildRings(len(g.VerticalAxis.MishPoints())); err != nil {
		g = nil
		return
	}
	g.AzRe = make([]utils.Matrix, g.maxMode+1)
	g.AzIm = make([]utils.Matrix, g.maxMode+1)
	for k := range g.AzRe {
		g.AzRe[k] = utils.NewMatrix(g.RadialAxis.Mdim, g.VerticalAxis.Mdim)
		g.AzIm[k] = utils.NewMatrix(g.RadialAxis.Mdim, g.VerticalAxis.Mdim)
	}
	return
}

// buildRings places one azimuthal engine at each radial mish point and
// lays out the flat field offsets, with planeCount vertical planes
// sharing each ring's resolution.
func (g *Grid) buildRings(planeCount int) (err error) {
	if g.MinAzimuthalPoints < 4 {
		return fmt.Errorf("%w: need at least four azimuthal points, have %d",
			ErrConfiguration, g.MinAzimuthalPoints)
	}
	if g.Radial.Xmin < 0. {
		return fmt.Errorf("%w: rings need nonnegative radii, domain starts at %g",
			ErrConfiguration, g.Radial.Xmin)
	}
	var (
		radii = g.RadialAxis.MishPoints()
	)
	g.Rings = make([]*FS1D.Axis, len(radii))
	g.offsets = make([]int, len(radii))
	for i, r := range radii {
		n := g.MinAzimuthalPoints
		if g.RingScaling {
			// Points per circumference matched to the radial spacing
			if scaled := int(math.Ceil(2. * math.Pi * r * g.RadialAxis.ODX)); scaled > n {
				n = scaled
			}
			n += n % 2
		}
		if g.Rings[i], err = g.fcache.NewAxis(FS1D.AxisParameters{
			Xmin: 0, Xmax: 2. * math.Pi, NumPoints: n, Lq: g.AzimuthalLq,
		}); err != nil {
			return
		}
		g.offsets[i] = g.npts
		g.npts += n * planeCount
		if n/2 > g.maxMode {
			g.maxMode = n / 2
		}
	}
	return
}

// NumGridpoints reports the flat field length the grid expects.
func (g *Grid) NumGridpoints() int {
	return g.npts
}

// RingSizes reports the azimuthal point count per ring, empty for
// kinds without rings.
func (g *Grid) RingSizes() (sizes []int) {
	sizes = make([]int, len(g.Rings))
	for i, ring := range g.Rings {
		sizes[i] = ring.NumPoints
	}
	return
}

// Gridpoints returns the physical coordinates of every sample site in
// flat field order: r alone, then (r,z), (r,lambda) or (r,lambda,z)
// by kind.
func (g *Grid) Gridpoints() (pts [][]float64) {
	pts = make([][]float64, 0, g.npts)
	switch g.Kind {
	case R:
		for _, r := range g.RadialAxis.MishPoints() {
			pts = append(pts, []float64{r})
		}
	case RZ:
		for _, r := range g.RadialAxis.MishPoints() {
			for _, z := range g.VerticalAxis.MishPoints() {
				pts = append(pts, []float64{r, z})
			}
		}
	case RL:
		for i, r := range g.RadialAxis.MishPoints() {
			for _, lam := range g.Rings[i].MishPoints() {
				pts = append(pts, []float64{r, lam})
			}
		}
	case RLZ:
		for i, r := range g.RadialAxis.MishPoints() {
			for _, z := range g.VerticalAxis.MishPoints() {
				for _, lam := range g.Rings[i].MishPoints() {
					pts = append(pts, []float64{r, lam, z})
				}
			}
		}
	}
	return
}
