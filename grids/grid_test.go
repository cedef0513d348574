package grids

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/CS1D"
)

func TestKindParsing(t *testing.T) {
	for name, kind := range KindNameMap {
		parsed, err := ParseKindName(name)
		assert.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	parsed, err := ParseKindName(" RLZ ")
	assert.NoError(t, err)
	assert.Equal(t, RLZ, parsed)
	_, err = ParseKindName("cartesian")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "RL", RL.String())
}

func compactParams(xmin, xmax float64, numCells int) CS1D.AxisParameters {
	return CS1D.AxisParameters{
		Xmin: xmin, Xmax: xmax, NumCells: numCells, Lq: 1,
		BCL: CS1D.BC{Tag: CS1D.Homogeneous0},
		BCR: CS1D.BC{Tag: CS1D.Homogeneous0},
	}
}

func TestGridR(t *testing.T) {
	g, err := NewGridR(compactParams(0, 3, 6))
	assert.NoError(t, err)
	assert.Equal(t, 18, g.NumGridpoints())
	pts := g.Gridpoints()
	assert.Equal(t, 18, len(pts))
	assert.Equal(t, 1, len(pts[0]))
	field := make([]float64, g.NumGridpoints())
	for p, pt := range pts {
		field[p] = pt[0]*pt[0] - pt[0]
	}
	assert.NoError(t, g.SpectralTransform(field))
	back, err := g.GridTransform()
	assert.NoError(t, err)
	assert.True(t, nearVec(back, field, 1.e-8))
}

func TestGridRZ(t *testing.T) {
	// A product of quadratics passes both compact sweeps exactly
	g, err := NewGridRZ(compactParams(0, 2, 4), compactParams(-1, 1, 4))
	assert.NoError(t, err)
	var (
		nr = len(g.RadialAxis.MishPoints())
		nz = len(g.VerticalAxis.MishPoints())
	)
	assert.Equal(t, nr*nz, g.NumGridpoints())
	pts := g.Gridpoints()
	assert.Equal(t, 2, len(pts[0]))
	// Layout is radial-major
	assert.True(t, near(pts[0][0], pts[nz-1][0]))
	field := make([]float64, g.NumGridpoints())
	for p, pt := range pts {
		r, z := pt[0], pt[1]
		field[p] = (r*r - r + 1.) * (z*z + z + 2.)
	}
	assert.NoError(t, g.SpectralTransform(field))
	back, err := g.GridTransform()
	assert.NoError(t, err)
	assert.True(t, nearVec(back, field, 1.e-7))
}

func TestGridRL(t *testing.T) {
	// Uniform rings: a low azimuthal mode with quadratic radial
	// profiles survives the ring and radial sweeps
	g, err := NewGridRL(compactParams(0, 1, 4), 8, 0, false)
	assert.NoError(t, err)
	assert.Equal(t, 12, len(g.Rings))
	for _, n := range g.RingSizes() {
		assert.Equal(t, 8, n)
	}
	assert.Equal(t, 12*8, g.NumGridpoints())
	pts := g.Gridpoints()
	field := make([]float64, g.NumGridpoints())
	for p, pt := range pts {
		r, lam := pt[0], pt[1]
		field[p] = (1. + r*r) * (1. + 0.5*math.Cos(lam))
	}
	assert.NoError(t, g.SpectralTransform(field))
	back, err := g.GridTransform()
	assert.NoError(t, err)
	assert.True(t, nearVec(back, field, 1.e-7))
	// The mean mode carries the full azimuthal average
	assert.True(t, g.RadRe.Max() > 0.)
}

func TestGridRLScaling(t *testing.T) {
	g, err := NewGridRL(compactParams(0, 2, 6), 4, 0, true)
	assert.NoError(t, err)
	sizes := g.RingSizes()
	last := 0
	for i, n := range sizes {
		assert.True(t, n >= 4)
		assert.Equal(t, 0, n%2)
		if i > 0 {
			assert.True(t, n >= last)
		}
		last = n
	}
	// Outer rings resolve their longer circumference
	assert.True(t, sizes[len(sizes)-1] > sizes[0])
	// Identical ring resolutions share one spectral core
	assert.True(t, g.fcache.Len() <= len(sizes))
	// A field band-limited on every ring still round trips
	pts := g.Gridpoints()
	field := make([]float64, g.NumGridpoints())
	for p, pt := range pts {
		r, lam := pt[0], pt[1]
		field[p] = r + 0.3*math.Sin(lam)
	}
	assert.NoError(t, g.SpectralTransform(field))
	back, err := g.GridTransform()
	assert.NoError(t, err)
	assert.True(t, nearVec(back, field, 1.e-6))
}

func TestGridRLZ(t *testing.T) {
	g, err := NewGridRLZ(compactParams(0, 1, 2), compactParams(0, 1, 2), 4, 0, false)
	assert.NoError(t, err)
	var (
		nz = len(g.VerticalAxis.MishPoints())
	)
	assert.Equal(t, 6, len(g.Rings))
	assert.Equal(t, 6*nz*4, g.NumGridpoints())
	pts := g.Gridpoints()
	assert.Equal(t, 3, len(pts[0]))
	field := make([]float64, g.NumGridpoints())
	for p, pt := range pts {
		r, lam, z := pt[0], pt[1], pt[2]
		field[p] = (1. + r) * (1. + 0.5*z) * (1. + math.Cos(lam))
	}
	assert.NoError(t, g.SpectralTransform(field))
	back, err := g.GridTransform()
	assert.NoError(t, err)
	assert.True(t, nearVec(back, field, 1.e-6))
}

func TestGridpointsLayout(t *testing.T) {
	g, err := NewGridRLZ(compactParams(0, 1, 2), compactParams(2, 3, 2), 4, 0, false)
	assert.NoError(t, err)
	var (
		pts   = g.Gridpoints()
		radii = g.RadialAxis.MishPoints()
		zs    = g.VerticalAxis.MishPoints()
	)
	assert.Equal(t, g.NumGridpoints(), len(pts))
	for i, ring := range g.Rings {
		var (
			n    = ring.NumPoints
			lams = ring.MishPoints()
		)
		for m, z := range zs {
			for j := 0; j < n; j++ {
				pt := pts[g.offsets[i]+m*n+j]
				assert.Equal(t, radii[i], pt[0])
				assert.Equal(t, lams[j], pt[1])
				assert.Equal(t, z, pt[2])
			}
		}
	}
}

func TestNewGridDispatch(t *testing.T) {
	gp := GridParameters{
		Kind:               RL,
		Radial:             compactParams(0, 1, 4),
		MinAzimuthalPoints: 8,
	}
	g, err := NewGrid(gp)
	assert.NoError(t, err)
	assert.Equal(t, RL, g.Kind)
	assert.Equal(t, 96, g.NumGridpoints())
	_, err = NewGrid(GridParameters{Kind: Kind(9)})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGridErrors(t *testing.T) {
	// Rings need enough points and nonnegative radii
	_, err := NewGridRL(compactParams(0, 1, 4), 3, 0, false)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewGridRL(compactParams(-1, 1, 4), 8, 0, false)
	assert.ErrorIs(t, err, ErrConfiguration)
	// Axis construction failures pass through with their own taxonomy
	bad := compactParams(0, 1, 4)
	bad.BCL = CS1D.BC{Tag: CS1D.Robin1, Alpha: 0, Beta: 1}
	_, err = NewGridR(bad)
	assert.ErrorIs(t, err, CS1D.ErrConfiguration)
	// Field length and ordering misuse
	g, err := NewGridR(compactParams(0, 1, 4))
	assert.NoError(t, err)
	assert.ErrorIs(t, g.SpectralTransform(make([]float64, 5)), ErrConfiguration)
	_, err = g.GridTransform()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n",
				math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
