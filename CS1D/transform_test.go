package CS1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/utils"
)

func TestConstantRoundTrip(t *testing.T) {
	// Four cells on [0,4] with free ends must reproduce a constant to
	// near machine precision: the moments integrate the unit partition
	// and the regularization annihilates constants
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 4, NumCells: 4, Lq: 1,
		BCL: BC{Tag: Homogeneous0}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	ax.SetFunction(func(x float64) float64 { return 1. })
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform())
	u, err := ax.Evaluate([]float64{2.0}, 0)
	assert.NoError(t, err)
	assert.True(t, near(u[0], 1.0, 1.e-10))
	// Everywhere, including the domain ends, and flat to first order
	u, err = ax.Evaluate(utils.Linspace(0, 4, 17), 0)
	assert.NoError(t, err)
	assert.True(t, nearVec(u, utils.ConstArray(17, 1.), 1.e-9))
	du, err := ax.Evaluate(utils.Linspace(0, 4, 17), 1)
	assert.NoError(t, err)
	assert.True(t, nearVec(du, utils.ConstArray(17, 0.), 1.e-9))
}

func TestQuadraticExactness(t *testing.T) {
	// Quadratics lie in the spline space with zero third derivative,
	// so the fit is exact: the regularization term never sees them
	var (
		f  = func(x float64) float64 { return x*x - x + 0.5 }
		f1 = func(x float64) float64 { return 2.*x - 1. }
	)
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 2, NumCells: 8, Lq: 1,
		BCL: BC{Tag: Homogeneous0}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	ax.SetFunction(f)
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform())
	var (
		xcheck = utils.Linspace(0, 2, 41)
		want   = make([]float64, len(xcheck))
	)
	for i, x := range xcheck {
		want[i] = f(x)
	}
	u, err := ax.Evaluate(xcheck, 0)
	assert.NoError(t, err)
	assert.True(t, nearVec(u, want, 1.e-9))
	// First and second derivatives follow
	for i, x := range xcheck {
		want[i] = f1(x)
	}
	du, err := ax.Evaluate(xcheck, 1)
	assert.NoError(t, err)
	assert.True(t, nearVec(du, want, 1.e-7))
	d2u, err := ax.Evaluate(xcheck, 2)
	assert.NoError(t, err)
	assert.True(t, nearVec(d2u, utils.ConstArray(len(xcheck), 2.), 1.e-6))
	// Round trip through the mish itself
	um, err := ax.EvaluateMish(0)
	assert.NoError(t, err)
	assert.True(t, nearVec(um, ax.UMish.DataP, 1.e-9))
}

func TestRobinBoundaryRelations(t *testing.T) {
	// The folded solve ties edge coefficients to their neighbors in
	// the Robin ratio, whatever field was sampled
	var (
		f = func(x float64) float64 { return math.Sin(1.7*x) + 0.3*x*x }
	)
	// First order at both ends
	{
		var (
			alphaL, betaL = 2., 0.7
			alphaR, betaR = 1., -0.4
		)
		ax, err := NewAxis(AxisParameters{
			Xmin: 0, Xmax: 3, NumCells: 6, Lq: 1,
			BCL: BC{Tag: Robin1, Alpha: alphaL, Beta: betaL},
			BCR: BC{Tag: Robin1, Alpha: alphaR, Beta: betaR},
		})
		assert.NoError(t, err)
		ax.SetFunction(f)
		ax.ForwardTransform()
		assert.NoError(t, ax.SolveTransform())
		var (
			a  = ax.A.DataP
			mD = ax.Mdim
		)
		assert.True(t, near(alphaL*a[0]+betaL*a[1], 0., 1.e-10))
		assert.True(t, near(alphaR*a[mD-1]+betaR*a[mD-2], 0., 1.e-10))
	}
	// Second order chains two node pairs per end
	{
		var (
			alpha, beta = 1., 0.6
		)
		ax, err := NewAxis(AxisParameters{
			Xmin: 0, Xmax: 3, NumCells: 6, Lq: 1,
			BCL: BC{Tag: Robin2, Alpha: alpha, Beta: beta},
			BCR: BC{Tag: Homogeneous0},
		})
		assert.NoError(t, err)
		ax.SetFunction(f)
		ax.ForwardTransform()
		assert.NoError(t, ax.SolveTransform())
		a := ax.A.DataP
		assert.True(t, near(alpha*a[0]+beta*a[1], 0., 1.e-10))
		assert.True(t, near(alpha*a[1]+beta*a[2], 0., 1.e-10))
	}
}

func TestHomogeneous3Clamp(t *testing.T) {
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 2, NumCells: 6, Lq: 1,
		BCL: BC{Tag: Homogeneous3}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	ax.SetFunction(func(x float64) float64 { return math.Cos(x) })
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform())
	// The three left nodes clamp exactly, forcing value, slope and
	// curvature to vanish at the edge
	assert.Equal(t, 0., ax.A.DataP[0])
	assert.Equal(t, 0., ax.A.DataP[1])
	assert.Equal(t, 0., ax.A.DataP[2])
	for deriv := 0; deriv <= 2; deriv++ {
		u, err := ax.Evaluate([]float64{0.}, deriv)
		assert.NoError(t, err)
		assert.True(t, near(u[0], 0., 1.e-12))
	}
}

func TestPeriodicWrap(t *testing.T) {
	// Ten cells on a unit period carrying one sine wave: the wrap
	// identifications make the reconstruction seamless at the ends
	var (
		per = BC{Tag: Periodic}
		f   = func(x float64) float64 { return math.Sin(2. * math.Pi * x) }
	)
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 1, NumCells: 10, Lq: 1,
		BCL: per, BCR: per,
	})
	assert.NoError(t, err)
	ax.SetFunction(f)
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform())
	var (
		a = ax.A.DataP
		K = ax.NumCells
	)
	// Coefficient identifications are exact copies
	assert.Equal(t, a[0], a[K])
	assert.Equal(t, a[1], a[K+1])
	assert.Equal(t, a[2], a[K+2])
	// Value and slope agree across the seam
	for deriv := 0; deriv <= 1; deriv++ {
		lo, err := ax.Evaluate([]float64{0.}, deriv)
		assert.NoError(t, err)
		hi, err := ax.Evaluate([]float64{1.}, deriv)
		assert.NoError(t, err)
		assert.True(t, near(lo[0], hi[0], 1.e-12))
	}
	// The fit itself tracks the wave
	um, err := ax.EvaluateMish(0)
	assert.NoError(t, err)
	assert.True(t, nearVec(um, ax.UMish.DataP, 1.e-3))
}

func TestBackgroundSolve(t *testing.T) {
	// A linear background reproduces itself: cubic splines carry
	// linear fields exactly with coefficients sampled at the node
	// centers, and the deviation solve then has nothing to do even
	// though the field violates the clamped condition
	var (
		g = func(x float64) float64 { return 1. + 2.*x }
	)
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 3, NumCells: 6, Lq: 1,
		BCL: BC{Tag: Homogeneous3}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	ahat := make([]float64, ax.Mdim)
	for m := -1; m <= ax.NumCells+1; m++ {
		ahat[m+1] = g(ax.Xmin + float64(m)*ax.DX)
	}
	ax.SetFunction(g)
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform(ahat))
	assert.True(t, nearVec(ax.A.DataP, ahat, 1.e-10))
	u, err := ax.Evaluate([]float64{0., 1.5, 3.}, 0)
	assert.NoError(t, err)
	assert.True(t, nearVec(u, []float64{1., 4., 7.}, 1.e-9))
	// Without the background the clamp wins and the edge drops to zero
	assert.NoError(t, ax.SolveTransform())
	assert.Equal(t, 0., ax.A.DataP[0])
	u, err = ax.Evaluate([]float64{0.}, 0)
	assert.NoError(t, err)
	assert.True(t, near(u[0], 0., 1.e-12))
}

func TestTransformVariants(t *testing.T) {
	var (
		f = func(x float64) float64 { return math.Exp(-x * x) }
	)
	ax, err := NewAxis(AxisParameters{
		Xmin: -2, Xmax: 2, NumCells: 8, Lq: 1,
		BCL: BC{Tag: Homogeneous0}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	var (
		u = make([]float64, 3*ax.NumCells)
	)
	for q, x := range ax.MishPoints() {
		u[q] = f(x)
	}
	// Allocating and in-place paths produce identical results
	{
		assert.NoError(t, ax.SetSamples(u))
		ax.ForwardTransform()
		b, err := ax.BTransform(u)
		assert.NoError(t, err)
		assert.Equal(t, ax.B.DataP, b)
		assert.NoError(t, ax.SolveTransform())
		a, err := ax.ATransform(b)
		assert.NoError(t, err)
		assert.Equal(t, ax.A.DataP, a)
	}
	// Repeating the whole pipeline is bit-identical
	{
		first := append([]float64{}, ax.A.DataP...)
		assert.NoError(t, ax.SetSamples(u))
		ax.ForwardTransform()
		assert.NoError(t, ax.SolveTransform())
		assert.Equal(t, first, ax.A.DataP)
	}
	// Evaluate and EvaluateTo agree
	{
		pts := utils.Linspace(-2, 2, 9)
		u1, err := ax.Evaluate(pts, 1)
		assert.NoError(t, err)
		u2 := make([]float64, len(pts))
		assert.NoError(t, ax.EvaluateTo(u2, pts, 1))
		assert.Equal(t, u1, u2)
	}
}

func TestEvaluateAtomicity(t *testing.T) {
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 1, NumCells: 4, Lq: 1,
		BCL: BC{Tag: Homogeneous0}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	ax.SetFunction(func(x float64) float64 { return x })
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform())
	// One bad point fails the whole call and leaves the output alone
	var (
		sentinel = utils.ConstArray(3, -99.)
		out      = append([]float64{}, sentinel...)
	)
	err = ax.EvaluateTo(out, []float64{0.25, 1.5, 0.75}, 0)
	assert.ErrorIs(t, err, ErrOutOfDomain)
	assert.Equal(t, sentinel, out)
	_, err = ax.Evaluate([]float64{-0.001}, 0)
	assert.ErrorIs(t, err, ErrOutOfDomain)
}

func TestTransformErrors(t *testing.T) {
	ax, err := NewAxis(AxisParameters{
		Xmin: 0, Xmax: 1, NumCells: 4, Lq: 1,
		BCL: BC{Tag: Homogeneous0}, BCR: BC{Tag: Homogeneous0},
	})
	assert.NoError(t, err)
	assert.ErrorIs(t, ax.SetSamples(make([]float64, 5)), ErrConfiguration)
	_, err = ax.BTransform(make([]float64, 11))
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ax.ATransform(make([]float64, 3))
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, ax.SolveTransform(make([]float64, 2)), ErrConfiguration)
	_, err = ax.Evaluate([]float64{0.5}, 3)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, ax.EvaluateTo(make([]float64, 1), []float64{0.1, 0.2}, 0), ErrConfiguration)
}
