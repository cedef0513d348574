package CS1D

import (
	"fmt"
)

// MishPoints returns the axis coordinates of the quadrature points.
// The slice is shared with the axis core; treat it as read only.
func (ax *Axis) MishPoints() []float64 {
	return ax.Mish.DataP
}

// SetSamples loads sampled function values, one per mish point.
func (ax *Axis) SetSamples(u []float64) (err error) {
	if len(u) != 3*ax.NumCells {
		return fmt.Errorf("%w: %d samples for %d mish points", ErrConfiguration,
			len(u), 3*ax.NumCells)
	}
	copy(ax.UMish.DataP, u)
	return
}

// SetFunction samples f at the mish points.
func (ax *Axis) SetFunction(f func(x float64) float64) {
	for q, x := range ax.Mish.DataP {
		ax.UMish.DataP[q] = f(x)
	}
}

// ForwardTransform integrates the mish samples against the spline
// basis, filling B with one moment per node. No folding is applied
// here; moments live in the open node space.
func (ax *Axis) ForwardTransform() {
	ax.forwardInto(ax.B.DataP, ax.UMish.DataP)
}

// BTransform is the allocating variant of ForwardTransform for
// externally held samples.
func (ax *Axis) BTransform(u []float64) (b []float64, err error) {
	if len(u) != 3*ax.NumCells {
		err = fmt.Errorf("%w: %d samples for %d mish points", ErrConfiguration,
			len(u), 3*ax.NumCells)
		return
	}
	b = make([]float64, ax.Mdim)
	ax.forwardInto(b, u)
	return
}

func (ax *Axis) forwardInto(b, u []float64) {
	for i := range b {
		b[i] = 0.
	}
	for c := 0; c < ax.NumCells; c++ {
		for j := 0; j < 3; j++ {
			var (
				q  = 3*c + j
				x  = ax.Mish.DataP[q]
				wu = ax.WQ.DataP[q] * u[q]
			)
			// Only the four splines at nodes c-1..c+2 see this cell;
			// node m lands at moment slot m+1.
			for n := 0; n < 4; n++ {
				delta := (x - ax.nodeCenter(c-1+n)) * ax.ODX
				b[c+n] += wu * basisWeight(delta, ax.DX, 0)
			}
		}
	}
}

// SolveTransform folds the moments in B, solves the factored interior
// system and unfolds the result into the coefficient vector A. An
// optional background coefficient vector ahat of length Mdim shifts
// the solve: the system is applied to B minus the open operator acting
// on ahat, and ahat is added back to the unfolded solution, so the
// boundary conditions constrain only the deviation from the
// background. A is written only on success.
func (ax *Axis) SolveTransform(backgroundO ...[]float64) (err error) {
	var a []float64
	if a, err = ax.solveFrom(ax.B.DataP, backgroundO...); err != nil {
		return
	}
	copy(ax.A.DataP, a)
	return
}

// ATransform is the allocating variant of SolveTransform for
// externally held moments.
func (ax *Axis) ATransform(b []float64, backgroundO ...[]float64) (a []float64, err error) {
	if len(b) != ax.Mdim {
		err = fmt.Errorf("%w: %d moments for %d nodes", ErrConfiguration, len(b), ax.Mdim)
		return
	}
	return ax.solveFrom(b, backgroundO...)
}

func (ax *Axis) solveFrom(b []float64, backgroundO ...[]float64) (a []float64, err error) {
	var (
		rhs  = b
		ahat []float64
	)
	if len(backgroundO) != 0 && backgroundO[0] != nil {
		ahat = backgroundO[0]
		if len(ahat) != ax.Mdim {
			err = fmt.Errorf("%w: background length %d, need %d", ErrConfiguration,
				len(ahat), ax.Mdim)
			return
		}
		rhs = make([]float64, ax.Mdim)
		ax.Op.OpOpen.MulVec(ahat, rhs)
		for i := range rhs {
			rhs[i] = b[i] - rhs[i]
		}
	}
	var u []float64
	if u, err = ax.Op.solveFolded(ax.Fold.Fold(rhs)); err != nil {
		return
	}
	a = ax.Fold.Unfold(u)
	if ahat != nil {
		for i := range a {
			a[i] += ahat[i]
		}
	}
	return
}

// Evaluate reconstructs the fitted function, or its deriv'th
// derivative for deriv in [0,2], at each point.
func (ax *Axis) Evaluate(points []float64, deriv int) (u []float64, err error) {
	u = make([]float64, len(points))
	if err = ax.EvaluateTo(u, points, deriv); err != nil {
		u = nil
	}
	return
}

// EvaluateTo is the in-place variant of Evaluate. Every point is
// validated before any output is written, so a failed call leaves out
// untouched.
func (ax *Axis) EvaluateTo(out, points []float64, deriv int) (err error) {
	if deriv < 0 || deriv > 2 {
		return fmt.Errorf("%w: evaluation derivative order %d outside [0,2]",
			ErrConfiguration, deriv)
	}
	if len(out) != len(points) {
		return fmt.Errorf("%w: output length %d for %d points", ErrConfiguration,
			len(out), len(points))
	}
	for _, x := range points {
		if x < ax.Xmin || x > ax.Xmax {
			return fmt.Errorf("%w: x = %g not in [%g,%g]", ErrOutOfDomain,
				x, ax.Xmin, ax.Xmax)
		}
	}
	for p, x := range points {
		var (
			sum         float64
			mlow, mhigh = ax.nodeWindow(x)
		)
		for m := mlow; m <= mhigh; m++ {
			if c := ax.A.DataP[m+1]; c != 0. {
				sum += c * basisWeight((x-ax.nodeCenter(m))*ax.ODX, ax.DX, deriv)
			}
		}
		out[p] = sum
	}
	return
}

// EvaluateMish reconstructs at the quadrature points themselves,
// closing the round trip with ForwardTransform and SolveTransform.
func (ax *Axis) EvaluateMish(deriv int) ([]float64, error) {
	return ax.Evaluate(ax.Mish.DataP, deriv)
}
