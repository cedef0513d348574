package CS1D

import (
	"fmt"
	"math"

	"github.com/notargets/gospectral/utils"
)

/*
Cubic compact spline basis on a uniform grid.

Node m sits at Xmin + m*DX for m in [-1, NumCells+1], so NumCells+3
nodes cover the axis. Each node's spline is nonzero only within two
cell widths of its center, which keeps every operator in this package
banded with half-bandwidth 3.
*/

var (
	// 3 point Gauss-Legendre rule on a unit cell, offsets measured in
	// cell widths from the cell midpoint.
	gaussOffsets = [3]float64{-math.Sqrt(0.6) / 2., 0., math.Sqrt(0.6) / 2.}
	gaussWeights = [3]float64{5. / 18., 8. / 18., 5. / 18.}
)

// basisWeight evaluates the cubic spline, or its deriv'th derivative,
// at a signed offset of delta cell widths from the node center. The
// third derivative of a cubic spline is piecewise constant; the steps
// returned here are what make the regularization term annihilate
// constants, so they must not be smoothed.
func basisWeight(delta, dx float64, deriv int) (w float64) {
	var (
		z    = math.Abs(delta)
		sign = 1.
	)
	if z >= 2. {
		return
	}
	if delta < 0. {
		sign = -1.
	}
	switch deriv {
	case 0:
		if z < 1. {
			w = 2./3. - z*z + z*z*z/2.
		} else {
			w = (2. - z) * (2. - z) * (2. - z) / 6.
		}
	case 1:
		if z < 1. {
			w = 3. * sign * (z*z/2. - 2.*z/3.) / dx
		} else {
			w = -3. * sign * (2. - z) * (2. - z) / 6. / dx
		}
	case 2:
		if z < 1. {
			w = (3.*z - 2.) / (dx * dx)
		} else {
			w = (2. - z) / (dx * dx)
		}
	case 3:
		if z < 1. {
			w = 3. * sign / (dx * dx * dx)
		} else {
			w = -sign / (dx * dx * dx)
		}
	}
	return
}

// nodeCenter returns the axis coordinate of spline node m.
func (ax *Axis) nodeCenter(m int) float64 {
	return ax.Xmin + float64(m)*ax.DX
}

// nodeWindow returns the first of the at most four consecutive nodes
// whose splines can be nonzero at x, clipped to the valid node range.
func (ax *Axis) nodeWindow(x float64) (mlow, mhigh int) {
	mlow = int(math.Ceil((x-ax.Xmin)*ax.ODX)) - 2
	if mlow < -1 {
		mlow = -1
	}
	mhigh = mlow + 3
	if mhigh > ax.NumCells+1 {
		mhigh = ax.NumCells + 1
	}
	return
}

// Basis evaluates the spline anchored at node m, or its deriv'th
// derivative for deriv in [0,3], at the point x.
func (ax *Axis) Basis(m int, x float64, deriv int) (w float64, err error) {
	if m < -1 || m > ax.NumCells+1 {
		err = fmt.Errorf("%w: basis node %d outside [-1,%d]", ErrConfiguration, m, ax.NumCells+1)
		return
	}
	if deriv < 0 || deriv > 3 {
		err = fmt.Errorf("%w: basis derivative order %d outside [0,3]", ErrConfiguration, deriv)
		return
	}
	if x < ax.Xmin || x > ax.Xmax {
		err = fmt.Errorf("%w: x = %g not in [%g,%g]", ErrOutOfDomain, x, ax.Xmin, ax.Xmax)
		return
	}
	w = basisWeight((x-ax.nodeCenter(m))*ax.ODX, ax.DX, deriv)
	return
}

// buildMish lays out the 3 Gauss points per cell and their mass
// weights, the quadrature weight scaled by the cell width. The offsets
// never land on a knot, so the sign convention inside basisWeight is
// never exercised at a discontinuity of the third derivative.
func buildMish(xmin, dx float64, numCells int) (mish, wq utils.Vector) {
	var (
		nq = 3 * numCells
	)
	mish, wq = utils.NewVector(nq), utils.NewVector(nq)
	for c := 0; c < numCells; c++ {
		xc := xmin + (float64(c)+0.5)*dx
		for j := 0; j < 3; j++ {
			mish.DataP[3*c+j] = xc + gaussOffsets[j]*dx
			wq.DataP[3*c+j] = dx * gaussWeights[j]
		}
	}
	return
}
