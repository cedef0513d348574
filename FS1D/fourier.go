package FS1D

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/notargets/gospectral/utils"
)

/*
Package FS1D implements the Fourier counterpart of the compact spline
axis: samples on a uniform periodic grid transform through a real FFT
into evaluation-ready modes. It presents the same transform surface as
CS1D so composition layers can mix the two per axis.
*/

var (
	ErrConfiguration = errors.New("FS1D: invalid axis configuration")
)

// AxisParameters determines a periodic spectral axis. Lq plays the
// same role as on a compact axis: a smoothing scale in cell widths
// that damps the shortest resolvable modes, with zero disabling the
// damping entirely. The struct is comparable for cache keying.
type AxisParameters struct {
	Xmin, Xmax float64
	NumPoints  int
	Lq         float64
}

func (ap AxisParameters) Validate() (err error) {
	switch {
	case ap.NumPoints < 4:
		err = fmt.Errorf("%w: need at least four sample points, have %d", ErrConfiguration, ap.NumPoints)
	case ap.Xmax <= ap.Xmin:
		err = fmt.Errorf("%w: domain [%g,%g] is empty", ErrConfiguration, ap.Xmin, ap.Xmax)
	case ap.Lq < 0.:
		err = fmt.Errorf("%w: negative smoothing scale %g", ErrConfiguration, ap.Lq)
	}
	return
}

func (ap AxisParameters) String() string {
	return fmt.Sprintf("[%g,%g) points=%d Lq=%g periodic", ap.Xmin, ap.Xmax, ap.NumPoints, ap.Lq)
}

// axisCore holds the shared immutable tables: the sample grid at cell
// centers and the per-mode damping profile.
type axisCore struct {
	AxisParameters
	DX, Period float64
	Mish       utils.Vector
	damp       []float64
}

func newAxisCore(ap AxisParameters) (core *axisCore, err error) {
	if err = ap.Validate(); err != nil {
		return
	}
	core = &axisCore{AxisParameters: ap}
	core.Period = ap.Xmax - ap.Xmin
	core.DX = core.Period / float64(ap.NumPoints)
	core.Mish = utils.NewVector(ap.NumPoints)
	for j := 0; j < ap.NumPoints; j++ {
		core.Mish.DataP[j] = ap.Xmin + (float64(j)+0.5)*core.DX
	}
	core.damp = make([]float64, ap.NumPoints/2+1)
	for k := range core.damp {
		// Mirrors the compact regularization: eps*kappa^6 in mode
		// space reduces to (Lq*k/n)^6
		core.damp[k] = 1. / (1. + utils.POW(ap.Lq*float64(k)/float64(ap.NumPoints), 6))
	}
	return
}

// Axis owns per-instance state: mish samples, the raw half spectrum
// from the forward transform and the normalized modes Gamma used for
// evaluation. The FFT plan lives here rather than on the shared core
// because it carries scratch state.
type Axis struct {
	*axisCore
	fft    *fourier.FFT
	UMish  utils.Vector
	Coeffs []complex128
	Gamma  []complex128
}

func NewAxis(ap AxisParameters) (ax *Axis, err error) {
	var core *axisCore
	if core, err = newAxisCore(ap); err != nil {
		return
	}
	ax = newAxisOn(core)
	return
}

func newAxisOn(core *axisCore) *Axis {
	return &Axis{
		axisCore: core,
		fft:      fourier.NewFFT(core.NumPoints),
		UMish:    utils.NewVector(core.NumPoints),
		Coeffs:   make([]complex128, core.NumPoints/2+1),
		Gamma:    make([]complex128, core.NumPoints/2+1),
	}
}

// AxisCache memoizes cores by parameter value, mirroring the compact
// axis cache. Ring sweeps in the composition layer hit this hard with
// one parameter set per ring resolution.
type AxisCache struct {
	sync.Mutex
	cores map[AxisParameters]*axisCore
}

func NewAxisCache() *AxisCache {
	return &AxisCache{cores: make(map[AxisParameters]*axisCore)}
}

func (ac *AxisCache) NewAxis(ap AxisParameters) (ax *Axis, err error) {
	ac.Lock()
	defer ac.Unlock()
	core, ok := ac.cores[ap]
	if !ok {
		if core, err = newAxisCore(ap); err != nil {
			return
		}
		ac.cores[ap] = core
	}
	ax = newAxisOn(core)
	return
}

func (ac *AxisCache) Len() int {
	ac.Lock()
	defer ac.Unlock()
	return len(ac.cores)
}

// MishPoints returns the sample grid coordinates, one per cell center.
// The slice is shared with the axis core; treat it as read only.
func (ax *Axis) MishPoints() []float64 {
	return ax.Mish.DataP
}

// SetSamples loads sampled function values, one per grid point.
func (ax *Axis) SetSamples(u []float64) (err error) {
	if len(u) != ax.NumPoints {
		return fmt.Errorf("%w: %d samples for %d grid points", ErrConfiguration,
			len(u), ax.NumPoints)
	}
	copy(ax.UMish.DataP, u)
	return
}

// SetFunction samples f at the grid points.
func (ax *Axis) SetFunction(f func(x float64) float64) {
	for j, x := range ax.Mish.DataP {
		ax.UMish.DataP[j] = f(x)
	}
}

// ForwardTransform computes the raw half spectrum of the samples.
func (ax *Axis) ForwardTransform() {
	ax.fft.Coefficients(ax.Coeffs, ax.UMish.DataP)
}

// SolveTransform normalizes the spectrum into evaluation-ready modes:
// scale by the point count, rotate out the half-cell grid offset and
// apply the smoothing profile. Background fields belong to compact
// axes and are rejected here.
func (ax *Axis) SolveTransform(backgroundO ...[]float64) (err error) {
	if len(backgroundO) != 0 && backgroundO[0] != nil {
		return fmt.Errorf("%w: background fields apply to compact axes only", ErrConfiguration)
	}
	var (
		n  = float64(ax.NumPoints)
		on = 1. / n
	)
	for k := range ax.Gamma {
		phase := cmplx.Exp(complex(0, -math.Pi*float64(k)/n))
		ax.Gamma[k] = ax.Coeffs[k] * phase * complex(on*ax.damp[k], 0)
	}
	return
}

// Evaluate reconstructs the fitted field, or its deriv'th derivative
// for deriv in [0,2], at each point. Points wrap into the period, so
// there is no out of domain failure on a spectral axis.
func (ax *Axis) Evaluate(points []float64, deriv int) (u []float64, err error) {
	u = make([]float64, len(points))
	if err = ax.EvaluateTo(u, points, deriv); err != nil {
		u = nil
	}
	return
}

// EvaluateTo is the in-place variant of Evaluate.
func (ax *Axis) EvaluateTo(out, points []float64, deriv int) (err error) {
	if deriv < 0 || deriv > 2 {
		return fmt.Errorf("%w: evaluation derivative order %d outside [0,2]",
			ErrConfiguration, deriv)
	}
	if len(out) != len(points) {
		return fmt.Errorf("%w: output length %d for %d points", ErrConfiguration,
			len(out), len(points))
	}
	var (
		n    = ax.NumPoints
		kmax = n / 2
	)
	for p, x := range points {
		xw := math.Mod(x-ax.Xmin, ax.Period)
		if xw < 0. {
			xw += ax.Period
		}
		var sum float64
		for k := 0; k <= kmax; k++ {
			g := ax.Gamma[k]
			if g == 0 {
				continue
			}
			kappa := 2. * math.Pi * float64(k) / ax.Period
			for d := 0; d < deriv; d++ {
				g *= complex(0, kappa)
			}
			term := real(g * cmplx.Exp(complex(0, kappa*xw)))
			if k == 0 || (n%2 == 0 && k == kmax) {
				// Mean and Nyquist modes appear once in the real
				// spectrum; all others carry their conjugate partner
				sum += term
			} else {
				sum += 2. * term
			}
		}
		out[p] = sum
	}
	return
}

// EvaluateMish reconstructs at the sample grid itself.
func (ax *Axis) EvaluateMish(deriv int) ([]float64, error) {
	return ax.Evaluate(ax.Mish.DataP, deriv)
}

// FilterMish applies the smoothing profile in mode space and inverts
// straight back to the sample grid. Grid to grid this needs no phase
// correction, just the inverse transform's 1/n normalization.
func (ax *Axis) FilterMish() (u []float64) {
	var (
		n       = float64(ax.NumPoints)
		scratch = make([]complex128, len(ax.Coeffs))
	)
	for k, c := range ax.Coeffs {
		scratch[k] = c * complex(ax.damp[k], 0)
	}
	u = ax.fft.Sequence(nil, scratch)
	for j := range u {
		u[j] /= n
	}
	return
}
