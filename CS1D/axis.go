package CS1D

import (
	"fmt"
	"sync"

	"github.com/notargets/gospectral/utils"
)

/*
Package CS1D implements a single-axis compact cubic spline transform:
sampled values at quadrature points are integrated against the spline
basis, the banded mass plus regularization operator is solved under
boundary folding, and the resulting coefficients evaluate the fitted
function and its derivatives anywhere on the axis.
*/

// AxisParameters fully determines an axis discretization. The struct
// is comparable, which lets AxisCache key shared operator state on the
// parameter value itself.
type AxisParameters struct {
	Xmin, Xmax float64
	NumCells   int
	Lq         float64 // smoothing scale in cell widths, sets the regularization strength
	BCL, BCR   BC
}

func (ap AxisParameters) Validate() (err error) {
	switch {
	case ap.NumCells < 1:
		err = fmt.Errorf("%w: need at least one cell, have %d", ErrConfiguration, ap.NumCells)
	case ap.Xmax <= ap.Xmin:
		err = fmt.Errorf("%w: domain [%g,%g] is empty", ErrConfiguration, ap.Xmin, ap.Xmax)
	case ap.Lq < 0.:
		err = fmt.Errorf("%w: negative smoothing scale %g", ErrConfiguration, ap.Lq)
	}
	return
}

func (ap AxisParameters) String() string {
	return fmt.Sprintf("[%g,%g] cells=%d Lq=%g BCL=%s BCR=%s",
		ap.Xmin, ap.Xmax, ap.NumCells, ap.Lq, ap.BCL, ap.BCR)
}

// axisCore holds everything derivable from AxisParameters alone: the
// quadrature mish, the folding and the factored operator. Cores are
// immutable after construction and safe to share between axes.
type axisCore struct {
	AxisParameters
	DX, ODX float64
	Mdim    int
	Fold    *BoundaryFolding
	Op      *CompactOperator
	Mish    utils.Vector // quadrature point coordinates, 3 per cell
	WQ      utils.Vector // mass weights, cell width times Gauss weight
}

func newAxisCore(ap AxisParameters) (core *axisCore, err error) {
	if err = ap.Validate(); err != nil {
		return
	}
	core = &axisCore{AxisParameters: ap}
	core.DX = (ap.Xmax - ap.Xmin) / float64(ap.NumCells)
	core.ODX = 1. / core.DX
	core.Mdim = ap.NumCells + 3
	core.Mish, core.WQ = buildMish(ap.Xmin, core.DX, ap.NumCells)
	if core.Fold, err = NewBoundaryFolding(ap.BCL, ap.BCR, ap.NumCells); err != nil {
		core = nil
		return
	}
	if core.Op, err = newCompactOperator(ap.Xmin, core.DX, ap.NumCells, ap.Lq,
		core.Mish, core.WQ, core.Fold); err != nil {
		core = nil
		return
	}
	return
}

// Axis combines a shared immutable core with per-instance working
// state: the mish samples UMish, the integrated moments B and the
// spline coefficients A.
type Axis struct {
	*axisCore
	UMish utils.Vector
	B     utils.Vector
	A     utils.Vector
}

// NewAxis builds a standalone axis with its own core. Use an AxisCache
// when many axes share one discretization.
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
		UMish:    utils.NewVector(3 * core.NumCells),
		B:        utils.NewVector(core.Mdim),
		A:        utils.NewVector(core.Mdim),
	}
}

// AxisCache memoizes axis cores by parameter value. Repeated
// construction with identical parameters reuses the factored operator,
// which is the dominant setup cost, while every returned Axis still
// owns private sample and coefficient buffers.
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

// Len reports the number of distinct cores held.
func (ac *AxisCache) Len() int {
	ac.Lock()
	defer ac.Unlock()
	return len(ac.cores)
}
