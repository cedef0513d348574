package CS1D

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

/*
Boundary folding.

Each end's condition claims rank() spline nodes. Folding maps the open
node space, dimension Mdim = NumCells+3, onto the interior space that
survives after the claimed nodes are eliminated. The matrix F has one
row per interior unknown: an identity block over the unclaimed nodes,
plus extra entries that express each claimed edge node in terms of an
interior one.

F always has full row rank because the extra entries only ever touch
the claimed edge columns, never the identity block's columns. The
folded operator F*Op*Ft therefore inherits positive definiteness from
the open operator.
*/

// BoundaryFolding carries the folding matrix for one axis along with
// the dimensions it was built from. InteriorDim may legitimately reach
// zero when the two conditions claim every node; F is then empty and
// the axis solve returns all-zero coefficients.
type BoundaryFolding struct {
	NumCells     int
	Mdim         int
	RankL, RankR int
	InteriorDim  int
	F            utils.Matrix // InteriorDim x Mdim
}

// NewBoundaryFolding validates the condition pair against the cell
// count and assembles F.
func NewBoundaryFolding(bcl, bcr BC, numCells int) (bf *BoundaryFolding, err error) {
	if err = bcl.validate(); err != nil {
		return
	}
	if err = bcr.validate(); err != nil {
		return
	}
	if (bcl.Tag == Periodic) != (bcr.Tag == Periodic) {
		err = fmt.Errorf("%w: periodic requires the tag at both ends, have %s / %s",
			ErrConfiguration, bcl.Tag, bcr.Tag)
		return
	}
	bf = &BoundaryFolding{
		NumCells: numCells,
		Mdim:     numCells + 3,
		RankL:    bcl.rank(false),
		RankR:    bcr.rank(true),
	}
	if bf.RankL+bf.RankR > bf.Mdim {
		err = fmt.Errorf("%w: conditions claim %d nodes but only %d exist (%s / %s, %d cells)",
			ErrConfiguration, bf.RankL+bf.RankR, bf.Mdim, bcl.Tag, bcr.Tag, numCells)
		bf = nil
		return
	}
	bf.InteriorDim = bf.Mdim - bf.RankL - bf.RankR
	if bf.InteriorDim == 0 {
		return
	}
	var (
		iD, mD = bf.InteriorDim, bf.Mdim
	)
	bf.F = utils.NewMatrix(iD, mD)
	for i := 0; i < iD; i++ {
		bf.F.Set(i, bf.RankL+i, 1.)
	}
	switch bcl.Tag {
	case Robin1:
		bf.F.Set(0, 0, -bcl.Beta/bcl.Alpha)
	case Robin2:
		ratio := bcl.Beta / bcl.Alpha
		bf.F.Set(0, 0, ratio*ratio)
		bf.F.Set(0, 1, -ratio)
	case Periodic:
		// Left edge node wraps to the last interior unknown.
		bf.F.Set(iD-1, 0, 1.)
	}
	switch bcr.Tag {
	case Robin1:
		bf.F.Set(iD-1, mD-1, -bcr.Beta/bcr.Alpha)
	case Robin2:
		ratio := bcr.Beta / bcr.Alpha
		bf.F.Set(iD-1, mD-2, -ratio)
		bf.F.Set(iD-1, mD-1, ratio*ratio)
	case Periodic:
		// Right edge nodes wrap to the first interior unknowns. The
		// modulus only matters for a single-cell axis, where the two
		// wraps land on the same row.
		bf.F.Set(0%iD, mD-2, 1.)
		bf.F.Set(1%iD, mD-1, 1.)
	}
	bf.F.SetReadOnly("BoundaryFolding")
	return
}

// Fold maps an open-space vector of length Mdim into the interior
// space, y = F*b.
func (bf *BoundaryFolding) Fold(b []float64) (y []float64) {
	if len(b) != bf.Mdim {
		panic(fmt.Errorf("fold input length %d, need %d", len(b), bf.Mdim))
	}
	y = make([]float64, bf.InteriorDim)
	var (
		fd = bf.F.DataP
	)
	for i := 0; i < bf.InteriorDim; i++ {
		var sum float64
		for j := 0; j < bf.Mdim; j++ {
			if v := fd[i*bf.Mdim+j]; v != 0. {
				sum += v * b[j]
			}
		}
		y[i] = sum
	}
	return
}

// Unfold maps an interior-space vector back to the open node space,
// a = Ft*y, reinstating the claimed edge nodes.
func (bf *BoundaryFolding) Unfold(y []float64) (a []float64) {
	if len(y) != bf.InteriorDim {
		panic(fmt.Errorf("unfold input length %d, need %d", len(y), bf.InteriorDim))
	}
	a = make([]float64, bf.Mdim)
	var (
		fd = bf.F.DataP
	)
	for i := 0; i < bf.InteriorDim; i++ {
		if yi := y[i]; yi != 0. {
			for j := 0; j < bf.Mdim; j++ {
				if v := fd[i*bf.Mdim+j]; v != 0. {
					a[j] += v * yi
				}
			}
		}
	}
	return
}
