package CS1D

import (
	"fmt"
	"math"

	"github.com/notargets/gospectral/utils"
	"gonum.org/v1/gonum/mat"
)

// CompactOperator is the quadrature mass matrix plus third-derivative
// regularization, held in three forms: the dense open operator over
// all Mdim nodes, its sparse image for fast matvec in the background
// solve, and the boundary-folded operator with its Cholesky factor.
type CompactOperator struct {
	Mdim        int
	InteriorDim int
	Eps         float64
	MassReg     utils.Matrix // open operator, dense, bandwidth 3
	OpOpen      utils.CSR
	OpFold      utils.CSR
	chol        *mat.Cholesky // nil when InteriorDim == 0
}

// newCompactOperator assembles the open operator from the quadrature
// mish, folds it through bf, and factorizes the result. Factorization
// failure surfaces as ErrSingularOperator; with the folding built in
// this package the folded operator is SPD whenever eps > 0, so a
// failure here indicates a genuinely broken configuration.
func newCompactOperator(xmin, dx float64, numCells int, lq float64,
	mish, wq utils.Vector, bf *BoundaryFolding) (op *CompactOperator, err error) {
	var (
		mD  = numCells + 3
		odx = 1. / dx
	)
	op = &CompactOperator{
		Mdim:        mD,
		InteriorDim: bf.InteriorDim,
		Eps:         utils.POW(lq*dx/(2.*math.Pi), 6),
		MassReg:     utils.NewMatrix(mD, mD),
	}
	var (
		md     = op.MassReg.DataP
		b0, b3 [4]float64
	)
	for c := 0; c < numCells; c++ {
		for j := 0; j < 3; j++ {
			var (
				q    = 3*c + j
				x, w = mish.DataP[q], wq.DataP[q]
			)
			// Exactly four splines, nodes c-1..c+2, cover any interior
			// point of cell c.
			for n := 0; n < 4; n++ {
				delta := (x - (xmin + float64(c-1+n)*dx)) * odx
				b0[n] = basisWeight(delta, dx, 0)
				b3[n] = basisWeight(delta, dx, 3)
			}
			for n := 0; n < 4; n++ {
				i := c + n // node index c-1+n, shifted by one
				for nn := 0; nn < 4; nn++ {
					md[i*mD+c+nn] += w * (b0[n]*b0[nn] + op.Eps*b3[n]*b3[nn])
				}
			}
		}
	}
	op.MassReg.SetReadOnly("MassReg")
	op.OpOpen = scatterSparse(op.MassReg)

	if bf.InteriorDim == 0 {
		return
	}
	var (
		iD     = bf.InteriorDim
		folded = bf.F.Mul(op.MassReg).Mul(bf.F.Transpose())
		sym    = mat.NewSymDense(iD, nil)
	)
	for i := 0; i < iD; i++ {
		for j := i; j < iD; j++ {
			sym.SetSym(i, j, 0.5*(folded.At(i, j)+folded.At(j, i)))
		}
	}
	op.OpFold = scatterSparse(folded)
	op.chol = &mat.Cholesky{}
	if ok := op.chol.Factorize(sym); !ok {
		op = nil
		err = fmt.Errorf("%w: folded operator dimension %d failed Cholesky factorization",
			ErrSingularOperator, iD)
	}
	return
}

// scatterSparse copies the nonzero entries of a dense operator into
// compressed sparse row form.
func scatterSparse(a utils.Matrix) (c utils.CSR) {
	var (
		nr, nc = a.Dims()
		dok    = utils.NewDOK(nr, nc)
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if v := a.At(i, j); v != 0. {
				dok.Set(i, j, v)
			}
		}
	}
	c = dok.ToCSR()
	c.SetReadOnly("CompactOperator")
	return
}

// solveFolded solves the factored interior system for one right hand
// side. A zero-dimensional interior yields the empty solution.
func (op *CompactOperator) solveFolded(y []float64) (u []float64, err error) {
	u = make([]float64, op.InteriorDim)
	if op.InteriorDim == 0 {
		return
	}
	var (
		rhs = mat.NewVecDense(op.InteriorDim, y)
		sol = mat.NewVecDense(op.InteriorDim, u)
	)
	if err = op.chol.SolveVecTo(sol, rhs); err != nil {
		if _, ok := err.(mat.Condition); ok {
			// Ill conditioned but solved; definiteness was already
			// established at factorization time.
			err = nil
		} else {
			u = nil
			err = fmt.Errorf("%w: %v", ErrSingularOperator, err)
		}
	}
	return
}

// ConditionNumber reports the condition number of the folded operator
// recorded during factorization, or zero for an empty interior.
func (op *CompactOperator) ConditionNumber() float64 {
	if op.chol == nil {
		return 0.
	}
	return op.chol.Cond()
}
