package CS1D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisParametersValidate(t *testing.T) {
	var (
		h0   = BC{Tag: Homogeneous0}
		good = AxisParameters{Xmin: 0, Xmax: 1, NumCells: 4, Lq: 1, BCL: h0, BCR: h0}
	)
	assert.NoError(t, good.Validate())

	bad := good
	bad.NumCells = 0
	assert.ErrorIs(t, bad.Validate(), ErrConfiguration)

	bad = good
	bad.Xmax = bad.Xmin
	assert.ErrorIs(t, bad.Validate(), ErrConfiguration)

	bad = good
	bad.Lq = -1
	assert.ErrorIs(t, bad.Validate(), ErrConfiguration)

	_, err := NewAxis(AxisParameters{Xmin: 0, Xmax: 1, NumCells: 3, Lq: 1,
		BCL: BC{Tag: Robin1, Alpha: 0, Beta: 1}, BCR: h0})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAxisCache(t *testing.T) {
	var (
		h0 = BC{Tag: Homogeneous0}
		ap = AxisParameters{Xmin: 0, Xmax: 2, NumCells: 6, Lq: 1, BCL: h0, BCR: h0}
	)
	ac := NewAxisCache()
	ax1, err := ac.NewAxis(ap)
	assert.NoError(t, err)
	ax2, err := ac.NewAxis(ap)
	assert.NoError(t, err)
	assert.Equal(t, 1, ac.Len())
	// Identical parameters share one factored core
	assert.Same(t, ax1.axisCore, ax2.axisCore)
	assert.Same(t, ax1.Op, ax2.Op)
	// While sample and coefficient state stays private
	ax1.SetFunction(func(x float64) float64 { return x })
	ax1.ForwardTransform()
	assert.NoError(t, ax1.SolveTransform())
	assert.Equal(t, 0., ax2.UMish.DataP[0])
	assert.Equal(t, 0., ax2.A.DataP[3])
	// A different discretization builds a second core
	ap2 := ap
	ap2.NumCells = 7
	_, err = ac.NewAxis(ap2)
	assert.NoError(t, err)
	assert.Equal(t, 2, ac.Len())
	// Construction failures are not cached
	apBad := ap
	apBad.BCL = BC{Tag: Robin1}
	_, err = ac.NewAxis(apBad)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, 2, ac.Len())
}
