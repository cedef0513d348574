package grids

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/CS1D"
)

func TestTiledAxisMatchesSerial(t *testing.T) {
	var (
		ap = compactParams(0, 2, 12)
	)
	ap.BCR = CS1D.BC{Tag: CS1D.Robin1, Alpha: 1, Beta: -0.5}
	ax, err := CS1D.NewAxis(ap)
	assert.NoError(t, err)
	samples := make([]float64, len(ax.MishPoints()))
	for q, x := range ax.MishPoints() {
		samples[q] = math.Exp(-x) * (1. + 0.3*math.Sin(3.*x))
	}
	assert.NoError(t, ax.SetSamples(samples))
	ax.ForwardTransform()
	assert.NoError(t, ax.SolveTransform())

	// Every tile count from serial-in-one-tile to one cell per tile
	for np := 1; np <= 12; np++ {
		ta, err := NewTiledAxis(ax, np)
		assert.NoError(t, err)
		aTiled, err := ta.Transform(samples)
		assert.NoError(t, err)
		assert.True(t, nearVec(aTiled, ax.A.DataP, 1.e-13),
			"tile count %d deviates from the serial solve", np)
	}
}

func TestTiledAxisCellRanges(t *testing.T) {
	ax, err := CS1D.NewAxis(compactParams(0, 1, 10))
	assert.NoError(t, err)
	ta, err := NewTiledAxis(ax, 4)
	assert.NoError(t, err)
	var covered int
	for tl := 0; tl < 4; tl++ {
		kmin, kmax := ta.TileCellRange(tl)
		assert.True(t, kmax > kmin)
		covered += kmax - kmin
	}
	assert.Equal(t, 10, covered)
}

func TestTiledAxisErrors(t *testing.T) {
	ax, err := CS1D.NewAxis(compactParams(0, 1, 4))
	assert.NoError(t, err)
	_, err = NewTiledAxis(ax, 0)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewTiledAxis(ax, 5) // more tiles than cells
	assert.ErrorIs(t, err, ErrConfiguration)
	ta, err := NewTiledAxis(ax, 2)
	assert.NoError(t, err)
	_, err = ta.Transform(make([]float64, 7))
	assert.ErrorIs(t, err, ErrConfiguration)
}
