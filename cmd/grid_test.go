package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/notargets/gospectral/CS1D"
	"github.com/notargets/gospectral/InputParameters"
	"github.com/notargets/gospectral/grids"
)

func TestGridInput(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Grid
GridKind: RL
Radial:
  Xmin: 0.
  Xmax: 2.
  NumCells: 12
  Lq: 1.
MinAzimuthalPoints: 16
AzimuthalLq: 1.
RingScaling: true
BCs:
  RadialLeft:
    Type: Homogeneous0
  RadialRight:
    Type: Robin1
    Alpha: 1.
    Beta: -0.5
`)
	var input InputParameters.GridInput
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.GridKind, "RL")
	assert.Equal(t, input.Radial.NumCells, 12)
	// Check the right radial edge Robin condition
	assert.Equal(t, input.BCs["RadialRight"].Alpha, 1.)
	assert.Equal(t, input.BCs["RadialRight"].Beta, -0.5)
	input.Print()

	var gp grids.GridParameters
	if gp, err = buildGridParameters(&input); err != nil {
		panic(err)
	}
	assert.Equal(t, gp.Kind, grids.RL)
	assert.Equal(t, gp.Radial.BCL.Tag, CS1D.Homogeneous0)
	assert.Equal(t, gp.Radial.BCR.Tag, CS1D.Robin1)
	assert.Equal(t, gp.MinAzimuthalPoints, 16)
}
