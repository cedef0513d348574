/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/notargets/gospectral/CS1D"
	"github.com/notargets/gospectral/InputParameters"
	"github.com/notargets/gospectral/grids"
	"github.com/notargets/gospectral/utils"
	"github.com/spf13/cobra"
)

type ModelGrid struct {
	InputFile string
	Tiles     int
	Verbose   bool
}

// GridCmd represents the grid command
var GridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Composed grid transform driven by a YAML parameter file",
	Long: `
Builds an R, RZ, RL or RLZ grid from a YAML parameter file, samples a
smooth test field at every gridpoint, runs the spectral and grid
transforms and reports the round trip error,

gospectral grid -I grid.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("grid called")
		mg := &ModelGrid{}
		if mg.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		mg.Tiles, _ = cmd.Flags().GetInt("tiles")
		mg.Verbose, _ = cmd.Flags().GetBool("verbose")
		gi := processGridInput(mg)
		RunGrid(mg, gi)
	},
}

func processGridInput(mg *ModelGrid) (gi *InputParameters.GridInput) {
	var (
		err error
	)
	if len(mg.InputFile) == 0 {
		err = fmt.Errorf("must supply a grid parameters file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Test Grid"
GridKind: RL
Radial:
  Xmin: 0.
  Xmax: 1.
  NumCells: 10
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
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(mg.InputFile); err != nil {
		panic(err)
	}
	gi = &InputParameters.GridInput{}
	if err = gi.Parse(data); err != nil {
		panic(err)
	}
	return
}

// buildGridParameters translates the YAML input into typed grid
// parameters, resolving kind and boundary condition names once.
func buildGridParameters(gi *InputParameters.GridInput) (gp grids.GridParameters, err error) {
	if gp.Kind, err = grids.ParseKindName(gi.GridKind); err != nil {
		return
	}
	axis := func(ai InputParameters.AxisInput, leftKey, rightKey string) (ap CS1D.AxisParameters, err error) {
		ap = CS1D.AxisParameters{
			Xmin: ai.Xmin, Xmax: ai.Xmax, NumCells: ai.NumCells, Lq: ai.Lq,
		}
		if ap.BCL, err = resolveBC(gi.BCs[leftKey]); err != nil {
			return
		}
		ap.BCR, err = resolveBC(gi.BCs[rightKey])
		return
	}
	if gp.Radial, err = axis(gi.Radial, "RadialLeft", "RadialRight"); err != nil {
		return
	}
	if gp.Kind == grids.RZ || gp.Kind == grids.RLZ {
		if gp.Vertical, err = axis(gi.Vertical, "VerticalLeft", "VerticalRight"); err != nil {
			return
		}
	}
	gp.MinAzimuthalPoints = gi.MinAzimuthalPoints
	gp.AzimuthalLq = gi.AzimuthalLq
	gp.RingScaling = gi.RingScaling
	return
}

func resolveBC(bi InputParameters.BCInput) (bc CS1D.BC, err error) {
	if len(bi.Type) == 0 {
		// Unlisted edges float
		bc.Tag = CS1D.Homogeneous0
		return
	}
	if bc.Tag, err = CS1D.ParseBCName(bi.Type); err != nil {
		return
	}
	bc.Alpha, bc.Beta = bi.Alpha, bi.Beta
	return
}

func init() {
	rootCmd.AddCommand(GridCmd)
	GridCmd.Flags().StringP("inputFile", "I", "", "YAML file with grid kind, axis domains and boundary conditions")
	GridCmd.Flags().IntP("tiles", "t", 0, "additionally run the radial forward transform split across this many tiles")
	GridCmd.Flags().BoolP("verbose", "v", false, "print the parsed grid parameters")
}

func RunGrid(mg *ModelGrid, gi *InputParameters.GridInput) {
	var (
		err error
		gp  grids.GridParameters
		g   *grids.Grid
	)
	if mg.Verbose {
		gi.Print()
	}
	if gp, err = buildGridParameters(gi); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if g, err = grids.NewGrid(gp); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	pts := g.Gridpoints()
	fmt.Printf("grid kind %s with %d gridpoints\n", gp.Kind, g.NumGridpoints())

	// Smooth test field over all coordinates present
	field := make([]float64, len(pts))
	for i, p := range pts {
		field[i] = testField(gp, p)
	}
	if err = g.SpectralTransform(field); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	var back []float64
	if back, err = g.GridTransform(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("round trip: max error = %8.5e, rms error = %8.5e\n",
		utils.LInfNorm(back, field), utils.L2Norm(back, field))

	if mg.Tiles > 1 {
		runTiled(g, mg.Tiles)
	}
}

// testField is smooth in every coordinate and compatible with any
// boundary condition up to discretization error.
func testField(gp grids.GridParameters, p []float64) (f float64) {
	var (
		r     = p[0]
		rSpan = gp.Radial.Xmax - gp.Radial.Xmin
	)
	f = math.Exp(-2. * (r - gp.Radial.Xmin) / rSpan)
	switch gp.Kind {
	case grids.RZ:
		f *= zProfile(gp, p[1])
	case grids.RL:
		f *= 1. + 0.5*math.Cos(p[1])
	case grids.RLZ:
		f *= (1. + 0.5*math.Cos(p[1])) * zProfile(gp, p[2])
	}
	return
}

func zProfile(gp grids.GridParameters, z float64) float64 {
	zSpan := gp.Vertical.Xmax - gp.Vertical.Xmin
	return math.Cos(math.Pi * (z - gp.Vertical.Xmin) / zSpan)
}

// runTiled repeats the radial forward transform split across np tiles
// and checks it against the serial coefficients.
func runTiled(g *grids.Grid, np int) {
	var (
		err error
		ta  *grids.TiledAxis
		ax  = g.RadialAxis
	)
	if ta, err = grids.NewTiledAxis(ax, np); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	samples := make([]float64, len(ax.MishPoints()))
	for i, r := range ax.MishPoints() {
		samples[i] = math.Exp(-2. * (r - ax.Xmin) / (ax.Xmax - ax.Xmin))
	}
	if err = ax.SetSamples(samples); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	ax.ForwardTransform()
	if err = ax.SolveTransform(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	var aTiled []float64
	if aTiled, err = ta.Transform(samples); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	fmt.Printf("tiled radial transform over %d tiles: max deviation = %8.5e\n",
		np, utils.LInfNorm(aTiled, ax.A.DataP))
}
