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
	"time"

	"github.com/notargets/gospectral/CS1D"
	"github.com/notargets/gospectral/utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// AxisCmd represents the axis command
var AxisCmd = &cobra.Command{
	Use:   "axis",
	Short: "Single axis compact spline transform round trip",
	Long: `
Builds one compact spline axis, samples a test function at the
quadrature mish, runs the forward / solve / evaluate transform cycle
and reports the reconstruction error,

gospectral axis `,
	Run: func(cmd *cobra.Command, args []string) {
		ma := &ModelAxis{}
		fmt.Println("axis called")
		fn, _ := cmd.Flags().GetInt("function")
		ma.Function = FuncType(fn)
		ma.K, _ = cmd.Flags().GetInt("k")
		ma.XMin, _ = cmd.Flags().GetFloat64("xMin")
		ma.XMax, _ = cmd.Flags().GetFloat64("xMax")
		ma.Lq, _ = cmd.Flags().GetFloat64("lq")
		ma.Deriv, _ = cmd.Flags().GetInt("deriv")
		ma.BCL, _ = cmd.Flags().GetString("bcl")
		ma.BCR, _ = cmd.Flags().GetString("bcr")
		ma.Alpha, _ = cmd.Flags().GetFloat64("alpha")
		ma.Beta, _ = cmd.Flags().GetFloat64("beta")
		ma.Graph, _ = cmd.Flags().GetBool("graph")
		ma.Profile, _ = cmd.Flags().GetBool("profile")
		dr, _ := cmd.Flags().GetInt("delay")
		ma.Delay = time.Duration(dr)
		RunAxis(ma)
	},
}

func init() {
	rootCmd.AddCommand(AxisCmd)
	AxisCmd.Flags().IntP("k", "k", 10, "Number of cells in the axis")
	AxisCmd.Flags().IntP("function", "m", int(FSine), "test function: 0 = Cubic, 1 = Sine, 2 = Gaussian")
	AxisCmd.Flags().IntP("deriv", "q", 0, "derivative order to evaluate: 0, 1 or 2")
	AxisCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	AxisCmd.Flags().Float64("xMin", 0., "Minimum axis coordinate")
	AxisCmd.Flags().Float64("xMax", 1., "Maximum axis coordinate")
	AxisCmd.Flags().Float64("lq", 0., "smoothing scale in cell widths, 0 disables regularization")
	AxisCmd.Flags().String("bcl", "Homogeneous0", "left boundary condition: Homogeneous0, Robin1, Robin2, Homogeneous3, Periodic")
	AxisCmd.Flags().String("bcr", "Homogeneous0", "right boundary condition")
	AxisCmd.Flags().Float64("alpha", 1., "Robin condition value coefficient")
	AxisCmd.Flags().Float64("beta", 0., "Robin condition derivative coefficient")
	AxisCmd.Flags().BoolP("graph", "g", false, "display a graph of the reconstruction")
	AxisCmd.Flags().Bool("profile", false, "write a CPU profile of the transform cycle")
}

type ModelAxis struct {
	K              int // Number of cells
	Delay          time.Duration
	Function       FuncType
	Deriv          int
	XMin, XMax, Lq float64
	BCL, BCR       string
	Alpha, Beta    float64
	Graph          bool
	Profile        bool
}

type FuncType uint8

const (
	FCubic FuncType = iota
	FSine
	FGaussian
)

// TestFunction returns the sampled function and its analytic
// derivative of the requested order over [xmin, xmax].
func TestFunction(fn FuncType, xmin, xmax float64, deriv int) (f func(x float64) float64) {
	var (
		period = xmax - xmin
		omega  = 2. * math.Pi / period
		center = 0.5 * (xmin + xmax)
		width  = 0.1 * period
	)
	switch fn {
	case FCubic:
		switch deriv {
		case 0:
			f = func(x float64) float64 { return x * x * x }
		case 1:
			f = func(x float64) float64 { return 3. * x * x }
		case 2:
			f = func(x float64) float64 { return 6. * x }
		}
	case FSine:
		switch deriv {
		case 0:
			f = func(x float64) float64 { return math.Sin(omega * (x - xmin)) }
		case 1:
			f = func(x float64) float64 { return omega * math.Cos(omega*(x-xmin)) }
		case 2:
			f = func(x float64) float64 { return -omega * omega * math.Sin(omega*(x-xmin)) }
		}
	case FGaussian:
		g := func(x float64) float64 {
			d := (x - center) / width
			return math.Exp(-0.5 * d * d)
		}
		switch deriv {
		case 0:
			f = g
		case 1:
			f = func(x float64) float64 { return -g(x) * (x - center) / (width * width) }
		case 2:
			f = func(x float64) float64 {
				d := (x - center) / width
				return g(x) * (d*d - 1.) / (width * width)
			}
		}
	}
	return
}

func RunAxis(ma *ModelAxis) {
	var (
		err      error
		bcl, bcr CS1D.BC
	)
	if bcl.Tag, err = CS1D.ParseBCName(ma.BCL); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	if bcr.Tag, err = CS1D.ParseBCName(ma.BCR); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	if bcl.Tag == CS1D.Robin1 || bcl.Tag == CS1D.Robin2 {
		bcl.Alpha, bcl.Beta = ma.Alpha, ma.Beta
	}
	if bcr.Tag == CS1D.Robin1 || bcr.Tag == CS1D.Robin2 {
		bcr.Alpha, bcr.Beta = ma.Alpha, ma.Beta
	}
	ap := CS1D.AxisParameters{
		Xmin: ma.XMin, Xmax: ma.XMax, NumCells: ma.K, Lq: ma.Lq,
		BCL: bcl, BCR: bcr,
	}
	fmt.Printf("axis: %s\n", ap)

	var ax *CS1D.Axis
	if ax, err = CS1D.NewAxis(ap); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	if ma.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ax.SetFunction(TestFunction(ma.Function, ma.XMin, ma.XMax, 0))
	start := time.Now()
	ax.ForwardTransform()
	if err = ax.SolveTransform(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	var (
		xOut   = utils.Linspace(ma.XMin, ma.XMax, 10*ma.K+1)
		uOut   []float64
		target = make([]float64, len(xOut))
	)
	if uOut, err = ax.Evaluate(xOut, ma.Deriv); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return
	}
	elapsed := time.Since(start)
	fAnalytic := TestFunction(ma.Function, ma.XMin, ma.XMax, ma.Deriv)
	for i, x := range xOut {
		target[i] = fAnalytic(x)
	}
	fmt.Printf("deriv %d: max error = %8.5e, rms error = %8.5e, elapsed = %v\n",
		ma.Deriv, utils.LInfNorm(uOut, target), utils.L2Norm(uOut, target), elapsed)
	fmt.Printf("operator condition number = %8.3e\n", ax.Op.ConditionNumber())
	if ma.Graph {
		plotAxis(ax, xOut, uOut, target, ma.Delay*time.Millisecond)
	}
}

func plotAxis(ax *CS1D.Axis, x, u, target []float64, delay time.Duration) {
	var (
		fmin, fmax = u[0], u[0]
	)
	for _, f := range u {
		fmin, fmax = math.Min(fmin, f), math.Max(fmax, f)
	}
	lc := utils.NewLineChart(1920, 1280, x[0], x[len(x)-1], fmin-0.1, fmax+0.1)
	lc.Plot(delay, x, target, -1, "analytic")
	lc.Plot(delay, x, u, 1, "reconstruction")
	mish := ax.MishPoints()
	lc.PlotGlyphs(mish, ax.UMish.DataP, 0.5, "mish samples")
	// Hold the window open until interrupted
	utils.SleepFor(1000 * 3600)
}
