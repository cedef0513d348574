package grids

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// runAxis pushes one sample set through an engine's full forward
// pipeline, leaving its coefficients ready to read.
func runAxis(eng AxisEngine, u []float64) (err error) {
	if err = eng.SetSamples(u); err != nil {
		return
	}
	eng.ForwardTransform()
	return eng.SolveTransform()
}

// SpectralTransform consumes a flat field in gridpoint order and fills
// the grid's coefficient store through per-axis sweeps.
func (g *Grid) SpectralTransform(field []float64) (err error) {
	if len(field) != g.npts {
		return fmt.Errorf("%w: field length %d for %d gridpoints",
			ErrConfiguration, len(field), g.npts)
	}
	switch g.Kind {
	case R:
		err = runAxis(g.RadialAxis, field)
	case RZ:
		err = g.spectralRZ(field)
	case RL:
		err = g.spectralRL(field)
	case RLZ:
		err = g.spectralRLZ(field)
	}
	g.solved = err == nil
	return
}

// GridTransform reconstructs the flat field at the gridpoints from the
// coefficient store.
func (g *Grid) GridTransform() (field []float64, err error) {
	if !g.solved {
		err = fmt.Errorf("%w: no spectral transform has been run", ErrConfiguration)
		return
	}
	switch g.Kind {
	case R:
		field, err = g.RadialAxis.EvaluateMish(0)
	case RZ:
		field, err = g.gridRZ()
	case RL:
		field, err = g.gridRL()
	case RLZ:
		field, err = g.gridRLZ()
	}
	return
}

// spectralRZ sweeps radial transforms across vertical sample columns,
// then vertical transforms across the resulting radial nodes.
func (g *Grid) spectralRZ(field []float64) (err error) {
	var (
		rax, vax = g.RadialAxis, g.VerticalAxis
		nr, nz   = len(rax.MishPoints()), len(vax.MishPoints())
		stage    = utils.NewMatrix(rax.Mdim, nz)
		rcol     = make([]float64, nr)
		vrow     = make([]float64, nz)
	)
	for m := 0; m < nz; m++ {
		for i := 0; i < nr; i++ {
			rcol[i] = field[i*nz+m]
		}
		if err = runAxis(rax, rcol); err != nil {
			return
		}
		for mr := 0; mr < rax.Mdim; mr++ {
			stage.Set(mr, m, rax.A.DataP[mr])
		}
	}
	for mr := 0; mr < rax.Mdim; mr++ {
		for m := 0; m < nz; m++ {
			vrow[m] = stage.At(mr, m)
		}
		if err = runAxis(vax, vrow); err != nil {
			return
		}
		copy(g.AMat.DataP[mr*vax.Mdim:(mr+1)*vax.Mdim], vax.A.DataP)
	}
	return
}

func (g *Grid) gridRZ() (field []float64, err error) {
	var (
		rax, vax = g.RadialAxis, g.VerticalAxis
		nr, nz   = len(rax.MishPoints()), len(vax.MishPoints())
		stage    = utils.NewMatrix(rax.Mdim, nz)
		vvals    []float64
		rvals    []float64
	)
	field = make([]float64, g.npts)
	for mr := 0; mr < rax.Mdim; mr++ {
		copy(vax.A.DataP, g.AMat.DataP[mr*vax.Mdim:(mr+1)*vax.Mdim])
		if vvals, err = vax.EvaluateMish(0); err != nil {
			field = nil
			return
		}
		for m := 0; m < nz; m++ {
			stage.Set(mr, m, vvals[m])
		}
	}
	for m := 0; m < nz; m++ {
		for mr := 0; mr < rax.Mdim; mr++ {
			rax.A.DataP[mr] = stage.At(mr, m)
		}
		if rvals, err = rax.EvaluateMish(0); err != nil {
			field = nil
			return
		}
		for i := 0; i < nr; i++ {
			field[i*nz+m] = rvals[i]
		}
	}
	return
}

// spectralRL transforms each ring into azimuthal modes, then runs one
// radial transform per retained mode over the real and imaginary
// parts. Rings too coarse to carry a mode contribute zeros.
func (g *Grid) spectralRL(field []float64) (err error) {
	var (
		rax  = g.RadialAxis
		nr   = len(rax.MishPoints())
		gre  = utils.NewMatrix(g.maxMode+1, nr)
		gim  = utils.NewMatrix(g.maxMode+1, nr)
		prof = make([]float64, nr)
	)
	for i, ring := range g.Rings {
		n := ring.NumPoints
		if err = runAxis(ring, field[g.offsets[i]:g.offsets[i]+n]); err != nil {
			return
		}
		for k := 0; k <= n/2; k++ {
			gre.Set(k, i, real(ring.Gamma[k]))
			gim.Set(k, i, imag(ring.Gamma[k]))
		}
	}
	for k := 0; k <= g.maxMode; k++ {
		for i := 0; i < nr; i++ {
			prof[i] = gre.At(k, i)
		}
		if err = runAxis(rax, prof); err != nil {
			return
		}
		copy(g.RadRe.DataP[k*rax.Mdim:(k+1)*rax.Mdim], rax.A.DataP)
		for i := 0; i < nr; i++ {
			prof[i] = gim.At(k, i)
		}
		if err = runAxis(rax, prof); err != nil {
			return
		}
		copy(g.RadIm.DataP[k*rax.Mdim:(k+1)*rax.Mdim], rax.A.DataP)
	}
	return
}

func (g *Grid) gridRL() (field []float64, err error) {
	var (
		rax  = g.RadialAxis
		nr   = len(rax.MishPoints())
		rre  = utils.NewMatrix(g.maxMode+1, nr)
		rim  = utils.NewMatrix(g.maxMode+1, nr)
		vals []float64
	)
	for k := 0; k <= g.maxMode; k++ {
		copy(rax.A.DataP, g.RadRe.DataP[k*rax.Mdim:(k+1)*rax.Mdim])
		if vals, err = rax.EvaluateMish(0); err != nil {
			return
		}
		for i := 0; i < nr; i++ {
			rre.Set(k, i, vals[i])
		}
		copy(rax.A.DataP, g.RadIm.DataP[k*rax.Mdim:(k+1)*rax.Mdim])
		if vals, err = rax.EvaluateMish(0); err != nil {
			return
		}
		for i := 0; i < nr; i++ {
			rim.Set(k, i, vals[i])
		}
	}
	field = make([]float64, g.npts)
	for i, ring := range g.Rings {
		for k := 0; k <= ring.NumPoints/2; k++ {
			ring.Gamma[k] = complex(rre.At(k, i), rim.At(k, i))
		}
		if vals, err = ring.EvaluateMish(0); err != nil {
			field = nil
			return
		}
		copy(field[g.offsets[i]:g.offsets[i]+ring.NumPoints], vals)
	}
	return
}

// spectralRLZ layers the vertical sweep between the azimuthal and
// radial ones: modes per (ring, plane), vertical coefficients per
// (ring, mode), radial coefficients per (mode, vertical node).
func (g *Grid) spectralRLZ(field []float64) (err error) {
	var (
		rax, vax = g.RadialAxis, g.VerticalAxis
		nr, nz   = len(rax.MishPoints()), len(vax.MishPoints())
		spectra  = make([][][]complex128, nr)
		vre      = make([]float64, nz)
		vim      = make([]float64, nz)
		rprof    = make([]float64, nr)
	)
	for i, ring := range g.Rings {
		n := ring.NumPoints
		spectra[i] = make([][]complex128, nz)
		for m := 0; m < nz; m++ {
			seg := field[g.offsets[i]+m*n : g.offsets[i]+(m+1)*n]
			if err = runAxis(ring, seg); err != nil {
				return
			}
			spectra[i][m] = append([]complex128{}, ring.Gamma...)
		}
	}
	for k := 0; k <= g.maxMode; k++ {
		var (
			sre = utils.NewMatrix(nr, vax.Mdim)
			sim = utils.NewMatrix(nr, vax.Mdim)
		)
		for i, ring := range g.Rings {
			if k > ring.NumPoints/2 {
				continue
			}
			for m := 0; m < nz; m++ {
				c := spectra[i][m][k]
				vre[m], vim[m] = real(c), imag(c)
			}
			if err = runAxis(vax, vre); err != nil {
				return
			}
			copy(sre.DataP[i*vax.Mdim:(i+1)*vax.Mdim], vax.A.DataP)
			if err = runAxis(vax, vim); err != nil {
				return
			}
			copy(sim.DataP[i*vax.Mdim:(i+1)*vax.Mdim], vax.A.DataP)
		}
		for n := 0; n < vax.Mdim; n++ {
			for i := 0; i < nr; i++ {
				rprof[i] = sre.At(i, n)
			}
			if err = runAxis(rax, rprof); err != nil {
				return
			}
			for mr := 0; mr < rax.Mdim; mr++ {
				g.AzRe[k].Set(mr, n, rax.A.DataP[mr])
			}
			for i := 0; i < nr; i++ {
				rprof[i] = sim.At(i, n)
			}
			if err = runAxis(rax, rprof); err != nil {
				return
			}
			for mr := 0; mr < rax.Mdim; mr++ {
				g.AzIm[k].Set(mr, n, rax.A.DataP[mr])
			}
		}
	}
	return
}

func (g *Grid) gridRLZ() (field []float64, err error) {
	var (
		rax, vax = g.RadialAxis, g.VerticalAxis
		nr, nz   = len(rax.MishPoints()), len(vax.MishPoints())
		spectra  = make([][][]complex128, nr)
		vals     []float64
	)
	for i, ring := range g.Rings {
		spectra[i] = make([][]complex128, nz)
		for m := 0; m < nz; m++ {
			spectra[i][m] = make([]complex128, ring.NumPoints/2+1)
		}
	}
	for k := 0; k <= g.maxMode; k++ {
		var (
			sre = utils.NewMatrix(nr, vax.Mdim)
			sim = utils.NewMatrix(nr, vax.Mdim)
		)
		for n := 0; n < vax.Mdim; n++ {
			for mr := 0; mr < rax.Mdim; mr++ {
				rax.A.DataP[mr] = g.AzRe[k].At(mr, n)
			}
			if vals, err = rax.EvaluateMish(0); err != nil {
				return
			}
			for i := 0; i < nr; i++ {
				sre.Set(i, n, vals[i])
			}
			for mr := 0; mr < rax.Mdim; mr++ {
				rax.A.DataP[mr] = g.AzIm[k].At(mr, n)
			}
			if vals, err = rax.EvaluateMish(0); err != nil {
				return
			}
			for i := 0; i < nr; i++ {
				sim.Set(i, n, vals[i])
			}
		}
		for i, ring := range g.Rings {
			if k > ring.NumPoints/2 {
				continue
			}
			copy(vax.A.DataP, sre.DataP[i*vax.Mdim:(i+1)*vax.Mdim])
			var re, im []float64
			if re, err = vax.EvaluateMish(0); err != nil {
				return
			}
			copy(vax.A.DataP, sim.DataP[i*vax.Mdim:(i+1)*vax.Mdim])
			if im, err = vax.EvaluateMish(0); err != nil {
				return
			}
			for m := 0; m < nz; m++ {
				spectra[i][m][k] = complex(re[m], im[m])
			}
		}
	}
	field = make([]float64, g.npts)
	for i, ring := range g.Rings {
		n := ring.NumPoints
		for m := 0; m < nz; m++ {
			copy(ring.Gamma, spectra[i][m])
			if vals, err = ring.EvaluateMish(0); err != nil {
				field = nil
				return
			}
			copy(field[g.offsets[i]+m*n:g.offsets[i]+(m+1)*n], vals)
		}
	}
	return
}
