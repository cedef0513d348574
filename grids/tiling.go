package grids

import (
	"fmt"
	"sync"

	"github.com/notargets/gospectral/CS1D"
	"github.com/notargets/gospectral/utils"
)

// haloPacket carries one cell's three mish samples to a tile whose
// halo covers that cell.
type haloPacket struct {
	cell int
	vals [3]float64
}

// TiledAxis runs the forward integration of one compact axis split
// across NP tiles by cell range. Tiles own disjoint moment entries and
// exchange two cells of halo samples per side, the reach of the spline
// support across a tile boundary, before integrating. The gathered
// moments then go through the shared factored operator once, so the
// tiled result matches the serial transform to machine precision.
type TiledAxis struct {
	Axis *CS1D.Axis
	NP   int
	pm   *utils.PartitionMap
}

func NewTiledAxis(ax *CS1D.Axis, np int) (ta *TiledAxis, err error) {
	if np < 1 || np > ax.NumCells {
		err = fmt.Errorf("%w: %d tiles for %d cells", ErrConfiguration, np, ax.NumCells)
		return
	}
	ta = &TiledAxis{Axis: ax, NP: np, pm: utils.NewPartitionMap(np, ax.NumCells)}
	return
}

// TileCellRange reports the half open cell range owned by tile t.
func (ta *TiledAxis) TileCellRange(t int) (kmin, kmax int) {
	return ta.pm.GetBucketRange(t)
}

// ownedMoments reports the half open moment index range tile t fills.
// Interior tiles take the nodes aligned with their cells; the first
// and last tiles absorb the edge nodes.
func (ta *TiledAxis) ownedMoments(t int) (lo, hi int) {
	kmin, kmax := ta.pm.GetBucketRange(t)
	lo, hi = kmin+1, kmax+1
	if t == 0 {
		lo = 0
	}
	if t == ta.NP-1 {
		hi = ta.Axis.Mdim
	}
	return
}

// Transform integrates the moments tile-parallel with halo exchange,
// then solves them against the shared operator.
func (ta *TiledAxis) Transform(samples []float64) (a []float64, err error) {
	var (
		ax = ta.Axis
		np = ta.NP
	)
	if len(samples) != 3*ax.NumCells {
		err = fmt.Errorf("%w: %d samples for %d mish points", ErrConfiguration,
			len(samples), 3*ax.NumCells)
		return
	}
	var (
		b     = make([]float64, ax.Mdim)
		mb    = utils.NewMailBox[haloPacket](np)
		local = make([][]float64, np)
		wg    sync.WaitGroup
	)
	// Each tile holds only its owned cells' samples, as a distributed
	// owner would
	for t := 0; t < np; t++ {
		kmin, kmax := ta.pm.GetBucketRange(t)
		local[t] = make([]float64, len(samples))
		copy(local[t][3*kmin:3*kmax], samples[3*kmin:3*kmax])
	}
	// Post boundary cells to every tile whose halo needs them
	wg.Add(np)
	for t := 0; t < np; t++ {
		go func(my int) {
			defer wg.Done()
			kmin, kmax := ta.pm.GetBucketRange(my)
			for other := 0; other < np; other++ {
				if other == my {
					continue
				}
				okmin, okmax := ta.pm.GetBucketRange(other)
				for _, rng := range [2][2]int{{okmin - 2, okmin}, {okmax, okmax + 2}} {
					for c := rng[0]; c < rng[1]; c++ {
						if c < kmin || c >= kmax {
							continue
						}
						pkt := haloPacket{cell: c}
						copy(pkt.vals[:], local[my][3*c:3*c+3])
						mb.PostMessage(my, other, pkt)
					}
				}
			}
			mb.DeliverMyMessages(my)
		}(t)
	}
	wg.Wait()
	// Receive halos, then integrate the owned moment entries
	wg.Add(np)
	for t := 0; t < np; t++ {
		go func(my int) {
			defer wg.Done()
			mb.ReceiveMyMessages(my)
			for _, pkt := range mb.ReceiveMsgQs[my].Cells() {
				copy(local[my][3*pkt.cell:3*pkt.cell+3], pkt.vals[:])
			}
			mb.ClearMyMessages(my)
			lo, hi := ta.ownedMoments(my)
			for i := lo; i < hi; i++ {
				b[i] = ta.nodeMoment(i, local[my])
			}
		}(t)
	}
	wg.Wait()
	return ax.ATransform(b)
}

// nodeMoment integrates one moment entry from the cells that see node
// i-1, visiting cells and quadrature points in the same order as the
// serial transform so the sums agree bit for bit.
func (ta *TiledAxis) nodeMoment(i int, u []float64) (bi float64) {
	var (
		ax = ta.Axis
		m  = i - 1
	)
	for c := m - 2; c <= m+1; c++ {
		if c < 0 || c >= ax.NumCells {
			continue
		}
		for j := 0; j < 3; j++ {
			var (
				q  = 3*c + j
				x  = ax.Mish.DataP[q]
				wu = ax.WQ.DataP[q] * u[q]
			)
			w, _ := ax.Basis(m, x, 0)
			bi += wu * w
		}
	}
	return
}
