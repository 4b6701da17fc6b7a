package aeff

import (
	"context"

	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/mat"
)

// CountEvents bins the records of src into a (zd, energy) count matrix of
// shape (len(zdEdges)-1, len(eEdges)-1).  Row j counts events with zenith
// distance in [zdEdges[j], zdEdges[j+1]), column i events with energy in
// [eEdges[i], eEdges[i+1]), the energy taken per mode.  Records for which
// sel returns false are skipped; a nil sel keeps everything.  Out-of-range
// records land in the grid's under/overflow bins and are excluded from the
// matrix: matrix index i reads grid bin i+1, grid bin 0 being underflow.
func CountEvents(ctx context.Context, eEdges, zdEdges BinEdges, src EventSource, mode EnergyMode, sel func(Event) bool) (*mat.Dense, error) {
	if err := eEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "energy axis")
	}
	if err := zdEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "zenith axis")
	}

	grid := NewGrid(eEdges, zdEdges)
	err := src.Scan(ctx, func(ev Event) error {
		if sel != nil && !sel(ev) {
			return nil
		}
		grid.Fill(mode.energy(ev), ev.Zd, 1)
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, "event scan failed")
	}

	return countMatrix(grid), nil
}

// countMatrix extracts the in-range bins of a filled grid, skipping the
// underflow bin on each axis via the +1 index offset.
func countMatrix(grid Grid2D) *mat.Dense {
	ne, nzd := grid.Dims()
	m := mat.NewDense(nzd, ne, nil)
	for j := 0; j < nzd; j++ {
		for i := 0; i < ne; i++ {
			m.Set(j, i, grid.BinContent(i+1, j+1))
		}
	}
	return m
}
