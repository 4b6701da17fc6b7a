package aeff

import (
	"context"
	"runtime"
	"strconv"

	"go-hep.org/x/hep/hbook"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RunSummary is the per-run bookkeeping needed to attribute observation
// time to a zenith bin.
type RunSummary struct {
	Zd     float64 // mean pointing zenith distance of the run, degrees
	OnTime float64 // effective on-time of the run, seconds
}

// RunLoader reads the run summaries of a slice of run-file identifiers.
type RunLoader func(files []string) ([]RunSummary, error)

// OnTime is the observation time attributed to each zenith bin, with the
// runs falling outside the binning dropped.
type OnTime struct {
	PerZd []float64
	Total float64
}

// TallyOnTime partitions runs into nchunks slices, loads each slice on a
// worker pool and accumulates the per-run on-time into the zenith bins.
// Like the event tally it fails on the first loader error and returns no
// partial result.
func TallyOnTime(ctx context.Context, zdEdges BinEdges, runs []string, nchunks int, load RunLoader) (*OnTime, error) {
	if err := zdEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "zenith axis")
	}
	if len(runs) == 0 {
		return nil, ErrNoFiles
	}

	chunks := ChunkStrings(runs, nchunks)
	parts := make([]*hbook.H1D, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summaries, err := load(chunk)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to load run summaries"), "chunk", strconv.Itoa(i))
			}
			h := hbook.NewH1DFromEdges([]float64(zdEdges))
			for _, run := range summaries {
				if region(zdEdges, run.Zd) != 1 {
					continue
				}
				h.Fill(run.Zd, run.OnTime)
			}
			parts[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "on-time tally failed")
	}

	out := &OnTime{PerZd: make([]float64, zdEdges.NBins())}
	for _, h := range parts {
		if h == nil {
			continue
		}
		for j := range out.PerZd {
			out.PerZd[j] += h.Value(j)
		}
	}
	out.Total = floats.Sum(out.PerZd)
	return out, nil
}

// Weight scales each zenith row of an effective-area matrix by the fraction
// of the total observation time spent in that zenith bin.  The weighted rows
// sum to the time-averaged area of the observation.
func (t *OnTime) Weight(area *mat.Dense) (*mat.Dense, error) {
	rows, cols := area.Dims()
	if rows != len(t.PerZd) {
		err := zerr.With(zerr.Wrap(ErrShapeMismatch, "on-time weighting"), "rows", strconv.Itoa(rows))
		return nil, zerr.With(err, "zdbins", strconv.Itoa(len(t.PerZd)))
	}
	scaled := mat.NewDense(rows, cols, nil)
	for j := 0; j < rows; j++ {
		w := t.PerZd[j] / t.Total
		for i := 0; i < cols; i++ {
			scaled.Set(j, i, area.At(j, i)*w)
		}
	}
	return scaled, nil
}
