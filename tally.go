package aeff

import (
	"context"
	"runtime"
	"strconv"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// SourceOpener turns a slice of file identifiers into an EventSource.
type SourceOpener func(files []string) EventSource

// OpenRoot returns a SourceOpener over the named tree with the given
// branch names.
func OpenRoot(tree string, branches Branches) SourceOpener {
	return func(files []string) EventSource {
		return &RootSource{Files: files, Tree: tree, Branches: branches}
	}
}

// TallyFiles partitions files into nchunks contiguous slices, counts each
// slice independently on a worker pool sized to the host parallelism and
// sums the partial count matrices.  Summation is commutative, so the result
// does not depend on worker scheduling.  The first worker error cancels the
// remaining work and fails the whole tally; no partial result is returned.
func TallyFiles(ctx context.Context, eEdges, zdEdges BinEdges, files []string, nchunks int, open SourceOpener, mode EnergyMode) (*mat.Dense, error) {
	if err := eEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "energy axis")
	}
	if err := zdEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "zenith axis")
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	chunks := ChunkStrings(files, nchunks)
	parts := make([]*mat.Dense, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		g.Go(func() error {
			m, err := CountEvents(ctx, eEdges, zdEdges, open(chunk), mode, nil)
			if err != nil {
				return zerr.With(err, "chunk", strconv.Itoa(i))
			}
			parts[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "simulation tally failed")
	}

	total := mat.NewDense(zdEdges.NBins(), eEdges.NBins(), nil)
	for _, part := range parts {
		if part != nil {
			total.Add(total, part)
		}
	}
	return total, nil
}
