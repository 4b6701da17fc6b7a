package aeff

import (
	"context"
	"errors"
	"math"

	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// SimRadius is the radius, in cm, of the disc over which the simulation
// throws photons.  The effective area is the surviving-to-thrown event
// ratio scaled by the disc area.
const SimRadius = 54000.0

// DefaultThetaSqCut is the standard theta-square event selection.
const DefaultThetaSqCut = 0.085

// Calculator computes effective-area matrices from an analyzed event file
// and the full thrown-simulation file list, caching both the raw thrown
// tally and the final matrix.
type Calculator struct {
	Analyzed   EventSource  // events surviving the analysis chain
	Thrown     []string     // thrown-simulation file identifiers
	OpenThrown SourceOpener // opens a slice of Thrown
	Chunks     int          // tally partitions, defaults to len(Thrown)
	Cache      *Cache
	Log        *zap.Logger
}

// NewCalculator returns a Calculator with a nop logger replaced on demand.
func NewCalculator(analyzed EventSource, thrown []string, open SourceOpener, cache *Cache, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{
		Analyzed:   analyzed,
		Thrown:     thrown,
		OpenThrown: open,
		Cache:      cache,
		Log:        log,
	}
}

func (c *Calculator) chunks() int {
	if c.Chunks > 0 {
		return c.Chunks
	}
	return len(c.Thrown)
}

// Selection returns the standard event selection: on-source events below
// the theta-square cut.
func Selection(thetaSqCut float64) func(Event) bool {
	return func(ev Event) bool {
		return ev.DataType > 0.5 && ev.ThetaSq < thetaSqCut
	}
}

// ObservedCounts tallies the analyzed events surviving the selection.
func (c *Calculator) ObservedCounts(ctx context.Context, eEdges, zdEdges BinEdges, mode EnergyMode, thetaSqCut float64) (*mat.Dense, error) {
	return CountEvents(ctx, eEdges, zdEdges, c.Analyzed, mode, Selection(thetaSqCut))
}

// SimulatedCounts tallies the full thrown-simulation list in parallel.  The
// result depends only on the binning and the file list, not on any cut, so
// it is cached and shared across cut values.
func (c *Calculator) SimulatedCounts(ctx context.Context, eEdges, zdEdges BinEdges) (*mat.Dense, error) {
	key := TallyKey(eEdges, zdEdges, ListDigest(c.Thrown))
	if m, err := c.Cache.Load(key); err == nil {
		c.Log.Info("thrown tally loaded from cache", zap.String("key", key.Name()))
		return m, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	m, err := TallyFiles(ctx, eEdges, zdEdges, c.Thrown, c.chunks(), c.OpenThrown, TrueEnergy)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.Store(key, m); err != nil {
		return nil, err
	}
	return m, nil
}

// EffectiveArea computes the effective-area matrix for the given binning,
// energy mode and theta-square cut.  Entry (j, i) is
//
//	observed(j,i) / simulated(j,i) * pi * SimRadius^2
//
// with the disc-area scaling applied here and nowhere else.  Bins without
// thrown events divide to +Inf (or NaN when also empty in the observed
// counts); both are legitimate empty-bin outcomes, not errors.  A cached
// matrix with matching shape is returned as is; a shape mismatch is
// reported and aborts instead of silently overwriting the stale file.
func (c *Calculator) EffectiveArea(ctx context.Context, eEdges, zdEdges BinEdges, mode EnergyMode, thetaSqCut float64) (*mat.Dense, error) {
	if err := eEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "energy axis")
	}
	if err := zdEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "zenith axis")
	}

	key := AreaKey(eEdges, zdEdges, mode, thetaSqCut, ListDigest(c.Thrown))
	switch m, err := c.Cache.Load(key); {
	case err == nil:
		c.Log.Info("effective area loaded from cache", zap.String("key", key.Name()))
		return m, nil
	case errors.Is(err, ErrShapeMismatch):
		c.Log.Error("stale cache entry, remove it to recompute", zap.Error(err))
		return nil, err
	case !errors.Is(err, ErrCacheMiss):
		return nil, err
	}

	observed, err := c.ObservedCounts(ctx, eEdges, zdEdges, mode, thetaSqCut)
	if err != nil {
		return nil, zerr.Wrap(err, "observed tally failed")
	}
	simulated, err := c.SimulatedCounts(ctx, eEdges, zdEdges)
	if err != nil {
		return nil, err
	}

	var area mat.Dense
	area.DivElem(observed, simulated)
	area.Scale(math.Pi*SimRadius*SimRadius, &area)

	if err := c.Cache.Store(key, &area); err != nil {
		return nil, err
	}
	c.Log.Info("effective area computed",
		zap.Int("zdbins", zdEdges.NBins()),
		zap.Int("ebins", eEdges.NBins()),
		zap.String("mode", mode.String()),
		zap.Float64("thetasq", thetaSqCut))
	return &area, nil
}
