package aeff

import (
	"strconv"

	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/floats"
)

// BinEdges is an ordered sequence of bin boundaries for one histogram axis.
// N edges define N-1 half-open bins [edges[i], edges[i+1]).
type BinEdges []float64

// Validate reports whether the edges define at least one bin and are
// strictly increasing.
func (e BinEdges) Validate() error {
	if len(e) < 2 {
		return zerr.With(zerr.Wrap(ErrBadBinning, "too few edges"), "nedges", strconv.Itoa(len(e)))
	}
	for i := 1; i < len(e); i++ {
		if e[i] <= e[i-1] {
			return zerr.With(zerr.Wrap(ErrBadBinning, "edges not strictly increasing"), "edge", strconv.Itoa(i))
		}
	}
	return nil
}

// NBins returns the number of bins defined by the edges.
func (e BinEdges) NBins() int { return len(e) - 1 }

// Min returns the lower boundary of the first bin.
func (e BinEdges) Min() float64 { return e[0] }

// Max returns the upper boundary of the last bin.
func (e BinEdges) Max() float64 { return e[len(e)-1] }

// Default axis ranges of the standard FACT binning: energy in GeV,
// zenith distance in degrees.
const (
	DefaultEnergyMin = 200.0
	DefaultEnergyMax = 50000.0
	DefaultZdMin     = 0.0
	DefaultZdMax     = 60.0
)

// EnergyEdges returns n logarithmically spaced energy edges over the
// standard energy range.  n below 2 yields edges that fail Validate.
func EnergyEdges(n int) BinEdges {
	if n < 2 {
		return nil
	}
	return BinEdges(floats.LogSpan(make([]float64, n), DefaultEnergyMin, DefaultEnergyMax))
}

// ZdEdges returns n linearly spaced zenith-distance edges over the standard
// zenith range.  n below 2 yields edges that fail Validate.
func ZdEdges(n int) BinEdges {
	if n < 2 {
		return nil
	}
	return BinEdges(floats.Span(make([]float64, n), DefaultZdMin, DefaultZdMax))
}
