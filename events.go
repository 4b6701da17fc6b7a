package aeff

import (
	"context"
	"math"
)

// Event is one record from an analyzed or thrown Monte-Carlo file.  Only
// the scalar fields the binning needs are carried; everything else stays in
// the file.
type Event struct {
	Energy   float64 // true Monte-Carlo energy in GeV
	Size     float64 // total image charge
	Leakage2 float64 // charge fraction in the two outermost camera rings
	Zd       float64 // pointing zenith distance in degrees
	DataType float64 // 1 for on-source, 0 for off-source
	ThetaSq  float64 // squared angular distance to the source position
}

// EstimatedEnergy returns the reconstructed energy estimator built from the
// image parameters.  The parametrization follows the standard FACT
// size/zenith power law with a leakage correction.
func (e Event) EstimatedEnergy() float64 {
	exp := 0.77 / math.Cos(e.Zd*1.35*math.Pi/360)
	return math.Pow(29.65*e.Size, exp) + e.Leakage2*13000
}

// EnergyMode selects which energy the binning uses.
type EnergyMode int

const (
	// TrueEnergy bins by the simulated Monte-Carlo energy.
	TrueEnergy EnergyMode = iota
	// EstimatedEnergy bins by the reconstructed energy estimator.
	EstimatedEnergy
)

func (m EnergyMode) String() string {
	if m == TrueEnergy {
		return "mc"
	}
	return "est"
}

// energy returns the event energy selected by the mode.
func (m EnergyMode) energy(e Event) float64 {
	if m == TrueEnergy {
		return e.Energy
	}
	return e.EstimatedEnergy()
}

// EventSource yields event records.  Scan calls fn for every record and
// stops at the first error, which it returns.
type EventSource interface {
	Scan(ctx context.Context, fn func(Event) error) error
}

// SliceSource is an in-memory EventSource.
type SliceSource []Event

func (s SliceSource) Scan(ctx context.Context, fn func(Event) error) error {
	for _, e := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
