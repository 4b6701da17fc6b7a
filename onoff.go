package aeff

import (
	"context"

	"go-hep.org/x/hep/hbook"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultAlpha is the standard on/off exposure ratio.
const DefaultAlpha = 0.2

// Default theta-square histogram range.
const (
	thetaSqHistMax   = 0.3
	thetaSqHistEdges = 41
)

// OnOff holds the signal-region and background-region event counts of one
// observation, binned in (zenith, energy), together with theta-square
// distributions over the full event sample.
type OnOff struct {
	On, Off   *mat.Dense // (zd, energy) counts below the theta-square cut
	OnE, OffE []float64  // energy projections, summed over zenith bins
	Excess    []float64  // OnE - alpha*OffE per energy bin
	Alpha     float64

	ThetaSqEdges BinEdges
	ThetaSqOn    *hbook.H1D // theta-square distribution of on-source events
	ThetaSqOff   *hbook.H1D
}

// NOn returns the total number of selected on-source events.
func (r *OnOff) NOn() float64 { return floats.Sum(r.OnE) }

// NOff returns the total number of selected off-source events.
func (r *OnOff) NOff() float64 { return floats.Sum(r.OffE) }

// NExcess returns the total background-subtracted event count.
func (r *OnOff) NExcess() float64 { return r.NOn() - r.Alpha*r.NOff() }

// CountOnOff bins the source events into on (dataType == 1) and off
// (dataType == 0) count matrices using the estimated energy, keeping only
// events below the theta-square cut.  The theta-square histograms are
// filled from all events regardless of the cut, which is what makes them
// useful for choosing one.
func CountOnOff(ctx context.Context, eEdges, zdEdges BinEdges, src EventSource, thetaSqCut, alpha float64) (*OnOff, error) {
	if err := eEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "energy axis")
	}
	if err := zdEdges.Validate(); err != nil {
		return nil, zerr.Wrap(err, "zenith axis")
	}

	var (
		onGrid   = NewGrid(eEdges, zdEdges)
		offGrid  = NewGrid(eEdges, zdEdges)
		tsqEdges = BinEdges(floats.Span(make([]float64, thetaSqHistEdges), 0, thetaSqHistMax))
		tsqOn    = hbook.NewH1DFromEdges([]float64(tsqEdges))
		tsqOff   = hbook.NewH1DFromEdges([]float64(tsqEdges))
	)
	err := src.Scan(ctx, func(ev Event) error {
		on := ev.DataType > 0.5
		if region(tsqEdges, ev.ThetaSq) == 1 {
			if on {
				tsqOn.Fill(ev.ThetaSq, 1)
			} else {
				tsqOff.Fill(ev.ThetaSq, 1)
			}
		}
		if ev.ThetaSq >= thetaSqCut {
			return nil
		}
		if on {
			onGrid.Fill(ev.EstimatedEnergy(), ev.Zd, 1)
		} else {
			offGrid.Fill(ev.EstimatedEnergy(), ev.Zd, 1)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, "event scan failed")
	}

	out := &OnOff{
		On:           countMatrix(onGrid),
		Off:          countMatrix(offGrid),
		Alpha:        alpha,
		ThetaSqEdges: tsqEdges,
		ThetaSqOn:    tsqOn,
		ThetaSqOff:   tsqOff,
	}
	out.OnE = colSums(out.On)
	out.OffE = colSums(out.Off)
	out.Excess = make([]float64, len(out.OnE))
	for i := range out.Excess {
		out.Excess[i] = out.OnE[i] - alpha*out.OffE[i]
	}
	return out, nil
}

// colSums sums a count matrix over its rows (zenith bins), leaving the
// energy axis.
func colSums(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, cols)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			out[i] += m.At(j, i)
		}
	}
	return out
}
