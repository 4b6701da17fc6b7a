package aeff

import (
	"encoding/json"
	"math"
	"os"

	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/mat"
)

// AnalysisState is the JSON-serializable snapshot of one analysis: the bin
// configuration, the selection, and every computed product.  Matrices are
// stored row by row, rows being zenith bins.
type AnalysisState struct {
	ThetaSqCut    float64   `json:"theta_square"`
	Alpha         float64   `json:"alpha"`
	UseMCEnergy   bool      `json:"use_mc_energy"`
	EnergyBinning []float64 `json:"energy_binning"`
	ZenithBinning []float64 `json:"zenith_binning"`

	OnTimePerZd []float64 `json:"on_time_per_zd,omitempty"`
	TotalOnTime float64   `json:"total_on_time,omitempty"`

	OnHistoZenith  [][]float64 `json:"on_histo_zenith,omitempty"`
	OffHistoZenith [][]float64 `json:"off_histo_zenith,omitempty"`
	OnHisto        []float64   `json:"on_histo,omitempty"`
	OffHisto       []float64   `json:"off_histo,omitempty"`
	ExcessHisto    []float64   `json:"excess_histo,omitempty"`

	EffectiveArea       MaskedRows `json:"effective_area,omitempty"`
	ScaledEffectiveArea MaskedRows `json:"scaled_effective_area,omitempty"`
}

// MaskedRows is a nested float array whose non-finite entries marshal as
// null, the way numpy masked arrays round-trip through JSON.  Nulls load
// back as NaN.
type MaskedRows [][]float64

func (r MaskedRows) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, len(r))
	for j, row := range r {
		rows[j] = make([]*float64, len(row))
		for i := range row {
			if v := row[i]; !math.IsInf(v, 0) && !math.IsNaN(v) {
				rows[j][i] = &row[i]
			}
		}
	}
	return json.Marshal(rows)
}

func (r *MaskedRows) UnmarshalJSON(data []byte) error {
	var rows [][]*float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*r = make(MaskedRows, len(rows))
	for j, row := range rows {
		(*r)[j] = make([]float64, len(row))
		for i, v := range row {
			if v == nil {
				(*r)[j][i] = math.NaN()
			} else {
				(*r)[j][i] = *v
			}
		}
	}
	return nil
}

// SetOnOff records the on/off products.
func (s *AnalysisState) SetOnOff(r *OnOff) {
	s.Alpha = r.Alpha
	s.OnHistoZenith = matRows(r.On)
	s.OffHistoZenith = matRows(r.Off)
	s.OnHisto = r.OnE
	s.OffHisto = r.OffE
	s.ExcessHisto = r.Excess
}

// SetOnTime records the on-time products.
func (s *AnalysisState) SetOnTime(t *OnTime) {
	s.OnTimePerZd = t.PerZd
	s.TotalOnTime = t.Total
}

// SetEffectiveArea records the effective-area matrix.  When an on-time
// tally is available the on-time-weighted matrix is recorded alongside.
func (s *AnalysisState) SetEffectiveArea(area *mat.Dense, t *OnTime) error {
	s.EffectiveArea = MaskedRows(matRows(area))
	if t == nil {
		return nil
	}
	scaled, err := t.Weight(area)
	if err != nil {
		return err
	}
	s.ScaledEffectiveArea = MaskedRows(matRows(scaled))
	return nil
}

// Save writes the state as JSON.
func (s *AnalysisState) Save(path string) error {
	data, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal analysis state")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write analysis state")
	}
	return nil
}

// LoadState reads a previously saved analysis state.  Unknown keys are
// rejected, so states written by other versions fail instead of silently
// dropping fields.
func LoadState(path string) (*AnalysisState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open analysis state")
	}
	defer f.Close()

	var s AnalysisState
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, zerr.Wrap(err, "failed to decode analysis state")
	}
	return &s, nil
}

// matRows copies a matrix into a row-per-zenith-bin nested slice.
func matRows(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for j := 0; j < rows; j++ {
		out[j] = make([]float64, cols)
		for i := 0; i < cols; i++ {
			out[j][i] = m.At(j, i)
		}
	}
	return out
}

// MatFromRows rebuilds a matrix from its row-per-zenith-bin form.
func MatFromRows(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return nil
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for j, row := range rows {
		for i, v := range row {
			m.Set(j, i, v)
		}
	}
	return m
}
