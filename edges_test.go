package aeff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airshower/aeff"
)

func TestBinEdges_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edges   aeff.BinEdges
		wantErr bool
	}{
		{name: "two edges", edges: aeff.BinEdges{0, 1}},
		{name: "many edges", edges: aeff.BinEdges{0, 1, 2.5, 10}},
		{name: "empty", edges: nil, wantErr: true},
		{name: "single edge", edges: aeff.BinEdges{1}, wantErr: true},
		{name: "not increasing", edges: aeff.BinEdges{0, 2, 1}, wantErr: true},
		{name: "repeated edge", edges: aeff.BinEdges{0, 1, 1, 2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edges.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, aeff.ErrBadBinning)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEnergyEdges(t *testing.T) {
	edges := aeff.EnergyEdges(9)
	require.NoError(t, edges.Validate())
	require.Len(t, edges, 9)
	assert.Equal(t, 8, edges.NBins())
	assert.InDelta(t, aeff.DefaultEnergyMin, edges.Min(), 1e-9)
	assert.InDelta(t, aeff.DefaultEnergyMax, edges.Max(), 1e-6)

	// log spacing: constant bin-width ratio
	ratio := edges[1] / edges[0]
	for i := 2; i < len(edges); i++ {
		assert.InDelta(t, ratio, edges[i]/edges[i-1], 1e-9)
	}
}

func TestZdEdges(t *testing.T) {
	edges := aeff.ZdEdges(15)
	require.NoError(t, edges.Validate())
	require.Len(t, edges, 15)
	assert.InDelta(t, 0.0, edges.Min(), 1e-12)
	assert.InDelta(t, 60.0, edges.Max(), 1e-12)

	width := edges[1] - edges[0]
	for i := 2; i < len(edges); i++ {
		assert.InDelta(t, width, edges[i]-edges[i-1], 1e-9)
	}
}

func TestEdges_TooFew(t *testing.T) {
	assert.Error(t, aeff.EnergyEdges(1).Validate())
	assert.Error(t, aeff.ZdEdges(0).Validate())
}
