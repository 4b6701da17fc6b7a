package aeff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airshower/aeff"
)

func TestCountOnOff(t *testing.T) {
	eEdges := aeff.BinEdges{1, 1e9} // wide open: estimator values always land in range
	zdEdges := aeff.BinEdges{0, 60}
	src := aeff.SliceSource{
		{Size: 500, Zd: 10, DataType: 1, ThetaSq: 0.01},
		{Size: 500, Zd: 10, DataType: 1, ThetaSq: 0.02},
		{Size: 500, Zd: 10, DataType: 1, ThetaSq: 0.2}, // above cut
		{Size: 500, Zd: 10, DataType: 0, ThetaSq: 0.03},
		{Size: 500, Zd: 10, DataType: 0, ThetaSq: 0.25}, // above cut
	}

	r, err := aeff.CountOnOff(context.Background(), eEdges, zdEdges, src,
		aeff.DefaultThetaSqCut, aeff.DefaultAlpha)
	require.NoError(t, err)

	assert.Equal(t, 2.0, r.On.At(0, 0))
	assert.Equal(t, 1.0, r.Off.At(0, 0))
	assert.Equal(t, 2.0, r.NOn())
	assert.Equal(t, 1.0, r.NOff())
	assert.InDelta(t, 2.0-0.2*1.0, r.NExcess(), 1e-12)
	assert.InDelta(t, 1.8, r.Excess[0], 1e-12)

	// theta-square histograms see all five events, cut or not
	var onEntries, offEntries float64
	for i := 0; i < r.ThetaSqEdges.NBins(); i++ {
		onEntries += r.ThetaSqOn.Value(i)
		offEntries += r.ThetaSqOff.Value(i)
	}
	assert.Equal(t, 3.0, onEntries)
	assert.Equal(t, 2.0, offEntries)
}

func TestCountOnOff_BadBinning(t *testing.T) {
	_, err := aeff.CountOnOff(context.Background(), aeff.BinEdges{1}, aeff.ZdEdges(3),
		aeff.SliceSource(nil), aeff.DefaultThetaSqCut, aeff.DefaultAlpha)
	assert.ErrorIs(t, err, aeff.ErrBadBinning)
}
