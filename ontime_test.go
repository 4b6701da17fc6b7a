package aeff_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/airshower/aeff"
)

func TestTallyOnTime(t *testing.T) {
	zdEdges := aeff.BinEdges{0, 30, 60}
	runs := map[string]aeff.RunSummary{
		"run1": {Zd: 10, OnTime: 300},
		"run2": {Zd: 20, OnTime: 150},
		"run3": {Zd: 45, OnTime: 600},
		"run4": {Zd: 70, OnTime: 99}, // outside the binning, dropped
	}
	load := func(files []string) ([]aeff.RunSummary, error) {
		var out []aeff.RunSummary
		for _, f := range files {
			out = append(out, runs[f])
		}
		return out, nil
	}

	for _, nchunks := range []int{1, 2, 4, 7} {
		got, err := aeff.TallyOnTime(context.Background(), zdEdges,
			[]string{"run1", "run2", "run3", "run4"}, nchunks, load)
		require.NoError(t, err, "nchunks=%d", nchunks)
		assert.Equal(t, []float64{450, 600}, got.PerZd, "nchunks=%d", nchunks)
		assert.Equal(t, 1050.0, got.Total)
	}
}

func TestTallyOnTime_LoaderFailureAborts(t *testing.T) {
	boom := errors.New("bad run file")
	load := func(files []string) ([]aeff.RunSummary, error) { return nil, boom }

	_, err := aeff.TallyOnTime(context.Background(), aeff.ZdEdges(3),
		[]string{"run1", "run2"}, 2, load)
	assert.ErrorIs(t, err, boom)
}

func TestTallyOnTime_EmptyRunList(t *testing.T) {
	_, err := aeff.TallyOnTime(context.Background(), aeff.ZdEdges(3), nil, 2,
		func([]string) ([]aeff.RunSummary, error) { return nil, nil })
	assert.ErrorIs(t, err, aeff.ErrNoFiles)
}

func TestOnTime_Weight(t *testing.T) {
	ontime := &aeff.OnTime{PerZd: []float64{25, 75}, Total: 100}
	area := mat.NewDense(2, 2, []float64{2e9, 4e9, 6e9, 8e9})

	scaled, err := ontime.Weight(area)
	require.NoError(t, err)

	assert.Equal(t, 2e9*0.25, scaled.At(0, 0))
	assert.Equal(t, 4e9*0.25, scaled.At(0, 1))
	assert.Equal(t, 6e9*0.75, scaled.At(1, 0))
	assert.Equal(t, 8e9*0.75, scaled.At(1, 1))

	// the input matrix is left untouched
	assert.Equal(t, 2e9, area.At(0, 0))
}

func TestOnTime_Weight_RowMismatch(t *testing.T) {
	ontime := &aeff.OnTime{PerZd: []float64{50, 50, 50}, Total: 150}
	_, err := ontime.Weight(mat.NewDense(2, 4, nil))
	assert.ErrorIs(t, err, aeff.ErrShapeMismatch)
}
