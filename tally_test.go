package aeff_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/airshower/aeff"
)

// tallyFixture maps fake file names to in-memory event slices.
type tallyFixture map[string][]aeff.Event

func (f tallyFixture) open(files []string) aeff.EventSource {
	var events []aeff.Event
	for _, name := range files {
		events = append(events, f[name]...)
	}
	return aeff.SliceSource(events)
}

func fixtureFiles(nFiles, perFile int) (tallyFixture, []string) {
	fixture := tallyFixture{}
	var files []string
	for i := 0; i < nFiles; i++ {
		name := "mc_" + strconv.Itoa(i) + ".root"
		files = append(files, name)
		for j := 0; j < perFile; j++ {
			// spread events over bins deterministically
			fixture[name] = append(fixture[name], aeff.Event{
				Energy: 300 + float64((i*perFile+j)%8)*5000,
				Zd:     float64((i + j) % 60),
			})
		}
	}
	return fixture, files
}

func TestTallyFiles_MatchesSequentialCount(t *testing.T) {
	fixture, files := fixtureFiles(16, 5)
	eEdges := aeff.EnergyEdges(9)
	zdEdges := aeff.ZdEdges(15)

	want, err := aeff.CountEvents(context.Background(), eEdges, zdEdges,
		fixture.open(files), aeff.TrueEnergy, nil)
	require.NoError(t, err)

	// The summed parallel tally must agree with the one-pass count for any
	// chunking: the reduction is order-independent.
	for _, nchunks := range []int{1, 2, 5, 8, 16, 31} {
		got, err := aeff.TallyFiles(context.Background(), eEdges, zdEdges,
			files, nchunks, fixture.open, aeff.TrueEnergy)
		require.NoError(t, err, "nchunks=%d", nchunks)
		assert.True(t, mat.Equal(want, got), "nchunks=%d", nchunks)
	}
}

func TestTallyFiles_EmptyList(t *testing.T) {
	_, err := aeff.TallyFiles(context.Background(),
		aeff.EnergyEdges(3), aeff.ZdEdges(3), nil, 4,
		func([]string) aeff.EventSource { return aeff.SliceSource(nil) },
		aeff.TrueEnergy)
	assert.ErrorIs(t, err, aeff.ErrNoFiles)
}

func TestTallyFiles_WorkerFailureAborts(t *testing.T) {
	boom := errors.New("unreadable chunk")
	fixture, files := fixtureFiles(8, 3)

	open := func(chunk []string) aeff.EventSource {
		for _, f := range chunk {
			if f == "mc_5.root" {
				return failingSource{err: boom}
			}
		}
		return fixture.open(chunk)
	}

	_, err := aeff.TallyFiles(context.Background(),
		aeff.EnergyEdges(5), aeff.ZdEdges(5), files, 4, open, aeff.TrueEnergy)
	assert.ErrorIs(t, err, boom, "a single failing worker must fail the whole tally")
}
