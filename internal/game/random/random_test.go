package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/duel/internal/config"
	"github.com/cory-johannsen/duel/internal/game/random"
)

// TestCryptoSource_Float64_InRange verifies every draw is in [0, 1).
func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := random.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := random.NewSeededSource(7)
	b := random.NewSeededSource(7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
}

func TestSeededSource_DifferentSeedsDiverge(t *testing.T) {
	a := random.NewSeededSource(1)
	b := random.NewSeededSource(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestFixed(t *testing.T) {
	src := random.Fixed(0.25)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.25, src.Float64())
	}
}

func TestFixed_PanicsOutsideUnitInterval(t *testing.T) {
	assert.Panics(t, func() { random.Fixed(1.0) })
	assert.Panics(t, func() { random.Fixed(-0.1) })
}

func TestSequence_CyclesAndCounts(t *testing.T) {
	seq := random.NewSequence(0.1, 0.2, 0.3)
	var got []float64
	for i := 0; i < 5; i++ {
		got = append(got, seq.Float64())
	}
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.1, 0.2}, got)
	assert.Equal(t, 5, seq.Draws())
}

func TestSequence_Preconditions(t *testing.T) {
	assert.Panics(t, func() { random.NewSequence() })
	assert.Panics(t, func() { random.NewSequence(0.5, 2) })
}

func TestSourceFunc(t *testing.T) {
	var src random.Source = random.SourceFunc(func() float64 { return 0.75 })
	assert.Equal(t, 0.75, src.Float64())
}

func TestLoggedSource_LogsEachDraw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := random.NewLoggedSource(random.NewSequence(0.4, 0.6), zap.New(core))

	assert.Equal(t, 0.4, src.Float64())
	assert.Equal(t, 0.6, src.Float64())

	entries := logs.FilterMessage("random draw").All()
	require.Len(t, entries, 2)
	assert.Equal(t, 0.6, entries[1].ContextMap()["value"])
}

func TestFromConfig(t *testing.T) {
	logger := zap.NewNop()

	src, err := random.FromConfig(config.RandomConfig{Source: config.SourceSeeded, Seed: 3}, logger)
	require.NoError(t, err)
	assert.Equal(t, random.NewSeededSource(3).Float64(), src.Float64())

	src, err = random.FromConfig(config.RandomConfig{Source: config.SourceCrypto}, logger)
	require.NoError(t, err)
	assert.NotNil(t, src)

	_, err = random.FromConfig(config.RandomConfig{Source: "dice"}, logger)
	assert.Error(t, err)
}

func TestFromConfig_LogDraws(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src, err := random.FromConfig(config.RandomConfig{Source: config.SourceSeeded, LogDraws: true}, zap.New(core))
	require.NoError(t, err)

	src.Float64()
	assert.Equal(t, 1, logs.FilterMessage("random draw").Len())
}

func TestProperty_SeededSource_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		src := random.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			v := src.Float64()
			assert.GreaterOrEqual(rt, v, 0.0)
			assert.Less(rt, v, 1.0)
		}
	})
}

func TestProperty_Sequence_ReplaysInOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(0, 0.999), 1, 10).Draw(rt, "values")
		seq := random.NewSequence(values...)
		for round := 0; round < 2; round++ {
			for _, want := range values {
				assert.Equal(rt, want, seq.Float64())
			}
		}
	})
}
