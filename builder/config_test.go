package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travellermap/altroute/stargraph"
)

func TestNewBuilderConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	assert.Nil(t, cfg.rng)
	assert.Equal(t, "7", cfg.nameFn(7))
	assert.Equal(t, 2.0, cfg.weightFn(nil, 2))
	assert.Equal(t, 0.0, cfg.wtnFn(nil, stargraph.Hex{Q: 1}))
}

func TestNewBuilderConfig_LastOptionWins(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig(WithPrefixNames("x"), WithExcelColumnNames(), WithConstantWeight(3), WithSeed(9))
	assert.Equal(t, "B", cfg.nameFn(1))
	assert.Equal(t, 3.0, cfg.weightFn(nil, 5))

	want := rand.New(rand.NewSource(9)).Int63()
	assert.Equal(t, want, cfg.rng.Int63())

	r := rand.New(rand.NewSource(1))
	cfg = newBuilderConfig(WithSeed(9), WithRand(r))
	assert.Same(t, r, cfg.rng)
}
