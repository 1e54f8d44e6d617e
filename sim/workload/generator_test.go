package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SameSeed_IdenticalScenario(t *testing.T) {
	cfg := GenerateConfig{Seed: 42, Regions: 5, Requests: 6, References: 20, Frames: 3}

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_ValuesWithinBounds(t *testing.T) {
	// GIVEN counts beyond the allowed maximum
	sc, err := Generate(GenerateConfig{Seed: 7, Regions: 50, Requests: 50, References: 500, Frames: 99})
	require.NoError(t, err)

	// THEN counts are clamped and every value lies within its range
	require.NotNil(t, sc.Contiguous)
	require.NotNil(t, sc.Paging)
	assert.Len(t, sc.Contiguous.Regions, RegionBounds.MaxCount)
	assert.Len(t, sc.Contiguous.Requests, RequestBounds.MaxCount)
	assert.Len(t, sc.Paging.References, ReferenceBounds.MaxCount)
	assert.Equal(t, FrameBounds.MaxCount, sc.Paging.Frames)

	for _, v := range sc.Contiguous.Regions {
		assert.GreaterOrEqual(t, v, RegionBounds.MinValue)
		assert.LessOrEqual(t, v, RegionBounds.MaxValue)
	}
	for _, v := range sc.Contiguous.Requests {
		assert.GreaterOrEqual(t, v, RequestBounds.MinValue)
		assert.LessOrEqual(t, v, RequestBounds.MaxValue)
	}
	for _, v := range sc.Paging.References {
		assert.GreaterOrEqual(t, v, ReferenceBounds.MinValue)
		assert.LessOrEqual(t, v, ReferenceBounds.MaxValue)
	}
}

func TestGenerate_SubsystemIsolation(t *testing.T) {
	// GIVEN two configs that differ only in request count
	a, err := Generate(GenerateConfig{Seed: 3, Regions: 5, Requests: 4})
	require.NoError(t, err)
	b, err := Generate(GenerateConfig{Seed: 3, Regions: 5, Requests: 9})
	require.NoError(t, err)

	// THEN regions are unchanged and the shorter request list is a prefix of the longer
	assert.Equal(t, a.Contiguous.Regions, b.Contiguous.Regions)
	assert.Equal(t, a.Contiguous.Requests, b.Contiguous.Requests[:4])
}

func TestGenerate_ZeroCounts_SkipSections(t *testing.T) {
	sc, err := Generate(GenerateConfig{Seed: 1, References: 10})
	require.NoError(t, err)
	assert.Nil(t, sc.Contiguous)
	require.NotNil(t, sc.Paging)
	assert.Equal(t, FrameBounds.MinCount, sc.Paging.Frames)
}

func TestGenerate_UnknownPolicy_Error(t *testing.T) {
	_, err := Generate(GenerateConfig{Seed: 1, Regions: 2, Requests: 2, Placement: "next-fit"})
	assert.Error(t, err)
}

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{MinCount: 1, MaxCount: 12}
	assert.Equal(t, 1, b.Clamp(-4))
	assert.Equal(t, 1, b.Clamp(0))
	assert.Equal(t, 7, b.Clamp(7))
	assert.Equal(t, 12, b.Clamp(40))
}
