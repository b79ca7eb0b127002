package biometric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"veriface.io/infrastructure/biometric/types"
)

// metricVector builds a 128-component embedding with the given value in the
// first component and zeroes elsewhere, so the euclidean distance between
// two of them is the difference of their first components.
func metricVector(first float64) types.Embedding {
	components := make([]float32, types.MetricComponents)
	components[0] = float32(first)
	return types.NewEmbedding(components)
}

func TestMatchEmbeddingMetric(t *testing.T) {
	stored := metricVector(0)

	assert.True(t, MatchEmbedding(stored, metricVector(0.59)), "distance 0.59 is under the 0.6 bound")
	assert.False(t, MatchEmbedding(stored, metricVector(0.61)), "distance 0.61 is over the 0.6 bound")
	assert.False(t, MatchEmbedding(stored, metricVector(0.6)), "the bound itself is exclusive")
}

func TestMatchEmbeddingCosine(t *testing.T) {
	stored := types.NewEmbedding([]float32{1, 2, 3})
	assert.Equal(t, types.EmbeddingKindCosine, stored.Kind)

	assert.True(t, MatchEmbedding(stored, types.NewEmbedding([]float32{1, 2, 3})), "identical vectors are similar")
	assert.True(t, MatchEmbedding(stored, types.NewEmbedding([]float32{2, 4, 6})), "scaled vectors are similar")
	assert.False(t, MatchEmbedding(stored, types.NewEmbedding([]float32{-1, -2, -3})), "opposed vectors are not similar")
	assert.False(t, MatchEmbedding(stored, types.NewEmbedding([]float32{3, -2, 1})), "orthogonal-ish vectors are not similar")
}

func TestMatchEmbeddingFaultsAreNonMatches(t *testing.T) {
	assert.False(t, MatchEmbedding(types.Embedding{}, metricVector(0)), "empty stored embedding never matches")
	assert.False(t, MatchEmbedding(metricVector(0), types.Embedding{}), "empty live embedding never matches")

	// dimension mismatch on the cosine path is absorbed, not propagated
	stored := types.NewEmbedding([]float32{1, 2, 3})
	assert.False(t, MatchEmbedding(stored, types.NewEmbedding([]float32{1, 2})))

	// metric stored embedding against a short live vector
	assert.False(t, MatchEmbedding(metricVector(0), types.NewEmbedding([]float32{1, 2, 3})))

	// NaN components must not escape as a verdict
	poisoned := make([]float32, types.MetricComponents)
	poisoned[3] = float32(math.NaN())
	assert.False(t, MatchEmbedding(types.NewEmbedding(poisoned), metricVector(0)))
}

func TestMatchEmbeddingCollectionAdaptiveThreshold(t *testing.T) {
	// distance between live and the single enrolled sample is exactly 0.50
	record := types.FaceRecord{
		Collection: []types.Embedding{metricVector(0)},
	}
	live := metricVector(0.50)

	record.FailedAttempts = 0
	assert.False(t, MatchEmbeddingCollection(record, live), "0.50 is over the 0.45 bound at zero failures")

	record.FailedAttempts = 3
	assert.True(t, MatchEmbeddingCollection(record, live), "0.50 is under the 0.54 bound after three failures")
}

func TestMatchEmbeddingCollectionAnyOf(t *testing.T) {
	record := types.FaceRecord{
		Collection: []types.Embedding{
			metricVector(3),
			metricVector(0.1),
			metricVector(-2),
		},
	}
	assert.True(t, MatchEmbeddingCollection(record, metricVector(0)), "one close entry is enough")

	record.Collection = []types.Embedding{metricVector(3), metricVector(-2)}
	assert.False(t, MatchEmbeddingCollection(record, metricVector(0)))
}

func TestMatchEmbeddingCollectionSkipsMalformedEntries(t *testing.T) {
	record := types.FaceRecord{
		Collection: []types.Embedding{
			types.NewEmbedding([]float32{1, 2, 3}), // too short for the metric scan
			metricVector(0.1),
		},
	}
	assert.True(t, MatchEmbeddingCollection(record, metricVector(0)), "a malformed entry must not abort the scan")
}

func TestMatchEmbeddingCollectionLegacyFallback(t *testing.T) {
	record := types.FaceRecord{
		Legacy:         types.NewEmbedding([]float32{1, 2, 3}),
		FailedAttempts: 5,
	}
	assert.True(t, MatchEmbeddingCollection(record, types.NewEmbedding([]float32{1, 2, 3})),
		"records without a collection use the single-embedding comparison")
	assert.False(t, MatchEmbeddingCollection(record, types.NewEmbedding([]float32{-1, -2, -3})))
}

func TestMatchEmbeddingCollectionZeroLive(t *testing.T) {
	record := types.FaceRecord{Collection: []types.Embedding{metricVector(0)}}
	assert.False(t, MatchEmbeddingCollection(record, types.Embedding{}))
}
