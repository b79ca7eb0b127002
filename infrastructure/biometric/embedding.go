package biometric

import (
	"fmt"
	"math"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
)

const (
	// Fixed threshold for single compatibility-era metric embeddings,
	// the face recognition model's conventional bound.
	legacyMetricDistanceThreshold = 0.6
	// Similarity bound for cosine-kind embeddings such as the
	// pixel-average fallback fingerprint.
	cosineSimilarityThreshold = 0.9
)

// MatchEmbedding scores a live embedding against one stored embedding.
// Metric-kind stored embeddings use euclidean distance over the first 128
// components, anything else uses cosine similarity over the full vectors.
// Numeric faults never escape: malformed or degenerate vectors are a
// non-match.
func MatchEmbedding(stored types.Embedding, live types.Embedding) bool {
	match, err := matchEmbedding(stored, live)
	if err != nil {
		logger.Warning("embedding comparison fault absorbed as non-match", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	return match
}

func matchEmbedding(stored types.Embedding, live types.Embedding) (bool, error) {
	if stored.IsZero() || live.IsZero() {
		return false, nil
	}
	if stored.Kind == types.EmbeddingKindMetric128 {
		dist, err := metricDistance(stored, live)
		if err != nil {
			return false, err
		}
		return dist < legacyMetricDistanceThreshold, nil
	}
	sim, err := cosineSimilarity(stored.Components, live.Components)
	if err != nil {
		return false, err
	}
	return sim > cosineSimilarityThreshold, nil
}

// MatchEmbeddingCollection applies the adaptive-threshold scan across a
// user's enrolled embedding collection; any single entry within the
// distance bound is a match. Records without a collection fall back to the
// single-embedding compatibility comparison.
func MatchEmbeddingCollection(record types.FaceRecord, live types.Embedding) bool {
	if live.IsZero() {
		return false
	}
	if len(record.Collection) == 0 {
		return MatchEmbedding(record.Legacy, live)
	}

	threshold := ThresholdsForAttempts(record.FailedAttempts).EmbeddingDistance
	for _, stored := range record.Collection {
		dist, err := metricDistance(stored, live)
		if err != nil {
			// a malformed entry must not abort the scan
			logger.Warning("skipping malformed embedding collection entry", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			continue
		}
		if dist < threshold {
			return true
		}
	}
	return false
}

// metricDistance is the euclidean distance over the first 128 components
// of each embedding. Both inputs must supply at least 128 components.
func metricDistance(stored types.Embedding, live types.Embedding) (float64, error) {
	if len(stored.Components) < types.MetricComponents {
		return 0, fmt.Errorf("stored embedding has %d components, need %d", len(stored.Components), types.MetricComponents)
	}
	if len(live.Components) < types.MetricComponents {
		return 0, fmt.Errorf("live embedding has %d components, need %d", len(live.Components), types.MetricComponents)
	}
	var sum float64
	for i := 0; i < types.MetricComponents; i++ {
		diff := float64(stored.Components[i]) - float64(live.Components[i])
		sum += diff * diff
	}
	dist := math.Sqrt(sum)
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return 0, fmt.Errorf("degenerate metric distance")
	}
	return dist, nil
}

func cosineSimilarity(stored []float32, live []float32) (float64, error) {
	if len(stored) != len(live) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(stored), len(live))
	}
	var dot, normStored, normLive float64
	for i := range stored {
		dot += float64(stored[i]) * float64(live[i])
		normStored += float64(stored[i]) * float64(stored[i])
		normLive += float64(live[i]) * float64(live[i])
	}
	sim := dot / (math.Sqrt(normStored)*math.Sqrt(normLive) + 1e-6)
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("degenerate cosine similarity")
	}
	return sim, nil
}
