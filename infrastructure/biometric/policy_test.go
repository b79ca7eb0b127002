package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdsForAttemptsBounds(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		want     Thresholds
	}{
		{
			name:     "no failures",
			attempts: 0,
			want: Thresholds{
				EmbeddingDistance: 0.45,
				TolXY:             0.10,
				TolScale:          0.15,
				TolAngle:          15,
				TolDist:           0.22,
			},
		},
		{
			name:     "counter at cap",
			attempts: 5,
			want: Thresholds{
				EmbeddingDistance: 0.55,
				TolXY:             0.05,
				TolScale:          0.10,
				TolAngle:          10,
				TolDist:           0.12,
			},
		},
		{
			name:     "negative treated as zero",
			attempts: -3,
			want: Thresholds{
				EmbeddingDistance: 0.45,
				TolXY:             0.10,
				TolScale:          0.15,
				TolAngle:          15,
				TolDist:           0.22,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThresholdsForAttempts(tt.attempts)
			assert.InDelta(t, tt.want.EmbeddingDistance, got.EmbeddingDistance, 1e-9)
			assert.InDelta(t, tt.want.TolXY, got.TolXY, 1e-9)
			assert.InDelta(t, tt.want.TolScale, got.TolScale, 1e-9)
			assert.InDelta(t, tt.want.TolAngle, got.TolAngle, 1e-9)
			assert.InDelta(t, tt.want.TolDist, got.TolDist, 1e-9)
		})
	}
}

func TestThresholdsForAttemptsMonotonic(t *testing.T) {
	prev := ThresholdsForAttempts(0)
	for attempts := 1; attempts <= 5; attempts++ {
		current := ThresholdsForAttempts(attempts)
		assert.GreaterOrEqual(t, current.EmbeddingDistance, prev.EmbeddingDistance, "embedding bound must not shrink with failures")
		assert.LessOrEqual(t, current.TolXY, prev.TolXY, "planar tolerance must not grow with failures")
		assert.LessOrEqual(t, current.TolScale, prev.TolScale, "scale tolerance must not grow with failures")
		assert.LessOrEqual(t, current.TolAngle, prev.TolAngle, "angle tolerance must not grow with failures")
		assert.LessOrEqual(t, current.TolDist, prev.TolDist, "dist tolerance must not grow with failures")
		prev = current
	}
}

func TestThresholdsForAttemptsFloorsBeyondCap(t *testing.T) {
	beyond := ThresholdsForAttempts(12)
	assert.InDelta(t, 0.55, beyond.EmbeddingDistance, 1e-9)
	assert.InDelta(t, 0.05, beyond.TolXY, 1e-9)
	assert.InDelta(t, 0.08, beyond.TolScale, 1e-9)
	assert.InDelta(t, 8, beyond.TolAngle, 1e-9)
	assert.InDelta(t, 0.12, beyond.TolDist, 1e-9)
}
