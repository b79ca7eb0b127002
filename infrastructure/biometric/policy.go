package biometric

// Thresholds holds the matching bounds for one login attempt: a maximum
// embedding distance plus pose tolerance windows for both schemas.
type Thresholds struct {
	EmbeddingDistance float64

	TolXY    float64
	TolScale float64

	// degrees
	TolAngle float64
	TolDist  float64
}

// ThresholdsForAttempts maps a user's consecutive face failure counter to
// the matching bounds applied on the next attempt. The embedding distance
// bound widens slightly with failures to compensate for repeated bad
// lighting or angle, while the pose tolerances narrow. The asymmetry is
// inherited behavior and is kept exactly as is.
func ThresholdsForAttempts(attempts int) Thresholds {
	if attempts < 0 {
		attempts = 0
	}
	a := float64(attempts)
	return Thresholds{
		EmbeddingDistance: min(0.45+a*0.03, 0.55),
		TolXY:             max(0.05, 0.10-a*0.01),
		TolScale:          max(0.08, 0.15-a*0.01),
		TolAngle:          max(8, 15-a),
		TolDist:           max(0.12, 0.22-a*0.02),
	}
}

// LegacyPoseTolerances is the fixed, non-adaptive tolerance set applied
// when validating a single compatibility-era pose record directly.
var LegacyPoseTolerances = Thresholds{
	TolXY:    0.12,
	TolScale: 0.20,
	TolAngle: 15,
	TolDist:  0.25,
}
