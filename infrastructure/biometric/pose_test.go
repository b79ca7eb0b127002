package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veriface.io/infrastructure/biometric/types"
)

func planarPose(x, y, scale float64) types.PoseSample {
	return types.PoseSample{Kind: types.PoseKindPlanar, X: x, Y: y, Scale: scale}
}

func angularPose(roll, pitch, yaw, dist float64) types.PoseSample {
	return types.PoseSample{Kind: types.PoseKindAngular, Roll: roll, Pitch: pitch, Yaw: yaw, Dist: dist}
}

func TestMatchPositionPlanar(t *testing.T) {
	tol := ThresholdsForAttempts(0)
	stored := planarPose(0.5, 0.5, 1.0)

	assert.True(t, MatchPosition(stored, planarPose(0.55, 0.45, 1.1), tol))
	assert.False(t, MatchPosition(stored, planarPose(0.65, 0.5, 1.0), tol), "x offset over tolerance")
	assert.False(t, MatchPosition(stored, planarPose(0.5, 0.35, 1.0), tol), "y offset over tolerance")
	assert.False(t, MatchPosition(stored, planarPose(0.5, 0.5, 1.2), tol), "scale offset over tolerance")
}

func TestMatchPositionAngular(t *testing.T) {
	tol := ThresholdsForAttempts(0)
	stored := angularPose(0, 10, -5, 1.0)

	assert.True(t, MatchPosition(stored, angularPose(10, 0, 5, 1.2), tol))
	assert.False(t, MatchPosition(stored, angularPose(20, 10, -5, 1.0), tol), "roll offset over tolerance")
	assert.False(t, MatchPosition(stored, angularPose(0, 10, -5, 1.3), tol), "dist offset over tolerance")
}

func TestMatchPositionSchemasNeverCrossCompare(t *testing.T) {
	tol := ThresholdsForAttempts(0)
	// zero-valued fields would trivially "match" if schemas were mixed
	assert.False(t, MatchPosition(planarPose(0, 0, 0), angularPose(0, 0, 0, 0), tol))
	assert.False(t, MatchPosition(angularPose(0, 0, 0, 0), planarPose(0, 0, 0), tol))
	assert.False(t, MatchPosition(types.PoseSample{}, planarPose(0, 0, 0), tol), "unknown stored schema matches nothing")
}

func TestMatchPositionAdaptiveTightening(t *testing.T) {
	stored := planarPose(0.5, 0.5, 1.0)
	live := planarPose(0.56, 0.5, 1.0) // Δx = 0.06

	record := types.PoseRecord{Collection: []types.PoseSample{stored}}

	record.FailedAttempts = 0
	assert.True(t, MatchPositionCollection(record, live), "0.06 is within the 0.10 window at zero failures")

	record.FailedAttempts = 5
	assert.False(t, MatchPositionCollection(record, live), "0.06 is outside the 0.05 window at the cap")
}

func TestMatchLegacyPosition(t *testing.T) {
	stored := angularPose(0, 0, 0, 1.0)

	assert.True(t, MatchLegacyPosition(stored, angularPose(14, -14, 14, 1.24)))
	assert.False(t, MatchLegacyPosition(stored, angularPose(16, 0, 0, 1.0)))
	assert.False(t, MatchLegacyPosition(stored, angularPose(0, 0, 0, 1.26)))
}

func TestMatchPositionCollection(t *testing.T) {
	record := types.PoseRecord{
		Collection: []types.PoseSample{
			planarPose(0.1, 0.1, 1.0),
			planarPose(0.9, 0.9, 1.0),
		},
	}
	assert.True(t, MatchPositionCollection(record, planarPose(0.88, 0.92, 1.05)), "any enrolled pose may match")
	assert.False(t, MatchPositionCollection(record, planarPose(0.5, 0.5, 1.0)))
	assert.False(t, MatchPositionCollection(record, types.PoseSample{}), "unknown live schema matches nothing")
}

func TestMatchPositionCollectionLegacySubstitute(t *testing.T) {
	legacy := planarPose(0.5, 0.5, 1.0)
	record := types.PoseRecord{Legacy: &legacy}

	assert.True(t, MatchPositionCollection(record, planarPose(0.52, 0.48, 1.0)))
	assert.False(t, MatchPositionCollection(types.PoseRecord{}, planarPose(0.5, 0.5, 1.0)), "no enrolled pose at all matches nothing")
}
