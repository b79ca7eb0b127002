package biometric

import (
	"math"

	"veriface.io/infrastructure/biometric/types"
)

// MatchPosition validates a live pose sample against one stored pose under
// the given tolerance windows. Samples only match within their own schema:
// a planar stored pose never matches an angular live pose or vice versa.
func MatchPosition(stored types.PoseSample, live types.PoseSample, tol Thresholds) bool {
	if stored.Kind == types.PoseKindUnknown || stored.Kind != live.Kind {
		return false
	}
	switch stored.Kind {
	case types.PoseKindPlanar:
		return math.Abs(stored.X-live.X) <= tol.TolXY &&
			math.Abs(stored.Y-live.Y) <= tol.TolXY &&
			math.Abs(stored.Scale-live.Scale) <= tol.TolScale
	case types.PoseKindAngular:
		return math.Abs(stored.Roll-live.Roll) <= tol.TolAngle &&
			math.Abs(stored.Pitch-live.Pitch) <= tol.TolAngle &&
			math.Abs(stored.Yaw-live.Yaw) <= tol.TolAngle &&
			math.Abs(stored.Dist-live.Dist) <= tol.TolDist
	}
	return false
}

// MatchLegacyPosition validates a single compatibility-era pose record with
// the fixed non-adaptive tolerance set.
func MatchLegacyPosition(stored types.PoseSample, live types.PoseSample) bool {
	return MatchPosition(stored, live, LegacyPoseTolerances)
}

// MatchPositionCollection validates a live pose against any of the user's
// enrolled poses with adaptive tolerances. Records with an empty collection
// substitute the legacy pose field when present.
func MatchPositionCollection(record types.PoseRecord, live types.PoseSample) bool {
	if live.Kind == types.PoseKindUnknown {
		return false
	}
	collection := record.Collection
	if len(collection) == 0 {
		if record.Legacy == nil {
			return false
		}
		collection = []types.PoseSample{*record.Legacy}
	}

	tol := ThresholdsForAttempts(record.FailedAttempts)
	for _, stored := range collection {
		if MatchPosition(stored, live, tol) {
			return true
		}
	}
	return false
}
