package types

import (
	"encoding/binary"
	"errors"
	"math"
)

// MetricComponents is the number of leading embedding components metric
// distance comparisons are computed over. Embeddings produced by the face
// recognition model carry 128 dimensions, sometimes 129 when a confidence
// component is appended.
const MetricComponents = 128

type EmbeddingKind uint8

const (
	EmbeddingKindUnknown EmbeddingKind = iota
	// EmbeddingKindMetric128 marks embeddings compared by euclidean
	// distance over the first MetricComponents dimensions.
	EmbeddingKindMetric128
	// EmbeddingKindCosine marks embeddings compared by cosine similarity
	// over their full length, such as the pixel-average fallback
	// fingerprint.
	EmbeddingKindCosine
)

// Embedding is a facial feature vector. The kind is assigned once at
// ingestion from the record shape and never re-inferred downstream.
type Embedding struct {
	Kind       EmbeddingKind
	Components []float32
}

// NewEmbedding tags a component vector by shape: 128 or 129 components is
// the face recognition model's metric shape, anything else is compared by
// cosine similarity.
func NewEmbedding(components []float32) Embedding {
	if len(components) == 0 {
		return Embedding{}
	}
	kind := EmbeddingKindCosine
	if len(components) == MetricComponents || len(components) == MetricComponents+1 {
		kind = EmbeddingKindMetric128
	}
	return Embedding{Kind: kind, Components: components}
}

// DecodeLegacyEmbedding decodes a compatibility-era binary embedding: a
// little-endian float32 buffer with no framing.
func DecodeLegacyEmbedding(raw []byte) Embedding {
	if len(raw) < 4 {
		return Embedding{}
	}
	components := make([]float32, len(raw)/4)
	for i := range components {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		components[i] = math.Float32frombits(bits)
	}
	return NewEmbedding(components)
}

func (e Embedding) IsZero() bool {
	return len(e.Components) == 0
}

type PoseKind uint8

const (
	PoseKindUnknown PoseKind = iota
	PoseKindPlanar
	PoseKindAngular
)

// PoseSample describes a head position relative to the camera under one of
// two schemas: planar {x, y, scale} or angular {roll, pitch, yaw, dist}.
// The two schemas are never cross-compared.
type PoseSample struct {
	Kind PoseKind

	X     float64
	Y     float64
	Scale float64

	Roll  float64
	Pitch float64
	Yaw   float64
	Dist  float64
}

// PoseFromMap tags a raw pose mapping by the schema whose required keys it
// fully satisfies. Planar keys are tried first, matching the order legacy
// records were written in. A mapping satisfying neither schema is invalid
// and matches nothing.
func PoseFromMap(raw map[string]float64) PoseSample {
	if raw == nil {
		return PoseSample{}
	}
	if hasKeys(raw, "x", "y", "scale") {
		return PoseSample{
			Kind:  PoseKindPlanar,
			X:     raw["x"],
			Y:     raw["y"],
			Scale: raw["scale"],
		}
	}
	if hasKeys(raw, "roll", "pitch", "yaw", "dist") {
		return PoseSample{
			Kind:  PoseKindAngular,
			Roll:  raw["roll"],
			Pitch: raw["pitch"],
			Yaw:   raw["yaw"],
			Dist:  raw["dist"],
		}
	}
	return PoseSample{}
}

func hasKeys(raw map[string]float64, keys ...string) bool {
	for _, key := range keys {
		if _, ok := raw[key]; !ok {
			return false
		}
	}
	return true
}

// FaceRecord is a user's enrolled embedding data as consumed by the
// collection matcher. When Collection is non-empty it is authoritative and
// Legacy is ignored.
type FaceRecord struct {
	Legacy         Embedding
	Collection     []Embedding
	FailedAttempts int
}

// PoseRecord is a user's enrolled pose data as consumed by the position
// collection matcher.
type PoseRecord struct {
	Legacy         *PoseSample
	Collection     []PoseSample
	FailedAttempts int
}

// ErrNoFaceDetected reports that extraction found no face in the supplied
// image. It is a normal user-facing outcome, not a service fault.
var ErrNoFaceDetected = errors.New("no face detected in image")

// EmbeddingExtractor turns a base64-encoded capture into a facial
// embedding. Implementations are selected at startup configuration.
type EmbeddingExtractor interface {
	ExtractEmbedding(imageB64 string) (*Embedding, error)
}
