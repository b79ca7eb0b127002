package biometric

import (
	"encoding/base64"
	"math"
	"strings"

	"veriface.io/infrastructure/biometric/types"
)

// fingerprintComponents is the 16x16x3 crop size the fallback fingerprint
// averages over.
const fingerprintComponents = 768

// PixelAverageExtractor is a crude embedding fallback for deployments
// without the face recognition service: it buckets the raw decoded image
// bytes into a fixed-length vector and L2-normalizes it. Fingerprints
// produced this way are cosine-compared, never metric-compared.
type PixelAverageExtractor struct{}

func (p *PixelAverageExtractor) ExtractEmbedding(imageB64 string) (*types.Embedding, error) {
	if imageB64 == "" {
		return nil, types.ErrNoFaceDetected
	}
	// captures may arrive as data URIs
	if idx := strings.IndexByte(imageB64, ','); idx >= 0 && strings.HasPrefix(imageB64, "data:") {
		imageB64 = imageB64[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(imageB64)
	}
	if err != nil || len(raw) < fingerprintComponents {
		return nil, types.ErrNoFaceDetected
	}

	components := make([]float32, fingerprintComponents)
	bucketSize := len(raw) / fingerprintComponents
	for i := 0; i < fingerprintComponents; i++ {
		var sum int
		for j := i * bucketSize; j < (i+1)*bucketSize; j++ {
			sum += int(raw[j])
		}
		components[i] = float32(sum) / float32(bucketSize)
	}

	var norm float64
	for _, c := range components {
		norm += float64(c) * float64(c)
	}
	norm = math.Sqrt(norm) + 1e-6
	for i := range components {
		components[i] = float32(float64(components[i]) / norm)
	}

	embedding := types.Embedding{Kind: types.EmbeddingKindCosine, Components: components}
	return &embedding, nil
}
