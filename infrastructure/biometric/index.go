package biometric

import (
	"os"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

var Extractor types.EmbeddingExtractor

// InitialiseBiometricService selects the embedding extractor for this
// deployment: the face recognition service when configured, otherwise the
// pixel-average fallback.
func InitialiseBiometricService() {
	baseURL := os.Getenv("FACE_SERVICE_URL")
	if baseURL != "" {
		Extractor = &RemoteFaceExtractor{
			Network: &network.NetworkController{
				BaseUrl: baseURL,
			},
		}
		logger.Info("biometric service initialised with remote face recognition", logger.LoggerOptions{
			Key:  "base_url",
			Data: baseURL,
		})
		return
	}
	Extractor = &PixelAverageExtractor{}
	logger.Warning("FACE_SERVICE_URL not set, falling back to pixel-average fingerprints")
}
