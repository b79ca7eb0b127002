package biometric

import (
	"encoding/json"
	"fmt"

	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/network"
)

// RemoteFaceExtractor extracts facial embeddings through the standalone
// face recognition service.
type RemoteFaceExtractor struct {
	Network *network.NetworkController
}

type extractEmbeddingRequest struct {
	Image string `json:"image"`
}

type extractEmbeddingResponse struct {
	Success      bool      `json:"success"`
	FaceDetected bool      `json:"face_detected"`
	Embedding    []float32 `json:"embedding"`
	Error        *string   `json:"error"`
}

func (r *RemoteFaceExtractor) ExtractEmbedding(imageB64 string) (*types.Embedding, error) {
	if imageB64 == "" {
		return nil, types.ErrNoFaceDetected
	}

	response, statusCode, err := r.Network.Post("/extract-embedding", &map[string]string{}, extractEmbeddingRequest{
		Image: imageB64,
	})
	if err != nil {
		logger.Error("error calling face recognition service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if statusCode == nil || *statusCode != 200 {
		logger.Error("face recognition service returned a failure status", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, fmt.Errorf("face recognition service unavailable")
	}

	var result extractEmbeddingResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling face recognition service response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !result.Success {
		if result.Error != nil {
			return nil, fmt.Errorf("face recognition service error: %s", *result.Error)
		}
		return nil, fmt.Errorf("face recognition service error")
	}
	if !result.FaceDetected || len(result.Embedding) == 0 {
		return nil, types.ErrNoFaceDetected
	}

	embedding := types.NewEmbedding(result.Embedding)
	return &embedding, nil
}
