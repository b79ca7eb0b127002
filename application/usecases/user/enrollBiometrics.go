package user_usecases

import (
	"errors"
	"fmt"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/infrastructure/biometric"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/logger"
)

// EnrollBiometricsUseCase captures one or more enrollment samples for a
// user. Images and positions are parallel slices, same index = same
// capture. Every sample must yield a detectable face and a pose under a
// recognised schema before anything is persisted.
func EnrollBiometricsUseCase(ctx any, userID string, payload *dto.EnrollBiometricsDTO) error {
	if len(payload.Images) != len(payload.Positions) {
		apperrors.ClientError(ctx, "each image needs a matching position sample", nil, nil)
		return errors.New("")
	}

	embeddings := make([][]float32, 0, len(payload.Images))
	positions := make([]map[string]float64, 0, len(payload.Positions))
	for i, image := range payload.Images {
		embedding, err := biometric.Extractor.ExtractEmbedding(image)
		if err != nil {
			if errors.Is(err, types.ErrNoFaceDetected) {
				apperrors.ClientError(ctx, fmt.Sprintf("no face detected in sample %d, please retake it", i+1), nil, nil)
				return errors.New("")
			}
			logger.Error("embedding extraction failed during enrollment", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			}, logger.LoggerOptions{
				Key:  "userID",
				Data: userID,
			})
			apperrors.FatalServerError(ctx, err)
			return err
		}
		if pose := types.PoseFromMap(payload.Positions[i]); pose.Kind == types.PoseKindUnknown {
			apperrors.ClientError(ctx, fmt.Sprintf("position sample %d does not match a supported schema", i+1), nil, nil)
			return errors.New("")
		}
		embeddings = append(embeddings, embedding.Components)
		positions = append(positions, payload.Positions[i])
	}

	userRepo := repository.UserRepo()
	user, err := userRepo.FindByID(userID)
	if err != nil {
		apperrors.UnknownError(ctx, err)
		return err
	}
	if user == nil {
		apperrors.NotFoundError(ctx, "account not found")
		return errors.New("")
	}

	if !payload.Replace {
		embeddings = append(user.FacialEmbeddings, embeddings...)
		positions = append(user.Positions, positions...)
	}
	_, err = userRepo.UpdatePartialByID(userID, map[string]any{
		"facialEmbeddings": embeddings,
		"positions":        positions,
	})
	if err != nil {
		logger.Error("could not persist enrollment samples", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: userID,
		})
		apperrors.FatalServerError(ctx, err)
		return err
	}
	return nil
}
