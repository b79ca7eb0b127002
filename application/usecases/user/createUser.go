package user_usecases

import (
	"context"
	"errors"
	"strings"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/repository"
	"veriface.io/entities"
	"veriface.io/infrastructure/cryptography"
	"veriface.io/infrastructure/logger"
	"veriface.io/infrastructure/totp"
)

// CreateUserUseCase registers an account and provisions its TOTP secondary
// factor. The returned url is the otpauth provisioning URI the client
// renders as a QR code exactly once.
func CreateUserUseCase(ctx any, payload *dto.CreateUserDTO) (*entities.User, *string, error) {
	payload.Email = strings.ToLower(payload.Email)
	userRepo := repository.UserRepo()
	exists, err := userRepo.CountDocs(map[string]any{
		"email": payload.Email,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err)
		return nil, nil, err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "an account with this email already exists")
		return nil, nil, errors.New("")
	}
	exists, err = userRepo.CountDocs(map[string]any{
		"nationalID": payload.NationalID,
	})
	if err != nil {
		apperrors.UnknownError(ctx, err)
		return nil, nil, err
	}
	if exists != 0 {
		apperrors.EntityAlreadyExistsError(ctx, "an account with this national id already exists")
		return nil, nil, errors.New("")
	}

	hashedPassword, err := cryptography.CryptoHahser.HashString(payload.Password, nil)
	if err != nil {
		logger.Error("an error occured while hashing user password", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}

	secret, url, err := totp.TOTPService.GenerateSecret(payload.Email)
	if err != nil {
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	encryptedSecret, err := cryptography.EncryptData([]byte(*secret), nil)
	if err != nil {
		logger.Error("an error occured while encrypting totp seed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}

	user, err := userRepo.CreateOne(context.TODO(), entities.User{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		NationalID: payload.NationalID,
		Password:   string(hashedPassword),
		TOTPSecret: *encryptedSecret,
		Active:     true,
	})
	if err != nil {
		logger.Error("could not create user", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		apperrors.FatalServerError(ctx, err)
		return nil, nil, err
	}
	return user, url, nil
}
