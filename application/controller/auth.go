package controller

import (
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/constants"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	"veriface.io/application/repository"
	login_usecases "veriface.io/application/usecases/login"
	user_usecases "veriface.io/application/usecases/user"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/session"
	"veriface.io/infrastructure/validator"
)

func RegisterUser(ctx *interfaces.ApplicationContext[dto.CreateUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	user, totpURL, err := user_usecases.CreateUserUseCase(ctx.Ctx, ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "account created", map[string]any{
		"user":    user,
		"totpURL": totpURL,
	}, nil, &constants.ACCOUNT_CREATED)
}

func LoginCredentials(ctx *interfaces.ApplicationContext[dto.LoginCredentialsDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	result, flowErr := login_usecases.Machine().SubmitCredentials(ctx.Body.Email, ctx.Body.Password, requestMetadata(ctx.DeviceID, ctx.UserAgent, ctx.ClientIP))
	if flowErr != nil {
		respondFlowError(ctx.Ctx, flowErr, false)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "credentials verified, face verification pending", map[string]any{
		"sessionID": result.SessionID,
		"stage":     result.Stage,
	}, nil, &constants.PENDING_FACE_VERIFICATION)
}

func LoginFace(ctx *interfaces.ApplicationContext[dto.LoginFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	result, flowErr := login_usecases.Machine().SubmitFace(ctx.Body.SessionID, ctx.Body.Image, ctx.Body.Position, requestMetadata(ctx.DeviceID, ctx.UserAgent, ctx.ClientIP))
	if flowErr != nil {
		respondFlowError(ctx.Ctx, flowErr, result != nil && result.AlertSent)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face verified, secondary factor pending", map[string]any{
		"sessionID": result.SessionID,
		"stage":     result.Stage,
	}, nil, &constants.PENDING_SECONDARY_FACTOR)
}

func LoginSecondaryFactor(ctx *interfaces.ApplicationContext[dto.LoginSecondaryFactorDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	result, flowErr := login_usecases.Machine().SubmitSecondaryFactor(ctx.Body.SessionID, ctx.Body.NationalID, ctx.Body.Code, requestMetadata(ctx.DeviceID, ctx.UserAgent, ctx.ClientIP))
	if flowErr != nil {
		respondFlowError(ctx.Ctx, flowErr, false)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "login successful", map[string]any{
		"accessToken": result.AccessToken,
		"user":        result.User,
	}, nil, nil)
}

func UserProfile(ctx *interfaces.ApplicationContext[any]) {
	user, err := repository.UserRepo().FindByID(ctx.GetStringContextData("UserID"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "account not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "profile fetched", user, nil, nil)
}

func requestMetadata(deviceID string, userAgent string, clientIP string) session.Metadata {
	return session.Metadata{
		DeviceID:  deviceID,
		UserAgent: userAgent,
		ClientIP:  clientIP,
	}
}

func respondFlowError(ctx any, flowErr *login_usecases.FlowError, alertSent bool) {
	switch flowErr.Code {
	case login_usecases.CodeInvalidCredentials:
		apperrors.AuthenticationError(ctx, flowErr.Message, &constants.INVALID_CREDENTIALS)
	case login_usecases.CodeUserNotFound:
		apperrors.NotFoundError(ctx, flowErr.Message)
	case login_usecases.CodeFlowOrderViolation:
		apperrors.ClientError(ctx, flowErr.Message, nil, &constants.FLOW_ORDER_VIOLATION)
	case login_usecases.CodeFaceNotDetected:
		apperrors.ClientError(ctx, flowErr.Message, nil, &constants.FACE_NOT_DETECTED)
	case login_usecases.CodeFaceMismatch, login_usecases.CodePositionMismatch:
		responseCode := &constants.FACE_MISMATCH
		if alertSent {
			responseCode = &constants.ACCOUNT_LOCK_ALERT_SENT
		}
		apperrors.AuthenticationError(ctx, flowErr.Message, responseCode)
	case login_usecases.CodeSecondaryFactorInvalid:
		apperrors.AuthenticationError(ctx, flowErr.Message, &constants.SECONDARY_FACTOR_INVALID)
	case login_usecases.CodeMalformedInput:
		apperrors.ErrorProcessingPayload(ctx)
	default:
		apperrors.FatalServerError(ctx, flowErr)
	}
}
