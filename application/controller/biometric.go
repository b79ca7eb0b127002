package controller

import (
	"net/http"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	user_usecases "veriface.io/application/usecases/user"
	server_response "veriface.io/infrastructure/serverResponse"
	"veriface.io/infrastructure/validator"
)

func EnrollBiometrics(ctx *interfaces.ApplicationContext[dto.EnrollBiometricsDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	err := user_usecases.EnrollBiometricsUseCase(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Body)
	if err != nil {
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "enrollment samples saved", nil, nil, nil)
}
