package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	middlewares "veriface.io/infrastructure/middleware"
)

func BiometricRouter(router *gin.RouterGroup) {
	biometricRouter := router.Group("/biometrics")
	biometricRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		biometricRouter.POST("/enroll", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.EnrollBiometricsDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollBiometrics(&interfaces.ApplicationContext[dto.EnrollBiometricsDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
