package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/controller"
	"veriface.io/application/controller/dto"
	"veriface.io/application/interfaces"
	middlewares "veriface.io/infrastructure/middleware"
)

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RegisterUser(&interfaces.ApplicationContext[dto.CreateUserDTO]{
				Ctx:       ctx,
				Body:      &body,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				ClientIP:  appContext.ClientIP,
			})
		})

		authRouter.POST("/login", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.LoginCredentialsDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.LoginCredentials(&interfaces.ApplicationContext[dto.LoginCredentialsDTO]{
				Ctx:       ctx,
				Body:      &body,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				ClientIP:  appContext.ClientIP,
			})
		})

		authRouter.POST("/login/face", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.LoginFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.LoginFace(&interfaces.ApplicationContext[dto.LoginFaceDTO]{
				Ctx:       ctx,
				Body:      &body,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				ClientIP:  appContext.ClientIP,
			})
		})

		authRouter.POST("/login/secondary", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.LoginSecondaryFactorDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.LoginSecondaryFactor(&interfaces.ApplicationContext[dto.LoginSecondaryFactorDTO]{
				Ctx:       ctx,
				Body:      &body,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				ClientIP:  appContext.ClientIP,
			})
		})

		authRouter.GET("/me", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.UserProfile(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
