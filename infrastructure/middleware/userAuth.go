package middlewares

import (
	"github.com/gin-gonic/gin"

	"veriface.io/application/interfaces"
	"veriface.io/application/middlewares"
)

func UserAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		savedCtx := (ctx.MustGet("AppContext")).(*interfaces.ApplicationContext[any])
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:       ctx,
			Keys:      savedCtx.Keys,
			Header:    ctx.Request.Header,
			DeviceID:  savedCtx.DeviceID,
			UserAgent: savedCtx.UserAgent,
			ClientIP:  savedCtx.ClientIP,
		}, ctx.GetHeader("Authorization"))
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
