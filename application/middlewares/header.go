package middlewares

import (
	"errors"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
)

func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	agent := ctx.GetHeader("User-Agent")
	if agent == nil {
		apperrors.ClientError(ctx.Ctx, "missing user agent header", []error{errors.New("user agent header missing")}, nil)
		return nil, false
	}
	ctx.UserAgent = *agent
	if deviceID := ctx.GetHeader("X-Device-Id"); deviceID != nil {
		ctx.DeviceID = *deviceID
	}
	ctx.ClientIP = clientIP
	return ctx, true
}
