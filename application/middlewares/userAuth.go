package middlewares

import (
	"strings"

	"github.com/golang-jwt/jwt"

	apperrors "veriface.io/application/appErrors"
	"veriface.io/application/interfaces"
	"veriface.io/infrastructure/auth"
)

func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authHeader string) (*interfaces.ApplicationContext[any], bool) {
	if authHeader == "" {
		apperrors.AuthenticationError(ctx.Ctx, "missing auth token", nil)
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := auth.DecodeAuthToken(tokenString)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "invalid or expired auth token", nil)
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		apperrors.AuthenticationError(ctx.Ctx, "invalid or expired auth token", nil)
		return nil, false
	}
	if claims["tokenType"] != string(auth.AccessToken) {
		apperrors.AuthenticationError(ctx.Ctx, "invalid token type used", nil)
		return nil, false
	}
	userID, _ := claims["userID"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		apperrors.AuthenticationError(ctx.Ctx, "invalid or expired auth token", nil)
		return nil, false
	}

	ctx.SetContextData("UserID", userID)
	ctx.SetContextData("Email", email)
	return ctx, true
}
