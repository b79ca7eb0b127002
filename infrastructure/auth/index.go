package auth

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt"

	"veriface.io/infrastructure/logger"
)

func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":       os.Getenv("JWT_ISSUER"),
		"userID":    claimsData.UserID,
		"email":     claimsData.Email,
		"firstName": claimsData.FirstName,
		"lastName":  claimsData.LastName,
		"deviceID":  claimsData.DeviceID,
		"userAgent": claimsData.UserAgent,
		"tokenType": claimsData.TokenType,
		"iat":       claimsData.IssuedAt,
		"exp":       claimsData.ExpiresAt,
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, errors.New("invalid token signature used")
		}
		logger.Error("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	return token, nil
}
