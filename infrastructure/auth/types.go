package auth

type TokenType string

const (
	AccessToken  TokenType = "access_token"
	RefreshToken TokenType = "refresh_token"
)

type ClaimsData struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	DeviceID  string
	UserAgent string
	TokenType TokenType
	IssuedAt  int64
	ExpiresAt int64
}
