package login_usecases

import (
	"time"

	"veriface.io/entities"
	"veriface.io/infrastructure/biometric/types"
	"veriface.io/infrastructure/session"
)

// UserStore is the slice of user persistence the login flow needs.
type UserStore interface {
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	SetFailedAttempts(id string, attempts int) error
}

// SecondaryFactorValidator checks the one-time code presented at the last
// login stage against the user's enrolled seed.
type SecondaryFactorValidator interface {
	Validate(user *entities.User, code string) bool
}

// TokenIssuer mints the credential handed out once every stage has passed.
type TokenIssuer interface {
	IssueAccessToken(user *entities.User, meta session.Metadata) (*string, error)
}

// AlertDispatcher notifies an account owner that their face verification
// failure counter hit its cap. Dispatch must not block the login request.
type AlertDispatcher interface {
	DispatchSecurityAlert(user *entities.User, meta session.Metadata)
}

// LockAcquirer takes a short-lived advisory lock, returning a release
// function and whether the lock was obtained.
type LockAcquirer func(key string, ttl time.Duration) (func(), bool)

// ExtractorProvider defers extractor resolution to call time since the
// deployment-wide extractor is selected during startup.
type ExtractorProvider func() types.EmbeddingExtractor

type CredentialsResult struct {
	SessionID string
	Stage     session.Stage
}

type FaceResult struct {
	SessionID string
	Stage     session.Stage
	AlertSent bool
}

type SecondaryFactorResult struct {
	AccessToken string
	User        *entities.User
}
