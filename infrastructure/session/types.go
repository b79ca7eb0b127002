package session

import "time"

// Stage names the step of the multi-stage login flow a session is waiting
// on. A session is only created once credentials have been verified, so
// the first stored stage is the face check.
type Stage string

const (
	StageFace            Stage = "face"
	StageSecondaryFactor Stage = "secondary_factor"
)

// LoginSession is the ephemeral state carried between login stages. It is
// bound to exactly one pending identity and destroyed on final success or
// flow restart; it never outlives its TTL.
type LoginSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userID"`
	Stage     Stage     `json:"stage"`
	DeviceID  string    `json:"deviceID"`
	UserAgent string    `json:"userAgent"`
	ClientIP  string    `json:"clientIP"`
	CreatedAt time.Time `json:"createdAt"`
}

// Metadata is the request context captured when a session is opened, used
// for security alerting.
type Metadata struct {
	DeviceID  string
	UserAgent string
	ClientIP  string
}

// Store persists login sessions between stage calls. A Find on a missing
// or expired session returns (nil, nil).
type Store interface {
	Create(userID string, meta Metadata) (*LoginSession, error)
	Find(id string) (*LoginSession, error)
	Advance(loginSession *LoginSession, stage Stage) error
	Destroy(id string) error
}
