package entities

import (
	"fmt"
	"time"

	"veriface.io/application/constants"
	"veriface.io/application/utils"
)

// User is an account authenticated through the multi-stage facial login
// flow. Biometric enrollment data lives in two generations of fields:
//
//   - FacialData/PositionData: single-sample compatibility fields written by
//     early enrollments. FacialData is a little-endian float32 buffer.
//   - FacialEmbeddings/Positions: parallel slices of enrolled samples, same
//     index = same capture. When non-empty this collection is authoritative
//     and the compatibility fields are ignored.
type User struct {
	FirstName  string `bson:"firstName" json:"firstName" validate:"required,name_spacial_char"`
	LastName   string `bson:"lastName" json:"lastName" validate:"required,name_spacial_char"`
	Email      string `bson:"email" json:"email" validate:"required,email"`
	NationalID string `bson:"nationalID" json:"nationalID" validate:"required,national_id"`
	Password   string `bson:"password" json:"-"`

	FacialData   []byte             `bson:"facialData" json:"-"`
	PositionData map[string]float64 `bson:"positionData" json:"-"`

	FacialEmbeddings [][]float32          `bson:"facialEmbeddings" json:"-"`
	Positions        []map[string]float64 `bson:"positions" json:"-"`

	FailedAttempts int `bson:"failedAttempts" json:"-"`

	// TOTP seed for the secondary login factor, AES-encrypted at rest.
	TOTPSecret string `bson:"totpSecret" json:"-"`

	Active        bool    `bson:"active" json:"active"`
	BlockedReason *string `bson:"blockedReason" json:"-"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"-"`
	DeletedReason *string    `bson:"deletedReason" json:"-"`
}

func (model User) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	model.UpdatedAt = now
	return &model
}

func (model *User) FullName() string {
	return fmt.Sprintf("%s %s", model.FirstName, model.LastName)
}

// ClampedFailedAttempts bounds a candidate counter value to the range the
// adaptive matching policy is defined on.
func ClampedFailedAttempts(value int) int {
	if value < 0 {
		return 0
	}
	if value > constants.MaxFailedAttempts {
		return constants.MaxFailedAttempts
	}
	return value
}
