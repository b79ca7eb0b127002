package dto

type CreateUserDTO struct {
	FirstName  string `json:"firstName" validate:"required,name_spacial_char"`
	LastName   string `json:"lastName" validate:"required,name_spacial_char"`
	Email      string `json:"email" validate:"required,email"`
	NationalID string `json:"nationalID" validate:"required,national_id"`
	Password   string `json:"password" validate:"required,password"`
}

type LoginCredentialsDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginFaceDTO struct {
	SessionID string             `json:"sessionID" validate:"required"`
	Image     string             `json:"image" validate:"required"`
	Position  map[string]float64 `json:"position" validate:"required"`
}

type LoginSecondaryFactorDTO struct {
	SessionID  string `json:"sessionID" validate:"required"`
	NationalID string `json:"nationalID" validate:"required,national_id"`
	Code       string `json:"code" validate:"required"`
}

type EnrollBiometricsDTO struct {
	Images    []string             `json:"images" validate:"required,min=1,dive,required"`
	Positions []map[string]float64 `json:"positions" validate:"required,min=1"`

	// Replace discards previously enrolled samples instead of appending.
	Replace bool `json:"replace"`
}
