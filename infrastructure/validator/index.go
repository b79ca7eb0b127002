package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("password", validatePasswordStrength)
	validate.RegisterValidation("national_id", validateNationalID)
	validate.RegisterValidation("name_spacial_char", validateNameWithSpecialChars)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validate.Var(value, rules)
}

func validateStruct(payload interface{}) *[]error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		errs := []error{err}
		return &errs
	}
	errs := []error{}
	for _, fieldErr := range validationErrs {
		errs = append(errs, fmt.Errorf("%s failed validation on rule %s", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
	}
	return &errs
}

var ValidatorInstance = Validator{}
