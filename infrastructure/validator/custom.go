package validator

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	hasDigit := false
	hasSpecialChar := false

	for _, char := range password {
		if unicode.IsDigit(char) {
			hasDigit = true
		} else if !unicode.IsLetter(char) {
			hasSpecialChar = true
		}
	}

	return hasDigit && hasSpecialChar
}

func validateNationalID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	regex := regexp.MustCompile(`^[0-9A-Za-z\-]{6,20}$`)
	return regex.MatchString(id)
}

func validateNameWithSpecialChars(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	regex := regexp.MustCompile(`^[\p{L}'\- ]+$`)
	return regex.MatchString(name)
}
