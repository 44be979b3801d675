package users

import (
	"strings"
	"unicode"

	"github.com/shikhasoumya1612/ecommerce/pkg/apperr"
)

const specialChars = "@#$%^&+="

// ValidatePassword applies the registration password policy. Checks run in a
// fixed order and the first violation is the one reported.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperr.New(apperr.InvalidInput, "Invalid Password : The length of the password must be at least 8")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return apperr.New(apperr.InvalidInput, "Invalid Password : The password must contain at least one digit.")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return apperr.New(apperr.InvalidInput, "Invalid Password : The password must contain at least one lowercase letter.")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return apperr.New(apperr.InvalidInput, "Invalid Password : The password must contain at least one uppercase letter.")
	}
	if !strings.ContainsAny(password, specialChars) {
		return apperr.New(apperr.InvalidInput, "Invalid Password : The password must contain at least one special character.")
	}
	if strings.ContainsFunc(password, unicode.IsSpace) {
		return apperr.New(apperr.InvalidInput, "Invalid Password : The password must not contain any whitespace.")
	}
	return nil
}
