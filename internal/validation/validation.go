// Package validation holds the pure credential-format checks applied at
// registration. Both checks are deterministic and side-effect free.
package validation

import "regexp"

var (
	gmailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
	campusPattern = regexp.MustCompile(`^[a-z]+@my\.cspc\.edu\.ph$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*()_+=\-{}[\]:;"'<>,.?/]`)
)

// IsValidEmail accepts a Gmail address or a campus address. The campus
// pattern only admits lowercase local parts.
func IsValidEmail(email string) bool {
	return gmailPattern.MatchString(email) || campusPattern.MatchString(email)
}

// IsStrongPassword requires at least 8 characters with an uppercase letter, a
// lowercase letter, a digit and a special character.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	if !upperPattern.MatchString(password) {
		return false
	}
	if !lowerPattern.MatchString(password) {
		return false
	}
	if !digitPattern.MatchString(password) {
		return false
	}
	return specialPattern.MatchString(password)
}
