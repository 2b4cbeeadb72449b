package cli

import "regexp"

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`\d`)
)

// ValidateUsername requires at least 3 characters: letters, digits and
// underscores only.
func ValidateUsername(username string) bool {
	return len(username) >= 3 && usernameRe.MatchString(username)
}

// ValidateEmail checks the rough shape of an email address. The backend has
// the final say.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePassword requires at least 8 characters with an upper-case
// letter, a lower-case letter and a digit.
func ValidatePassword(password string) bool {
	return len(password) >= 8 &&
		upperRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		digitRe.MatchString(password)
}
