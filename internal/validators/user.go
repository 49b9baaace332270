package validators

import (
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[a-z0-9_.]{3,50}$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// NormalizeUsername lower-cases and trims the login name.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsUsernameValid accepts 3 to 50 lowercase letters, digits, "_" or ".".
func IsUsernameValid(s string) bool {
	return usernameRe.MatchString(s)
}

// NormalizePhone strips the separators people type into phone fields.
func NormalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}

func IsPhoneValid(s string) bool {
	return phoneRe.MatchString(s)
}
