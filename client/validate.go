package client

import "regexp"

var loginPattern = regexp.MustCompile(`^[a-z0-9_]{1,25}$`)

// ValidLogin reports whether s is a well-formed channel or user login
// name. Logins are always lowercase.
func ValidLogin(s string) bool {
	return loginPattern.MatchString(s)
}
