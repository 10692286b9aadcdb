package utils

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
// The local part is kept as typed since some mail servers treat it case-sensitively.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
