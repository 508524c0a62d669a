package helpers

import "strings"

// MaskEmail hides a winner's address for the public feed: the first three
// characters of the local part survive, the rest is replaced with "***", the
// domain stays visible. Local parts shorter than three characters keep what
// they have.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	visible := 3
	if at < visible {
		visible = at
	}
	return email[:visible] + "***" + email[at:]
}
