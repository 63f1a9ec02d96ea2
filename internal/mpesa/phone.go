package mpesa

import "strings"

// NormalizePhone canonicalizes a user-supplied phone number into the
// gateway's international format: digits only, starting with 254. It is
// total and performs no length validation; rejecting short numbers is the
// gateway's problem.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "0"):
		return "254" + digits[1:]
	case strings.HasPrefix(digits, "254"):
		return digits
	default:
		return "254" + digits
	}
}
