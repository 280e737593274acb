package validation

import (
	"regexp"
	"strings"
)

var (
	separators = regexp.MustCompile(`[\s\-()]`)
	uzPhone    = regexp.MustCompile(`^\+?998[0-9]{9}$`)
)

// ValidatePhone reports whether raw is an Uzbek phone number.
// Accepts +998 XX XXX XX XX, +998XXXXXXXXX or 998XXXXXXXXX.
func ValidatePhone(raw string) bool {
	return uzPhone.MatchString(clean(raw))
}

// NormalizePhone brings a phone number to the canonical +998XXXXXXXXX
// form. It does not re-check length; validate first.
func NormalizePhone(raw string) string {
	cleaned := clean(raw)
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "998") {
		return "+" + cleaned
	}
	return "+998" + cleaned
}

func clean(raw string) string {
	return separators.ReplaceAllString(raw, "")
}
