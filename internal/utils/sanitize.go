package utils

import (
	"regexp"
	"strings"
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	eventHandlers = regexp.MustCompile(`(?i)on\w+=`)
)

// SanitizeInput strips the usual XSS vectors from free-text fields:
// angle brackets, javascript: protocol prefixes and inline event-handler
// attributes.
func SanitizeInput(input string) string {
	out := angleBrackets.ReplaceAllString(input, "")
	out = jsProtocol.ReplaceAllString(out, "")
	out = eventHandlers.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// StripPhoneSeparators removes whitespace, dashes and parentheses so
// phone numbers compare and validate on digits only.
func StripPhoneSeparators(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
	return replacer.Replace(phone)
}
