package airwallex

import "regexp"

const redacted = "[REDACTED]"

// Matches both plain JSON ("number":"4111...") and JSON embedded in a string
// (\"number\":\"4111...\").
var (
	cardNumberPattern = regexp.MustCompile(`(\\?"number\\?"\s*:\s*\\?")[^"\\]*`)
	cvcPattern        = regexp.MustCompile(`(\\?"cvc\\?"\s*:\s*\\?")[^"\\]*`)
)

// Scrub replaces card number and CVC values in a transcript with a fixed marker.
func Scrub(transcript string) string {
	out := cardNumberPattern.ReplaceAllString(transcript, "${1}"+redacted)
	return cvcPattern.ReplaceAllString(out, "${1}"+redacted)
}
