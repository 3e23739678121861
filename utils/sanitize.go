package utils

import "github.com/microcosm-cc/bluemonday"

// Habit names and journal notes are plain text, so everything HTML-shaped
// is stripped rather than allowed through.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from user-supplied text.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
