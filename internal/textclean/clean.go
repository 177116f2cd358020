// Package textclean normalizes free-text symptom descriptions before analysis.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// controlRegex matches control characters other than tab and newline.
	controlRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	// markupRegex matches HTML-like tags pasted along with the text.
	markupRegex = regexp.MustCompile(`(?s)<[^<>]{1,200}>`)
)

// StripControl removes control characters.
func StripControl(text string) string {
	return controlRegex.ReplaceAllString(text, "")
}

// StripMarkup removes HTML-like tags.
func StripMarkup(text string) string {
	return markupRegex.ReplaceAllString(text, " ")
}

// IsBlank reports whether nothing but whitespace remains after cleaning.
func IsBlank(text string) bool {
	return strings.TrimSpace(Clean(text)) == ""
}

// Normalize folds compatibility forms and drops control characters but keeps
// every other character, so keyword scans see all of the input.
func Normalize(text string) string {
	// NFKC folds compatibility forms such as full-width letters and ligatures.
	return StripControl(norm.NFKC.String(text))
}

// Clean performs full normalization on text.
// This is the function to use on user input before extraction.
func Clean(text string) string {
	return strings.TrimSpace(StripMarkup(Normalize(text)))
}
