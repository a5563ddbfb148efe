package view

import (
	"strings"
	"unicode/utf8"

	"github.com/Iron-Ham/peek/internal/version"
)

// Welcome returns the banner shown on an empty buffer for a screen width.
func Welcome(width int) string {
	return welcomeMessage(width, version.Banner())
}

// welcomeMessage centres text behind a leading "~". When the screen is not
// wider than text the banner collapses to "~". The result never exceeds
// width characters.
func welcomeMessage(width int, text string) string {
	length := utf8.RuneCountInString(text)
	if width <= length {
		return truncate(emptyRow, width)
	}

	padding := (width-length)/2 - 1
	if padding < 0 {
		padding = 0
	}
	return truncate(emptyRow+strings.Repeat(" ", padding)+text, width)
}
