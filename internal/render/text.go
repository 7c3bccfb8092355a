package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Terminal makes stored task text safe to print to a terminal: escape
// sequences are stripped and remaining control characters become spaces.
func Terminal(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, ansi.Strip(text))
}
