package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeText strips markup then collapses whitespace. Used for costume
// names, categories and descriptions.
func NormalizeText(s string) string {
	return Pipeline{StripHTML, TrimAndNormalize}.Apply(s)
}

// NormalizeNotes strips markup and trims, keeping the caller's line breaks.
func NormalizeNotes(s string) string {
	return strings.TrimSpace(StripHTML(s))
}

func NormalizeSize(size string) string {
	return TrimAndNormalize(size)
}
