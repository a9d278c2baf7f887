package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxUnescapeRounds bounds how many layers of entity encoding are peeled.
const maxUnescapeRounds = 8

// StripHTML removes every tag and returns plain text. Entities are decoded so
// "Rock & Roll" survives unchanged, and decoded text is sanitized again until
// it stops changing, so encoded markup never comes back as live tags.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	for i := 0; i < maxUnescapeRounds; i++ {
		sanitized := strictPolicy.Sanitize(s)
		plain := html.UnescapeString(sanitized)
		if plain == s {
			return plain
		}
		s = plain
	}
	// Still decoding further layers: keep the escaped form.
	return strictPolicy.Sanitize(s)
}
