package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeURL trims the input and lowercases scheme and host of absolute
// URLs. Anything that does not parse is returned trimmed, for the validator
// to reject.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
