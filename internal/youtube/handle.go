package youtube

import (
	"regexp"
	"strings"
)

// Substrings that mark the input as a link rather than a channel name.
var videoDomains = []string{"youtube.com", "youtu.be"}

var handleRegex = regexp.MustCompile(`@([^/\s]+)`)

// ExtractHandle derives the channel search term from free-form input.
// Links yield the token after "@" up to the next "/" or whitespace, or ""
// when the link has no handle segment. Anything else is used trimmed.
func ExtractHandle(query string) string {
	if !IsVideoPlatformURL(query) {
		return strings.TrimSpace(query)
	}

	if m := handleRegex.FindStringSubmatch(query); m != nil {
		return m[1]
	}

	return ""
}

// IsVideoPlatformURL reports whether the input mentions a YouTube domain.
func IsVideoPlatformURL(input string) bool {
	lower := strings.ToLower(input)

	for _, domain := range videoDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}

	return false
}
