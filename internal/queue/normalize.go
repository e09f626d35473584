package queue

import (
	"regexp"
	"strings"
)

var markdownLink = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)

// Normalize prepares a pasted URL for storage. A markdown link such as
// "[title](https://youtu.be/x&si=abc)" is reduced to its target, and
// everything from the first '&' onward is dropped to strip tracking
// parameters.
func Normalize(raw string) string {
	url := strings.TrimSpace(raw)
	if m := markdownLink.FindStringSubmatch(url); m != nil {
		url = m[1]
	}
	if idx := strings.IndexByte(url, '&'); idx >= 0 {
		url = url[:idx]
	}
	return strings.TrimSpace(url)
}
