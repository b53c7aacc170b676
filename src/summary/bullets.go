package summary

import (
	"regexp"
	"strings"
)

var bulletMarker = regexp.MustCompile(`^\*\s*`)

// Bullets splits a summary into display items: blank lines are dropped and a
// leading "*" marker with the whitespace after it is removed.
func Bullets(summary string) []string {
	lines := strings.Split(summary, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, bulletMarker.ReplaceAllString(line, ""))
	}
	return items
}
