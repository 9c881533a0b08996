package meeting

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeps     = regexp.MustCompile(`[\s_-]+`)
)

// GenerateSlug builds "<projectID>-<title-slug>-<unix millis>".
// Titles with nothing usable fall back to "meeting".
func GenerateSlug(title string, projectID int, now time.Time) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = nonSlugChars.ReplaceAllString(base, "")
	base = slugSeps.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "meeting"
	}
	return fmt.Sprintf("%d-%s-%d", projectID, base, now.UnixMilli())
}
