package schema

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var versionSegment = regexp.MustCompile(`^v\d+(?:\.\d+)*$`)

// deriveVersion extracts a version label for a schema document: a version
// segment of its $id URL, then its title, then the fetch timestamp. The
// timestamp is a fallback label, not a true version.
func deriveVersion(schema map[string]any, fetchedAt time.Time) string {
	if id, ok := schema["$id"].(string); ok && id != "" {
		if u, err := url.Parse(id); err == nil {
			for _, seg := range strings.Split(u.Path, "/") {
				if versionSegment.MatchString(seg) {
					return seg
				}
			}
		}
	}
	if title, ok := schema["title"].(string); ok && title != "" {
		return title
	}
	return fetchedAt.UTC().Format(time.RFC3339)
}
