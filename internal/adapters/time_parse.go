package adapters

import (
	"strings"
	"time"
)

// publishedDateLayouts covers the timestamp shapes Launchpad emits for
// date_published: ISO 8601 with microsecond precision and an explicit
// offset, plus the bare datetime older records carry.
var publishedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parsePublishedDate parses a publication timestamp, returning the zero
// time when the value is empty or unparseable.  Results normalize to
// UTC.
func parsePublishedDate(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	for _, layout := range publishedDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
