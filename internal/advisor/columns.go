package advisor

import (
	"regexp"
	"strings"
)

var (
	nonIdentifier = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// columnKey pairs a user-supplied display column name with its
// identifier-safe schema key.
type columnKey struct {
	Original string
	Key      string
}

// sanitizeColumns maps arbitrary display names to keys safe for a JSON
// schema: non-alphanumeric, non-underscore characters become underscores and
// any remaining whitespace collapses to a single underscore. The original
// name is kept so generated rows can be re-expanded for export.
func sanitizeColumns(columns []string) []columnKey {
	keys := make([]columnKey, 0, len(columns))
	for _, col := range columns {
		original := strings.TrimSpace(col)
		key := nonIdentifier.ReplaceAllString(original, "_")
		key = whitespaceRun.ReplaceAllString(key, "_")
		keys = append(keys, columnKey{Original: original, Key: key})
	}
	return keys
}
