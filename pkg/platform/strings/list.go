// Package strings holds small string-list helpers shared by config and middleware.
package strings

import (
	"strings"
)

// SplitList splits a comma separated value (header or environment variable)
// into trimmed, lower-cased, de-duplicated entries. Order of first
// occurrence is preserved.
//
//	SplitList(" PXEnableGrouping , pxenablegrouping,XboxStyle")
//	// []string{"pxenablegrouping", "xboxstyle"}
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return DedupeAndTrimLower(strings.Split(raw, ","))
}

// DedupeAndTrimLower removes empty entries and duplicates, compared
// case-insensitively, and returns the lower-cased survivors in order.
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// Set builds a membership set from values. Entries are lower-cased.
func Set(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range DedupeAndTrimLower(values) {
		set[v] = struct{}{}
	}
	return set
}
