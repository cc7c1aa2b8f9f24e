package reconcile

import "strings"

// Sentinel strings that Oracle exports emit for missing values. They collapse
// to the empty string so they never leak into output tables.
var sentinels = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
}

// Normalize trims surrounding whitespace and collapses textual null sentinels
// ("nan", "none", "null", case-insensitive) to the empty string. Empty string
// is the canonical representation of unknown/unlinked throughout the system.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := sentinels[strings.ToLower(s)]; ok {
		return ""
	}
	return s
}
