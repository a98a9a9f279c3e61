package certgen

import (
	"regexp"
	"strings"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
	underscoreRuns      = regexp.MustCompile(`_+`)
)

// SanitizeFilename replaces every character outside [A-Za-z0-9_.-] with "_",
// collapses runs of "_" and trims them from both ends.
//
//	SanitizeFilename("Advanced JavaScript_John Smith.pdf") == "Advanced_JavaScript_John_Smith.pdf"
func SanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}
