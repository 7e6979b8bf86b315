package usecase

import (
	"regexp"
	"strings"
)

const maxSearchTextLength = 100

var (
	// Control characters never belong in a search box
	controlCharPattern = regexp.MustCompile(`[\x00-\x1f\x7f]`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// normalizeSearchText cleans free text typed into a search box.
// Strips control characters, collapses whitespace and caps the length at a word boundary.
// Case is preserved; matching is case-insensitive downstream.
func normalizeSearchText(text string) string {
	if text == "" {
		return ""
	}

	cleaned := controlCharPattern.ReplaceAllString(text, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxSearchTextLength {
		cleaned = cleaned[:maxSearchTextLength]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxSearchTextLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.ToValidUTF8(cleaned, "")
	}

	return cleaned
}

// containsFold reports whether substr is within s, ignoring case
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
