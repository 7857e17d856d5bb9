// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// unknownAuthor is the single author recorded when no author text is found.
const unknownAuthor = "Unknown"

// untitled is the title recorded when no title text is found.
const untitled = "Untitled"

var (
	authorSplitPattern = regexp.MustCompile(`,|\band\b`)
	leadingDashPattern = regexp.MustCompile(`^\s*-\s*`)
	tagPattern         = regexp.MustCompile(`<[^>]+>`)
)

// splitAuthors splits an author string on commas and the standalone word
// "and". The result is never empty.
func splitAuthors(s string) []string {
	var authors []string
	for _, part := range authorSplitPattern.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	if len(authors) == 0 {
		return []string{unknownAuthor}
	}
	return authors
}

// truncate shortens s to width display columns, marking the cut with "...".
func truncate(s string, width int) string {
	return runewidth.Truncate(strings.TrimSpace(s), width, "...")
}
