// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/mec-library/internal/keywords"
	"github.com/pdiddy/mec-library/pkg/types"
)

const (
	markerWinner   = "Winner!"
	markerFinalist = "Finalist!"
)

var (
	lineBreakPattern    = regexp.MustCompile(`(?i)<br\s*/?>|\n`)
	leadingMarkerRegexp = regexp.MustCompile(`(?i)^(Winner!?|Finalist!?)\s*`)
	groupPattern        = regexp.MustCompile(`group(\d+)`)
)

// parseCard extracts a tutorial from a card-style division (2021 onward).
// The card carries an optional status badge, a linked thumbnail, the title
// and the authors, separated by line breaks.
func parseCard(sel *goquery.Selection, year int) (types.Tutorial, error) {
	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		return types.Tutorial{}, fmt.Errorf("rendering card markup: %w", err)
	}

	t := types.Tutorial{
		Year:      year,
		Status:    cardStatus(markup),
		URL:       firstAttr(sel, "a[href]", "href"),
		Thumbnail: firstAttr(sel, "img", "src"),
	}

	class, _ := sel.Attr("class")
	t.YearGroup = groupNumber(class)

	fragments := cardFragments(markup)

	t.Title = untitled
	if len(fragments) > 0 {
		t.Title = strings.TrimSpace(leadingMarkerRegexp.ReplaceAllString(fragments[0], ""))
	}

	authorsStr := unknownAuthor
	if len(fragments) > 1 {
		authorsStr = fragments[len(fragments)-1]
	}
	t.Authors = splitAuthors(authorsStr)
	t.Keywords = keywords.Tag(t.Title + " " + authorsStr)

	return t, nil
}

// cardStatus checks the raw markup for the literal status badges.
func cardStatus(markup string) types.Status {
	switch {
	case strings.Contains(markup, markerWinner):
		return types.StatusWinner
	case strings.Contains(markup, markerFinalist):
		return types.StatusFinalist
	}
	return types.StatusNone
}

// cardFragments splits card markup on line breaks and returns the plain
// text of each fragment, skipping empty fragments and bare status badges.
func cardFragments(markup string) []string {
	var fragments []string
	for _, part := range lineBreakPattern.Split(markup, -1) {
		text := strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(part, "")))
		if text == "" || strings.EqualFold(text, markerWinner) || strings.EqualFold(text, markerFinalist) {
			continue
		}
		fragments = append(fragments, text)
	}
	return fragments
}

// groupNumber reads the digits following "group" in a class attribute such
// as "randomordercontent group10". It returns nil when there are none.
func groupNumber(class string) *int {
	for _, token := range strings.Fields(class) {
		m := groupPattern.FindStringSubmatch(token)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

// firstAttr returns attr of the first element matching selector, or "".
func firstAttr(sel *goquery.Selection, selector, attr string) string {
	v, _ := sel.Find(selector).First().Attr(attr)
	return v
}
