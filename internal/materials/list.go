// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/mec-library/internal/keywords"
	"github.com/pdiddy/mec-library/pkg/types"
)

// placeMarkers flag a podium finish in list-format entries.
var placeMarkers = []string{"1st Place!", "2nd Place!", "3rd Place!"}

const listFinalistMarker = "Finalist"

// parseList extracts a tutorial from a list item (2019 and 2020 pages):
//
//	<li><a href="...">Title</a> 1st Place!<br/>- Author One, Author Two</li>
func parseList(sel *goquery.Selection, year int) (types.Tutorial, error) {
	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		return types.Tutorial{}, fmt.Errorf("rendering list item markup: %w", err)
	}

	t := types.Tutorial{
		Year:   year,
		Status: listStatus(markup),
		Title:  untitled,
	}

	if a := sel.Find("a[href]").First(); a.Length() > 0 {
		t.URL, _ = a.Attr("href")
		if title := strings.TrimSpace(a.Text()); title != "" {
			t.Title = title
		}
	}

	authorsStr := textAfterBreak(sel)
	t.Authors = splitAuthors(authorsStr)
	t.Keywords = keywords.Tag(t.Title + " " + authorsStr)

	return t, nil
}

func listStatus(markup string) types.Status {
	for _, m := range placeMarkers {
		if strings.Contains(markup, m) {
			return types.StatusWinner
		}
	}
	if strings.Contains(markup, listFinalistMarker) {
		return types.StatusFinalist
	}
	return types.StatusNone
}

// textAfterBreak concatenates the text nodes that follow the item's first
// <br> as siblings, dropping the leading "-" separator.
func textAfterBreak(sel *goquery.Selection) string {
	br := sel.Find("br").First()
	if br.Length() == 0 {
		return ""
	}

	var b strings.Builder
	for n := br.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return leadingDashPattern.ReplaceAllString(strings.TrimSpace(b.String()), "")
}
