// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package materials extracts tutorial records from the challenge materials
// page. The page lists entries under yearly <h1> headings, either as card
// divisions (2021 onward) or as plain list items (2019 and 2020).
package materials

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/mec-library/pkg/types"
)

// DefaultContentID is the id of the element that holds the tutorial listing.
const DefaultContentID = "page-content"

// cardClass marks a division as a tutorial card.
const cardClass = "randomordercontent"

var yearPattern = regexp.MustCompile(`20\d{2}`)

// entryFormat selects the record parser for a tutorial-bearing node.
type entryFormat int

const (
	formatCard entryFormat = iota
	formatList
)

func (f entryFormat) String() string {
	if f == formatList {
		return "list"
	}
	return "card"
}

// parseFunc turns one node into a tutorial without an ID.
type parseFunc func(sel *goquery.Selection, year int) (types.Tutorial, error)

// ExtractSummary holds the outcome of an extraction run.
type ExtractSummary struct {
	Extracted int
	Failed    int
	// Years lists the year headings found, in document order.
	Years []int
}

// Total returns the number of tutorial nodes processed.
func (s ExtractSummary) Total() int {
	return s.Extracted + s.Failed
}

// HasFailures reports whether any node failed to parse.
func (s ExtractSummary) HasFailures() bool {
	return s.Failed > 0
}

// Extractor walks the materials page and builds tutorial records.
type Extractor struct {
	contentID string
	w         io.Writer
	parsers   map[entryFormat]parseFunc
}

// NewExtractor creates an Extractor that looks for the listing inside the
// element with id contentID and prints progress to w. An empty contentID
// selects DefaultContentID.
func NewExtractor(contentID string, w io.Writer) *Extractor {
	if contentID == "" {
		contentID = DefaultContentID
	}
	return &Extractor{
		contentID: contentID,
		w:         w,
		parsers: map[entryFormat]parseFunc{
			formatCard: parseCard,
			formatList: parseList,
		},
	}
}

// Extract parses the page read from r and returns its tutorials in
// document order. IDs are assigned from one sequence shared by all years;
// a node that fails to parse is reported and skipped without consuming a
// sequence number. A page without the content container yields no
// tutorials and no error.
func (e *Extractor) Extract(r io.Reader) ([]types.Tutorial, ExtractSummary, error) {
	var summary ExtractSummary
	tutorials := []types.Tutorial{}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, summary, fmt.Errorf("parsing materials page: %w", err)
	}

	container := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == e.contentID
	}).First()
	if container.Length() == 0 {
		fmt.Fprintf(e.w, "Warning: could not find #%s div\n", e.contentID)
		return tutorials, summary, nil
	}

	var (
		year int
		seq  = 1
	)

	emit := func(format entryFormat, n *html.Node) {
		sel := goquery.NewDocumentFromNode(n).Selection
		t, err := e.parsers[format](sel, year)
		if err != nil {
			fmt.Fprintf(e.w, "  Error extracting %s tutorial: %v\n", format, err)
			fmt.Fprintf(e.w, "  Content: %s\n", truncate(sel.Text(), 100))
			summary.Failed++
			return
		}
		t.ID = fmt.Sprintf("%d-%03d", year, seq)
		seq++
		tutorials = append(tutorials, t)
		summary.Extracted++
		fmt.Fprintf(e.w, "  Extracted: %s\n", truncate(t.Title, 50))
	}

	for c := container.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		switch c.DataAtom {
		case atom.H1:
			if y, ok := headingYear(nodeText(c)); ok {
				year = y
				summary.Years = append(summary.Years, y)
				fmt.Fprintf(e.w, "Found year section: %d\n", y)
			}
		case atom.Div:
			if year != 0 && isCard(c) {
				emit(formatCard, c)
			}
		case atom.Ul:
			if year == 0 {
				continue
			}
			for li := c.FirstChild; li != nil; li = li.NextSibling {
				if li.Type == html.ElementNode && li.DataAtom == atom.Li {
					emit(formatList, li)
				}
			}
		}
	}

	return tutorials, summary, nil
}

// headingYear returns the first 20xx year in a heading's text.
func headingYear(text string) (int, bool) {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// isCard reports whether a division carries the tutorial card class.
func isCard(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(a.Val) {
			if strings.Contains(token, cardClass) {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}
