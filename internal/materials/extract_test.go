// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package materials

import (
	"bytes"
	"errors"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mec-library/pkg/types"
)

func intPtr(n int) *int { return &n }

func extractFixture(t *testing.T) ([]types.Tutorial, ExtractSummary, string) {
	t.Helper()
	f, err := os.Open("testdata/materials.html")
	require.NoError(t, err)
	defer f.Close()

	var log bytes.Buffer
	tutorials, summary, err := NewExtractor("", &log).Extract(f)
	require.NoError(t, err)
	return tutorials, summary, log.String()
}

func TestExtract_Fixture(t *testing.T) {
	tutorials, summary, log := extractFixture(t)

	want := []types.Tutorial{
		{
			ID: "2025-001", Year: 2025,
			Title:     "Interactive Ultrasound Registration Tutorial",
			Authors:   []string{"Jane Roe", "Rick Moe"},
			URL:       "https://example.org/t1",
			Thumbnail: "img/2025/t1.png",
			Status:    types.StatusWinner,
			Keywords:  []string{"registration", "tutorial", "ultrasound"},
			YearGroup: intPtr(1),
		},
		{
			ID: "2025-002", Year: 2025,
			Title:     "Liver Lesion Detection with PyTorch",
			Authors:   []string{"Ana Lima", "Ben Ode", "Cy Po"},
			Status:    types.StatusFinalist,
			Keywords:  []string{"PyTorch", "detection", "liver"},
			YearGroup: intPtr(2),
		},
		{
			ID: "2025-003", Year: 2025,
			Title:    "Federated Workflows & You",
			Authors:  []string{"Unknown"},
			Keywords: []string{},
		},
		{
			ID: "2023-004", Year: 2023,
			Title:     "Deep Learning for Brain MRI Segmentation",
			Authors:   []string{"Alice Smith", "Bob Lee"},
			Status:    types.StatusWinner,
			Keywords:  []string{"MRI", "brain", "deep learning", "segmentation"},
			YearGroup: intPtr(10),
		},
		{
			ID: "2023-005", Year: 2023,
			Title:     "Untitled",
			Authors:   []string{"Unknown"},
			Keywords:  []string{},
			YearGroup: intPtr(4),
		},
		{
			ID: "2019-006", Year: 2019,
			Title:    "Cardiac CT Analysis",
			Authors:  []string{"John Doe"},
			URL:      "x.html",
			Keywords: []string{"CT", "analysis", "cardiac"},
		},
		{
			ID: "2019-007", Year: 2019,
			Title:    "Lung Nodule Classification",
			Authors:  []string{"Mia Wu", "Leo Park"},
			URL:      "y.html",
			Status:   types.StatusWinner,
			Keywords: []string{"classification", "lung"},
		},
		{
			ID: "2019-008", Year: 2019,
			Title:    "Prostate MRI Primer",
			Authors:  []string{"Sam Lin", "Tao"},
			URL:      "z.html",
			Status:   types.StatusFinalist,
			Keywords: []string{"MRI", "prostate"},
		},
		{
			ID: "2019-009", Year: 2019,
			Title:    "Untitled",
			Authors:  []string{"Unknown"},
			Keywords: []string{},
		},
	}

	assert.Equal(t, want, tutorials)
	assert.Equal(t, 9, summary.Extracted)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, []int{2025, 2023, 2019}, summary.Years)

	assert.Contains(t, log, "Found year section: 2025")
	assert.Contains(t, log, "Found year section: 2019")
	assert.NotContains(t, log, "2099")
	assert.NotContains(t, log, "Orphan")
	assert.Contains(t, log, "  Extracted: Cardiac CT Analysis")
}

func TestExtract_RecordInvariants(t *testing.T) {
	tutorials, _, _ := extractFixture(t)
	idPattern := regexp.MustCompile(`^\d{4}-\d{3}$`)

	seen := make(map[string]bool)
	for _, tu := range tutorials {
		assert.Regexp(t, idPattern, tu.ID)
		assert.True(t, strings.HasPrefix(tu.ID, strconv.Itoa(tu.Year)+"-"), "id %s does not start with its year", tu.ID)
		assert.False(t, seen[tu.ID], "duplicate id %s", tu.ID)
		seen[tu.ID] = true

		assert.NotEmpty(t, tu.Authors, "authors empty for %s", tu.ID)
		assert.NotNil(t, tu.Keywords)
		assert.True(t, sort.StringsAreSorted(tu.Keywords), "keywords unsorted for %s", tu.ID)
	}
}

func TestExtract_SpecCardExample(t *testing.T) {
	page := `<div id="page-content">
<h1>MICCAI Educational Challenge 2023 Materials</h1>
<div class="randomordercontent group10">Winner! Deep Learning for Brain MRI Segmentation<br/>Alice Smith, Bob Lee</div>
</div>`

	var log bytes.Buffer
	tutorials, _, err := NewExtractor("", &log).Extract(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, tutorials, 1)

	got := tutorials[0]
	assert.Equal(t, "2023-001", got.ID)
	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, "Deep Learning for Brain MRI Segmentation", got.Title)
	assert.Equal(t, []string{"Alice Smith", "Bob Lee"}, got.Authors)
	assert.Equal(t, types.StatusWinner, got.Status)
	require.NotNil(t, got.YearGroup)
	assert.Equal(t, 10, *got.YearGroup)
	assert.Equal(t, []string{"MRI", "brain", "deep learning", "segmentation"}, got.Keywords)
}

func TestExtract_SpecListExample(t *testing.T) {
	page := `<div id="page-content">
<h1>MICCAI Educational Challenge 2019 Materials</h1>
<ul><li><a href="x.html">Cardiac CT Analysis</a><br/>- John Doe</li></ul>
</div>`

	var log bytes.Buffer
	tutorials, _, err := NewExtractor("", &log).Extract(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, tutorials, 1)

	got := tutorials[0]
	assert.Equal(t, 2019, got.Year)
	assert.Equal(t, "Cardiac CT Analysis", got.Title)
	assert.Equal(t, "x.html", got.URL)
	assert.Equal(t, []string{"John Doe"}, got.Authors)
	assert.Equal(t, types.StatusNone, got.Status)
	assert.Equal(t, "", got.Thumbnail)
	assert.Nil(t, got.YearGroup)
}

func TestExtract_MissingContainer(t *testing.T) {
	var log bytes.Buffer
	tutorials, summary, err := NewExtractor("", &log).Extract(strings.NewReader(`<html><body><p>nothing</p></body></html>`))

	require.NoError(t, err)
	assert.NotNil(t, tutorials)
	assert.Empty(t, tutorials)
	assert.Equal(t, 0, summary.Total())
	assert.Contains(t, log.String(), "Warning: could not find #page-content div")
}

func TestExtract_CustomContentID(t *testing.T) {
	page := `<div id="page-content"><h1>2021</h1><div class="randomordercontent">Ignored</div></div>
<div id="archive"><h1>Materials 2022</h1><div class="randomordercontent group7">Kept<br/>A. Author</div></div>`

	var log bytes.Buffer
	tutorials, _, err := NewExtractor("archive", &log).Extract(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, tutorials, 1)
	assert.Equal(t, "2022-001", tutorials[0].ID)
	assert.Equal(t, "Kept", tutorials[0].Title)
}

func TestExtract_SkipsEntriesBeforeFirstYear(t *testing.T) {
	page := `<div id="page-content">
<ul><li><a href="early.html">Too Early</a></li></ul>
<div class="randomordercontent group1">Also too early</div>
<h1>No year here</h1>
<ul><li><a href="still.html">Still Too Early</a></li></ul>
</div>`

	var log bytes.Buffer
	tutorials, summary, err := NewExtractor("", &log).Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Empty(t, tutorials)
	assert.Equal(t, 0, summary.Total())
	assert.Empty(t, summary.Years)
}

func TestExtract_NestedListItemsAreNotEntries(t *testing.T) {
	page := `<div id="page-content"><h1>2020</h1>
<ul><li><a href="a.html">Outer</a><br/>- Ann Bee<ul><li><a href="b.html">Inner</a></li></ul></li></ul>
</div>`

	var log bytes.Buffer
	tutorials, _, err := NewExtractor("", &log).Extract(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, tutorials, 1)
	assert.Equal(t, "Outer", tutorials[0].Title)
	assert.Equal(t, []string{"Ann Bee"}, tutorials[0].Authors)
}

func TestExtract_FailedNodeDoesNotConsumeSequence(t *testing.T) {
	f, err := os.Open("testdata/materials.html")
	require.NoError(t, err)
	defer f.Close()

	var log bytes.Buffer
	e := NewExtractor("", &log)
	e.parsers[formatCard] = func(sel *goquery.Selection, year int) (types.Tutorial, error) {
		if strings.Contains(sel.Text(), "Federated") {
			return types.Tutorial{}, errors.New("malformed card")
		}
		return parseCard(sel, year)
	}

	tutorials, summary, err := e.Extract(f)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Extracted)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	assert.Equal(t, 9, summary.Total())

	ids := make([]string, len(tutorials))
	for i, tu := range tutorials {
		ids[i] = tu.ID
	}
	assert.Equal(t, []string{
		"2025-001", "2025-002", "2023-003", "2023-004",
		"2019-005", "2019-006", "2019-007", "2019-008",
	}, ids)

	assert.Contains(t, log.String(), "Error extracting card tutorial: malformed card")
	assert.Contains(t, log.String(), "Content: Federated Workflows & You")
}
