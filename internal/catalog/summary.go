// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/mec-library/pkg/types"
)

// Summary counts tutorials by year and by status.
type Summary struct {
	Total     int
	ByYear    map[int]int
	Winners   int
	Finalists int
	Regular   int
}

// Summarize counts tutorials by year and status.
func Summarize(tutorials []types.Tutorial) Summary {
	s := Summary{ByYear: make(map[int]int)}
	for _, t := range tutorials {
		s.Total++
		s.ByYear[t.Year]++
		switch t.Status {
		case types.StatusWinner:
			s.Winners++
		case types.StatusFinalist:
			s.Finalists++
		default:
			s.Regular++
		}
	}
	return s
}

// Years returns the years present, most recent first.
func (s Summary) Years() []int {
	years := make([]int, 0, len(s.ByYear))
	for y := range s.ByYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Print writes the total and the year and status breakdowns to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Total tutorials extracted: %d\n", s.Total)

	fmt.Fprintln(w, "\nBreakdown by year:")
	byYear := table.NewWriter()
	byYear.SetOutputMirror(w)
	byYear.SetStyle(table.StyleLight)
	byYear.AppendHeader(table.Row{"Year", "Tutorials"})
	for _, y := range s.Years() {
		byYear.AppendRow(table.Row{y, s.ByYear[y]})
	}
	byYear.Render()

	fmt.Fprintln(w, "\nBreakdown by status:")
	byStatus := table.NewWriter()
	byStatus.SetOutputMirror(w)
	byStatus.SetStyle(table.StyleLight)
	byStatus.AppendHeader(table.Row{"Status", "Tutorials"})
	byStatus.AppendRows([]table.Row{
		{"Winners", s.Winners},
		{"Finalists", s.Finalists},
		{"Regular", s.Regular},
	})
	byStatus.Render()
}
