// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mec-library/internal/catalog"
	"github.com/pdiddy/mec-library/internal/index"
	"github.com/pdiddy/mec-library/pkg/types"
)

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load the extracted library into the search index",
	Long: `Index reads the JSON library written by extract and replaces the
contents of the SQLite search index (index_dir/library.db) with it.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	lib, err := catalog.ReadJSON(extractionConfig().Output)
	if err != nil {
		return err
	}

	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), lib, cmd.OutOrStdout())
	return err
}

// --- search subcommand ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed tutorials",
	Long: `Search matches the query against tutorial titles and authors and
applies the year, status, and keyword filters. Use --id to print one
tutorial.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if id, _ := cmd.Flags().GetString("id"); id != "" {
		t, err := store.Get(context.Background(), id)
		if err != nil {
			return err
		}
		return formatSearchOutput(cmd, []types.Tutorial{t}, jsonOutput)
	}

	opts := searchOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --year, --status, or --keyword")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}
	return formatSearchOutput(cmd, results, jsonOutput)
}

func formatSearchOutput(cmd *cobra.Command, results []types.Tutorial, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Status", "Title", "Authors", "Keywords"})
	for _, r := range results {
		status := string(r.Status)
		if status == "" {
			status = "-"
		}
		t.AppendRow(table.Row{
			r.ID,
			status,
			runewidth.Truncate(r.Title, 50, "..."),
			runewidth.Truncate(strings.Join(r.Authors, ", "), 30, "..."),
			runewidth.Truncate(strings.Join(r.Keywords, ", "), 30, "..."),
		})
	}
	t.Render()

	fmt.Fprintf(out, "\n%d results\n", len(results))
	return nil
}

func searchOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText := strings.Join(args, " ")
	year, _ := cmd.Flags().GetInt("year")
	status, _ := cmd.Flags().GetString("status")
	keyword, _ := cmd.Flags().GetString("keyword")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:      queryText,
		Year:       year,
		Status:     status,
		Keyword:    keyword,
		MaxResults: limit,
	}
}

func init() {
	searchCmd.Flags().Int("year", 0, "filter by challenge year")
	searchCmd.Flags().String("status", "", "filter by status: winner, finalist, or regular")
	searchCmd.Flags().String("keyword", "", "filter by keyword label (e.g. MRI, segmentation)")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().String("id", "", "show a single tutorial by id")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
}
