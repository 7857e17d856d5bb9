// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mec-library/internal/catalog"
	"github.com/pdiddy/mec-library/internal/materials"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract tutorials from the materials page into the JSON library",
	Long: `Extract reads the materials page, walks the yearly sections, parses each
card or list entry into a tutorial record, tags it with topic keywords, and
writes the library to the output path, replacing any previous file.

Entries that cannot be parsed are reported and skipped.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Extracting tutorials from: %s\n", cfg.Source)
	fmt.Fprintf(out, "Output will be saved to: %s\n", cfg.Output)
	fmt.Fprintln(out, strings.Repeat("-", 60))

	data, err := materials.ReadSource(context.Background(), cfg.Source, cfg.HTTP)
	if err != nil {
		return err
	}

	tutorials, result, err := materials.NewExtractor(cfg.ContentID, out).Extract(bytes.NewReader(data))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("-", 60))
	catalog.Summarize(tutorials).Print(out)
	if result.HasFailures() {
		fmt.Fprintf(out, "\n%d of %d entries could not be extracted\n", result.Failed, result.Total())
	}

	if err := catalog.WriteJSON(cfg.Output, catalog.NewDocument(tutorials, time.Now())); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSuccessfully saved to: %s\n", cfg.Output)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Review the generated JSON file")
	fmt.Fprintln(out, "2. Manually refine keywords if needed")
	fmt.Fprintln(out, "3. Verify thumbnails and URLs are correct")
	return nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
