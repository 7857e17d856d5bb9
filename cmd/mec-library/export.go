// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mec-library/internal/catalog"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library (or a filtered subset) as YAML or JSON",
	Long: `Export reads the JSON library and writes it, optionally filtered by
year and status, next to the library as tutorials.yaml or
tutorials-filtered.json unless --out is given.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	year, _ := cmd.Flags().GetInt("year")
	status, _ := cmd.Flags().GetString("status")

	src := extractionConfig().Output
	lib, err := catalog.ReadJSON(src)
	if err != nil {
		return err
	}

	lib, err = catalog.Filter(lib, catalog.FilterOptions{Year: year, Status: status})
	if err != nil {
		return err
	}

	if outPath == "" {
		name := "tutorials.yaml"
		if catalog.Format(format) == catalog.FormatJSON {
			name = "tutorials-filtered.json"
		}
		outPath = filepath.Join(filepath.Dir(src), name)
	}

	if err := catalog.Write(outPath, lib, catalog.Format(format)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tutorials to %s\n", len(lib.Tutorials), outPath)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("out", "", "destination path (default: next to the library)")
	exportCmd.Flags().Int("year", 0, "only export tutorials from this year")
	exportCmd.Flags().String("status", "", "only export tutorials with this status: winner, finalist, or regular")

	rootCmd.AddCommand(exportCmd)
}
