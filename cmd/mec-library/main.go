// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mec-library CLI. Run without a
// subcommand it extracts the tutorial library from the materials page.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mec-library/internal/materials"
	"github.com/pdiddy/mec-library/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mec-library CLI.
var rootCmd = &cobra.Command{
	Use:   "mec-library",
	Short: "Build the MICCAI Educational Challenge tutorial library",
	Long: `mec-library converts the challenge materials page into a structured
JSON library of tutorials (title, authors, link, thumbnail, placement,
keywords, year).

Running mec-library with no subcommand is the same as "mec-library extract".
The index, search, and export subcommands work on the extracted library.`,
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./mec-library.yaml or ~/.config/mec-library/config.yaml)")
	pf.String("source", "materials.html", "materials page: local path or http(s) URL")
	pf.String("content-id", materials.DefaultContentID, "id of the element holding the tutorial listing")
	pf.String("output", filepath.Join("data", "tutorials.json"), "path of the JSON library")

	viper.BindPFlag("source", pf.Lookup("source"))
	viper.BindPFlag("content_id", pf.Lookup("content-id"))
	viper.BindPFlag("output", pf.Lookup("output"))

	viper.SetDefault("index_dir", filepath.Join("data", "index"))
	viper.SetDefault("max_results", 20)
	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.user_agent", "mec-library/"+version)
	viper.SetDefault("http.max_retries", 3)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mec-library")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mec-library"))
		}
	}

	viper.SetEnvPrefix("MEC_LIBRARY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// extractionConfig assembles extraction settings from flags, config file,
// and environment.
func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		Source:    viper.GetString("source"),
		ContentID: viper.GetString("content_id"),
		Output:    viper.GetString("output"),
		HTTP: types.HTTPConfig{
			Timeout:    viper.GetDuration("http.timeout"),
			UserAgent:  viper.GetString("http.user_agent"),
			MaxRetries: viper.GetInt("http.max_retries"),
		},
	}
}

func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		IndexDir:   viper.GetString("index_dir"),
		MaxResults: viper.GetInt("max_results"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
