// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citesift CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citesift/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the command tree. Each tree owns its viper instance so
// that configuration does not leak between invocations.
func newRootCmd() *cobra.Command {
	v := viper.New()
	setDefaults(v)

	rootCmd := &cobra.Command{
		Use:   "citesift",
		Short: "Search citation lists by keyword and total their citations",
		Long: `citesift reads a citation list exported from a scholar profile (plain text,
PDF, or a word-processor document), splits it into article records at each
"<citations> <year>" line, and filters the records by keyword.

Keywords are matched case-insensitively as substrings. With --rule and every
keyword must appear in a record; with --rule or any one is enough.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citesift.yaml or ~/.config/citesift/citesift.yaml)")

	rootCmd.AddCommand(newSearchCmd(v))
	rootCmd.AddCommand(newExportCmd(v))
	rootCmd.AddCommand(newHistoryCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func setDefaults(v *viper.Viper) {
	d := types.DefaultSearchConfig()
	v.SetDefault("search.rule", d.Rule)
	v.SetDefault("search.journal", d.ExtractJournal)
	v.SetDefault("search.preview_length", d.PreviewLength)
	v.SetDefault("search.format", string(d.Format))
	v.SetDefault("export.db", "citesift.db")
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("citesift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "citesift"))
		}
	}

	v.SetEnvPrefix("CITESIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
