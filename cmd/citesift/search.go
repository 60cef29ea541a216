// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citesift/internal/search"
	"github.com/pdiddy/citesift/pkg/types"
)

// errNoKeywords rejects a command line without -k or --keywords.
var errNoKeywords = errors.New("at least one keyword is required: use -k or --keywords")

func newSearchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [file]",
		Short: "Filter a citation list by keyword and report matches",
		Long: `Search parses the citation list in file and prints every record that
matches the keywords, followed by the number of matches and their total
citations.

Use --save to keep the query and its results in a YAML file, and --load to
print a saved query again without re-reading the source.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, v)
		},
	}

	addSearchFlags(cmd)
	cmd.Flags().String("format", "text", "output format: text, json, or csl")
	cmd.Flags().String("save", "", "save the query and its results to a YAML file")
	cmd.Flags().String("load", "", "print the results stored in a saved query file")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string, v *viper.Viper) error {
	if err := bindSearchFlags(cmd, v); err != nil {
		return err
	}
	if err := v.BindPFlag("search.format", cmd.Flags().Lookup("format")); err != nil {
		return err
	}
	cfg := searchConfig(v)
	w := cmd.OutOrStdout()

	if load, _ := cmd.Flags().GetString("load"); load != "" {
		qf, err := search.ReadQueryFile(load)
		if err != nil {
			return err
		}
		out, err := qf.Output()
		if err != nil {
			return err
		}
		previewLen := cfg.PreviewLength
		if !cmd.Flags().Changed("preview") && qf.Config.PreviewLength > 0 {
			previewLen = qf.Config.PreviewLength
		}
		return search.Render(out, cfg.Format, w, previewLen)
	}

	if len(args) != 1 {
		return fmt.Errorf("provide the citation list file to search, or --load a saved query")
	}

	keywords, err := keywordsFromFlags(cmd)
	if err != nil {
		return err
	}
	out, err := search.Search(args[0], keywords, cfg)
	if err != nil {
		return err
	}
	if err := search.Render(out, cfg.Format, w, cfg.PreviewLength); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := search.WriteQueryFile(save, out, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved query to %s\n", save)
	}
	return nil
}

// addSearchFlags registers the flags shared by commands that run a search.
func addSearchFlags(cmd *cobra.Command) {
	d := types.DefaultSearchConfig()
	cmd.Flags().StringArrayP("keyword", "k", nil, "keyword to match (repeatable, used verbatim)")
	cmd.Flags().String("keywords", "", "comma-separated keywords")
	cmd.Flags().String("rule", d.Rule, "keyword rule: and, or")
	cmd.Flags().Bool("journal", d.ExtractJournal, "treat the last line before each citation line as the journal")
	cmd.Flags().Int("preview", d.PreviewLength, "characters of text shown per record")
}

// bindSearchFlags binds the shared search flags to their config keys.
// Binding happens per run because several commands define the same flags.
func bindSearchFlags(cmd *cobra.Command, v *viper.Viper) error {
	bindings := map[string]string{
		"search.rule":           "rule",
		"search.journal":        "journal",
		"search.preview_length": "preview",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

func searchConfig(v *viper.Viper) types.SearchConfig {
	return types.SearchConfig{
		Rule:           v.GetString("search.rule"),
		ExtractJournal: v.GetBool("search.journal"),
		PreviewLength:  v.GetInt("search.preview_length"),
		Format:         types.OutputFormat(v.GetString("search.format")),
	}
}

// keywordsFromFlags collects --keyword values followed by the entries of
// --keywords, in order. At least one keyword is required.
func keywordsFromFlags(cmd *cobra.Command) ([]string, error) {
	keywords, _ := cmd.Flags().GetStringArray("keyword")
	list, _ := cmd.Flags().GetString("keywords")
	keywords = append(keywords, search.SplitKeywords(list)...)
	if len(keywords) == 0 {
		return nil, errNoKeywords
	}
	return keywords, nil
}
