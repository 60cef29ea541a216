// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citesift/internal/export"
	"github.com/pdiddy/citesift/internal/search"
	"github.com/pdiddy/citesift/pkg/types"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List searches archived with export --to sqlite",
		Long: `History lists the runs stored in the archive database, newest first.
Use --id to print the stored matches of one run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, v)
		},
	}

	cmd.Flags().String("db", "", "archive database (default: export.db from config)")
	cmd.Flags().Int64("id", 0, "print the matches of this run")
	cmd.Flags().String("format", "text", "output format for --id: text, json, or csl")
	cmd.Flags().Int("preview", types.DefaultPreviewLength, "characters of text shown per record (config: search.preview_length)")
	return cmd
}

func runHistory(cmd *cobra.Command, v *viper.Viper) error {
	if err := v.BindPFlag("export.db", cmd.Flags().Lookup("db")); err != nil {
		return err
	}
	if err := v.BindPFlag("search.preview_length", cmd.Flags().Lookup("preview")); err != nil {
		return err
	}

	store, err := export.NewStore(v.GetString("export.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	w := cmd.OutOrStdout()

	if id, _ := cmd.Flags().GetInt64("id"); id != 0 {
		out, err := store.Output(ctx, id)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return search.Render(out, types.OutputFormat(format), w, v.GetInt("search.preview_length"))
	}

	runs, err := store.Runs(ctx)
	if err != nil {
		return err
	}
	formatRuns(runs, w)
	return nil
}

func formatRuns(runs []export.Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No archived searches.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-4s  %-7s  %-9s  %-30s  %s\n",
		"ID", "Date", "Rule", "Matches", "Citations", "Keywords", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		keywords := strings.Join(r.Keywords, ", ")
		if len(keywords) > 30 {
			keywords = keywords[:27] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-16s  %-4s  %-7d  %-9d  %-30s  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), strings.ToUpper(r.Rule),
			r.Matches, r.TotalCitations, keywords, r.Source)
	}

	fmt.Fprintf(w, "\n%d searches\n", len(runs))
}
