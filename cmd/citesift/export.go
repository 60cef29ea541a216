// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citesift/internal/export"
	"github.com/pdiddy/citesift/internal/search"
	"github.com/pdiddy/citesift/pkg/types"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export file",
		Short: "Run a search and write the matches to SQLite or XLSX",
		Long: `Export runs the same search as the search command and writes the
matched records to a sink instead of the terminal.

  --to sqlite  appends the run to an archive database (see history)
  --to xlsx    writes a workbook with Records and Summary sheets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, v)
		},
	}

	addSearchFlags(cmd)
	cmd.Flags().String("to", string(types.ExportSQLite), "export target: sqlite or xlsx")
	cmd.Flags().String("out", "", "output path (default: export.db from config for sqlite, <file>-results.xlsx for xlsx)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string, v *viper.Viper) error {
	if err := bindSearchFlags(cmd, v); err != nil {
		return err
	}
	cfg := searchConfig(v)

	target, _ := cmd.Flags().GetString("to")
	outPath, _ := cmd.Flags().GetString("out")
	ecfg := types.ExportConfig{Target: types.ExportTarget(target), Path: outPath}

	keywords, err := keywordsFromFlags(cmd)
	if err != nil {
		return err
	}
	out, err := search.Search(args[0], keywords, cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch ecfg.Target {
	case types.ExportSQLite:
		if ecfg.Path == "" {
			ecfg.Path = v.GetString("export.db")
		}
		store, err := export.NewStore(ecfg.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Save(context.Background(), out)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Archived run %d (%d matches, %d citations) to %s\n",
			id, out.Matches(), out.TotalCitations, ecfg.Path)
	case types.ExportXLSX:
		if ecfg.Path == "" {
			ecfg.Path = defaultWorkbookPath(args[0])
		}
		if err := export.WriteXLSX(ecfg.Path, out); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %d matches (%d citations) to %s\n",
			out.Matches(), out.TotalCitations, ecfg.Path)
	default:
		return fmt.Errorf("unsupported export target %q: use sqlite or xlsx", target)
	}
	return nil
}

// defaultWorkbookPath derives "<name>-results.xlsx" next to the input.
func defaultWorkbookPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "-results.xlsx"
}
