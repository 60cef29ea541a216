// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/citesift/internal/search"
)

const (
	recordsSheet = "Records"
	summarySheet = "Summary"
)

var recordsHeader = []any{"#", "Citations", "Year", "Journal", "Text"}

// WriteXLSX writes the matched records and a summary sheet to a workbook
// at path.
func WriteXLSX(path string, out search.SearchOutput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := f.SetSheetRow(recordsSheet, "A1", &recordsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range out.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{i + 1, r.Citations, r.Year, r.Journal, r.Text}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(recordsSheet, "D", "D", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(recordsSheet, "E", "E", 100); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summary := [][]any{
		{"Source", out.Source},
		{"Keywords", strings.Join(out.Query.Keywords, ", ")},
		{"Rule", strings.ToUpper(string(out.Query.Rule))},
		{"Records Parsed", out.Parsed},
		{"Articles Found", out.Matches()},
		{"Total Citations", out.TotalCitations},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
