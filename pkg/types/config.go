// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how search results are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputCSL  OutputFormat = "csl"
)

// ExportTarget selects the export sink.
type ExportTarget string

const (
	ExportSQLite ExportTarget = "sqlite"
	ExportXLSX   ExportTarget = "xlsx"
)

// DefaultPreviewLength is the number of characters of record text shown in
// the human-readable report.
const DefaultPreviewLength = 100

// SearchConfig holds settings for parsing and reporting a search.
type SearchConfig struct {
	// Rule is the keyword combinator, "and" or "or" (case-insensitive).
	Rule string `json:"rule" yaml:"rule"`

	// ExtractJournal treats the last line before each marker as the journal.
	ExtractJournal bool `json:"extract_journal" yaml:"extract_journal"`

	// PreviewLength is the number of text characters shown per record
	// in the text report (default 100).
	PreviewLength int `json:"preview_length" yaml:"preview_length"`

	// Format selects the output format: text, json, or csl.
	Format OutputFormat `json:"format" yaml:"format"`
}

// DefaultSearchConfig returns the journal-aware configuration with the
// default preview length and rule.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Rule:           "or",
		ExtractJournal: true,
		PreviewLength:  DefaultPreviewLength,
		Format:         OutputText,
	}
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Target selects the sink: sqlite or xlsx.
	Target ExportTarget `json:"target" yaml:"target"`

	// Path is the output file (database or workbook).
	Path string `json:"path" yaml:"path"`
}
