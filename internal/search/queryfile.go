// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citesift/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A saved search can be re-rendered later without re-reading the source.
type QueryFile struct {
	Source  string          `yaml:"source"`
	Query   QueryParams     `yaml:"query"`
	Config  QueryFileConfig `yaml:"config"`
	Results []types.Record  `yaml:"results"`
	Summary QuerySummary    `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Keywords []string `yaml:"keywords"`
	Rule     string   `yaml:"rule"`
}

// QueryFileConfig stores the parse settings that produced the results.
type QueryFileConfig struct {
	ExtractJournal bool `yaml:"extract_journal"`
	PreviewLength  int  `yaml:"preview_length"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Parsed         int       `yaml:"parsed"`
	Matches        int       `yaml:"matches"`
	TotalCitations int       `yaml:"total_citations"`
	DroppedLines   int       `yaml:"dropped_lines,omitempty"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves the search output and the config that produced it
// to a YAML file.
func WriteQueryFile(path string, out SearchOutput, cfg types.SearchConfig) error {
	qf := QueryFile{
		Source: out.Source,
		Query: QueryParams{
			Keywords: out.Query.Keywords,
			Rule:     string(out.Query.Rule),
		},
		Config: QueryFileConfig{
			ExtractJournal: cfg.ExtractJournal,
			PreviewLength:  cfg.PreviewLength,
		},
		Results: out.Records,
		Summary: QuerySummary{
			Parsed:         out.Parsed,
			Matches:        out.Matches(),
			TotalCitations: out.TotalCitations,
			DroppedLines:   out.Dropped,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a validated Query.
func (p QueryParams) ToQuery() (Query, error) {
	return NewQuery(p.Keywords, p.Rule)
}

// Output rebuilds the SearchOutput recorded in the file. The citation
// total is recomputed from the stored records.
func (qf *QueryFile) Output() (SearchOutput, error) {
	q, err := qf.Query.ToQuery()
	if err != nil {
		return SearchOutput{}, fmt.Errorf("invalid query in file: %w", err)
	}
	out := SearchOutput{
		Source:  qf.Source,
		Query:   q,
		Records: qf.Results,
		Parsed:  qf.Summary.Parsed,
		Dropped: qf.Summary.DroppedLines,
	}
	for _, r := range qf.Results {
		out.TotalCitations += r.Citations
	}
	return out, nil
}
