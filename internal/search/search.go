// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search filters parsed citation records by keyword rule and
// renders the matches.
//
// Search is the library entry point: it validates the rule, loads and
// parses the input file, and returns a SearchOutput. Rendering is separate
// (FormatReport, FormatJSON, FormatCSL) so callers choose the presentation.
package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/citesift/internal/convert"
	"github.com/pdiddy/citesift/internal/records"
	"github.com/pdiddy/citesift/pkg/types"
)

// Rule combines per-keyword substring checks.
type Rule string

const (
	// RuleAnd matches records that contain every keyword.
	RuleAnd Rule = "and"
	// RuleOr matches records that contain at least one keyword.
	RuleOr Rule = "or"
)

// ParseRule parses a rule name case-insensitively. An empty string
// selects RuleOr.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RuleOr, nil
	case "and":
		return RuleAnd, nil
	case "or":
		return RuleOr, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidRule, s)
	}
}

// Query holds an ordered keyword set and the rule that combines them.
type Query struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Rule     Rule     `json:"rule" yaml:"rule"`
}

// NewQuery validates the rule. A single keyword is passed as a
// one-element slice. An empty keyword set is allowed: under RuleAnd it
// matches every record, under RuleOr none.
func NewQuery(keywords []string, rule string) (Query, error) {
	r, err := ParseRule(rule)
	if err != nil {
		return Query{}, err
	}
	return Query{Keywords: keywords, Rule: r}, nil
}

// SplitKeywords splits a comma-separated keyword list, trimming
// whitespace and dropping empty entries.
func SplitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Matches reports whether rec satisfies the query. Matching is a
// case-insensitive substring test against the record text, plus the
// journal when includeJournal is set.
func (q Query) Matches(rec types.Record, includeJournal bool) bool {
	return q.matcher()(rec, includeJournal)
}

// matcher lower-cases the keywords once and returns the predicate.
func (q Query) matcher() func(types.Record, bool) bool {
	lowered := make([]string, len(q.Keywords))
	for i, k := range q.Keywords {
		lowered[i] = strings.ToLower(k)
	}

	return func(rec types.Record, includeJournal bool) bool {
		target := strings.ToLower(rec.SearchableText(includeJournal))
		if q.Rule == RuleAnd {
			for _, k := range lowered {
				if !strings.Contains(target, k) {
					return false
				}
			}
			return true
		}
		for _, k := range lowered {
			if strings.Contains(target, k) {
				return true
			}
		}
		return false
	}
}

// SearchOutput holds the matched records and aggregate counts.
type SearchOutput struct {
	// Source is the input file path.
	Source string `json:"source" yaml:"source"`

	Query Query `json:"query" yaml:"query"`

	// Records are the matches in parse order.
	Records []types.Record `json:"records" yaml:"records"`

	// Parsed is the number of records found in the input.
	Parsed int `json:"parsed" yaml:"parsed"`

	// Dropped is the number of lines after the last marker that were
	// discarded.
	Dropped int `json:"dropped_lines" yaml:"dropped_lines"`

	// TotalCitations is the sum of Citations over Records.
	TotalCitations int `json:"total_citations" yaml:"total_citations"`
}

// Matches returns the number of matched records.
func (o SearchOutput) Matches() int {
	return len(o.Records)
}

// Filter returns the records that satisfy q in their original order,
// together with their citation total.
func Filter(recs []types.Record, q Query, includeJournal bool) SearchOutput {
	match := q.matcher()
	out := SearchOutput{Query: q, Parsed: len(recs)}
	for _, rec := range recs {
		if match(rec, includeJournal) {
			out.Records = append(out.Records, rec)
			out.TotalCitations += rec.Citations
		}
	}
	return out
}

// Search reads the citation list at path, parses it, and returns the
// records matching keywords under cfg.Rule. The rule is validated before
// the file is touched. Failures are reported as ErrInvalidRule,
// ErrFileNotFound, or *FileReadError.
func Search(path string, keywords []string, cfg types.SearchConfig) (SearchOutput, error) {
	q, err := NewQuery(keywords, cfg.Rule)
	if err != nil {
		return SearchOutput{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SearchOutput{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return SearchOutput{}, &FileReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return SearchOutput{}, &FileReadError{Path: path, Err: errors.New("is a directory")}
	}

	text, err := convert.ForPath(path).Convert(path)
	if err != nil {
		return SearchOutput{}, &FileReadError{Path: path, Err: err}
	}

	res, err := records.ParseDetailed(strings.NewReader(text), records.Options{ExtractJournal: cfg.ExtractJournal})
	if err != nil {
		return SearchOutput{}, &FileReadError{Path: path, Err: err}
	}

	out := Filter(res.Records, q, cfg.ExtractJournal)
	out.Source = path
	out.Dropped = res.DroppedLines
	return out, nil
}
