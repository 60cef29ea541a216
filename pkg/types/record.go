// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citesift.
// Record is produced by the parser (internal/records), filtered by
// internal/search, and written out by internal/export.
package types

// UnknownJournal is the journal recorded when a marker line has no
// buffered lines in front of it and journal extraction is enabled.
const UnknownJournal = "Unknown Journal"

// Record is one parsed bibliographic entry. A record is created when the
// parser consumes a "citations year" marker line and is never modified
// afterwards.
type Record struct {
	// Text is the space-joined title/author lines that preceded the marker.
	// With journal extraction enabled the last buffered line is excluded.
	Text string `json:"text" yaml:"text"`

	// Journal is the last buffered line when journal extraction is enabled,
	// UnknownJournal when nothing was buffered, and empty otherwise.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// Citations is the citation count from the marker line.
	Citations int `json:"citations" yaml:"citations"`

	// Year is the four-digit publication year from the marker line.
	Year int `json:"year" yaml:"year"`
}

// SearchableText returns the text that keyword rules are evaluated
// against. The journal is appended when it is part of the record.
func (r Record) SearchableText(includeJournal bool) string {
	if includeJournal && r.Journal != "" {
		return r.Text + " " + r.Journal
	}
	return r.Text
}
