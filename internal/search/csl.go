// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citesift/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-YAML schema so that output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string   `yaml:"id"`
	Type           string   `yaml:"type"`
	Title          string   `yaml:"title"`
	ContainerTitle string   `yaml:"container-title,omitempty"`
	Issued         *CSLDate `yaml:"issued,omitempty"`
	Note           string   `yaml:"note,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the matched records as a CSL-YAML list to w.
func FormatCSL(out SearchOutput, w io.Writer) error {
	items := make([]CSLItem, len(out.Records))
	seen := make(map[string]int)
	for i, r := range out.Records {
		items[i] = toCSLItem(r)
		seen[items[i].ID]++
		if n := seen[items[i].ID]; n > 1 {
			items[i].ID += "-" + strconv.Itoa(n)
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Record to a CSLItem. The citation count has no CSL
// field of its own and is kept in the note.
func toCSLItem(r types.Record) CSLItem {
	item := CSLItem{
		ID:    citationKey(r),
		Type:  "article-journal",
		Title: r.Text,
		Note:  fmt.Sprintf("citations: %d", r.Citations),
	}
	if r.Journal != "" && r.Journal != types.UnknownJournal {
		item.ContainerTitle = r.Journal
	}
	if r.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{r.Year}}}
	}
	return item
}

// citationKey builds a key from the first word of the text and the year,
// e.g. "attention2017".
func citationKey(r types.Record) string {
	var b strings.Builder
	for _, c := range strings.ToLower(firstWord(r.Text)) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		b.WriteString("record")
	}
	return b.String() + strconv.Itoa(r.Year)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
