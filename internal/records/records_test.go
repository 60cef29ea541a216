// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citesift/pkg/types"
)

const twoArticles = "Title A\nJournal X\n5 2020\nTitle B\nJournal Y\n10 2021\n"

var withJournal = Options{ExtractJournal: true}

func TestParseJournalAware(t *testing.T) {
	got, err := Parse(strings.NewReader(twoArticles), withJournal)
	require.NoError(t, err)

	assert.Equal(t, []types.Record{
		{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020},
		{Text: "Title B", Journal: "Journal Y", Citations: 10, Year: 2021},
	}, got)
}

func TestParseWithoutJournal(t *testing.T) {
	got, err := Parse(strings.NewReader(twoArticles), Options{})
	require.NoError(t, err)

	assert.Equal(t, []types.Record{
		{Text: "Title A Journal X", Citations: 5, Year: 2020},
		{Text: "Title B Journal Y", Citations: 10, Year: 2021},
	}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []types.Record
	}{
		{
			name:  "empty input",
			input: "",
			opts:  withJournal,
			want:  nil,
		},
		{
			name:  "blank lines neither extend nor end a record",
			input: "\n\nTitle A\n\n   \nAuthors\n\nJournal X\n\n5 2020\n\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A Authors", Journal: "Journal X", Citations: 5, Year: 2020}},
		},
		{
			name:  "lines are trimmed",
			input: "  Title A \t\n\tJournal X  \n  7   2019  \n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A", Journal: "Journal X", Citations: 7, Year: 2019}},
		},
		{
			name:  "tab between citations and year",
			input: "Title A\nJournal X\n3\t2018\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A", Journal: "Journal X", Citations: 3, Year: 2018}},
		},
		{
			name:  "marker with empty buffer gets unknown journal",
			input: "5 2020\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "", Journal: types.UnknownJournal, Citations: 5, Year: 2020}},
		},
		{
			name:  "marker with empty buffer without journal extraction",
			input: "5 2020\n",
			opts:  Options{},
			want:  []types.Record{{Citations: 5, Year: 2020}},
		},
		{
			name:  "single buffered line becomes the journal",
			input: "Only Line\n0 1999\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "", Journal: "Only Line", Citations: 0, Year: 1999}},
		},
		{
			name:  "consecutive markers",
			input: "Title A\nJournal X\n5 2020\n6 2021\n",
			opts:  withJournal,
			want: []types.Record{
				{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020},
				{Text: "", Journal: types.UnknownJournal, Citations: 6, Year: 2021},
			},
		},
		{
			name:  "trailing block without marker is dropped",
			input: "Title A\nJournal X\n5 2020\nTitle B about graphs\nJournal Y\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020}},
		},
		{
			name:  "classic mac line endings",
			input: "Title A\rJournal X\r5 2020\rTitle B\rJournal Y\r10 2021\r",
			opts:  withJournal,
			want: []types.Record{
				{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020},
				{Text: "Title B", Journal: "Journal Y", Citations: 10, Year: 2021},
			},
		},
		{
			name:  "mixed line endings",
			input: "Title A\r\nJournal X\r5 2020\nTitle B\r\r\nJournal Y\n10 2021",
			opts:  withJournal,
			want: []types.Record{
				{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020},
				{Text: "Title B", Journal: "Journal Y", Citations: 10, Year: 2021},
			},
		},
		{
			name:  "no-break space in marker",
			input: "Title A\nJournal X\n5\u00a02020\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020}},
		},
		{
			name:  "full-width digits and ideographic space in marker",
			input: "Title A\nJournal X\n\uff11\uff12\u3000\uff12\uff10\uff11\uff19\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A", Journal: "Journal X", Citations: 12, Year: 2019}},
		},
		{
			name:  "windows line endings",
			input: "Title A\r\nJournal X\r\n5 2020\r\n",
			opts:  withJournal,
			want:  []types.Record{{Text: "Title A", Journal: "Journal X", Citations: 5, Year: 2020}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDetailedCounts(t *testing.T) {
	input := "Title A\nAuthors A\nJournal X\n5 2020\n\nTitle B\nJournal Y\n"

	res, err := ParseDetailed(strings.NewReader(input), withJournal)
	require.NoError(t, err)

	assert.Len(t, res.Records, 1)
	assert.Equal(t, 5, res.ContentLines)
	assert.Equal(t, 2, res.DroppedLines)
}

// Every marker line yields exactly one record and no record exists
// without one.
func TestParseCardinality(t *testing.T) {
	inputs := []string{
		"",
		"no markers at all\njust text\n",
		twoArticles,
		"1 2000\n2 2001\n3 2002\n",
		"A\n\n1 2000\nB\nC\nD\n2 2001\ntrailing\n",
	}
	for _, input := range inputs {
		markers := 0
		for _, line := range strings.Split(input, "\n") {
			if _, _, ok := ParseMarker(strings.TrimSpace(line)); ok {
				markers++
			}
		}
		for _, opts := range []Options{{}, withJournal} {
			got := ParseString(input, opts)
			assert.Len(t, got, markers, "input %q", input)
		}
	}
}

// Joining the buffered lines in front of a marker reproduces Text.
func TestParseTextRoundTrip(t *testing.T) {
	blocks := [][]string{
		{"Deep learning for graphs", "A. Author, B. Author", "Nature"},
		{"Single line title"},
		{"One", "Two", "Three", "Four"},
	}
	var b strings.Builder
	for i, block := range blocks {
		for _, line := range block {
			b.WriteString(line + "\n")
		}
		b.WriteString("1 20" + string(rune('1'+i)) + "0\n")
	}

	plain := ParseString(b.String(), Options{})
	journal := ParseString(b.String(), withJournal)
	require.Len(t, plain, len(blocks))
	require.Len(t, journal, len(blocks))

	for i, block := range blocks {
		assert.Equal(t, strings.Join(block, " "), plain[i].Text)
		assert.Equal(t, strings.Join(block[:len(block)-1], " "), journal[i].Text)
		assert.Equal(t, block[len(block)-1], journal[i].Journal)
	}
}

// A title line shaped like a marker is read as a marker.
func TestParseMarkerShapedTitle(t *testing.T) {
	got := ParseString("Proceedings volume\n120 2015\nJournal X\n4 2016\n", withJournal)

	require.Len(t, got, 2)
	assert.Equal(t, 120, got[0].Citations)
	assert.Equal(t, "Proceedings volume", got[0].Journal)
	assert.Equal(t, "Journal X", got[1].Journal)
}

func TestParseLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	got := ParseString(long+"\nJournal X\n1 2020\n", withJournal)

	require.Len(t, got, 1)
	assert.Len(t, got[0].Text, len(long))
}

func TestParseOversizedLine(t *testing.T) {
	huge := strings.Repeat("x", maxLineSize+1)
	input := twoArticles + huge + "\nTitle C\nJournal Z\n1 2022\n"

	res, err := ParseDetailed(strings.NewReader(input), withJournal)
	require.Error(t, err)
	assert.Len(t, res.Records, 2)

	// ParseString keeps the records completed before the long line.
	got := ParseString(input, withJournal)
	require.Len(t, got, 2)
	assert.Equal(t, "Journal Y", got[1].Journal)
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		line      string
		citations int
		year      int
		ok        bool
	}{
		{"5 2020", 5, 2020, true},
		{"0 1999", 0, 1999, true},
		{"1234   2001", 1234, 2001, true},
		{"5 20201", 0, 0, false},
		{"5 202", 0, 0, false},
		{"5  ", 0, 0, false},
		{"abc 2020", 0, 0, false},
		{"-5 2020", 0, 0, false},
		{"5 2020 extra", 0, 0, false},
		{"Cited by 5 2020", 0, 0, false},
		{"99999999999999999999999 2020", 0, 0, false},
		{"5\u00a02020", 5, 2020, true},
		{"5\u2009\u20092020", 5, 2020, true},
		{"\u0664\u0662 \u0662\u0660\u0661\u0668", 42, 2018, true},
		{"\U0001d7d1 \U0001d7d0\U0001d7ce\U0001d7d0\U0001d7d4", 3, 2026, true},
		{"5 \u00b2020", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, y, ok := ParseMarker(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.citations, c)
			assert.Equal(t, tt.year, y)
		})
	}
}
