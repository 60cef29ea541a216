// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records parses citation list text into bibliographic records.
//
// The input is a flat sequence of lines. Title, author, and (optionally)
// journal lines accumulate in a buffer until a marker line of the form
// "<citations> <year>" closes the record. Blank lines are ignored, and a
// trailing block with no marker never becomes a record.
package records

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/citesift/pkg/types"
)

// markerPattern matches the line that terminates a record: a citation
// count, whitespace, and a four-digit year. Digits are any Unicode decimal
// digits and whitespace includes no-break and ideographic spaces, which
// PDF and word-processor exports produce. A title line that happens to
// have this shape is indistinguishable from a real marker.
var markerPattern = regexp.MustCompile(`^(\p{Nd}+)[\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}]+(\p{Nd}{4})$`)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Options controls how buffered lines are resolved into a record.
type Options struct {
	// ExtractJournal takes the last buffered line as the record's journal.
	ExtractJournal bool
}

// Result holds the parsed records plus counts describing the pass.
type Result struct {
	Records []types.Record

	// ContentLines is the number of non-blank, non-marker lines read.
	ContentLines int

	// DroppedLines is the number of buffered lines left after the last
	// marker. They are discarded.
	DroppedLines int
}

// Parse reads all of r and returns the records it contains in input order.
func Parse(r io.Reader, opts Options) ([]types.Record, error) {
	res, err := ParseDetailed(r, opts)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// ParseString parses records from an in-memory string. A line longer than
// 1 MiB stops the parse: the records completed before it are returned and
// the rest of s is ignored. Use ParseDetailed to get that error.
func ParseString(s string, opts Options) []types.Record {
	res, _ := ParseDetailed(strings.NewReader(s), opts)
	return res.Records
}

// ParseDetailed parses r like Parse and also reports line statistics.
func ParseDetailed(r io.Reader, opts Options) (Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	var (
		res    Result
		buffer []string
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		citations, year, ok := ParseMarker(line)
		if !ok {
			buffer = append(buffer, line)
			res.ContentLines++
			continue
		}

		res.Records = append(res.Records, resolve(buffer, citations, year, opts))
		buffer = buffer[:0]
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scanning input: %w", err)
	}

	res.DroppedLines = len(buffer)
	return res, nil
}

// ParseMarker reports whether line is a marker line and returns its
// citation count and year. Counts too large for an int are not markers.
func ParseMarker(line string) (citations, year int, ok bool) {
	m := markerPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	citations, ok = digitsToInt(m[1])
	if !ok {
		return 0, 0, false
	}
	year, _ = digitsToInt(m[2])
	return citations, year, true
}

// digitsToInt converts a run of Unicode decimal digits to an int. It
// reports false on overflow.
func digitsToInt(s string) (int, bool) {
	n := 0
	for _, r := range s {
		d := digitValue(r)
		if n > (math.MaxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// digitValue returns the value of a decimal digit rune. Unicode assigns
// decimal digits in contiguous runs of whole 0-9 blocks, so the value is
// the offset from the start of the run modulo 10.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

// scanLines splits on "\n", "\r\n", and a lone "\r", so files saved with
// any of the three conventions yield the same lines.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing "\r" may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// resolve turns the buffered lines in front of a marker into a record.
func resolve(buffer []string, citations, year int, opts Options) types.Record {
	rec := types.Record{Citations: citations, Year: year}
	if !opts.ExtractJournal {
		rec.Text = strings.Join(buffer, " ")
		return rec
	}

	if len(buffer) == 0 {
		rec.Journal = types.UnknownJournal
		return rec
	}
	rec.Journal = buffer[len(buffer)-1]
	rec.Text = strings.Join(buffer[:len(buffer)-1], " ")
	return rec
}
