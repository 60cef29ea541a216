// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pdiddy/citesift/pkg/types"
)

const (
	ruleWidth    = 80
	dividerWidth = 40
	noMatches    = "No articles found matching criteria."
)

// FormatReport writes the human-readable report for out to w: a header
// naming the keywords and rule, one entry per match with a text preview of
// previewLen characters, and a summary block. previewLen <= 0 selects
// types.DefaultPreviewLength.
func FormatReport(out SearchOutput, w io.Writer, previewLen int) {
	if previewLen <= 0 {
		previewLen = types.DefaultPreviewLength
	}
	keywords := formatKeywords(out.Query.Keywords)
	rule := strings.ToUpper(string(out.Query.Rule))

	fmt.Fprintf(w, "\nSearch Config | Keywords: %s | Rule: '%s'\n", keywords, rule)
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))

	if len(out.Records) == 0 {
		fmt.Fprintln(w, noMatches)
		return
	}

	for i, r := range out.Records {
		fmt.Fprintf(w, "[%d] Citations: %d | Year: %d", i+1, r.Citations, r.Year)
		if r.Journal != "" {
			fmt.Fprintf(w, " | Journal: %s", r.Journal)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "    Content: %s...\n", preview(r.Text, previewLen))
		fmt.Fprintln(w, strings.Repeat("-", dividerWidth))
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", ruleWidth))
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  - Keywords: %s\n", keywords)
	fmt.Fprintf(w, "  - Logic: %s\n", rule)
	fmt.Fprintf(w, "  - Articles Found: %d\n", out.Matches())
	fmt.Fprintf(w, "  - Total Citations: %d\n", out.TotalCitations)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", ruleWidth))
}

// FormatJSON writes out as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Render writes out to w in the given format.
func Render(out SearchOutput, format types.OutputFormat, w io.Writer, previewLen int) error {
	switch format {
	case types.OutputText, "":
		FormatReport(out, w, previewLen)
		return nil
	case types.OutputJSON:
		return FormatJSON(out, w)
	case types.OutputCSL:
		return FormatCSL(out, w)
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or csl", format)
	}
}

// formatKeywords renders keywords as a bracketed list of single-quoted
// strings, e.g. ['graph', "Bayes' rule"].
func formatKeywords(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = quoteKeyword(k)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quoteKeyword quotes s with single quotes, or double quotes when s
// contains a single quote and no double quote. Backslashes, the chosen
// quote, and non-printable characters are escaped.
func quoteKeyword(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}

// preview returns the first n characters of s. The caller appends the
// ellipsis whether or not anything was cut.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
