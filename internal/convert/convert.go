// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert reduces an input document to the plain UTF-8 text that
// the record parser consumes. Citation lists arrive as text exports, PDFs
// printed from a scholar profile, or word-processor documents; each format
// has a Converter backend and ForPath picks one by file extension.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Converter turns the document at path into plain text, one logical line
// per source line.
type Converter interface {
	// Convert reads the document at path and returns its text content.
	Convert(path string) (string, error)
}

// Format names a supported input format.
type Format string

const (
	FormatText     Format = "text"
	FormatPDF      Format = "pdf"
	FormatDocument Format = "document"
)

// documentExts are handled by DocConverter.
var documentExts = map[string]bool{
	".docx": true,
	".doc":  true,
	".odt":  true,
	".rtf":  true,
}

// DetectFormat returns the input format implied by the file extension.
// Unknown extensions are treated as text.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return FormatPDF
	case documentExts[ext]:
		return FormatDocument
	default:
		return FormatText
	}
}

// ForPath returns the converter for the file at path.
func ForPath(path string) Converter {
	switch DetectFormat(path) {
	case FormatPDF:
		return PDFConverter{}
	case FormatDocument:
		return DocConverter{}
	default:
		return TextConverter{}
	}
}

// ErrInvalidUTF8 is returned when a text input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// utf8BOM is stripped from the start of text input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextConverter reads plain UTF-8 text files.
type TextConverter struct{}

// Convert returns the file contents. Content that is not valid UTF-8 is
// rejected rather than silently mangled.
func (TextConverter) Convert(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("decoding %s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}
