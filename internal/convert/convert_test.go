// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"citations.txt", FormatText},
		{"citations", FormatText},
		{"profile.PDF", FormatPDF},
		{"list.docx", FormatDocument},
		{"list.odt", FormatDocument},
		{"list.rtf", FormatDocument},
		{"list.doc", FormatDocument},
		{"archive.csv", FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectFormat(tt.path); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("a.txt").(TextConverter); !ok {
		t.Error("ForPath(a.txt) should return TextConverter")
	}
	if _, ok := ForPath("a.pdf").(PDFConverter); !ok {
		t.Error("ForPath(a.pdf) should return PDFConverter")
	}
	if _, ok := ForPath("a.docx").(DocConverter); !ok {
		t.Error("ForPath(a.docx) should return DocConverter")
	}
}

func TestTextConverter(t *testing.T) {
	path := writeInput(t, "in.txt", []byte("Title A\nJournal X\n5 2020\n"))

	got, err := TextConverter{}.Convert(path)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != "Title A\nJournal X\n5 2020\n" {
		t.Errorf("Convert = %q", got)
	}
}

func TestTextConverterStripsBOM(t *testing.T) {
	path := writeInput(t, "bom.txt", append([]byte{0xEF, 0xBB, 0xBF}, "Title A\n"...))

	got, err := TextConverter{}.Convert(path)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != "Title A\n" {
		t.Errorf("Convert = %q, want BOM stripped", got)
	}
}

func TestTextConverterInvalidUTF8(t *testing.T) {
	path := writeInput(t, "latin1.txt", []byte{'c', 'a', 'f', 0xE9, '\n'})

	_, err := TextConverter{}.Convert(path)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("err = %v, want ErrInvalidUTF8", err)
	}
}

func TestTextConverterMissingFile(t *testing.T) {
	_, err := TextConverter{}.Convert(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist in chain", err)
	}
}

func TestPDFConverterRejectsNonPDF(t *testing.T) {
	path := writeInput(t, "fake.pdf", []byte("not a pdf"))

	if _, err := (PDFConverter{}).Convert(path); err == nil {
		t.Error("expected error for non-PDF content")
	}
}
