//go:build mage

// Package main contains Mage build targets for citesift developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "citesift"
	cmdPkg  = "./cmd/citesift"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Sample writes a small citation list to testdata/citations.txt and
// searches it with the freshly built binary.
func Sample() error {
	mg.Deps(Build)

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		return fmt.Errorf("creating testdata: %w", err)
	}
	path := filepath.Join("testdata", "citations.txt")
	if err := os.WriteFile(path, []byte(sampleCitations), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)

	return sh.RunV(filepath.Join(binDir, binName), "search", path, "-k", "attention", "-k", "graph")
}

const sampleCitations = `Attention is all you need
A Vaswani, N Shazeer, N Parmar, J Uszkoreit, L Jones
Advances in neural information processing systems
120000 2017

Semi-supervised classification with graph convolutional networks
TN Kipf, M Welling
arXiv preprint arXiv:1609.02907
30000 2016

Graph attention networks
P Veličković, G Cucurull, A Casanova, A Romero, P Lio
arXiv preprint arXiv:1710.10903
20000 2017

Deep residual learning for image recognition
K He, X Zhang, S Ren, J Sun
Proceedings of the IEEE conference on computer vision and pattern recognition
200000 2016
`

// Stats prints project metrics: Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
// Directories starting with "_" or "." are skipped, as the go tool does.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
