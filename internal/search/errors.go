// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRule is returned when the rule is neither "and" nor "or".
	ErrInvalidRule = errors.New("rule must be 'and' or 'or'")

	// ErrFileNotFound is returned when the input path does not exist.
	ErrFileNotFound = errors.New("file not found")
)

// FileReadError reports an input file that exists but could not be read
// or decoded.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("error reading file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
