// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"code.sajari.com/docconv/v2"
)

// DocConverter extracts text from word-processor documents
// (.docx, .doc, .odt, .rtf). Legacy .doc and .rtf conversion relies on the
// external tools docconv shells out to (wvText, unrtf).
type DocConverter struct{}

// Convert returns the document body as plain text.
func (DocConverter) Convert(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("converting document %s: %w", path, err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return "", fmt.Errorf("document %s produced empty output", path)
	}
	return res.Body, nil
}
