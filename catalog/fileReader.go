// Package catalog provides functionality for downloading and parsing the
// drug catalog from its source files.
package catalog

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readCatalogFile reads a catalog source file and returns UTF-8 bytes.
// Exported catalogs are not reliably UTF-8, so anything that fails the
// UTF-8 check is decoded from ISO-8859-1.
func readCatalogFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	if utf8.Valid(raw) {
		return raw, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}
	return decoded, nil
}
