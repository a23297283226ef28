package catalog

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/medscan/medcheck-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// sourceFiles are the catalog sections fetched from the remote base URL.
var sourceFiles = []string{drugsFile, interactionsFile}

// downloadFile fetches one catalog file and writes it UTF-8 encoded into
// the catalog directory.
func (p *CatalogParserImpl) downloadFile(name string) error {
	cleanPath := filepath.Clean(filepath.Join(p.dir, name))
	if !strings.HasPrefix(cleanPath, filepath.Clean(p.dir)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid filepath: %s", name)
	}

	url := strings.TrimSuffix(p.baseURL, "/") + "/" + name

	client := &http.Client{
		Timeout: 5 * time.Minute,
	}
	response, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err = response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading %s", response.StatusCode, url)
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Some catalog exports are iso-8859-1, check first
	var reader io.Reader
	if utf8.Valid(bodyBytes) {
		reader = bytes.NewReader(bodyBytes)
	} else {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	}

	outFile, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", cleanPath, err)
	}
	defer func() {
		if err = outFile.Close(); err != nil {
			logging.Warn("Failed to close output file", "error", err)
		}
	}()

	if _, err := io.Copy(outFile, reader); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", cleanPath, err)
	}

	logging.Debug(fmt.Sprintf("%s downloaded without errors", name))
	return nil
}

// downloadAll fetches all catalog files concurrently.
func (p *CatalogParserImpl) downloadAll() error {
	if err := os.MkdirAll(p.dir, 0750); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, name := range sourceFiles {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()
			if err := p.downloadFile(name); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	if len(errs) > 0 {
		logging.Error("Download errors occurred", "errors", errs)
		return fmt.Errorf("download errors: %v", errs)
	}

	return nil
}
