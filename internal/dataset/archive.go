package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"carddash.org/internal/logging"
)

// ErrEmptyArchive is returned for an archive without any file entry
var ErrEmptyArchive = errors.New("archive contains no files")

func rawArchiveData(ctx context.Context, source string, isLocalFile bool, logger *slog.Logger) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local archive: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building archive request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading archive: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "archive_download")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading archive: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading archive body: %w", err)
	}
	return b, nil
}

// firstEntry returns the first regular file of the archive, skipping directories
// and macOS resource forks.
func firstEntry(zr *zip.Reader) (*zip.File, error) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") || strings.HasPrefix(path.Base(f.Name), "._") {
			continue
		}
		return f, nil
	}
	return nil, ErrEmptyArchive
}

// readArchive parses the first file of a zip archive as a transaction CSV.
func readArchive(b []byte, logger *slog.Logger) (rows parseResult, entryName string, err error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return parseResult{}, "", fmt.Errorf("error opening archive: %w", err)
	}

	entry, err := firstEntry(zr)
	if err != nil {
		return parseResult{}, "", err
	}

	rc, err := entry.Open()
	if err != nil {
		return parseResult{}, entry.Name, fmt.Errorf("error opening %s: %w", entry.Name, err)
	}
	defer logging.HandleDeferredError(&err, rc.Close, logger, "close_archive_entry")

	rows, err = parseTransactions(rc)
	if err != nil {
		return parseResult{}, entry.Name, fmt.Errorf("error parsing %s: %w", entry.Name, err)
	}
	return rows, entry.Name, nil
}
