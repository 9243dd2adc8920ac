package fetcher

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
)

// DefaultMaxBytes caps how much of a page is read into memory.
const DefaultMaxBytes = 16 << 20

// Fetcher defines the interface for downloading remote pages.
type Fetcher interface {
	// Download fetches the URL and returns the response body decoded to UTF-8.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// FetchPage downloads url and returns at most maxBytes of its body as text.
// A non-positive maxBytes uses DefaultMaxBytes.
func FetchPage(ctx context.Context, f Fetcher, url string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	body, err := f.Download(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(body, maxBytes))
	if err != nil {
		return "", eris.Wrap(err, "fetch page: read body")
	}
	return string(data), nil
}
