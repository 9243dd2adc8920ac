package fetcher

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
}

// HTTPFetcher implements Fetcher with a single net/http GET per call.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "boatramps/1.0"
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts: opts,
	}
}

// Download fetches the URL and returns the response body. Bodies declared in
// a non-UTF-8 charset are transcoded on read.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "download")
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		if blocked, kind := DetectBlockHeaders(resp); blocked {
			return nil, eris.Errorf("download: blocked (%s) with status %d from %s", kind, resp.StatusCode, rawURL)
		}
		return nil, eris.Errorf("download: unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return utf8Body(resp), nil
}

type decodedBody struct {
	io.Reader
	io.Closer
}

// utf8Body wraps the response body in a decoder when Content-Type names a
// charset other than UTF-8. Unknown charsets are passed through untouched.
func utf8Body(resp *http.Response) io.ReadCloser {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return resp.Body
	}
	charset := strings.ToLower(strings.TrimSpace(params["charset"]))
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return resp.Body
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		zap.L().Warn("unsupported response charset, reading as utf-8",
			zap.String("charset", charset),
			zap.String("url", resp.Request.URL.String()),
		)
		return resp.Body
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return resp.Body
	}
	return decodedBody{Reader: enc.NewDecoder().Reader(resp.Body), Closer: resp.Body}
}
