package reddit_archiver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Large chunks amortize per-chunk overhead on multi-hundred-megabyte videos.
const fetchChunkSize = 25 << 20

// Some hosts refuse requests without a browser-looking User-Agent.
const userAgent = "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/41.0.2228.0 Safari/537.36"

var ErrBadStatus = errors.New("unexpected HTTP status")

// A StreamFetcher performs an idempotent streamed transfer of a fetchable URL
// to a local file.
type StreamFetcher interface {
	// Fetch streams url to destPath. If destPath already exists the fetch is
	// a no-op success; the content is assumed to already be present.
	Fetch(ctx context.Context, url string, destPath string) error
}

type HTTPFetcher struct {
	// Client used for transfers; nil means http.DefaultClient (and the
	// transport's default timeouts).
	Client *http.Client
	log    *zap.SugaredLogger
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{log: zap.S().Named("fetch")}
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *HTTPFetcher) logger() *zap.SugaredLogger {
	if f.log == nil {
		f.log = zap.S().Named("fetch")
	}
	return f.log
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		f.logger().Debugf("%s already exists, skipping fetch", destPath)
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.client().Do(req)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	// The target file is created only once the response stream is open, so a
	// refused request never leaves an empty file behind.
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to open target file: %w", err)
	}
	defer out.Close()

	written, err := copyChunked(out, &readerContext{ctx: ctx, r: resp.Body})
	if err != nil {
		return fmt.Errorf("failed to save stream: %w", err)
	}
	f.logger().Debugf("saved %d bytes to %s", written, destPath)
	return nil
}

// copyChunked copies src to dst in fetchChunkSize pieces. The io.Writer
// wrapper hides *os.File's ReadFrom so io.CopyBuffer actually uses the buffer.
func copyChunked(dst io.Writer, src io.Reader) (int64, error) {
	return io.CopyBuffer(struct{ io.Writer }{dst}, src, make([]byte, fetchChunkSize))
}

// A context-aware io.Reader wrapper.
type readerContext struct {
	ctx context.Context
	r   io.Reader
}

func (r *readerContext) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
