package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// MaxPageSize caps how many bytes of a page are read.
const MaxPageSize = 8 << 20

var (
	// ErrNotHTML is returned when a server answers with a non-HTML media type.
	ErrNotHTML = errors.New("loader: response is not an HTML page")
	// ErrPageTooLarge is returned when a page exceeds MaxPageSize.
	ErrPageTooLarge = errors.New("loader: page exceeds size limit")
)

// acceptHeader lists the media types a form page can be served as.
const acceptHeader = "text/html,application/xhtml+xml;q=0.9"

var htmlMediaTypes = map[string]struct{}{
	"text/html":             {},
	"application/xhtml+xml": {},
}

// page is raw markup plus the media type it was served with, if any.
type page struct {
	body        io.ReadCloser
	contentType string
}

// decode returns a UTF-8 reader. The charset comes from the Content-Type
// parameter, then a BOM or <meta charset>, then windows-1252.
func (p page) decode() (io.Reader, error) {
	r, err := charset.NewReader(&limitReader{r: p.body, left: MaxPageSize}, p.contentType)
	if errors.Is(err, io.EOF) {
		// empty page
		return strings.NewReader(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loader: decode charset: %w", err)
	}
	return r, nil
}

func openFile(ctx context.Context, path string) (page, error) {
	if path == "" {
		return page{}, errors.New("loader: page path is required")
	}
	if err := ctx.Err(); err != nil {
		return page{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return page{}, fmt.Errorf("loader: open page: %w", err)
	}
	return page{body: f}, nil
}

func openFS(ctx context.Context, filesystem fs.FS, name string) (page, error) {
	if filesystem == nil {
		return page{}, errors.New("loader: filesystem is not configured")
	}
	if name == "" {
		return page{}, errors.New("loader: page path is required")
	}
	if err := ctx.Err(); err != nil {
		return page{}, err
	}
	f, err := filesystem.Open(name)
	if err != nil {
		return page{}, fmt.Errorf("loader: open page: %w", err)
	}
	return page{body: f}, nil
}

// openURL issues a GET for url and keeps only HTML responses. A missing
// Content-Type is accepted and left to charset sniffing.
func openURL(ctx context.Context, client *http.Client, url string) (page, error) {
	if client == nil {
		return page{}, errors.New("loader: http client is not configured")
	}
	if url == "" {
		return page{}, errors.New("loader: url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return page{}, fmt.Errorf("loader: build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := client.Do(req)
	if err != nil {
		return page{}, fmt.Errorf("loader: fetch %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return page{}, fmt.Errorf("loader: fetch %s: unexpected status %s", url, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			_ = resp.Body.Close()
			return page{}, fmt.Errorf("loader: fetch %s: content type %q: %w", url, contentType, err)
		}
		if _, ok := htmlMediaTypes[strings.ToLower(mediaType)]; !ok {
			_ = resp.Body.Close()
			return page{}, fmt.Errorf("%w: %s served %s", ErrNotHTML, url, mediaType)
		}
	}
	return page{body: resp.Body, contentType: contentType}, nil
}

// limitReader fails instead of truncating once left bytes have been read.
type limitReader struct {
	r    io.Reader
	left int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if l.left <= 0 {
		// one probe byte tells a page of exactly the limit from a larger one
		var probe [1]byte
		if n, _ := l.r.Read(probe[:]); n > 0 {
			return 0, ErrPageTooLarge
		}
		return 0, io.EOF
	}
	if int64(len(p)) > l.left {
		p = p[:l.left]
	}
	n, err := l.r.Read(p)
	l.left -= int64(n)
	return n, err
}
