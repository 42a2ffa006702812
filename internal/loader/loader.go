package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formtoggle/pkg/htmlform"
	"github.com/goliatone/go-formtoggle/pkg/source"
)

// ErrHTTPDisabled is returned for URL sources when no HTTP client is set.
var ErrHTTPDisabled = errors.New("loader: http support disabled")

// Options configure a Loader.
type Options struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
}

// Loader reads pages by delegating to file, fs.FS, or HTTP strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
}

// New constructs a Loader from pre-resolved options.
func New(options Options) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
	}
}

// Load fetches the page behind src, decodes it to UTF-8 and parses it.
func (l *Loader) Load(ctx context.Context, src source.Source) (*htmlform.Document, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	var (
		p   page
		err error
	)
	switch src.Kind() {
	case source.KindFile:
		p, err = openFile(ctx, src.Location())
	case source.KindFS:
		p, err = openFS(ctx, l.fs, src.Location())
	case source.KindURL:
		if !l.allowHTTP {
			return nil, ErrHTTPDisabled
		}
		p, err = openURL(ctx, l.http, src.Location())
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = p.body.Close()
	}()

	r, err := p.decode()
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	doc, err := htmlform.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}
	return doc, nil
}
