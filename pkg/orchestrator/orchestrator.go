package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formtoggle/internal/loader"
	"github.com/goliatone/go-formtoggle/pkg/checkbox"
	"github.com/goliatone/go-formtoggle/pkg/htmlform"
	"github.com/goliatone/go-formtoggle/pkg/plan"
	"github.com/goliatone/go-formtoggle/pkg/source"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger routes pipeline and toggle diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFileSystem supplies the fs.FS used for source.FromFS locations.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.loaderOptions.FileSystem = fsys
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) {
		o.loaderOptions.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client bounded by
// timeout.
func WithHTTPFallback(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.loaderOptions.AllowHTTPFallback = true
		o.loaderOptions.RequestTimeout = timeout
	}
}

// Orchestrator coordinates loading a page, resolving its first form, applying
// a toggle plan and rendering the result.
type Orchestrator struct {
	logger        *zap.Logger
	loaderOptions loader.Options
	loader        *loader.Loader
	toggler       *checkbox.Toggler
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.loader = loader.New(o.loaderOptions)
	o.toggler = checkbox.New(checkbox.WithLogger(o.logger))
	return o
}

// Request describes a toggle run.
type Request struct {
	// Source identifies the page. Optional when Document is supplied.
	Source source.Source

	// Document allows callers to bypass the loader when they already hold a
	// parsed page.
	Document *htmlform.Document

	// Plan lists the toggles to apply to the page's first form.
	Plan plan.Plan
}

// Response carries the mutated page and per-step match counts.
type Response struct {
	Document *htmlform.Document
	Result   plan.Result
}

// Render serialises the mutated page to w.
func (r Response) Render(w io.Writer) error {
	if r.Document == nil {
		return errors.New("orchestrator: response has no document")
	}
	return r.Document.Render(w)
}

// Apply loads the page, resolves its first form and runs the plan.
func (o *Orchestrator) Apply(ctx context.Context, req Request) (Response, error) {
	form, doc, err := o.firstForm(ctx, req)
	if err != nil {
		return Response{}, err
	}

	result, err := req.Plan.ApplyWith(o.toggler, form)
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: apply plan: %w", err)
	}
	o.logger.Info("plan applied",
		zap.String("plan", req.Plan.Source),
		zap.Int("steps", len(result.Steps)),
		zap.Int("matched", result.Total()),
	)
	return Response{Document: doc, Result: result}, nil
}

// Groups lists the checkbox groups of the page's first form.
func (o *Orchestrator) Groups(ctx context.Context, req Request) ([]string, error) {
	form, _, err := o.firstForm(ctx, req)
	if err != nil {
		return nil, err
	}
	return checkbox.Groups(form), nil
}

// Load resolves the request's page, loading it from its source if needed.
func (o *Orchestrator) Load(ctx context.Context, req Request) (*htmlform.Document, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Document != nil {
		return req.Document, nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load page: %w", err)
	}
	o.logger.Debug("page loaded",
		zap.String("kind", string(req.Source.Kind())),
		zap.String("location", req.Source.Location()),
	)
	return doc, nil
}

func (o *Orchestrator) firstForm(ctx context.Context, req Request) (*htmlform.Form, *htmlform.Document, error) {
	doc, err := o.Load(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	form, err := doc.FirstForm()
	if err != nil {
		return nil, nil, fmt.Errorf("orchestrator: %w", err)
	}
	return form, doc, nil
}
