package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-formtoggle/pkg/htmlform"
	"github.com/goliatone/go-formtoggle/pkg/orchestrator"
	"github.com/goliatone/go-formtoggle/pkg/plan"
	"github.com/goliatone/go-formtoggle/pkg/report"
	"github.com/goliatone/go-formtoggle/pkg/source"
)

func (o *rootOptions) newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(
		orchestrator.WithLogger(logger),
		orchestrator.WithHTTPFallback(o.cfg.Timeout),
	)
}

// readsStdin reports whether --input selects stdin.
func (o *rootOptions) readsStdin() bool {
	return o.input == "" || o.input == "-"
}

// request resolves --input into an orchestrator request. Stdin is parsed
// eagerly since it can only be read once.
func (o *rootOptions) request() (orchestrator.Request, string, error) {
	if o.readsStdin() {
		doc, err := htmlform.Parse(o.stdin)
		if err != nil {
			return orchestrator.Request{}, "", err
		}
		return orchestrator.Request{Document: doc}, "stdin", nil
	}
	src, err := source.Parse(o.input)
	if err != nil {
		return orchestrator.Request{}, "", err
	}
	return orchestrator.Request{Source: src}, src.Location(), nil
}

func (o *rootOptions) run(ctx context.Context, p plan.Plan) error {
	req, name, err := o.request()
	if err != nil {
		return err
	}
	req.Plan = p

	resp, err := o.newOrchestrator().Apply(ctx, req)
	if err != nil {
		return err
	}
	if err := o.writePage(resp); err != nil {
		return err
	}
	return o.writeSummary(name, resp.Result)
}

func (o *rootOptions) writePage(resp orchestrator.Response) error {
	if o.output == "" {
		return resp.Render(o.stdout)
	}
	var buf bytes.Buffer
	if err := resp.Render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(o.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("page written", zap.String("path", o.output))
	return nil
}

func (o *rootOptions) writeSummary(name string, result plan.Result) error {
	if !o.summary {
		return nil
	}
	return report.Render(o.stderr, report.Summary{Source: name, Result: result})
}
