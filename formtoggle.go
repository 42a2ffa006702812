// Package formtoggle checks or unchecks checkbox groups in the first form of
// an HTML page. The heavy lifting lives in pkg/checkbox (the toggler) and
// pkg/orchestrator (load, apply, render); this package re-exports the common
// entry points.
package formtoggle

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-formtoggle/pkg/htmlform"
	"github.com/goliatone/go-formtoggle/pkg/orchestrator"
	"github.com/goliatone/go-formtoggle/pkg/plan"
)

// Plan aliases plan.Plan for callers building plans in code.
type Plan = plan.Plan

// Step aliases plan.Step.
type Step = plan.Step

// Result aliases plan.Result.
type Result = plan.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// ApplyHTML parses the page read from r, applies p to its first form and
// writes the resulting markup to w.
func ApplyHTML(ctx context.Context, r io.Reader, w io.Writer, p Plan, options ...orchestrator.Option) (Result, error) {
	doc, err := htmlform.Parse(r)
	if err != nil {
		return Result{}, err
	}
	resp, err := orchestrator.New(options...).Apply(ctx, orchestrator.Request{
		Document: doc,
		Plan:     p,
	})
	if err != nil {
		return Result{}, err
	}
	if err := resp.Render(w); err != nil {
		return Result{}, fmt.Errorf("formtoggle: %w", err)
	}
	return resp.Result, nil
}

// SelectHTML is ApplyHTML for a single step: one name checks a group, several
// names check their union.
func SelectHTML(ctx context.Context, r io.Reader, w io.Writer, names []string, checked bool, options ...orchestrator.Option) (Result, error) {
	step := Step{Checked: checked}
	if len(names) == 1 {
		step.Name = names[0]
	} else {
		step.Names = append([]string{}, names...)
	}
	return ApplyHTML(ctx, r, w, Plan{Source: "select", Steps: []Step{step}}, options...)
}
