// Package plan describes a sequence of checkbox toggles that can be stored in
// a JSON or YAML file and replayed against any checkbox.Form.
package plan

import (
	"fmt"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
)

// Step toggles one group (Name) or several groups (Names). Exactly one of the
// two must be set.
type Step struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Names   []string `json:"names,omitempty" yaml:"names,omitempty"`
	Checked bool     `json:"checked" yaml:"checked"`
}

// Plan is an ordered list of steps.
type Plan struct {
	Source string `json:"-" yaml:"-"`
	Steps  []Step `json:"steps" yaml:"steps"`
}

// StepResult records how many checkboxes a step matched.
type StepResult struct {
	Step    Step
	Matched int
}

// Result aggregates step results in execution order.
type Result struct {
	Steps []StepResult
}

// Total sums matched checkboxes across steps.
func (r Result) Total() int {
	total := 0
	for _, s := range r.Steps {
		total += s.Matched
	}
	return total
}

// Multiple reports whether the step targets a name set.
func (s Step) Multiple() bool {
	return s.Name == "" && s.Names != nil
}

// Targets returns the group names the step touches.
func (s Step) Targets() []string {
	if s.Multiple() {
		return s.Names
	}
	return []string{s.Name}
}

// Validate checks the step shape.
func (s Step) Validate() error {
	switch {
	case s.Name != "" && len(s.Names) > 0:
		return fmt.Errorf("%w: name and names are mutually exclusive", ErrInvalidStep)
	case s.Name == "" && s.Names == nil:
		return fmt.Errorf("%w: name or names is required", ErrInvalidStep)
	}
	for idx, name := range s.Names {
		if name == "" {
			return fmt.Errorf("%w: names[%d] is empty", ErrInvalidStep, idx)
		}
	}
	return nil
}

// Validate checks every step.
func (p Plan) Validate() error {
	for idx, step := range p.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("plan: step %d: %w", idx, err)
		}
	}
	return nil
}

// Apply runs the plan against form with the default toggler.
func (p Plan) Apply(form checkbox.Form) (Result, error) {
	return p.ApplyWith(checkbox.New(), form)
}

// ApplyWith runs every step in order using toggler. The plan is validated
// before any checkbox is touched.
func (p Plan) ApplyWith(toggler *checkbox.Toggler, form checkbox.Form) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if toggler == nil {
		toggler = checkbox.New()
	}
	result := Result{Steps: make([]StepResult, 0, len(p.Steps))}
	for idx, step := range p.Steps {
		var (
			matched int
			err     error
		)
		if step.Multiple() {
			matched, err = toggler.SelectMultiple(form, step.Names, step.Checked)
		} else {
			matched, err = toggler.Select(form, step.Name, step.Checked)
		}
		if err != nil {
			return result, fmt.Errorf("plan: step %d: %w", idx, err)
		}
		result.Steps = append(result.Steps, StepResult{Step: step, Matched: matched})
	}
	return result, nil
}
