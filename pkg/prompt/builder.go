// Package prompt builds a toggle plan interactively: it lists the checkbox
// groups of a form, lets the user pick some, and asks for the target state.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
	"github.com/goliatone/go-formtoggle/pkg/plan"
)

// Option configures a Builder.
type Option func(*Builder)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(b *Builder) {
		if driver != nil {
			b.driver = driver
		}
	}
}

// WithPageSize limits how many groups the multi-select shows at once.
func WithPageSize(size int) Option {
	return func(b *Builder) {
		if size > 0 {
			b.pageSize = size
		}
	}
}

// Builder drives the interactive flow.
type Builder struct {
	driver   Driver
	pageSize int
}

// New constructs a Builder backed by the survey driver unless overridden.
func New(options ...Option) *Builder {
	b := &Builder{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.driver == nil {
		b.driver = NewSurveyDriver(terminal.Stdio{})
	}
	return b
}

// Build asks which groups to toggle and to which state. Groups whose
// checkboxes are all checked are preselected. Selecting nothing yields an
// empty plan.
func (b *Builder) Build(ctx context.Context, form checkbox.Form) (plan.Plan, error) {
	if ctx == nil {
		return plan.Plan{}, errors.New("prompt: context is required")
	}
	if form == nil {
		return plan.Plan{}, fmt.Errorf("prompt: %w", checkbox.ErrNoForm)
	}

	groups := checkbox.Groups(form)
	if len(groups) == 0 {
		return plan.Plan{}, ErrNoGroups
	}

	options := make([]string, len(groups))
	labeler, _ := form.(Labeler)
	for i, name := range groups {
		options[i] = name
		if labeler == nil {
			continue
		}
		if label := plainLabel(labeler.GroupLabel(name)); label != "" && label != name {
			options[i] = fmt.Sprintf("%s (%s)", name, label)
		}
	}

	picked, err := b.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Checkbox groups to toggle",
		Options:  options,
		Defaults: fullyChecked(form, groups),
		PageSize: b.pageSize,
	})
	if err != nil {
		return plan.Plan{}, fmt.Errorf("prompt: select groups: %w", err)
	}

	names := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(groups) {
			names = append(names, groups[idx])
		}
	}
	if len(names) == 0 {
		if err := b.driver.Info(ctx, "No groups selected; nothing to do."); err != nil {
			return plan.Plan{}, err
		}
		return plan.Plan{Source: "prompt"}, nil
	}

	checked, err := b.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Check %d selected group(s)? (no unchecks them)", len(names)),
		Default: true,
	})
	if err != nil {
		return plan.Plan{}, fmt.Errorf("prompt: confirm state: %w", err)
	}

	step := plan.Step{Checked: checked}
	if len(names) == 1 {
		step.Name = names[0]
	} else {
		step.Names = names
	}
	return plan.Plan{Source: "prompt", Steps: []plan.Step{step}}, nil
}

func fullyChecked(form checkbox.Form, groups []string) []int {
	allChecked := make(map[string]bool, len(groups))
	for _, el := range form.Elements() {
		if el == nil || el.Type() != checkbox.TypeCheckbox {
			continue
		}
		name := el.Name()
		prev, seen := allChecked[name]
		if !seen {
			prev = true
		}
		allChecked[name] = prev && el.Checked()
	}
	var out []int
	for i, name := range groups {
		if allChecked[name] {
			out = append(out, i)
		}
	}
	return out
}
