// Package rodform snapshots document.forms[0] of a live browser page driven by
// go-rod. Toggles are recorded locally and written back in a single
// evaluation by Commit, so the page sees one synchronous mutation pass.
package rodform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
)

const snapshotJS = `() => {
	const form = document.forms[0];
	if (!form) return null;
	return Array.from(form.elements, (el) => ({
		type: String(el.type || ""),
		name: String(el.name || ""),
		checked: el.checked === true,
	}));
}`

// commitJS checks every target against the snapshot before writing any of
// them, so a page that changed since Snapshot is left untouched.
const commitJS = `(changes) => {
	const form = document.forms[0];
	if (!form) return -1;
	for (const change of changes) {
		const el = form.elements[change.index];
		if (!el || el.type !== change.type || el.name !== change.name) return -2;
	}
	for (const change of changes) {
		form.elements[change.index].checked = change.checked;
	}
	return changes.length;
}`

const (
	commitNoForm = -1
	commitStale  = -2
)

// ErrStaleSnapshot is returned by Commit when the page's form no longer
// matches the snapshot. Nothing is written in that case.
var ErrStaleSnapshot = errors.New("rodform: form changed since snapshot")

type snapshotEntry struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type change struct {
	Index   int    `json:"index"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// Element is a snapshot of one form control.
type Element struct {
	index   int
	typ     string
	name    string
	checked bool
	touched bool
}

var _ checkbox.Element = (*Element)(nil)

func (e *Element) Type() string { return e.typ }

func (e *Element) Name() string { return e.name }

func (e *Element) Checked() bool { return e.checked }

// SetChecked records the new state; the page is untouched until Commit.
// Every recorded control is written, even when the state did not change, so
// the page ends in the requested state whatever happened in between.
func (e *Element) SetChecked(checked bool) {
	if e.typ != checkbox.TypeCheckbox && e.typ != "radio" {
		return
	}
	e.checked = checked
	e.touched = true
}

// Form is a snapshot of the first form of a page.
type Form struct {
	page     *rod.Page
	elements []*Element
}

var _ checkbox.Form = (*Form)(nil)

// Elements implements checkbox.Form.
func (f *Form) Elements() []checkbox.Element {
	out := make([]checkbox.Element, len(f.elements))
	for i, el := range f.elements {
		out[i] = el
	}
	return out
}

// Pending reports how many controls have a recorded state waiting for Commit.
func (f *Form) Pending() int {
	return len(f.changes())
}

func (f *Form) changes() []change {
	var out []change
	for _, el := range f.elements {
		if el.touched {
			out = append(out, change{Index: el.index, Type: el.typ, Name: el.name, Checked: el.checked})
		}
	}
	return out
}

// Snapshot reads type, name and checked of every control of the page's first
// form. It returns checkbox.ErrNoForm when the page has no form.
func Snapshot(ctx context.Context, page *rod.Page) (*Form, error) {
	if page == nil {
		return nil, fmt.Errorf("rodform: page is nil")
	}
	res, err := page.Context(ctx).Evaluate(rod.Eval(snapshotJS))
	if err != nil {
		return nil, fmt.Errorf("rodform: snapshot: %w", err)
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("rodform: snapshot value: %w", err)
	}
	entries, err := decodeSnapshot(raw)
	if err != nil {
		return nil, err
	}
	return newForm(page, entries), nil
}

func decodeSnapshot(raw []byte) ([]snapshotEntry, error) {
	var entries *[]snapshotEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("rodform: decode snapshot: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("rodform: %w", checkbox.ErrNoForm)
	}
	return *entries, nil
}

func newForm(page *rod.Page, entries []snapshotEntry) *Form {
	form := &Form{page: page, elements: make([]*Element, len(entries))}
	for i, entry := range entries {
		form.elements[i] = &Element{
			index:   i,
			typ:     entry.Type,
			name:    entry.Name,
			checked: entry.Checked,
		}
	}
	return form
}

// Commit writes pending checked flags back to the page and returns how many
// controls were written. Each target must still have the type and name seen
// at snapshot time, otherwise nothing is written and ErrStaleSnapshot is
// returned. Pending state is cleared on success.
func (f *Form) Commit(ctx context.Context) (int, error) {
	pending := f.changes()
	if len(pending) == 0 {
		return 0, nil
	}
	if f.page == nil {
		return 0, fmt.Errorf("rodform: form is detached")
	}
	res, err := f.page.Context(ctx).Evaluate(rod.Eval(commitJS, pending))
	if err != nil {
		return 0, fmt.Errorf("rodform: commit: %w", err)
	}
	written, err := commitResult(res.Value.Int())
	if err != nil {
		return 0, err
	}
	for _, el := range f.elements {
		el.touched = false
	}
	return written, nil
}

func commitResult(code int) (int, error) {
	switch {
	case code == commitNoForm:
		return 0, fmt.Errorf("rodform: commit: %w", checkbox.ErrNoForm)
	case code == commitStale:
		return 0, ErrStaleSnapshot
	case code < 0:
		return 0, fmt.Errorf("rodform: commit: unexpected result %d", code)
	}
	return code, nil
}

// Launch starts a local Chrome and connects to it.
func Launch(ctx context.Context, headless bool) (*rod.Browser, error) {
	l := launcher.New().Headless(headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("rodform: launch chrome: %w", err)
	}
	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("rodform: connect to chrome: %w", err)
	}
	return browser, nil
}
