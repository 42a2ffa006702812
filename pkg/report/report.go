// Package report renders a human readable summary of a toggle run.
package report

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formtoggle/pkg/plan"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const summaryTemplate = "templates/summary.tpl"

var (
	setOnce  sync.Once
	set      *pongo2.TemplateSet
	summary  *pongo2.Template
	setupErr error
)

// Summary is the data rendered by Render.
type Summary struct {
	Source string
	Result plan.Result
}

// Render writes the summary to w.
func Render(w io.Writer, s Summary) error {
	if w == nil {
		return errors.New("report: writer is nil")
	}
	tmpl, err := summaryTpl()
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(toContext(s), w); err != nil {
		return fmt.Errorf("report: execute %s: %w", summaryTemplate, err)
	}
	return nil
}

// String renders the summary into a string.
func String(s Summary) (string, error) {
	var b strings.Builder
	if err := Render(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}

func summaryTpl() (*pongo2.Template, error) {
	setOnce.Do(func() {
		set = pongo2.NewSet("formtoggle", pongo2.NewFSLoader(templatesFS))
		summary, setupErr = set.FromFile(summaryTemplate)
		if setupErr != nil {
			setupErr = fmt.Errorf("report: load %s: %w", summaryTemplate, setupErr)
		}
	})
	return summary, setupErr
}

func toContext(s Summary) pongo2.Context {
	steps := make([]map[string]any, 0, len(s.Result.Steps))
	for _, res := range s.Result.Steps {
		action := "uncheck"
		if res.Step.Checked {
			action = "check"
		}
		targets := strings.Join(res.Step.Targets(), ", ")
		if targets == "" {
			targets = "(none)"
		}
		steps = append(steps, map[string]any{
			"action":  action,
			"targets": targets,
			"matched": res.Matched,
		})
	}
	source := s.Source
	if source == "" {
		source = "-"
	}
	return pongo2.Context{
		"source": source,
		"steps":  steps,
		"total":  s.Result.Total(),
	}
}
