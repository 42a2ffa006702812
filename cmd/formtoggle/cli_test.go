package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formtoggle/internal/config"
	"github.com/goliatone/go-formtoggle/pkg/prompt"
)

const signup = `<form>
<input type="checkbox" name="topics" value="go">
<input type="checkbox" name="topics" value="rust">
<input type="checkbox" name="newsletter" checked>
<input type="text" name="topics">
</form>`

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

	var stdout, stderr bytes.Buffer
	root := newRootCmd(config.Config{Timeout: 5 * time.Second}, strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestSelectCmd_Stdin(t *testing.T) {
	res := execute(t, signup, "select", "topics")
	if res.err != nil {
		t.Fatalf("select: %v", res.err)
	}
	if got := strings.Count(res.stdout, `checked=""`); got != 3 {
		t.Fatalf("expected 3 checked boxes, got %d:\n%s", got, res.stdout)
	}
}

func TestSelectCmd_UncheckMultiple(t *testing.T) {
	res := execute(t, signup, "select", "topics", "newsletter", "--uncheck", "--summary")
	if res.err != nil {
		t.Fatalf("select: %v", res.err)
	}
	if strings.Contains(res.stdout, `checked`) {
		t.Fatalf("expected every box unchecked:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "1. uncheck topics, newsletter: 3 matched") {
		t.Fatalf("unexpected summary:\n%s", res.stderr)
	}
}

func TestSelectCmd_RequiresName(t *testing.T) {
	if res := execute(t, signup, "select"); res.err == nil {
		t.Fatalf("expected error without names")
	}
}

func TestApplyCmd_FileInputAndOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "signup.html")
	output := filepath.Join(dir, "out.html")
	planPath := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(input, []byte(signup), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	planYAML := "steps:\n  - name: newsletter\n    checked: false\n  - names: [topics]\n    checked: true\n"
	if err := os.WriteFile(planPath, []byte(planYAML), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	res := execute(t, "", "apply", "--plan", planPath, "-i", input, "-o", output)
	if res.err != nil {
		t.Fatalf("apply: %v", res.err)
	}
	if res.stdout != "" {
		t.Fatalf("expected nothing on stdout, got %q", res.stdout)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := strings.Count(string(data), `checked=""`); got != 2 {
		t.Fatalf("expected 2 checked boxes, got %d:\n%s", got, data)
	}
	if strings.Contains(string(data), `name="newsletter" checked`) {
		t.Fatalf("newsletter should be unchecked:\n%s", data)
	}
}

func TestApplyCmd_MissingPlan(t *testing.T) {
	if res := execute(t, signup, "apply", "--plan", filepath.Join(t.TempDir(), "missing.yaml")); res.err == nil {
		t.Fatalf("expected error for missing plan")
	}
}

func TestGroupsCmd(t *testing.T) {
	res := execute(t, signup, "groups")
	if res.err != nil {
		t.Fatalf("groups: %v", res.err)
	}
	if res.stdout != "topics\nnewsletter\n" {
		t.Fatalf("unexpected groups %q", res.stdout)
	}
}

func TestGroupsCmd_NoForm(t *testing.T) {
	if res := execute(t, "<p>none</p>", "groups"); res.err == nil {
		t.Fatalf("expected error for page without a form")
	}
}

type scriptedDriver struct {
	picked  []int
	checked bool
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return d.picked, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return d.checked, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestInteractiveCmd(t *testing.T) {
	promptOptions = []prompt.Option{prompt.WithDriver(&scriptedDriver{picked: []int{1}, checked: false})}
	t.Cleanup(func() { promptOptions = nil })

	input := filepath.Join(t.TempDir(), "signup.html")
	if err := os.WriteFile(input, []byte(signup), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	res := execute(t, "", "interactive", "-i", input)
	if res.err != nil {
		t.Fatalf("interactive: %v", res.err)
	}
	if strings.Contains(res.stdout, `checked`) {
		t.Fatalf("expected newsletter unchecked:\n%s", res.stdout)
	}
}

func TestInteractiveCmd_RejectsStdinPage(t *testing.T) {
	promptOptions = []prompt.Option{prompt.WithDriver(&scriptedDriver{picked: []int{1}})}
	t.Cleanup(func() { promptOptions = nil })

	for _, args := range [][]string{{"interactive"}, {"interactive", "-i", "-"}} {
		res := execute(t, signup, args...)
		if !errors.Is(res.err, errStdinPage) {
			t.Fatalf("%v: expected errStdinPage, got %v", args, res.err)
		}
		if res.stdout != "" {
			t.Fatalf("%v: expected no page output, got %q", args, res.stdout)
		}
	}
}

func TestPromptStdio_FallsBackToProcessStreams(t *testing.T) {
	opts := &rootOptions{stdin: strings.NewReader(signup), stderr: &bytes.Buffer{}}
	stdio := opts.promptStdio()
	if stdio.In != os.Stdin {
		t.Fatalf("expected process stdin for prompts")
	}
	if stdio.Out != os.Stderr {
		t.Fatalf("expected process stderr for prompt rendering")
	}
	if stdio.Err != opts.stderr {
		t.Fatalf("expected command stderr for prompt errors")
	}
}

func TestRunCLI_ReportsFailureOnce(t *testing.T) {
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

	var stdout, stderr bytes.Buffer
	code := runCLI(context.Background(), config.Config{Timeout: 5 * time.Second},
		[]string{"groups"}, strings.NewReader("<p>none</p>"), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if got := strings.Count(stderr.String(), "form not found"); got != 1 {
		t.Fatalf("expected the failure reported once, got %d:\n%s", got, stderr.String())
	}
	if !strings.HasPrefix(stderr.String(), "formtoggle: ") {
		t.Fatalf("unexpected report %q", stderr.String())
	}
}
