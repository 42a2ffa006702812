package main

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formtoggle/pkg/prompt"
)

// errStdinPage is returned when interactive would have to share stdin
// between the page and the terminal prompts.
var errStdinPage = errors.New("interactive: stdin is reserved for prompts, pass the page with --input")

// promptOptions lets tests script the terminal.
var promptOptions []prompt.Option

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick checkbox groups and their state from a terminal prompt",
		Long: `interactive lists the checkbox groups of the page given with --input and
asks which ones to toggle. Prompts are rendered on stderr so the rewritten page
can still be piped from stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.readsStdin() {
				return errStdinPage
			}
			ctx := cmd.Context()
			req, name, err := opts.request()
			if err != nil {
				return err
			}
			orch := opts.newOrchestrator()
			doc, err := orch.Load(ctx, req)
			if err != nil {
				return err
			}
			form, err := doc.FirstForm()
			if err != nil {
				return err
			}

			builder := prompt.New(append([]prompt.Option{
				prompt.WithDriver(prompt.NewSurveyDriver(opts.promptStdio())),
			}, promptOptions...)...)
			p, err := builder.Build(ctx, form)
			if err != nil {
				return err
			}

			req.Document = doc
			req.Plan = p
			resp, err := orch.Apply(ctx, req)
			if err != nil {
				return err
			}
			if err := opts.writePage(resp); err != nil {
				return err
			}
			return opts.writeSummary(name, resp.Result)
		},
	}
}

// promptStdio binds survey to the command's streams when they are terminals,
// falling back to the process stdin and stderr.
func (o *rootOptions) promptStdio() terminal.Stdio {
	stdio := terminal.Stdio{In: os.Stdin, Out: os.Stderr, Err: os.Stderr}
	if in, ok := o.stdin.(terminal.FileReader); ok {
		stdio.In = in
	}
	if out, ok := o.stderr.(terminal.FileWriter); ok {
		stdio.Out = out
	}
	if o.stderr != nil {
		stdio.Err = o.stderr
	}
	return stdio
}
