package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formtoggle/pkg/plan"
)

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var uncheck bool

	cmd := &cobra.Command{
		Use:   "select NAME [NAME...]",
		Short: "Check (or with --uncheck, uncheck) one or more checkbox groups",
		Example: `  formtoggle select topics -i signup.html
  formtoggle select newsletter offers --uncheck -i signup.html -o out.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step := plan.Step{Checked: !uncheck}
			if len(args) == 1 {
				step.Name = args[0]
			} else {
				step.Names = args
			}
			return opts.run(cmd.Context(), plan.Plan{Source: "select", Steps: []plan.Step{step}})
		},
	}
	cmd.Flags().BoolVar(&uncheck, "uncheck", false, "uncheck the groups instead of checking them")
	return cmd
}
