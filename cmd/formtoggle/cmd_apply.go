package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formtoggle/pkg/plan"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var planPath string

	cmd := &cobra.Command{
		Use:   "apply --plan FILE",
		Short: "Apply a YAML or JSON toggle plan to the page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			return opts.run(cmd.Context(), p)
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan file (.yaml, .yml or .json)")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func loadPlan(path string) (plan.Plan, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("resolve plan path: %w", err)
	}
	return plan.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
