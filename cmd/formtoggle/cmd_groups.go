package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the checkbox groups of the page's first form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, _, err := opts.request()
			if err != nil {
				return err
			}
			groups, err := opts.newOrchestrator().Groups(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, name := range groups {
				if _, err := fmt.Fprintln(opts.stdout, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
