package main

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formtoggle/pkg/checkbox"
	"github.com/goliatone/go-formtoggle/pkg/report"
	"github.com/goliatone/go-formtoggle/pkg/rodform"
)

func newLiveCmd(opts *rootOptions) *cobra.Command {
	var (
		pageURL  string
		planPath string
		headful  bool
	)

	cmd := &cobra.Command{
		Use:   "live --url URL --plan FILE",
		Short: "Apply a toggle plan to a page open in a local Chrome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(planPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.Timeout)
			defer cancel()

			browser, err := rodform.Launch(ctx, opts.cfg.Headless && !headful)
			if err != nil {
				return err
			}
			defer func() {
				_ = browser.Close()
			}()

			page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
			if err != nil {
				return fmt.Errorf("open %s: %w", pageURL, err)
			}
			if err := page.Context(ctx).WaitLoad(); err != nil {
				return fmt.Errorf("wait for %s: %w", pageURL, err)
			}

			form, err := rodform.Snapshot(ctx, page)
			if err != nil {
				return err
			}
			result, err := p.ApplyWith(checkbox.New(checkbox.WithLogger(logger)), form)
			if err != nil {
				return err
			}
			written, err := form.Commit(ctx)
			if err != nil {
				return err
			}
			logger.Info("live page updated",
				zap.String("url", pageURL),
				zap.Int("matched", result.Total()),
				zap.Int("written", written),
			)
			return report.Render(opts.stdout, report.Summary{Source: pageURL, Result: result})
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "page to open")
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan file (.yaml, .yml or .json)")
	cmd.Flags().BoolVar(&headful, "show", false, "show the browser window")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
