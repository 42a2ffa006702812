package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formtoggle/internal/config"
)

var (
	// logger is built in PersistentPreRunE via newLogger.
	logger = zap.NewNop()
	// newLogger is swapped in tests to keep output quiet.
	newLogger = buildLogger
)

type rootOptions struct {
	cfg     config.Config
	input   string
	output  string
	summary bool
	verbose bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "formtoggle",
		Short: "Check or uncheck checkbox groups in the first form of an HTML page",
		Long: `formtoggle sets the checked state of every checkbox sharing a name
(a checkbox group) in the first form of a page. Pages are read from a file,
a URL, or stdin and the rewritten markup is written to --output or stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			logger = built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.input, "input", "i", cfg.Input, "HTML file or http(s) URL to read (stdin when empty or -)")
	flags.StringVarP(&opts.output, "output", "o", cfg.Output, "file to write the rewritten page to (stdout when empty)")
	flags.BoolVar(&opts.summary, "summary", false, "print a run summary to stderr")
	flags.BoolVarP(&opts.verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	root.AddCommand(
		newSelectCmd(opts),
		newApplyCmd(opts),
		newGroupsCmd(opts),
		newInteractiveCmd(opts),
		newLiveCmd(opts),
	)
	return root
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	built, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return built, nil
}

// runCLI runs the command tree and reports a failure once on stderr.
func runCLI(ctx context.Context, cfg config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(cfg, stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "formtoggle: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formtoggle: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runCLI(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
