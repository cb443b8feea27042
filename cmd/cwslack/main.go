package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abcxyz/pkg/logging"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/younsl/cwslack/internal/config"
	"github.com/younsl/cwslack/internal/version"
	"github.com/younsl/cwslack/pkg/handler"
)

// startSpinner creates and starts a spinner with the given message
func startSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr
	s.Start()
	return s
}

// extraHandlerOptions are appended last by newHandler; tests use it to point
// the handler at a local webhook.
var extraHandlerOptions []handler.Option

// newHandler loads the config from the environment and builds the handler
func newHandler(ctx context.Context, opts ...handler.Option) (*handler.Handler, error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return nil, err
	}
	return handler.New(cfg, append(opts, extraHandlerOptions...)...), nil
}

func newRootCmd() *cobra.Command {
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "cwslack",
		Short: "Forward CloudWatch Logs subscription events to Slack",
		Long: `cwslack receives CloudWatch Logs subscription events, takes the first
log event of each batch and posts it to a Slack incoming webhook.

Run without arguments inside AWS Lambda to start the function runtime.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get())
				return nil
			}

			// Inside Lambda the bare binary is the function entry point
			if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
				return runServe(cmd.Context())
			}
			return cmd.Help()
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newServeCmd(), newInvokeCmd(), newReplayCmd())
	return rootCmd
}

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer done()

	logger := logging.NewFromEnv("CWSLACK_")
	ctx = logging.WithLogger(ctx, logger)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		done()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
