package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/younsl/cwslack/internal/models"
	"github.com/younsl/cwslack/pkg/awslogs"
	"github.com/younsl/cwslack/pkg/formatter"
	"github.com/younsl/cwslack/pkg/handler"
)

func newInvokeCmd() *cobra.Command {
	var (
		eventFile string
		dryRun    bool
		msgFlags  messageFlags
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run the handler once against a subscription event JSON",
		Long: `invoke reads a CloudWatch Logs subscription event ({"awslogs": {"data": ...}})
from a file or stdin and runs it through the handler, as Lambda would.`,
		Example: `  cwslack invoke -f event.json
  cat event.json | cwslack invoke --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var r io.Reader = cmd.InOrStdin()
			if eventFile != "" && eventFile != "-" {
				f, err := os.Open(eventFile)
				if err != nil {
					return fmt.Errorf("error opening event file: %w", err)
				}
				defer f.Close()
				r = f
			}

			var event models.InboundEvent
			if err := json.NewDecoder(r).Decode(&event); err != nil {
				return fmt.Errorf("error parsing event: %w", err)
			}

			opts, err := msgFlags.options()
			if err != nil {
				return err
			}
			h, err := newHandler(ctx, opts...)
			if err != nil {
				return err
			}

			if dryRun {
				return printDryRun(cmd.OutOrStdout(), h, event)
			}

			startTime := time.Now()
			result, err := h.Handle(ctx, event)
			if err != nil {
				return err
			}
			formatter.PrintDeliveryResult(cmd.OutOrStdout(), result, startTime, time.Since(startTime))
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventFile, "file", "f", "", "Event JSON file (default: stdin)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the Slack message instead of sending it")
	msgFlags.register(cmd)
	return cmd
}

// printDryRun decodes the event and prints the message the handler would post
func printDryRun(w io.Writer, h *handler.Handler, event models.InboundEvent) error {
	batch, err := awslogs.DecodeEvent(event)
	if err != nil {
		return err
	}
	msg, err := h.BuildMessage(batch)
	if err != nil {
		return err
	}
	return formatter.PrintMessage(w, msg)
}
