package main

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/spf13/cobra"

	awsclient "github.com/younsl/cwslack/pkg/aws"
	"github.com/younsl/cwslack/pkg/awslogs"
	"github.com/younsl/cwslack/pkg/formatter"
	"github.com/younsl/cwslack/pkg/utils"
)

func newReplayCmd() *cobra.Command {
	var (
		region   string
		dryRun   bool
		opts     awsclient.FetchOptions
		msgFlags messageFlags
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Fetch recent events from a log group and forward them",
		Long: `replay fetches the latest matching events from a CloudWatch Logs group,
packs them as a subscription payload and runs it through the handler.
Only the first event of the payload is posted, as in production.`,
		Example: `  cwslack replay --log-group /aws/lambda/checkout --filter-pattern ERROR
  cwslack replay -g /aws/lambda/checkout -r ap-northeast-2 --since 24h --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if region == "" {
				region = utils.GetDefaultRegion()
			}
			if region != "" && !utils.IsValidRegion(region) {
				return fmt.Errorf("invalid region '%s'", region)
			}

			handlerOpts, err := msgFlags.options()
			if err != nil {
				return err
			}
			h, err := newHandler(ctx, handlerOpts...)
			if err != nil {
				return err
			}

			awsCfg, err := awsclient.NewConfig(ctx, region)
			if err != nil {
				return err
			}

			fetchStart := time.Now()
			s := startSpinner(fmt.Sprintf("Fetching log events from %s ...", opts.LogGroup))
			events, err := awsclient.FetchLatestEvents(ctx, cloudwatchlogs.NewFromConfig(awsCfg), opts)
			s.Stop()
			if err != nil {
				return err
			}

			formatter.PrintEventsTable(out, opts.LogGroup, events)
			if len(events) == 0 {
				return nil
			}
			fmt.Fprintf(out, "Fetched %d event(s) in %.2fs\n\n", len(events), time.Since(fetchStart).Seconds())

			event, err := awslogs.EncodeEvent(awsclient.NewBatch(opts.LogGroup, events))
			if err != nil {
				return err
			}

			if dryRun {
				return printDryRun(out, h, event)
			}

			startTime := time.Now()
			result, err := h.Handle(ctx, event)
			if err != nil {
				return err
			}
			formatter.PrintDeliveryResult(out, result, startTime, time.Since(startTime))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.LogGroup, "log-group", "g", "", "CloudWatch Logs group name")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (default: AWS_REGION or shared config)")
	cmd.Flags().StringVarP(&opts.FilterPattern, "filter-pattern", "p", "", "CloudWatch Logs filter pattern")
	cmd.Flags().DurationVar(&opts.Since, "since", time.Hour, "How far back to search")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 1, "Number of newest events to pack into the payload")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the Slack message instead of sending it")
	msgFlags.register(cmd)
	_ = cmd.MarkFlagRequired("log-group")

	return cmd
}
