package main

import (
	"context"

	"github.com/abcxyz/pkg/logging"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/younsl/cwslack/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the AWS Lambda runtime loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe blocks serving Lambda invocations until the runtime exits
func runServe(ctx context.Context) error {
	h, err := newHandler(ctx)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).InfoContext(ctx, "starting lambda handler",
		"version", version.Get().Version)

	lambda.StartWithOptions(h.Handle, lambda.WithContext(ctx))
	return nil
}
