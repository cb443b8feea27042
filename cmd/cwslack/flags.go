package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/younsl/cwslack/pkg/handler"
	"github.com/younsl/cwslack/pkg/slack"
	"github.com/younsl/cwslack/pkg/utils"
)

// messageFlags tune the posted message for local runs. The Lambda entry point
// always uses the defaults.
type messageFlags struct {
	title      string
	color      string
	timeout    time.Duration
	linkRegion string
}

func (f *messageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", handler.DefaultTitle, "Attachment title")
	cmd.Flags().StringVar(&f.color, "color", handler.DefaultColor, "Attachment color")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Webhook request timeout (0 for none)")
	cmd.Flags().StringVar(&f.linkRegion, "link-region", "", "Link the title to the log stream in this region's CloudWatch console")
}

// options validates the flags and converts them to handler options
func (f *messageFlags) options() ([]handler.Option, error) {
	if f.color == "" {
		return nil, fmt.Errorf("--color must not be empty")
	}
	if f.timeout < 0 {
		return nil, fmt.Errorf("--timeout must not be negative")
	}
	if f.linkRegion != "" && !utils.IsValidRegion(f.linkRegion) {
		return nil, fmt.Errorf("invalid region '%s'", f.linkRegion)
	}

	return []handler.Option{
		handler.WithTitle(f.title),
		handler.WithColor(f.color),
		handler.WithConsoleLink(f.linkRegion),
		handler.WithNotifier(slack.New(slack.WithTimeout(f.timeout))),
	}, nil
}
