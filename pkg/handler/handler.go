// Package handler forwards the first entry of a CloudWatch Logs subscription
// batch to a Slack webhook.
package handler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/abcxyz/pkg/logging"

	"github.com/younsl/cwslack/internal/config"
	"github.com/younsl/cwslack/internal/models"
	"github.com/younsl/cwslack/pkg/awslogs"
	"github.com/younsl/cwslack/pkg/slack"
)

// Attachment defaults for the warning notification.
const (
	DefaultTitle = "Lambda Error"
	DefaultColor = "#ffc107"
)

// EmptyBatchError is returned when a decoded batch carries no log events.
type EmptyBatchError struct {
	LogGroup  string
	LogStream string
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("handler: batch from %s/%s has no log events", e.LogGroup, e.LogStream)
}

// Notifier delivers a message to a destination.
type Notifier interface {
	Send(ctx context.Context, dest slack.Destination, msg *models.SlackMessage) (*models.DeliveryResult, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithNotifier replaces the Slack notifier.
func WithNotifier(n Notifier) Option {
	return func(h *Handler) { h.notifier = n }
}

// WithDestination overrides the destination built from the config.
func WithDestination(d slack.Destination) Option {
	return func(h *Handler) { h.dest = d }
}

// WithTitle overrides the attachment title.
func WithTitle(title string) Option {
	return func(h *Handler) { h.title = title }
}

// WithColor overrides the attachment color.
func WithColor(color string) Option {
	return func(h *Handler) { h.color = color }
}

// WithConsoleLink links the attachment title to the log stream in the
// CloudWatch console of region. An empty region disables the link.
func WithConsoleLink(region string) Option {
	return func(h *Handler) { h.linkRegion = region }
}

// WithClock sets the time source used for the attachment timestamp.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// Handler holds no per-invocation state and is safe for concurrent use.
type Handler struct {
	notifier   Notifier
	dest       slack.Destination
	now        func() time.Time
	title      string
	color      string
	linkRegion string
}

// New creates a Handler from cfg.
func New(cfg *config.Config, opts ...Option) *Handler {
	h := &Handler{
		notifier: slack.New(),
		dest:     slack.DefaultDestination(cfg.Route),
		now:      time.Now,
		title:    DefaultTitle,
		color:    DefaultColor,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle decodes event, builds a message from its first log entry and
// delivers it. Errors from decoding and delivery are returned unchanged.
func (h *Handler) Handle(ctx context.Context, event models.InboundEvent) (*models.DeliveryResult, error) {
	logger := logging.FromContext(ctx)

	batch, err := awslogs.DecodeEvent(event)
	if err != nil {
		logger.ErrorContext(ctx, "failed to decode log batch", "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "decoded log batch",
		"log_group", batch.LogGroup,
		"log_stream", batch.LogStream,
		"message_type", batch.MessageType,
		"events", len(batch.LogEvents))

	msg, err := h.BuildMessage(batch)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build message", "error", err)
		return nil, err
	}

	result, err := h.notifier.Send(ctx, h.dest, msg)
	if err != nil {
		logger.ErrorContext(ctx, "failed to deliver message",
			"log_group", batch.LogGroup,
			"error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "delivered message",
		"log_group", batch.LogGroup,
		"status", result.StatusCode)
	return result, nil
}

// BuildMessage renders the first log event of batch as a Slack message.
// The timestamp is the build time, not the log event's own timestamp.
func (h *Handler) BuildMessage(batch *models.LogBatch) (*models.SlackMessage, error) {
	if len(batch.LogEvents) == 0 {
		return nil, &EmptyBatchError{LogGroup: batch.LogGroup, LogStream: batch.LogStream}
	}
	first := batch.LogEvents[0]

	attachment := models.SlackAttachment{
		Color:  h.color,
		Title:  h.title,
		Text:   first.Message,
		Ts:     h.now().Unix(),
		Footer: "cloudwatch: " + batch.LogGroup,
	}
	if h.linkRegion != "" {
		attachment.TitleLink = consoleURL(h.linkRegion, batch.LogGroup, batch.LogStream)
	}

	return &models.SlackMessage{
		Mrkdwn:      true,
		Attachments: []models.SlackAttachment{attachment},
	}, nil
}

// consoleURL links to a log stream in the CloudWatch console. The console
// fragment escapes path segments twice, with '%' rewritten as '$'.
func consoleURL(region, logGroup, logStream string) string {
	escape := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(url.QueryEscape(s)), "%", "$")
	}
	return fmt.Sprintf("https://%s.console.aws.amazon.com/cloudwatch/home?region=%s#logsV2:log-groups/log-group/%s/log-events/%s",
		region, region, escape(logGroup), escape(logStream))
}
