package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/dustin/go-humanize"

	"github.com/younsl/cwslack/internal/models"
)

// maxPages bounds how far FetchLatestEvents walks a busy log group.
const maxPages = 50

// ErrTooManyPages is returned when the search window holds more pages than
// FetchLatestEvents walks, so the newest events could not be reached.
var ErrTooManyPages = errors.New("log group too busy; narrow --since or --filter-pattern")

// ReplayFilterName is reported as the subscription filter of replayed batches.
const ReplayFilterName = "cwslack-replay"

// FetchOptions selects the events replayed from a log group.
type FetchOptions struct {
	LogGroup      string
	FilterPattern string
	Since         time.Duration
	Limit         int
}

// FetchLatestEvents returns the newest opts.Limit events of a log group within
// the last opts.Since, oldest first. Windows spanning more than maxPages pages
// fail with ErrTooManyPages rather than returning older events.
func FetchLatestEvents(ctx context.Context, client cloudwatchlogs.FilterLogEventsAPIClient, opts FetchOptions) ([]models.LogEventInfo, error) {
	if opts.LogGroup == "" {
		return nil, fmt.Errorf("log group is required")
	}
	if opts.Limit <= 0 {
		opts.Limit = 1
	}

	end := time.Now()
	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName: aws.String(opts.LogGroup),
		StartTime:    aws.Int64(end.Add(-opts.Since).UnixMilli()),
		EndTime:      aws.Int64(end.UnixMilli()),
	}
	if opts.FilterPattern != "" {
		input.FilterPattern = aws.String(opts.FilterPattern)
	}

	var events []models.LogEventInfo
	paginator := cloudwatchlogs.NewFilterLogEventsPaginator(client, input)
	for pageCount := 1; paginator.HasMorePages(); pageCount++ {
		if pageCount > maxPages {
			return nil, fmt.Errorf("%s: more than %d pages of events: %w", opts.LogGroup, maxPages, ErrTooManyPages)
		}

		output, err := paginator.NextPage(ctx)
		if err != nil {
			var resourceNotFound *types.ResourceNotFoundException
			if errors.As(err, &resourceNotFound) {
				return nil, fmt.Errorf("log group %s not found: %w", opts.LogGroup, err)
			}
			return nil, fmt.Errorf("error fetching log events page %d: %w", pageCount, err)
		}

		for _, e := range output.Events {
			message := aws.ToString(e.Message)
			events = append(events, models.LogEventInfo{
				ID:        aws.ToString(e.EventId),
				LogStream: aws.ToString(e.LogStreamName),
				Message:   message,
				Timestamp: time.UnixMilli(aws.ToInt64(e.Timestamp)),
				Size:      humanize.Bytes(uint64(len(message))),
			})
			// Events arrive oldest first; keep the newest tail.
			if len(events) > opts.Limit {
				events = events[1:]
			}
		}
	}

	return events, nil
}

// NewBatch packs fetched events into a subscription batch. The newest event's
// stream names the batch stream.
func NewBatch(logGroup string, events []models.LogEventInfo) *models.LogBatch {
	batch := &models.LogBatch{
		MessageType:         models.MessageTypeData,
		LogGroup:            logGroup,
		SubscriptionFilters: []string{ReplayFilterName},
	}
	for _, e := range events {
		batch.LogEvents = append(batch.LogEvents, models.LogEvent{
			ID:        e.ID,
			Timestamp: e.Timestamp.UnixMilli(),
			Message:   e.Message,
		})
		batch.LogStream = e.LogStream
	}
	return batch
}
