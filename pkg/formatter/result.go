package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/younsl/cwslack/internal/models"
)

// PrintDeliveryResult prints the outcome of a webhook delivery.
func PrintDeliveryResult(w io.Writer, result *models.DeliveryResult, startTime time.Time, duration time.Duration) {
	fmt.Fprintf(w, "Delivered to Slack: HTTP %d %q\n", result.StatusCode, result.Message)
	printTimestamp(w, "Delivery", startTime, duration)
}

// PrintMessage prints the webhook body that would be posted, with its encoded size.
func PrintMessage(w io.Writer, msg *models.SlackMessage) error {
	body, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting message: %w", err)
	}

	compact, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error formatting message: %w", err)
	}

	fmt.Fprintf(w, "%s\n", body)
	fmt.Fprintf(w, "Payload size: %s\n", humanize.Bytes(uint64(len(compact))))
	return nil
}
