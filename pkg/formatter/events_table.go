package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/younsl/cwslack/internal/models"
)

const messageColumnWidth = 60

// PrintEventsTable prints the log events selected for replay.
func PrintEventsTable(w io.Writer, logGroup string, events []models.LogEventInfo) {
	if len(events) == 0 {
		fmt.Fprintf(w, "No matching log events found in %s\n", logGroup)
		return
	}

	fmt.Fprintf(w, "\nLog events from %s:\n", logGroup)

	// Use tabwriter, same settings as the other tables
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "TIMESTAMP\tAGE\tLOG STREAM\tSIZE\tMESSAGE")

	for _, e := range events {
		// Single line per event; multi-line stack traces are flattened
		message := strings.Join(strings.Fields(e.Message), " ")

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			humanize.Time(e.Timestamp),
			e.LogStream,
			e.Size,
			truncate(message, messageColumnWidth),
		)
	}

	tw.Flush()
}
