package formatter

import (
	"fmt"
	"io"
	"time"
)

// printTimestamp prints the completion timestamp and duration
func printTimestamp(w io.Writer, action string, startTime time.Time, duration time.Duration) {
	timeStr := startTime.Format("2006-01-02 15:04:05")
	durationStr := fmt.Sprintf("%.2fs", duration.Seconds())

	fmt.Fprintf(w, "%s completed at %s (took %s)\n", action, timeStr, durationStr)
}

// truncate shortens s to max runes, appending "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
