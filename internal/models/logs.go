package models

import (
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// InboundEvent is the CloudWatch Logs subscription event delivered to the function.
// Its AWSLogs.Data field holds the base64-encoded, gzip-compressed LogBatch.
type InboundEvent = events.CloudwatchLogsEvent

// LogBatch is the decoded subscription payload.
type LogBatch = events.CloudwatchLogsData

// LogEvent is a single entry of a LogBatch.
type LogEvent = events.CloudwatchLogsLogEvent

// Subscription message types sent by CloudWatch Logs.
const (
	MessageTypeData    = "DATA_MESSAGE"
	MessageTypeControl = "CONTROL_MESSAGE"
)

// LogEventInfo holds a fetched log event with display fields for the replay table.
type LogEventInfo struct {
	ID        string
	LogStream string
	Message   string
	Timestamp time.Time
	Size      string // Formatted string (e.g., using humanize)
}
