package awslogs

import "fmt"

// DecompressionError reports a payload that is not valid gzip data,
// including truncated or corrupt streams.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("awslogs: decompress payload: %v", e.Err)
}

func (e *DecompressionError) Unwrap() error { return e.Err }

// MalformedPayloadError reports a payload whose encoding or JSON structure
// does not match a CloudWatch Logs subscription record.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("awslogs: malformed payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }
