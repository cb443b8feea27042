package slack

import "fmt"

// DeliveryRejectedError is returned when the webhook answers with a status
// outside [200, 300). Body carries the raw response text.
type DeliveryRejectedError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryRejectedError) Error() string {
	return fmt.Sprintf("slack: request failed with HTTP %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps network-level failures: DNS, connection, TLS,
// context cancellation or an interrupted response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("slack: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
