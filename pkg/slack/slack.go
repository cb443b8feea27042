// Package slack delivers messages to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/younsl/cwslack/internal/models"
)

const (
	// DefaultHost is the Slack incoming webhook host.
	DefaultHost = "hooks.slack.com"
	// DefaultPort is the HTTPS port used for webhook delivery.
	DefaultPort = 443
)

// Destination describes where a message is posted.
type Destination struct {
	Host    string
	Port    int
	Path    string
	Method  string
	Headers map[string]string
}

// DefaultDestination returns the fixed Slack webhook destination for route.
// The route is used as supplied; an empty or unknown path is left for the
// remote service to reject.
func DefaultDestination(route string) Destination {
	return Destination{
		Host:   DefaultHost,
		Port:   DefaultPort,
		Path:   route,
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// URL returns the HTTPS URL of the destination. The default HTTPS port is
// left out so the Host header carries the bare host name.
func (d Destination) URL() string {
	host := d.Host
	if d.Port != 0 && d.Port != DefaultPort {
		host = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	}

	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   d.Path,
	}
	return u.String()
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient sets the client used as a template. The Notifier works on a
// copy, so the caller's client is never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.base = c }
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		n.timeout = d
		n.hasTimeout = true
	}
}

// Notifier posts a single message per call. It never retries.
type Notifier struct {
	client *http.Client

	base       *http.Client
	timeout    time.Duration
	hasTimeout bool
}

// New creates a Notifier. Without options it has no client-side timeout and
// relies on the context deadline. Redirects are returned, not followed,
// regardless of the client passed with WithHTTPClient.
func New(opts ...Option) *Notifier {
	n := &Notifier{base: &http.Client{}}
	for _, opt := range opts {
		opt(n)
	}

	if n.base == nil {
		n.base = &http.Client{}
	}
	c := *n.base
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if n.hasTimeout {
		c.Timeout = n.timeout
	}
	n.client = &c
	return n
}

// Send serializes msg, posts it to dest and waits for the full response.
//
// A 2xx status yields a DeliveryResult with the status and raw body. Any other
// status yields a *DeliveryRejectedError; a network failure a *TransportError.
func (n *Notifier) Send(ctx context.Context, dest Destination, msg *models.SlackMessage) (*models.DeliveryResult, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("slack: marshal message: %w", err)
	}

	method := dest.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, dest.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("slack: build request: %w", err)
	}
	for k, v := range dest.Headers {
		req.Header.Set(k, v)
	}
	// Byte length of the encoded body, not its character count.
	req.ContentLength = int64(len(body))

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &DeliveryRejectedError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return &models.DeliveryResult{
		StatusCode: resp.StatusCode,
		Message:    string(respBody),
	}, nil
}
