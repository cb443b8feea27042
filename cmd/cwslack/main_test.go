package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/abcxyz/pkg/testutil"

	"github.com/younsl/cwslack/internal/models"
	"github.com/younsl/cwslack/pkg/awslogs"
	"github.com/younsl/cwslack/pkg/handler"
	"github.com/younsl/cwslack/pkg/slack"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func eventJSON(t *testing.T, batch *models.LogBatch) string {
	t.Helper()

	event, err := awslogs.EncodeEvent(batch)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(event)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestInvokeDryRun(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	t.Setenv("SLACK_PATH", "/services/T000/B000/XXXX")

	batch := &models.LogBatch{
		MessageType: models.MessageTypeData,
		LogGroup:    "/aws/lambda/checkout",
		LogStream:   "stream",
		LogEvents:   []models.LogEvent{{ID: "1", Timestamp: 1, Message: "ERROR boom"}},
	}

	out, err := runCmd(t, eventJSON(t, batch), "invoke", "--dry-run")
	if err != nil {
		t.Fatalf("invoke: %v\n%s", err, out)
	}
	for _, want := range []string{`"text": "ERROR boom"`, `"footer": "cloudwatch: /aws/lambda/checkout"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInvokeErrors(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")

	cases := []struct {
		name    string
		env     string
		stdin   string
		wantErr string
	}{
		{
			name:    "bad_json",
			env:     "/hook",
			stdin:   "{",
			wantErr: "error parsing event",
		},
		{
			name:    "missing_route",
			stdin:   `{"awslogs":{"data":""}}`,
			wantErr: "SLACK_PATH",
		},
		{
			name:    "empty_batch",
			env:     "/hook",
			stdin:   eventJSON(t, &models.LogBatch{LogGroup: "/aws/lambda/checkout"}),
			wantErr: "has no log events",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env == "" {
				t.Setenv("SLACK_PATH", "")
				// envconfig treats a set but empty variable as present
				unsetEnv(t, "SLACK_PATH")
			} else {
				t.Setenv("SLACK_PATH", tc.env)
			}

			_, err := runCmd(t, tc.stdin, "invoke", "--dry-run")
			if diff := testutil.DiffErrString(err, tc.wantErr); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCmd(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "cwslack version ") {
		t.Errorf("output = %q", out)
	}
}

// useWebhook routes handlers built by the commands to srv for the test.
func useWebhook(t *testing.T, srv *httptest.Server) {
	t.Helper()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}

	dest := slack.DefaultDestination("/services/T000/B000/XXXX")
	dest.Host = host
	dest.Port = port

	extraHandlerOptions = []handler.Option{
		handler.WithNotifier(slack.New(slack.WithHTTPClient(srv.Client()))),
		handler.WithDestination(dest),
	}
	t.Cleanup(func() { extraHandlerOptions = nil })
}

func TestInvokeDelivers(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	t.Setenv("SLACK_PATH", "/services/T000/B000/XXXX")

	var received []models.SlackMessage
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var msg models.SlackMessage
		json.Unmarshal(body, &msg)
		received = append(received, msg)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	}))
	defer srv.Close()
	useWebhook(t, srv)

	batch := &models.LogBatch{
		MessageType: models.MessageTypeData,
		LogGroup:    "/aws/lambda/checkout",
		LogStream:   "stream",
		LogEvents:   []models.LogEvent{{ID: "1", Timestamp: 1, Message: "ERROR boom"}},
	}

	out, err := runCmd(t, eventJSON(t, batch), "invoke", "--title", "Checkout Error")
	if err != nil {
		t.Fatalf("invoke: %v\n%s", err, out)
	}

	if !strings.Contains(out, `Delivered to Slack: HTTP 200 "ok"`) {
		t.Errorf("output missing delivery summary:\n%s", out)
	}
	if !strings.Contains(out, "Delivery completed at ") {
		t.Errorf("output missing completion time:\n%s", out)
	}

	if len(received) != 1 {
		t.Fatalf("expected 1 request, got %d", len(received))
	}
	att := received[0].Attachments[0]
	if att.Text != "ERROR boom" {
		t.Errorf("text = %q, want ERROR boom", att.Text)
	}
	if att.Title != "Checkout Error" {
		t.Errorf("title = %q, want Checkout Error", att.Title)
	}
}

func TestInvokeRejected(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	t.Setenv("SLACK_PATH", "/services/T000/B000/XXXX")

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "server error")
	}))
	defer srv.Close()
	useWebhook(t, srv)

	batch := &models.LogBatch{
		LogGroup:  "/aws/lambda/checkout",
		LogEvents: []models.LogEvent{{ID: "1", Message: "ERROR boom"}},
	}

	_, err := runCmd(t, eventJSON(t, batch), "invoke")
	if diff := testutil.DiffErrString(err, "HTTP 500: server error"); diff != "" {
		t.Error(diff)
	}
}

func TestInvokeFlagErrors(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	t.Setenv("SLACK_PATH", "/hook")

	cases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "empty_color", args: []string{"--color="}, wantErr: "--color must not be empty"},
		{name: "negative_timeout", args: []string{"--timeout=-1s"}, wantErr: "--timeout must not be negative"},
		{name: "bad_region", args: []string{"--link-region", "mars-1"}, wantErr: "invalid region 'mars-1'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"invoke", "--dry-run"}, tc.args...)
			_, err := runCmd(t, `{"awslogs":{"data":""}}`, args...)
			if diff := testutil.DiffErrString(err, tc.wantErr); diff != "" {
				t.Error(diff)
			}
		})
	}
}
