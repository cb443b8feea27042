// Package awslogs decodes and encodes CloudWatch Logs subscription payloads.
package awslogs

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/younsl/cwslack/internal/models"
)

// maxDecompressedSize bounds the decompressed payload. CloudWatch Logs caps a
// subscription delivery at 1 MiB of compressed data.
const maxDecompressedSize = 64 << 20

var errInvalidUTF8 = errors.New("decompressed data is not valid UTF-8")

// Decode gunzips data and parses it as a LogBatch.
//
// Corrupt or truncated gzip input yields a *DecompressionError. Output that is
// not UTF-8 or not a JSON object yields a *MalformedPayloadError.
func Decode(data []byte) (*models.LogBatch, error) {
	return decode(data, maxDecompressedSize)
}

func decode(data []byte, limit int64) (*models.LogBatch, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecompressionError{Err: err}
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, &DecompressionError{Err: err}
	}
	if int64(len(raw)) > limit {
		return nil, &DecompressionError{Err: fmt.Errorf("decompressed payload exceeds %d bytes", limit)}
	}

	if !utf8.Valid(raw) {
		return nil, &MalformedPayloadError{Err: errInvalidUTF8}
	}

	var batch models.LogBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, &MalformedPayloadError{Err: err}
	}
	return &batch, nil
}

// DecodeEvent base64-decodes the event's data field and passes it to Decode.
func DecodeEvent(event models.InboundEvent) (*models.LogBatch, error) {
	data, err := base64.StdEncoding.DecodeString(event.AWSLogs.Data)
	if err != nil {
		return nil, &MalformedPayloadError{Err: fmt.Errorf("decode base64: %w", err)}
	}
	return Decode(data)
}

// Encode serializes and gzips a LogBatch the way CloudWatch Logs does for
// subscription deliveries.
func Encode(batch *models.LogBatch) ([]byte, error) {
	raw, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("awslogs: marshal batch: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("awslogs: compress batch: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("awslogs: compress batch: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeEvent wraps an encoded LogBatch into an InboundEvent.
func EncodeEvent(batch *models.LogBatch) (models.InboundEvent, error) {
	data, err := Encode(batch)
	if err != nil {
		return models.InboundEvent{}, err
	}

	var event models.InboundEvent
	event.AWSLogs.Data = base64.StdEncoding.EncodeToString(data)
	return event, nil
}
