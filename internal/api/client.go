// Package api implements the HTTP client for the Attendify REST backend.
// It provides the participant and event store collaborators consumed by
// the UI modes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/attendify/attendify/internal/log"
)

const requestIDHeader = "X-Request-Id"

// Client talks to the Attendify backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// New creates a client for the given base URL (including the /api prefix).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer("attendify/api"),
	}
}

// errorBody is the JSON error shape returned by the backend.
type errorBody struct {
	Message string `json:"message"`
}

// do performs one request. A non-2xx response becomes an *Error carrying
// the backend's message; transport failures are returned wrapped. When out
// is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, method+" "+path)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("request.id", requestID),
	)

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug(log.CatAPI, "request", "method", method, "path", path, "requestId", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		log.ErrorErr(log.CatAPI, "request failed", err, "method", method, "path", path, "requestId", requestID)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, RequestID: requestID}
		var eb errorBody
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
				apiErr.Message = eb.Message
			} else {
				apiErr.Message = strings.TrimSpace(string(data))
			}
		}
		span.SetStatus(codes.Error, apiErr.Message)
		log.Warn(log.CatAPI, "error response",
			"method", method, "path", path, "status", resp.StatusCode,
			"message", apiErr.Message, "requestId", requestID)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			span.RecordError(err)
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}

	return nil
}
