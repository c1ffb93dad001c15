/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jerry-enebeli/budget/internal/apierror"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader is the header the backend reads request ids from.
const RequestIDHeader = "X-Request-ID"

var tracer = otel.Tracer("budget.request")

// Client issues single-shot JSON POST requests against the backend API.
// It never retries: every call is exactly one round trip.
type Client struct {
	baseURL    string
	httpClient *http.Client
	username   string
	password   string
	headers    map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded. The timeout is set on
// a copy, so an HTTP client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithBasicAuth sends basic auth credentials with every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithHeaders adds static headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// NewClient creates a Client for the API served at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		headers:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL every request path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends body as JSON to path and decodes a successful response into T.
//
// Every failure is returned as an *apierror.Failure:
//   - a transport error keeps the error's message,
//   - a 2xx response that isn't valid JSON for T yields a parse failure,
//   - any other status yields the status code together with the response body.
func Post[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	var result T
	err := c.do(ctx, path, body, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(&result); err != nil {
			return apierror.Newf("couldn't parse response: %v", err)
		}
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Send posts body to path and discards a successful response. It is meant for endpoints
// that don't answer with JSON, such as chat webhooks.
func (c *Client) Send(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, path, body, func(r io.Reader) error {
		_, _ = io.Copy(io.Discard, r)
		return nil
	})
}

func (c *Client) do(ctx context.Context, path string, body interface{}, decode func(io.Reader) error) (err error) {
	start := time.Now()
	status := 0

	ctx, span := tracer.Start(ctx, "POST "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		logRequestTime(path, status, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, encErr := ToJsonReq(body)
	if encErr != nil {
		return apierror.Newf("couldn't encode request: %v", encErr)
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if reqErr != nil {
		return apierror.From(reqErr)
	}
	c.setHeaders(req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	span.SetAttributes(attribute.String("http.request_id", req.Header.Get(RequestIDHeader)))

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return apierror.From(doErr)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close response body")
		}
	}()

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	if status >= 200 && status < 300 {
		return decode(resp.Body)
	}

	text, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return apierror.Newf("couldn't read body with error: %v", readErr)
	}
	return apierror.Newf("got unexpected status code %d, body: \"%s\"", status, string(text))
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.username != "" {
		req.Header.Set("Authorization", "Basic "+BasicAuth(c.username, c.password))
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

func logRequestTime(path string, status int, since time.Duration, err error) {
	entry := logrus.WithFields(logrus.Fields{
		"path":        path,
		"status":      status,
		"duration_ms": since.Milliseconds(),
	})
	if err != nil {
		entry = entry.WithField("error", err.Error())
	}
	entry.Info(fmt.Sprintf("request \"POST %s\" took %d ms", path, since.Milliseconds()))
}

// ToJsonReq converts a Go object to a JSON-encoded HTTP request payload.
func ToJsonReq(payload interface{}) (*bytes.Buffer, error) {
	c, e := json.Marshal(payload)
	if e != nil {
		return nil, e
	}
	return bytes.NewBuffer(c), nil
}

// BasicAuth encodes username and password the way the Authorization header expects them.
func BasicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}
