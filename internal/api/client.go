// Package api is the remote data access layer for the storefront backend:
// one typed function per API operation, grouped by resource. Functions build
// the request, attach correlation metadata, and decode the JSON body; they
// never retry or cache — that is the query layer's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ZeyadMohamed5/Morph/pkg/httpclient"
	"github.com/ZeyadMohamed5/Morph/pkg/logger"
	"github.com/ZeyadMohamed5/Morph/pkg/tracing"
)

// HTTPDoer executes a single HTTP request. Satisfied by httpclient.Client and
// by the circuit-breaker wrapper around it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the storefront API at a single base URL. Credentials are
// cookie-based: the underlying transport's jar carries the session cookie set
// by Login, so every subsequent request is authenticated automatically.
type Client struct {
	baseURL string
	http    HTTPDoer
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewClient creates an API client. baseURL must not have a trailing slash.
func NewClient(baseURL string, doer HTTPDoer, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  log,
		tracer:  tracing.Tracer("api-client"),
	}
}

// getJSON issues a GET against path with the given query and decodes the
// response body into out. Nil query values are simply absent from the URL.
func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, http.NoBody)
	if err != nil {
		return err
	}
	return c.roundTrip(ctx, operation, req, out)
}

// sendJSON issues a request with a JSON-encoded body and decodes the response
// into out. out may be nil when the caller discards the body.
func (c *Client) sendJSON(ctx context.Context, operation, method, path string, body, out any) error {
	var buf io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request body: %w", operation, err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, nil, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.roundTrip(ctx, operation, req, out)
}

// sendMultipart issues a request with a multipart/form-data body. Used by the
// admin product and category create/update operations, which carry image
// uploads alongside scalar fields.
func (c *Client) sendMultipart(ctx context.Context, operation, method, path string, form *Form, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := form.write(w); err != nil {
		return fmt.Errorf("%s: encode multipart form: %w", operation, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: finalize multipart form: %w", operation, err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.roundTrip(ctx, operation, req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request for %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		req.Header.Set("X-Correlation-ID", cid)
	}
	return req, nil
}

func (c *Client) roundTrip(ctx context.Context, operation string, req *http.Request, out any) error {
	ctx, span := c.tracer.Start(ctx, operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.Path),
	)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.ErrorContext(ctx, "api request failed",
			slog.String("operation", operation),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		return err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := httpclient.ParseResponseError(resp, operation)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WarnContext(ctx, "api request rejected",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return err
	}

	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

// Form accumulates multipart fields and file parts in insertion order.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	key, value string
}

type formFile struct {
	field, name string
	content     io.Reader
}

// AddField appends a scalar form field.
func (f *Form) AddField(key, value string) {
	f.fields = append(f.fields, formField{key: key, value: value})
}

// AddFile appends a file part read from content.
func (f *Form) AddFile(field, name string, content io.Reader) {
	f.files = append(f.files, formFile{field: field, name: name, content: content})
}

func (f *Form) write(w *multipart.Writer) error {
	for _, fld := range f.fields {
		if err := w.WriteField(fld.key, fld.value); err != nil {
			return err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.content); err != nil {
			return err
		}
	}
	return nil
}
