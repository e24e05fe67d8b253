package services

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
	"github.com/soaringjerry/Quizline/internal/utils"
)

// DefaultTimeout bounds every backend request.
const DefaultTimeout = 10 * time.Second

// DefaultOrigin is used when no API origin is configured.
const DefaultOrigin = "http://localhost:8000"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClient is the single configured client shared by every resource
// service. It is read-only after construction and safe for concurrent use.
type APIClient struct {
	baseURL string
	client  HTTPClient
	timeout time.Duration
	headers http.Header
}

type Option func(*APIClient)

// WithHTTPClient replaces the underlying transport; the timeout option is
// then the caller's responsibility.
func WithHTTPClient(c HTTPClient) Option {
	return func(a *APIClient) { a.client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(a *APIClient) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(a *APIClient) { a.headers.Set(key, value) }
}

// APIBaseURL appends the backend's /api prefix to origin.
func APIBaseURL(origin string) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		origin = DefaultOrigin
	}
	return origin + "/api"
}

func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	a := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		headers: http.Header{},
	}
	a.headers.Set("Content-Type", "application/json")
	a.headers.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(a)
	}
	if a.client == nil {
		a.client = &http.Client{Timeout: a.timeout}
	}
	return a
}

func (a *APIClient) BaseURL() string { return a.baseURL }

// GetRaw returns the response body untouched. Used by the proxy, which must
// not rename or drop fields.
func (a *APIClient) GetRaw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	b, err := a.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func (a *APIClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	b, err := a.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (a *APIClient) postJSON(ctx context.Context, path string, body, out any) error {
	b, err := a.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (a *APIClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	target := a.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var rdr io.Reader
	if body != nil {
		pb, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(pb)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, err
	}
	for k, vs := range a.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rid := utils.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{Method: method, URL: target, Status: resp.StatusCode, Body: b}
	}
	return b, nil
}

// pathID renders a string or integer identifier as a single path segment.
func pathID(id any) string {
	return url.PathEscape(fmt.Sprint(id))
}
