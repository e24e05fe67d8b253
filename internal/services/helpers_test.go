package services

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type stubHTTPClient struct {
	resp *http.Response
	err  error
	req  *http.Request
}

func (c *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.req = req
	return c.resp, c.err
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// recorded is one request seen by a fake backend.
type recorded struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header
}

type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	seen   []recorded
	srv    *httptest.Server
}

// newFakeBackend serves routes keyed by "METHOD /path" under the /api prefix.
func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	fb.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.seen = append(fb.seen, recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body, Header: r.Header.Clone()})
		h := fb.routes[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()
		if h == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		h(w, r)
	}))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) json(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" /api"+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (fb *fakeBackend) client() *APIClient {
	return NewAPIClient(APIBaseURL(fb.srv.URL))
}

func (fb *fakeBackend) last(t *testing.T) recorded {
	t.Helper()
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.seen) == 0 {
		t.Fatalf("backend saw no requests")
	}
	return fb.seen[len(fb.seen)-1]
}
