package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hiveplot/internal/config"
	"github.com/matzehuels/hiveplot/pkg/cache"
	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/pipeline"
)

const body = `{
	"graph": {
		"groups": [
			{"name": "A", "color": "red", "nodes": ["a0", "a1"]},
			{"name": "B", "nodes": ["b0"]}
		],
		"edges": [{"group": "calls", "edges": [{"from": "a1", "to": "b0"}]}]
	},
	"options": {"scale": 10}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, config.ServerConfig{MaxBodyBytes: 1 << 16}, logger)
}

func do(t *testing.T, h http.Handler, method, target, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), "GET", "/healthz", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, "GET", "/healthz", "")
	if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request id is not a UUID: %q", w.Header().Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want client id %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid client request id should be replaced")
	}
}

func TestLayout(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, "POST", "/v1/layout", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if got := w.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	l, err := graph.UnmarshalLayout(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if l.Radius != 120 || len(l.Nodes) != 3 || len(l.Edges) != 1 {
		t.Errorf("layout = radius %v, %d nodes, %d edges", l.Radius, len(l.Nodes), len(l.Edges))
	}

	w = do(t, h, "POST", "/v1/layout", body)
	if got := w.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second request X-Cache = %q, want hit", got)
	}
}

func TestRender(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		target      string
		contentType string
		prefix      string
	}{
		{"/v1/render", "image/svg+xml", "<svg"},
		{"/v1/render?format=svg", "image/svg+xml", "<svg"},
		{"/v1/render?format=json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := do(t, h, "POST", tt.target, body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body)
			}
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !bytes.HasPrefix(w.Body.Bytes(), []byte(tt.prefix)) {
				t.Errorf("body starts %.20q", w.Body.String())
			}
		})
	}
}

func TestErrors(t *testing.T) {
	h := newTestServer(t).Handler()

	dangling := strings.Replace(body, `"to": "b0"`, `"to": "zz"`, 1)
	dupGroup := strings.Replace(body, `"name": "B"`, `"name": "A"`, 1)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"BadJSON", "/v1/layout", `{`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"UnknownFormat", "/v1/render?format=gif", body, http.StatusBadRequest, ""},
		{"NegativeScale", "/v1/layout", strings.Replace(body, `"scale": 10`, `"scale": -1`, 1), http.StatusBadRequest, ""},
		{"DanglingEdge", "/v1/layout", dangling, http.StatusUnprocessableEntity, "NODE_NOT_FOUND"},
		{"DuplicateGroup", "/v1/render", dupGroup, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"NoGroups", "/v1/layout", `{"graph": {}}`, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"TooLarge", "/v1/layout", `{"graph": {"groups": [{"name": "` + strings.Repeat("x", 1<<17) + `"}]}}`, http.StatusRequestEntityTooLarge, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", tt.target, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error == "" || resp.RequestID == "" {
				t.Errorf("incomplete error response %+v", resp)
			}
			if tt.code != "" && resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), "GET", "/v1/layout", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestServeGracefulShutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
