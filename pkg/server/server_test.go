package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/surface"
)

const sampleBody = `{
  "dataset": {"Visitors": {"Mon": 120, "Tue": 80, "Wed": null, "Thu": 150}},
  "settings": {"format": "float", "gridlines": 3},
  "options": {"width": 600}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(Config{
		Runner:       pipeline.NewRunner(c, nil, logger),
		Logger:       logger,
		MaxBodyBytes: 1 << 16,
	})
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s error: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/render", sampleBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(HeaderRenderID) == "" {
		t.Error("missing render ID header")
	}
	if resp.Header.Get(HeaderCache) != "miss" {
		t.Errorf("%s = %q, want miss", HeaderCache, resp.Header.Get(HeaderCache))
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("body is not an SVG document")
	}

	again := post(t, ts.URL+"/v1/render", sampleBody)
	if again.Header.Get(HeaderCache) != "hit" {
		t.Errorf("second %s = %q, want hit", HeaderCache, again.Header.Get(HeaderCache))
	}
}

func TestRenderJSON(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/v1/render?format=json", sampleBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var rec surface.Recorder
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.Width != 600 {
		t.Errorf("Width = %v, want 600", rec.Width)
	}
	// Legend square plus three columns; Wed is absent.
	if got := len(rec.Filter("fill_rect")); got != 4 {
		t.Errorf("fill_rect ops = %d, want 4", got)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"bad format", "?format=gif", sampleBody, http.StatusBadRequest, errors.ErrCodeInvalidOutput},
		{"malformed body", "", `{"dataset":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", "", `{"dataset":{},"colour":"red"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing dataset", "", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad value format", "", `{"dataset":{"A":{"x":1}},"settings":{"format":"roman"}}`, http.StatusBadRequest, ""},
		{"bad settings", "", `{"dataset":{"A":{"x":1}},"settings":{"height":-5}}`, http.StatusBadRequest, errors.ErrCodeInvalidSettings},
		{"bad dataset", "", `{"dataset":{"A":[1,2]}}`, http.StatusBadRequest, errors.ErrCodeInvalidDataset},
		{"domain", "", `{"dataset":{"A":{"x":0}},"settings":{"gridlines":0}}`, http.StatusUnprocessableEntity, errors.ErrCodeDomain},
		{"too large", "", `{"dataset":{"A":{"` + strings.Repeat("x", 1<<17) + `":1}}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			detail := decodeError(t, resp)
			if tt.code != "" && detail.Code != string(tt.code) {
				t.Errorf("code = %q, want %q (message %q)", detail.Code, tt.code, detail.Message)
			}
			if detail.RequestID == "" {
				t.Error("missing request ID")
			}
		})
	}
}

func TestStoredCharts(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/charts", sampleBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if errors.ValidateChartID(created.ID) != nil {
		t.Fatalf("id = %q, want UUID", created.ID)
	}

	png := get(t, ts.URL+"/v1/charts/"+created.ID+"/png")
	if png.StatusCode != http.StatusOK {
		t.Fatalf("png status = %d, want 200", png.StatusCode)
	}
	if png.Header.Get("Content-Type") != "image/png" {
		t.Errorf("Content-Type = %q", png.Header.Get("Content-Type"))
	}
	data, _ := io.ReadAll(png.Body)
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("body is not a PNG image")
	}

	rendered := get(t, ts.URL+"/v1/charts/"+created.ID+"/json")
	var rec surface.Recorder
	if err := json.NewDecoder(rendered.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.Width != 600 {
		t.Errorf("stored options lost: Width = %v, want 600", rec.Width)
	}
}

func TestStoredChartErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown id", "/v1/charts/6ba7b810-9dad-11d1-80b4-00c04fd430c8/svg", http.StatusNotFound},
		{"invalid id", "/v1/charts/nope/svg", http.StatusNotFound},
		{"bad format", "/v1/charts/6ba7b810-9dad-11d1-80b4-00c04fd430c8/gif", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}

	bad := post(t, ts.URL+"/v1/charts", `{"dataset":{"A":{"x":1}},"options":{"margin":-1}}`)
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("create with bad options status = %d, want 400", bad.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidSettings, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidFormat, "unsupported format"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.Domain("x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{io.EOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
