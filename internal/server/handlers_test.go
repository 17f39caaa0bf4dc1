package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/doctext/internal/config"
	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/models"
	"github.com/hyperjump/doctext/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestServer(maxUpload int64) *Server {
	cfg := &config.ServerConfig{Host: "localhost", Port: 8090, MaxUploadBytes: maxUpload}
	return NewServer(nil, cfg, zap.NewNop())
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/extract", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func serve(srv *Server, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	return w
}

func TestHandleExtract_docx(t *testing.T) {
	srv := newTestServer(1 << 20)
	w := serve(srv, uploadRequest(t, "file", "memo.docx", testutil.MinimalDOCX("", "First", "Second", "")))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp models.ExtractResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Text != "First\nSecond" {
		t.Errorf("text = %q, want trimmed paragraphs", resp.Text)
	}
	if resp.Format != "docx" || resp.Filename != "memo.docx" || resp.Characters != len("First\nSecond") {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.ID == "" {
		t.Error("id should be set")
	}
}

func TestHandleExtract_pdf(t *testing.T) {
	srv := newTestServer(1 << 20)
	w := serve(srv, uploadRequest(t, "file", "report.pdf", testutil.MinimalPDF("Quarterly", "Numbers")))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp models.ExtractResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Text, "Quarterly") || !strings.Contains(resp.Text, "Numbers") {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestHandleExtract_plainText(t *testing.T) {
	srv := newTestServer(1 << 20)
	w := serve(srv, uploadRequest(t, "file", "notes.md", []byte("  # Notes\n\n")))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp models.ExtractResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Text != "# Notes" || resp.Format != "plain" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleExtract_errors(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		maxBytes int64
		want     int
	}{
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "document", "a.pdf", testutil.MinimalPDF("x"))
			},
			want: http.StatusBadRequest,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"file":"a.pdf"}`))
				r.Header.Set("Content-Type", "application/json")
				return r
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unsupported extension",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "slides.pptx", []byte("zip"))
			},
			want: http.StatusUnsupportedMediaType,
		},
		{
			name: "corrupt pdf",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "broken.pdf", []byte("not a pdf"))
			},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "corrupt docx",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "broken.docx", []byte("not a zip"))
			},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "big.txt", bytes.Repeat([]byte("a"), 4096))
			},
			maxBytes: 1024,
			want:     http.StatusRequestEntityTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			max := tt.maxBytes
			if max == 0 {
				max = 1 << 20
			}
			w := serve(newTestServer(max), tt.req(t))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("want JSON error body, got %v (%v)", body, err)
			}
		})
	}
}

func TestHandleExtract_missingDependency(t *testing.T) {
	srv := newTestServer(1 << 20)
	srv.probe = func(f extract.Format) error {
		return fmt.Errorf("%w: %s support is not compiled in", extract.ErrMissingDependency, f)
	}
	w := serve(srv, uploadRequest(t, "file", "a.pdf", testutil.MinimalPDF("x")))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestHandleFormats(t *testing.T) {
	srv := newTestServer(1 << 20)
	srv.probe = func(f extract.Format) error {
		if f == extract.FormatXLSX {
			return extract.ErrMissingDependency
		}
		return nil
	}
	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var out struct {
		Formats []models.FormatInfo `json:"formats"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Formats) != len(extract.Formats()) {
		t.Fatalf("formats = %+v", out.Formats)
	}
	for _, f := range out.Formats {
		wantAvailable := f.Format != string(extract.FormatXLSX)
		if f.Available != wantAvailable {
			t.Errorf("%s: available = %v, want %v", f.Format, f.Available, wantAvailable)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	w := serve(newTestServer(1<<20), httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestRouter_logsRequestsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := &config.ServerConfig{Host: "localhost", Port: 8090, MaxUploadBytes: 1024}
	srv := NewServer(nil, cfg, zap.New(core))

	w := serve(srv, uploadRequest(t, "file", "big.txt", bytes.Repeat([]byte("a"), 4096)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", w.Code)
	}

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d request log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodPost || fields["path"] != "/api/v1/extract" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if fields["status"] != int64(http.StatusRequestEntityTooLarge) {
		t.Errorf("status field = %v (%T)", fields["status"], fields["status"])
	}
	if id, _ := fields["request_id"].(string); id == "" {
		t.Error("request_id should be set")
	}
}
