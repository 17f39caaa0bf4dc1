package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/doctext/internal/batch"
	"github.com/hyperjump/doctext/internal/cli"
	"github.com/hyperjump/doctext/internal/config"
	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/models"
	"github.com/hyperjump/doctext/internal/server"
	"go.uber.org/zap"
)

const corpusSize = 60

func TestE2E_BatchOverCorpus(t *testing.T) {
	dir := t.TempDir()
	corpus := BuildCorpus(corpusSize)
	if err := corpus.WriteTo(dir); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	runner := batch.NewRunner(nil,
		batch.WithReporter(cli.NewReportWriter(&out, cli.OutputText)),
		batch.WithLogger(zap.NewNop()),
	)
	report, err := runner.Run(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	wantOK := corpus.Count(extract.FormatPDF, false)
	wantFailed := corpus.Count(extract.FormatPDF, true)
	if report.Succeeded() != wantOK || report.Failed() != wantFailed {
		t.Fatalf("succeeded=%d failed=%d, want %d/%d", report.Succeeded(), report.Failed(), wantOK, wantFailed)
	}
	if got := strings.Count(out.String(), "✅ Extracted:"); got != wantOK {
		t.Errorf("%d success blocks, want %d", got, wantOK)
	}
	if got := strings.Count(out.String(), "❌ Error with"); got != wantFailed {
		t.Errorf("%d failure lines, want %d", got, wantFailed)
	}

	for i, d := range corpus.Documents {
		if d.Format != extract.FormatPDF {
			continue
		}
		outPath := batch.OutputPath(filepath.Join(dir, d.Name), ".pdf", "_extracted.txt")
		data, err := os.ReadFile(outPath)
		if d.Corrupt {
			if !os.IsNotExist(err) {
				t.Errorf("%s: corrupt file produced output (err %v)", d.Name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", d.Name, err)
			continue
		}
		text := string(data)
		last := -1
		for p := range d.Parts {
			idx := strings.Index(text, Signature(i, p))
			if idx <= last {
				t.Errorf("%s: page %d missing or out of order in %q", d.Name, p, text)
			}
			last = idx
		}
		if !strings.HasSuffix(text, "\n\n") {
			t.Errorf("%s: last page should be followed by a blank line: %q", d.Name, text)
		}
	}
}

func TestE2E_ServerOverCorpus(t *testing.T) {
	cfg := &config.ServerConfig{MaxUploadBytes: config.DefaultMaxUploadBytes}
	ts := httptest.NewServer(server.NewServer(nil, cfg, zap.NewNop()).Router())
	defer ts.Close()

	corpus := BuildCorpus(corpusSize)
	for i, d := range corpus.Documents {
		status, resp := upload(t, ts.URL, d.Name, d.Bytes())
		if d.Corrupt {
			if status != http.StatusUnprocessableEntity {
				t.Errorf("%s: status %d, want 422", d.Name, status)
			}
			continue
		}
		if status != http.StatusOK {
			t.Errorf("%s: status %d", d.Name, status)
			continue
		}
		if resp.Format != string(d.Format) {
			t.Errorf("%s: format %s", d.Name, resp.Format)
		}
		for p := range d.Parts {
			if !strings.Contains(resp.Text, Signature(i, p)) {
				t.Errorf("%s: text %q missing part %d", d.Name, resp.Text, p)
			}
		}
		if resp.Text != strings.TrimSpace(resp.Text) {
			t.Errorf("%s: text not trimmed: %q", d.Name, resp.Text)
		}
	}
}

func upload(t *testing.T, baseURL, name string, content []byte) (int, *models.ExtractResponse) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(baseURL+"/api/v1/extract", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var out models.ExtractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, &out
}
