// Package cli provides the terminal behaviour shared by the doctext commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/hyperjump/doctext/internal/models"
)

// OutputFormat is the format for batch status output.
type OutputFormat string

const (
	// OutputText is human-readable status lines (default).
	OutputText OutputFormat = "text"
	// OutputJSON is one JSON object per line, for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates s as an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// ReportWriter writes batch progress to w as it happens. It implements batch.Reporter
// and is safe for use from the watcher goroutine.
type ReportWriter struct {
	mu     sync.Mutex
	w      io.Writer
	format OutputFormat
}

// NewReportWriter returns a ReportWriter for format.
func NewReportWriter(w io.Writer, format OutputFormat) *ReportWriter {
	return &ReportWriter{w: w, format: format}
}

// Start prints the number of files found.
func (r *ReportWriter) Start(dir string, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.format == OutputJSON {
		r.encode(map[string]interface{}{"event": "start", "directory": dir, "total": total})
		return
	}
	fmt.Fprintf(r.w, "📄 Found %d file(s) to extract in %s\n\n", total, dir)
}

// Result prints one status entry for res.
func (r *ReportWriter) Result(res *models.FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.format == OutputJSON {
		r.encode(struct {
			Event string `json:"event"`
			*models.FileResult
		}{"result", res})
		return
	}
	if res.Status == models.StatusSucceeded {
		fmt.Fprintf(r.w, "✅ Extracted: %s\n", res.File)
		fmt.Fprintf(r.w, "   Saved to: %s\n", res.OutputPath)
		fmt.Fprintf(r.w, "   Length: %d characters\n\n", res.Characters)
		return
	}
	fmt.Fprintf(r.w, "❌ Error with %s: %s\n\n", res.File, res.Error)
}

// Finish prints the summary line.
func (r *ReportWriter) Finish(report *models.BatchReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.format == OutputJSON {
		r.encode(map[string]interface{}{
			"event":       "finish",
			"run_id":      report.RunID,
			"directory":   report.Directory,
			"total":       len(report.Results),
			"succeeded":   report.Succeeded(),
			"failed":      report.Failed(),
			"duration_ms": report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		})
		return
	}
	fmt.Fprintf(r.w, "🎉 Extraction finished: %d succeeded, %d failed\n", report.Succeeded(), report.Failed())
}

func (r *ReportWriter) encode(v interface{}) {
	_ = json.NewEncoder(r.w).Encode(v)
}
