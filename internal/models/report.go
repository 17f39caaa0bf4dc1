// Package models defines the data structures shared by the batch runner, the CLI and the HTTP API.
package models

import "time"

// FileStatus is the state of one file in a batch run.
// A file moves pending -> processing -> succeeded or failed.
type FileStatus string

const (
	StatusPending    FileStatus = "pending"
	StatusProcessing FileStatus = "processing"
	StatusSucceeded  FileStatus = "succeeded"
	StatusFailed     FileStatus = "failed"
)

// Done reports whether s is a terminal status.
func (s FileStatus) Done() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// FileResult is the outcome of one extraction attempt in a batch.
type FileResult struct {
	File       string     `json:"file"`
	Path       string     `json:"path"`
	OutputPath string     `json:"output_path,omitempty"`
	Status     FileStatus `json:"status"`
	// Characters is the number of Unicode code points written to OutputPath.
	Characters int    `json:"characters,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchReport collects the results of one batch run. It is printed, never persisted.
type BatchReport struct {
	RunID      string        `json:"run_id"`
	Directory  string        `json:"directory"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Results    []*FileResult `json:"results"`
}

// Succeeded returns the number of files extracted successfully.
func (r *BatchReport) Succeeded() int {
	return r.count(StatusSucceeded)
}

// Failed returns the number of files whose extraction failed.
func (r *BatchReport) Failed() int {
	return r.count(StatusFailed)
}

func (r *BatchReport) count(status FileStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// ExtractResponse is the body returned by the HTTP extraction endpoint.
type ExtractResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Format     string `json:"format"`
	Text       string `json:"text"`
	Characters int    `json:"characters"`
}

// FormatInfo describes one format and whether this build can extract it.
type FormatInfo struct {
	Format    string `json:"format"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}
