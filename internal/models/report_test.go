package models

import "testing"

func TestBatchReportCounts(t *testing.T) {
	r := &BatchReport{Results: []*FileResult{
		{File: "a.pdf", Status: StatusSucceeded},
		{File: "b.pdf", Status: StatusFailed},
		{File: "c.pdf", Status: StatusSucceeded},
		{File: "d.pdf", Status: StatusPending},
	}}
	if got := r.Succeeded(); got != 2 {
		t.Errorf("Succeeded() = %d, want 2", got)
	}
	if got := r.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
}

func TestFileStatusDone(t *testing.T) {
	tests := []struct {
		status FileStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusSucceeded, true},
		{StatusFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.Done(); got != tt.want {
			t.Errorf("%s.Done() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
