package model

import (
	"errors"
	"testing"
)

func TestComputePercent(t *testing.T) {
	tests := []struct {
		name        string
		downloaded  int64
		total       int64
		estimate    int64
		wantPercent float64
		wantOK      bool
	}{
		{"exact total", 50, 200, 0, 25.0, true},
		{"total wins over estimate", 50, 200, 100, 25.0, true},
		{"estimate only", 50, 0, 100, 50.0, true},
		{"nothing known", 50, 0, 0, 0, false},
		{"overshoot clamps to 100", 300, 200, 0, 100, true},
		{"negative downloaded clamps to 0", -10, 200, 0, 0, true},
		{"negative total treated as unknown", 50, -1, 100, 50.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, ok := ComputePercent(tt.downloaded, tt.total, tt.estimate)
			if ok != tt.wantOK {
				t.Fatalf("ComputePercent ok = %v, expected %v", ok, tt.wantOK)
			}
			if percent != tt.wantPercent {
				t.Errorf("ComputePercent = %v, expected %v", percent, tt.wantPercent)
			}
		})
	}
}

func TestDownloadSession_RecordProgress(t *testing.T) {
	s := NewDownloadSession("session-1", "https://example.com/v", TierVideoMedium)
	s.Start(1)

	s.RecordProgress("a.mp4", "/tmp/stage/a.mp4", 50, 0, 0)
	if s.HasPercent {
		t.Error("Expected no percent when totals are unknown")
	}
	if s.DownloadedBytes != 50 {
		t.Errorf("Expected raw downloaded bytes 50, got %d", s.DownloadedBytes)
	}

	s.RecordProgress("a.mp4", "", 50, 0, 100)
	if !s.HasPercent || s.Percent != 50.0 {
		t.Errorf("Expected percent 50.0 from estimate, got %v (has=%v)", s.Percent, s.HasPercent)
	}
	if s.TotalBytes != 100 {
		t.Errorf("Expected total bytes to fall back to estimate, got %d", s.TotalBytes)
	}

	if s.Attempted != 1 {
		t.Errorf("Expected one attempted item, got %d", s.Attempted)
	}
	if s.CurrentName != "/tmp/stage/a.mp4" {
		t.Errorf("Expected current name to be kept, got %q", s.CurrentName)
	}
}

func TestDownloadSession_RecordFinished(t *testing.T) {
	s := NewDownloadSession("session-1", "https://example.com/v", TierVideoMedium)
	s.Start(2)

	s.RecordProgress("a.mp4", "a.mp4", 10, 200, 0)
	s.RecordFinished("a.mp4", "a.mp4")

	if s.Percent != 100 {
		t.Errorf("Expected percent 100 after finish, got %v", s.Percent)
	}
	if s.Succeeded != 1 {
		t.Errorf("Expected one success, got %d", s.Succeeded)
	}

	s.RecordFinished("b.mp4", "b.mp4")
	if s.Succeeded != 2 {
		t.Errorf("Expected two successes, got %d", s.Succeeded)
	}
}

func TestDownloadSession_Invariants(t *testing.T) {
	s := NewDownloadSession("session-1", "https://example.com/list", TierAudioOnly)
	s.Start(1)

	s.RecordFinished("a.mp3", "a.mp3")
	s.RecordFinished("a.mp3", "a.mp3")
	s.RecordFailure("B")
	s.RecordFailure("B")

	if got := s.Succeeded + len(s.FailedTitles); got > s.Attempted {
		t.Errorf("succeeded+failed (%d) exceeds attempted (%d)", got, s.Attempted)
	}
	if s.Attempted > s.TotalItems {
		t.Errorf("attempted (%d) exceeds total items (%d)", s.Attempted, s.TotalItems)
	}
}

func TestDownloadSession_RecordFailureKeepsOrder(t *testing.T) {
	s := NewDownloadSession("session-1", "https://example.com/list", TierVideoLow)
	for _, title := range []string{"C", "A", "B"} {
		s.RecordFailure(title)
	}

	expected := []string{"C", "A", "B"}
	if len(s.FailedTitles) != len(expected) {
		t.Fatalf("Expected %d failed titles, got %d", len(expected), len(s.FailedTitles))
	}
	for i, title := range expected {
		if s.FailedTitles[i] != title {
			t.Errorf("FailedTitles[%d] = %q, expected %q", i, s.FailedTitles[i], title)
		}
	}
}

func TestDownloadSession_Snapshot(t *testing.T) {
	s := NewDownloadSession("session-1", "https://example.com/list", TierVideoLow)
	s.RecordFailure("A")

	snap := s.Snapshot()
	s.RecordFailure("B")

	if len(snap.FailedTitles) != 1 {
		t.Errorf("Snapshot should not observe later writes, got %v", snap.FailedTitles)
	}
}

func TestDownloadSession_CompleteAndFail(t *testing.T) {
	s := NewDownloadSession("session-1", "u", TierVideoLow)
	s.Start(0)
	if s.State != SessionStateRunning {
		t.Fatalf("Expected Running, got %s", s.State)
	}
	s.Complete()
	if s.State != SessionStateCompleted || s.FinishedAt.IsZero() {
		t.Errorf("Expected Completed with finish time, got %s", s.State)
	}

	f := NewDownloadSession("session-2", "u", TierVideoLow)
	f.Start(0)
	f.Fail(errors.New("boom"))
	if f.State != SessionStateFailed || f.LastError != "boom" {
		t.Errorf("Expected Failed with error, got %s / %q", f.State, f.LastError)
	}
}

func TestDownloadSession_GetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"", ""},
		{"/tmp/stage/My Video.mp4", "My Video"},
		{"C:\\stage\\Song.f140.m4a", "Song.f140"},
		{"noext", "noext"},
	}

	for _, test := range tests {
		s := &DownloadSession{CurrentName: test.name}
		if result := s.GetDisplayName(); result != test.expected {
			t.Errorf("GetDisplayName() with %q = %q, expected %q", test.name, result, test.expected)
		}
	}
}

func TestDownloadOutcome_CompletedItems(t *testing.T) {
	o := &DownloadOutcome{Items: []ItemResult{
		{Title: "A", Status: ItemStatusCompleted},
		{Title: "C", Status: ItemStatusFailed},
		{Title: "B", Status: ItemStatusCompleted},
	}}

	completed := o.CompletedItems()
	if len(completed) != 2 || completed[0].Title != "A" || completed[1].Title != "B" {
		t.Errorf("unexpected completed items: %+v", completed)
	}
}
