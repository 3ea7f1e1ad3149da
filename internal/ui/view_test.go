package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/model"
)

func TestBuildSessionView(t *testing.T) {
	loc := NewLocalization()

	tests := []struct {
		name       string
		session    func() model.DownloadSession
		wantStatus string
		wantCount  string
		wantBar    float64
	}{
		{
			name: "idle",
			session: func() model.DownloadSession {
				return model.NewDownloadSession("s", "u", model.TierVideoLow).Snapshot()
			},
			wantStatus: "Ready to download",
		},
		{
			name: "starting",
			session: func() model.DownloadSession {
				s := model.NewDownloadSession("s", "u", model.TierVideoLow)
				s.Start(3)
				return s.Snapshot()
			},
			wantStatus: "Starting download...",
			wantCount:  "Downloaded: 0 of 3",
		},
		{
			name: "percent known",
			session: func() model.DownloadSession {
				s := model.NewDownloadSession("s", "u", model.TierVideoLow)
				s.Start(1)
				s.RecordProgress("a.mp4", "a.mp4", 250, 1000, 0)
				return s.Snapshot()
			},
			wantStatus: "Progress: 25.0%",
			wantCount:  "Downloaded: 0 of 1",
			wantBar:    0.25,
		},
		{
			name: "size unknown",
			session: func() model.DownloadSession {
				s := model.NewDownloadSession("s", "u", model.TierVideoLow)
				s.Start(1)
				s.RecordProgress("a.mp4", "a.mp4", 3*1024*1024, 0, 0)
				return s.Snapshot()
			},
			wantStatus: "Downloaded: 3.0 MB",
			wantCount:  "Downloaded: 0 of 1",
		},
		{
			name: "finished item",
			session: func() model.DownloadSession {
				s := model.NewDownloadSession("s", "u", model.TierVideoLow)
				s.Start(2)
				s.RecordFinished("a.mp4", "a.mp4")
				return s.Snapshot()
			},
			wantStatus: "Download finished, processing...",
			wantCount:  "Downloaded: 1 of 2",
			wantBar:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := BuildSessionView(loc, tt.session())
			assert.Equal(t, tt.wantStatus, view.Status)
			assert.Equal(t, tt.wantCount, view.Count)
			assert.InDelta(t, tt.wantBar, view.Progress, 0.0001)
		})
	}
}

func TestBuildSessionViewCurrentAndFailed(t *testing.T) {
	loc := NewLocalization()
	s := model.NewDownloadSession("s", "u", model.TierAudioOnly)
	s.Start(3)
	s.RecordProgress("staging/Song One.webm", "staging/Song One.webm", 10, 100, 0)
	s.RecordFailure("Private video")

	view := BuildSessionView(loc, s.Snapshot())
	assert.Equal(t, "Downloading: Song One", view.Current)
	assert.Equal(t, []string{"Failed: Private video"}, view.FailedLines)
}

func TestBuildSummaryDialogMatchesSummaryMessage(t *testing.T) {
	loc := NewLocalization()

	summaries := []download.Summary{
		{Succeeded: 3, ArchivePath: "/tmp/a.zip"},
		{Succeeded: 2, FailedTitles: []string{"x"}, ArchivePath: "/tmp/b.zip"},
		{Succeeded: 1, ArchivePath: "/tmp/c.zip", PublishedURL: "s3://bucket/c.zip"},
		{Cancelled: true},
		{Err: errors.New("boom")},
	}
	for _, sum := range summaries {
		assert.Equal(t, sum.Message(), BuildSummaryDialog(loc, sum).Message)
	}
}

func TestBuildSummaryDialogKinds(t *testing.T) {
	loc := NewLocalization()

	ok := BuildSummaryDialog(loc, download.Summary{Succeeded: 1, ArchivePath: "/tmp/a.zip"})
	assert.Equal(t, "Success", ok.Title)
	assert.Equal(t, "/tmp/a.zip", ok.RevealPath)
	assert.False(t, ok.IsError)

	cancelled := BuildSummaryDialog(loc, download.Summary{Cancelled: true})
	assert.Equal(t, "Cancelled", cancelled.Title)
	assert.Empty(t, cancelled.RevealPath)

	failed := BuildSummaryDialog(loc, download.Summary{Err: download.ErrFormatExhausted})
	assert.True(t, failed.IsError)
	assert.Contains(t, failed.Message, "no formats available")
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"   ", false},
		{"https://www.youtube.com/watch?v=abc", false},
		{"http://youtu.be/abc", false},
		{"ftp://example.com/file", true},
		{"youtube.com/watch?v=abc", true},
		{"https://", true},
	}
	for _, tt := range tests {
		err := validateURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
