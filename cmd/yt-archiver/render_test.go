package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/model"
)

func TestRendererLine(t *testing.T) {
	r := newRenderer(&bytes.Buffer{})

	s := model.NewDownloadSession("s", "u", model.TierVideoLow)
	s.Start(2)
	assert.Contains(t, r.line(s.Snapshot()), "Starting download...")

	s.RecordProgress("clip.mp4", "clip.mp4", 500, 1000, 0)
	line := r.line(s.Snapshot())
	assert.Contains(t, line, "Progress: 50.0%")
	assert.Contains(t, line, "Downloaded: 0 of 2")
	assert.Contains(t, line, "clip")

	s.RecordFinished("clip.mp4", "clip.mp4")
	line = r.line(s.Snapshot())
	assert.Contains(t, line, "Download finished, processing...")
	assert.Contains(t, line, "Downloaded: 1 of 2")
}

func TestRendererDrawPrintsEachFailureOnce(t *testing.T) {
	var out bytes.Buffer
	r := newRenderer(&out)

	s := model.NewDownloadSession("s", "u", model.TierAudioOnly)
	s.Start(3)
	s.RecordFailure("Private video")
	r.draw(s.Snapshot())
	r.draw(s.Snapshot())

	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Failed: Private video")))
}

func TestRendererSummary(t *testing.T) {
	var out bytes.Buffer
	r := newRenderer(&out)

	r.summary(download.Summary{Err: errors.New("boom")})
	assert.Contains(t, out.String(), "An error occurred:")
	assert.Contains(t, out.String(), "boom")
}

func TestDestination(t *testing.T) {
	dir := t.TempDir()

	path, ok := destination(dir, "")(context.Background(), "My Song.zip")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "My Song.zip"), path)

	path, ok = destination(dir, filepath.Join(dir, "custom"))(context.Background(), "ignored.zip")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "custom.zip"), path)
}

func TestRootCmdRequiresURL(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
