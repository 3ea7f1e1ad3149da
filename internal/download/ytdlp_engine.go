package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
)

// DefaultProgressInterval is how often yt-dlp progress is forwarded
const DefaultProgressInterval = 250 * time.Millisecond

const stderrErrorPrefix = "ERROR:"

// "ERROR: [youtube] dQw4w9WgXcQ: Video unavailable"
var extractorErrorPattern = regexp.MustCompile(`^\[[^\]]+\]\s+([^:\s]+):`)

// YTDLPEngine runs yt-dlp through go-ytdlp, one process per format query
type YTDLPEngine struct {
	executable       string
	progressInterval time.Duration
	logger           logrus.FieldLogger
}

// NewYTDLPEngine creates an engine using the yt-dlp found on PATH
func NewYTDLPEngine(logger logrus.FieldLogger) *YTDLPEngine {
	return &YTDLPEngine{
		progressInterval: DefaultProgressInterval,
		logger:           logger,
	}
}

// SetExecutable sets an explicit yt-dlp binary
func (e *YTDLPEngine) SetExecutable(path string) {
	e.executable = path
}

// SetProgressInterval sets how often progress updates are delivered
func (e *YTDLPEngine) SetProgressInterval(interval time.Duration) {
	if interval > 0 {
		e.progressInterval = interval
	}
}

// Fetch implements Engine. A non-zero exit is a DownloadError unless at least
// one item finished, in which case the errors are per-item failures.
func (e *YTDLPEngine) Fetch(ctx context.Context, req FetchRequest, sink ProgressSink) error {
	cmd := e.command(req)

	var finished atomic.Int32
	cmd.ProgressFunc(e.progressInterval, func(update ytdlp.ProgressUpdate) {
		event := progressEvent(update)
		if event.Status == EventFinished {
			finished.Add(1)
		}
		sink.OnProgress(event)
	})

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"url":   req.URL,
			"query": req.Query,
		}).Debug("Running yt-dlp")
	}

	result, err := cmd.Run(ctx, req.URL)
	var stderr string
	if result != nil {
		stderr = result.Stderr
	}

	if err == nil {
		reportFailures(sink, stderr)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var exitErr *ytdlp.ErrExitCode
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("run yt-dlp: %w", err)
	}

	if finished.Load() > 0 {
		reportFailures(sink, stderr)
		return nil
	}
	return &DownloadError{Query: req.Query, Stderr: stderr, Err: err}
}

func (e *YTDLPEngine) command(req FetchRequest) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(string(req.Query)).
		Output(req.OutputTemplate).
		RestrictFilenames()

	if e.executable != "" {
		cmd.SetExecutable(e.executable)
	}
	if req.IgnoreErrors {
		cmd.IgnoreErrors()
	}
	if req.FFmpegLocation != "" {
		cmd.FFmpegLocation(req.FFmpegLocation)
	}
	if req.Postprocess != nil {
		cmd.ExtractAudio().
			AudioFormat(req.Postprocess.Codec).
			AudioQuality(req.Postprocess.Quality)
	}
	if req.MergeOutputFormat != "" {
		cmd.MergeOutputFormat(req.MergeOutputFormat)
	}
	return cmd
}

// progressEvent converts a go-ytdlp update. go-ytdlp already falls back to
// the estimate when the exact total is unknown, so TotalBytesEstimate stays 0.
func progressEvent(update ytdlp.ProgressUpdate) ProgressEvent {
	event := ProgressEvent{
		Status:          EventStatus(update.Status),
		Filename:        update.Filename,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}
	if update.Info != nil && update.Info.Title != nil {
		event.Title = *update.Info.Title
	}
	return event
}

func reportFailures(sink ProgressSink, stderr string) {
	for _, title := range ParseFailedItems(stderr) {
		sink.OnItemFailed(title)
	}
}

// ParseFailedItems extracts the failing item of every ERROR line in yt-dlp
// stderr. yt-dlp does not print titles there: when the "[extractor] id:"
// prefix is present the item is the video ID, otherwise the whole message.
func ParseFailedItems(stderr string) []string {
	var items []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, stderrErrorPrefix) {
			continue
		}
		message := strings.TrimSpace(strings.TrimPrefix(line, stderrErrorPrefix))
		if message == "" {
			continue
		}

		item := message
		if m := extractorErrorPattern.FindStringSubmatch(message); m != nil {
			item = m[1]
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	return items
}
