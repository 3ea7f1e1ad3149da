package download

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/ytget/yt-archiver/internal/model"
)

// stubEngine replays a scripted behaviour per call
type stubEngine struct {
	mu     sync.Mutex
	calls  []FetchRequest
	script func(call int, req FetchRequest, sink ProgressSink) error
}

func (e *stubEngine) Fetch(ctx context.Context, req FetchRequest, sink ProgressSink) error {
	e.mu.Lock()
	call := len(e.calls)
	e.calls = append(e.calls, req)
	e.mu.Unlock()

	if e.script == nil {
		return nil
	}
	return e.script(call, req, sink)
}

func (e *stubEngine) queries() []model.FormatQuery {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.FormatQuery, 0, len(e.calls))
	for _, c := range e.calls {
		out = append(out, c.Query)
	}
	return out
}

func failAttempt(req FetchRequest) error {
	return &DownloadError{Query: req.Query, Stderr: "ERROR: Requested format is not available"}
}

// writeStaged creates name next to the engine output template
func writeStaged(req FetchRequest, name string) error {
	return os.WriteFile(filepath.Join(filepath.Dir(req.OutputTemplate), name), []byte("media"), 0644)
}

func finish(sink ProgressSink, filename, title string) {
	sink.OnProgress(ProgressEvent{Status: EventDownloading, Filename: filename, Title: title, DownloadedBytes: 50, TotalBytes: 100})
	sink.OnProgress(ProgressEvent{Status: EventFinished, Filename: filename, Title: title, DownloadedBytes: 100, TotalBytes: 100})
}

type recordingSink struct {
	mu     sync.Mutex
	events []ProgressEvent
	failed []string
}

func (s *recordingSink) OnProgress(event ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) OnItemFailed(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = append(s.failed, title)
}

type faultRecorder struct {
	mu     sync.Mutex
	faults []error
}

func (f *faultRecorder) ReportFault(_ ProgressEvent, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = append(f.faults, err)
}

func (f *faultRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.faults)
}
