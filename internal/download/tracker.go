package download

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/metrics"
	"github.com/ytget/yt-archiver/internal/model"
)

// UnknownTitle is recorded for failed items the engine could not name
const UnknownTitle = "unknown"

// FaultReporter receives progress events that could not be applied
type FaultReporter interface {
	ReportFault(event ProgressEvent, err error)
}

// LogFaultReporter logs faults as warnings and counts them
type LogFaultReporter struct {
	logger  logrus.FieldLogger
	metrics *metrics.Collector
}

// NewLogFaultReporter creates a fault reporter; collector may be nil
func NewLogFaultReporter(logger logrus.FieldLogger, collector *metrics.Collector) *LogFaultReporter {
	return &LogFaultReporter{logger: logger, metrics: collector}
}

// ReportFault implements FaultReporter
func (r *LogFaultReporter) ReportFault(event ProgressEvent, err error) {
	r.metrics.ProgressFault()
	if r.logger == nil {
		return
	}
	r.logger.WithError(err).WithFields(logrus.Fields{
		"status":   event.Status,
		"filename": event.Filename,
	}).Warn("Progress event dropped")
}

// Tracker folds engine events into a DownloadSession. It is the ProgressSink
// handed to the fallback loop and the only writer of the session.
type Tracker struct {
	mu       sync.Mutex
	session  *model.DownloadSession
	faults   FaultReporter
	onUpdate func(model.DownloadSession)
}

// NewTracker creates a tracker for session
func NewTracker(session *model.DownloadSession, faults FaultReporter) *Tracker {
	return &Tracker{session: session, faults: faults}
}

// SetUpdateCallback sets the function receiving a snapshot after every change
func (t *Tracker) SetUpdateCallback(callback func(model.DownloadSession)) {
	t.mu.Lock()
	t.onUpdate = callback
	t.mu.Unlock()
}

// Snapshot returns a copy of the current session state
func (t *Tracker) Snapshot() model.DownloadSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.Snapshot()
}

// Start marks the session running with the discovered item count
func (t *Tracker) Start(totalItems int) {
	t.apply(func(s *model.DownloadSession) { s.Start(totalItems) })
}

// Complete marks the session completed
func (t *Tracker) Complete() {
	t.apply(func(s *model.DownloadSession) { s.Complete() })
}

// Fail marks the session failed
func (t *Tracker) Fail(err error) {
	t.apply(func(s *model.DownloadSession) { s.Fail(err) })
}

// OnQuery implements QueryObserver
func (t *Tracker) OnQuery(query model.FormatQuery) {
	t.apply(func(s *model.DownloadSession) { s.SetActiveQuery(query) })
}

// OnProgress implements ProgressSink. Faults are reported, never propagated.
func (t *Tracker) OnProgress(event ProgressEvent) {
	defer func() {
		if r := recover(); r != nil {
			t.reportFault(event, fmt.Errorf("%w: panic: %v", ErrInvalidProgress, r))
		}
	}()

	switch event.Status {
	case EventDownloading:
		if err := validateEvent(event); err != nil {
			t.reportFault(event, err)
			return
		}
		t.apply(func(s *model.DownloadSession) {
			s.RecordProgress(event.Key(), event.Filename, event.DownloadedBytes, event.TotalBytes, event.TotalBytesEstimate)
		})
	case EventFinished:
		// byte fields are not read for finished items
		t.apply(func(s *model.DownloadSession) {
			s.RecordFinished(event.Key(), event.Filename)
		})
	}
}

// OnItemFailed implements ProgressSink
func (t *Tracker) OnItemFailed(title string) {
	if title == "" {
		title = UnknownTitle
	}
	t.apply(func(s *model.DownloadSession) { s.RecordFailure(title) })
}

func (t *Tracker) apply(mutate func(*model.DownloadSession)) {
	snapshot, callback := t.mutate(mutate)
	if callback != nil {
		callback(snapshot)
	}
}

func (t *Tracker) mutate(fn func(*model.DownloadSession)) (model.DownloadSession, func(model.DownloadSession)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.session)
	return t.session.Snapshot(), t.onUpdate
}

func (t *Tracker) reportFault(event ProgressEvent, err error) {
	if t.faults != nil {
		t.faults.ReportFault(event, err)
	}
}

func validateEvent(event ProgressEvent) error {
	if event.DownloadedBytes < 0 || event.TotalBytes < 0 || event.TotalBytesEstimate < 0 {
		return fmt.Errorf("%w: negative byte count", ErrInvalidProgress)
	}
	return nil
}
