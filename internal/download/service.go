package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/format"
	"github.com/ytget/yt-archiver/internal/logging"
	"github.com/ytget/yt-archiver/internal/metrics"
	"github.com/ytget/yt-archiver/internal/model"
	"github.com/ytget/yt-archiver/internal/platform"
)

// Session settings
const (
	sessionIDPrefix   = "session-"
	stagingDirPattern = "yt-archiver-*"
	archiveExtension  = ".zip"
	defaultArchiveFmt = "yt-archive-20060102-150405"
)

// Session results used as metric labels
const (
	resultCompleted = "completed"
	resultCancelled = "cancelled"
	resultFailed    = "failed"
)

// Request starts one session
type Request struct {
	URL         string
	Tier        model.FormatTier
	Destination DestinationFunc
}

// Service runs download sessions, one at a time
type Service struct {
	engine     Engine
	archiver   Archiver
	discoverer ItemDiscoverer
	tagger     Tagger
	publisher  Publisher
	logger     *logrus.Logger
	metrics    *metrics.Collector

	mu             sync.Mutex
	active         bool
	stagingRoot    string
	ffmpegLocation string
	outputTemplate string
}

// NewService creates a new download service
func NewService(engine Engine, archiver Archiver, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		engine:         engine,
		archiver:       archiver,
		logger:         logger,
		outputTemplate: DefaultOutputTemplate,
	}
}

// SetDiscoverer sets the item counter used to seed the total item count
func (s *Service) SetDiscoverer(discoverer ItemDiscoverer) {
	s.discoverer = discoverer
}

// SetTagger sets the tagger applied to audio-only sessions
func (s *Service) SetTagger(tagger Tagger) {
	s.tagger = tagger
}

// SetPublisher sets the uploader for finished archives
func (s *Service) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

// SetMetrics sets the metrics collector
func (s *Service) SetMetrics(collector *metrics.Collector) {
	s.metrics = collector
}

// SetStagingRoot sets where staging directories are created; empty means the OS temp dir
func (s *Service) SetStagingRoot(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagingRoot = dir
}

// SetFFmpegLocation sets the ffmpeg location handed to the engine
func (s *Service) SetFFmpegLocation(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ffmpegLocation = location
}

// SetOutputTemplate sets the file name template used inside the staging directory
func (s *Service) SetOutputTemplate(template string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(template) == "" {
		template = DefaultOutputTemplate
	}
	s.outputTemplate = template
}

// IsActive reports whether a session is running
func (s *Service) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Start validates req and runs the session on a new goroutine
func (s *Service) Start(ctx context.Context, req Request) (*Handle, error) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return nil, ErrEmptyURL
	}
	if req.Destination == nil {
		return nil, ErrNoDestination
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil, ErrSessionActive
	}
	s.active = true
	opts := sessionOptions{
		stagingRoot:    s.stagingRoot,
		ffmpegLocation: s.ffmpegLocation,
		outputTemplate: s.outputTemplate,
	}
	s.mu.Unlock()

	session := model.NewDownloadSession(generateSessionID(), req.URL, req.Tier)
	handle := newHandle(session.ID)

	go func() {
		summary := s.run(ctx, req, session, handle, opts)
		// inactive before Done fires
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		handle.finish(summary)
	}()

	return handle, nil
}

type sessionOptions struct {
	stagingRoot    string
	ffmpegLocation string
	outputTemplate string
}

func (s *Service) run(ctx context.Context, req Request, session *model.DownloadSession, handle *Handle, opts sessionOptions) Summary {
	log := s.logger.WithFields(logrus.Fields{
		"session": session.ID,
		"url":     req.URL,
		"tier":    req.Tier,
	})

	tracker := NewTracker(session, NewLogFaultReporter(log, s.metrics))
	tracker.SetUpdateCallback(handle.publish)

	fail := func(err error) Summary {
		log.WithError(err).Error("Download session failed")
		tracker.Fail(err)
		s.metrics.SessionFinished(resultFailed)
		return s.summarize(tracker.Snapshot(), Summary{Err: err})
	}

	staging, err := os.MkdirTemp(opts.stagingRoot, stagingDirPattern)
	if err != nil {
		return fail(fmt.Errorf("create staging directory: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			log.WithError(err).Warn("Failed to remove staging directory")
		}
	}()

	tracker.Start(s.countItems(ctx, req.URL, log))
	log.Info("Download session started")

	selection := format.Select(req.Tier)
	downloader := NewFallbackDownloader(s.engine, log)
	downloader.SetOutputTemplate(filepath.Join(staging, opts.outputTemplate))
	downloader.SetFFmpegLocation(opts.ffmpegLocation)
	downloader.SetMetrics(s.metrics)

	outcome, err := downloader.Run(ctx, req.URL, selection, tracker)
	if err != nil {
		return fail(err)
	}
	if !outcome.Success {
		return fail(fmt.Errorf("%w (tried %d formats)", ErrFormatExhausted, len(selection.Queries)))
	}
	log.WithField("query", outcome.Query).Info("Format query succeeded")

	files, err := platform.ListStagedFiles(staging)
	if err != nil {
		return fail(fmt.Errorf("list staged files: %w", err))
	}
	if len(files) == 0 {
		return fail(ErrNoFilesProduced)
	}

	suggested := suggestArchiveName(outcome, files)
	if req.Tier.IsAudio() && s.tagger != nil {
		album := strings.TrimSuffix(suggested, archiveExtension)
		if err := s.tagger.TagDirectory(staging, album); err != nil {
			log.WithError(err).Warn("Failed to tag audio files")
		}
	}

	dest, ok := req.Destination(ctx, suggested)
	if !ok || strings.TrimSpace(dest) == "" {
		log.Info("Save cancelled")
		tracker.Complete()
		s.metrics.SessionFinished(resultCancelled)
		return s.summarize(tracker.Snapshot(), Summary{Cancelled: true})
	}

	task, err := s.archiver.CreateArchive(ctx, staging, dest)
	if err != nil {
		return fail(fmt.Errorf("create archive: %w", err))
	}

	result := Summary{ArchivePath: task.OutputPath}
	if s.publisher != nil {
		location, err := s.publisher.Publish(ctx, task.OutputPath)
		if err != nil {
			log.WithError(err).Warn("Failed to publish archive")
			result.PublishErr = err
		}
		result.PublishedURL = location
	}

	tracker.Complete()
	s.metrics.SessionFinished(resultCompleted)
	log.WithField("archive", task.OutputPath).Info("Download session completed")
	return s.summarize(tracker.Snapshot(), result)
}

// countItems never fails: discovery problems fall back to one item
func (s *Service) countItems(ctx context.Context, url string, log logrus.FieldLogger) int {
	if s.discoverer == nil {
		return 1
	}
	n, err := s.discoverer.CountItems(ctx, url)
	if err != nil {
		log.WithError(err).Warn("Item discovery failed, assuming a single item")
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

func (s *Service) summarize(snapshot model.DownloadSession, summary Summary) Summary {
	summary.SessionID = snapshot.ID
	summary.State = snapshot.State
	summary.Succeeded = snapshot.Succeeded
	summary.FailedTitles = snapshot.FailedTitles
	return summary
}

// suggestArchiveName names the archive after the only item, or after the time
func suggestArchiveName(outcome *model.DownloadOutcome, files []string) string {
	if len(files) == 1 {
		base := filepath.Base(files[0])
		return strings.TrimSuffix(base, filepath.Ext(base)) + archiveExtension
	}
	if completed := outcome.CompletedItems(); len(completed) == 1 && completed[0].Title != "" {
		return platform.SanitizeFileName(completed[0].Title) + archiveExtension
	}
	return time.Now().Format(defaultArchiveFmt) + archiveExtension
}

// generateSessionID generates a unique session ID
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s%d", sessionIDPrefix, time.Now().UnixNano())
	}
	return sessionIDPrefix + id.String()
}
