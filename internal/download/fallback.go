package download

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/format"
	"github.com/ytget/yt-archiver/internal/metrics"
	"github.com/ytget/yt-archiver/internal/model"
)

// DefaultOutputTemplate names fetched files after their title
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// FallbackDownloader tries format queries in order until one engine call succeeds
type FallbackDownloader struct {
	engine         Engine
	logger         logrus.FieldLogger
	metrics        *metrics.Collector
	outputTemplate string
	ffmpegLocation string
}

// NewFallbackDownloader creates a downloader driving engine
func NewFallbackDownloader(engine Engine, logger logrus.FieldLogger) *FallbackDownloader {
	return &FallbackDownloader{
		engine:         engine,
		logger:         logger,
		outputTemplate: DefaultOutputTemplate,
	}
}

// SetOutputTemplate sets the engine output template, including the target directory
func (d *FallbackDownloader) SetOutputTemplate(template string) {
	d.outputTemplate = template
}

// SetFFmpegLocation sets the ffmpeg binary or directory handed to the engine
func (d *FallbackDownloader) SetFFmpegLocation(location string) {
	d.ffmpegLocation = location
}

// SetMetrics sets the metrics collector
func (d *FallbackDownloader) SetMetrics(collector *metrics.Collector) {
	d.metrics = collector
}

// Run fetches url with each query of selection in order. The first attempt
// that does not fail with ErrDownload wins and only its items are reported.
// When every query fails the outcome has Success=false and a nil error.
// Errors other than ErrDownload abort the loop and are returned.
func (d *FallbackDownloader) Run(ctx context.Context, url string, selection format.Selection, sink ProgressSink) (*model.DownloadOutcome, error) {
	queries := selection.Queries
	if len(queries) == 0 {
		queries = []model.FormatQuery{format.AnyVideoQuery}
	}

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if observer, ok := sink.(QueryObserver); ok {
			observer.OnQuery(query)
		}

		attempt := newAttemptRecorder(sink, query, d.metrics)
		err := d.engine.Fetch(ctx, FetchRequest{
			URL:               url,
			Query:             query,
			Postprocess:       selection.Postprocess,
			MergeOutputFormat: selection.MergeOutputFormat,
			OutputTemplate:    d.outputTemplate,
			IgnoreErrors:      true,
			FFmpegLocation:    d.ffmpegLocation,
		}, attempt)

		if err == nil {
			d.metrics.FormatAttempt(metrics.AttemptSuccess)
			return &model.DownloadOutcome{
				Success: true,
				Query:   query,
				Items:   attempt.results(),
			}, nil
		}

		if errors.Is(err, ErrDownload) {
			d.metrics.FormatAttempt(metrics.AttemptDownloadError)
			if d.logger != nil {
				d.logger.WithError(err).WithFields(logrus.Fields{
					"query":   query,
					"attempt": i + 1,
					"of":      len(queries),
				}).Debug("Format query failed, trying next")
			}
			continue
		}

		d.metrics.FormatAttempt(metrics.AttemptFatal)
		return nil, fmt.Errorf("fetch with format %q: %w", query, err)
	}

	return &model.DownloadOutcome{Success: false}, nil
}

// attemptRecorder forwards events to the session sink and remembers the items
// seen during one attempt
type attemptRecorder struct {
	sink    ProgressSink
	query   model.FormatQuery
	metrics *metrics.Collector

	mu    sync.Mutex
	items []model.ItemResult
	index map[string]int
}

func newAttemptRecorder(sink ProgressSink, query model.FormatQuery, collector *metrics.Collector) *attemptRecorder {
	return &attemptRecorder{
		sink:    sink,
		query:   query,
		metrics: collector,
		index:   make(map[string]int),
	}
}

func (a *attemptRecorder) OnProgress(event ProgressEvent) {
	if event.Status == EventFinished {
		a.record(event.Key(), model.ItemResult{
			Title:    event.Title,
			Filename: event.Filename,
			Status:   model.ItemStatusCompleted,
			Query:    a.query,
		})
	}
	if a.sink != nil {
		a.sink.OnProgress(event)
	}
}

func (a *attemptRecorder) OnItemFailed(title string) {
	if title == "" {
		title = UnknownTitle
	}
	a.record("", model.ItemResult{
		Title:  title,
		Status: model.ItemStatusFailed,
		Query:  a.query,
	})
	if a.sink != nil {
		a.sink.OnItemFailed(title)
	}
}

// record appends item; finished events for a known key update it in place
func (a *attemptRecorder) record(key string, item model.ItemResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.metrics.Item(string(item.Status))
	if key != "" {
		if i, ok := a.index[key]; ok {
			a.items[i] = item
			return
		}
		a.index[key] = len(a.items)
	}
	a.items = append(a.items, item)
}

func (a *attemptRecorder) results() []model.ItemResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.ItemResult(nil), a.items...)
}
