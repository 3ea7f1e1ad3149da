package download

import (
	"context"

	"github.com/ytget/yt-archiver/internal/model"
)

// EventStatus is the kind of a progress event reported by the engine
type EventStatus string

const (
	EventDownloading EventStatus = "downloading"
	EventFinished    EventStatus = "finished"
	EventError       EventStatus = "error"
)

// ProgressEvent is one progress notification for the item being fetched.
// Byte counts are 0 when the engine does not know them.
type ProgressEvent struct {
	Status             EventStatus
	Filename           string
	Title              string
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
}

// Key identifies the item the event belongs to
func (e ProgressEvent) Key() string {
	if e.Filename != "" {
		return e.Filename
	}
	return e.Title
}

// ProgressSink receives engine notifications while a fetch is running
type ProgressSink interface {
	OnProgress(event ProgressEvent)
	OnItemFailed(title string)
}

// QueryObserver is optionally implemented by a ProgressSink that wants to know
// which format query is being attempted
type QueryObserver interface {
	OnQuery(query model.FormatQuery)
}

// FetchRequest describes one engine invocation with a single format query
type FetchRequest struct {
	URL               string
	Query             model.FormatQuery
	Postprocess       *model.AudioExtract
	MergeOutputFormat string
	OutputTemplate    string
	IgnoreErrors      bool
	FFmpegLocation    string
}

// Engine fetches the media behind a URL. A failed attempt must be reported as
// an error matching ErrDownload; any other error aborts the fallback loop.
type Engine interface {
	Fetch(ctx context.Context, req FetchRequest, sink ProgressSink) error
}
