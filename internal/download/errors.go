package download

import (
	"errors"
	"fmt"

	"github.com/ytget/yt-archiver/internal/model"
)

var (
	// ErrDownload marks a failed engine attempt; the next format query is tried
	ErrDownload = errors.New("download error")

	// ErrFormatExhausted is returned when every format query failed
	ErrFormatExhausted = errors.New("no formats available or download failed")

	// ErrNoFilesProduced is returned when a successful run left nothing in staging
	ErrNoFilesProduced = errors.New("no files were downloaded successfully, please check the URL and try again")

	// ErrSessionActive is returned by Start while another session is running
	ErrSessionActive = errors.New("a download session is already running")

	// ErrEmptyURL is returned by Start for a blank URL
	ErrEmptyURL = errors.New("please enter a URL")

	// ErrNoDestination is returned by Start when the request has no destination callback
	ErrNoDestination = errors.New("destination callback is required")

	// ErrInvalidProgress describes a progress event that cannot be applied
	ErrInvalidProgress = errors.New("invalid progress event")
)

// DownloadError is an engine attempt failure for a single format query
type DownloadError struct {
	Query  model.FormatQuery
	Stderr string
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("download with format %q failed", e.Query)
	}
	return fmt.Sprintf("download with format %q failed: %v", e.Query, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Is makes every DownloadError match ErrDownload
func (e *DownloadError) Is(target error) bool {
	return target == ErrDownload
}
