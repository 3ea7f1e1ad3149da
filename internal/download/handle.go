package download

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ytget/yt-archiver/internal/model"
)

// Summary is the final report of a session
type Summary struct {
	SessionID    string
	State        model.SessionState
	Succeeded    int
	FailedTitles []string
	ArchivePath  string
	PublishedURL string
	PublishErr   error
	Cancelled    bool
	Err          error
}

// Failed returns the number of failed items
func (s Summary) Failed() int {
	return len(s.FailedTitles)
}

// Message returns the text shown to the user when the session ends
func (s Summary) Message() string {
	switch {
	case s.Err != nil:
		return fmt.Sprintf("An error occurred:\n%v", s.Err)
	case s.Cancelled:
		return "Save operation was cancelled."
	}

	var b strings.Builder
	b.WriteString("Download completed!\n")
	b.WriteString(fmt.Sprintf("Successfully downloaded: %d files.\n", s.Succeeded))
	if s.Failed() > 0 {
		b.WriteString(fmt.Sprintf("Failed downloads: %d files.\n", s.Failed()))
	}
	b.WriteString(fmt.Sprintf("\nSaved as: %s", s.ArchivePath))
	if s.PublishedURL != "" {
		b.WriteString(fmt.Sprintf("\nUploaded to: %s", s.PublishedURL))
	}
	return b.String()
}

// IsExhausted reports whether the session failed because no format worked
func (s Summary) IsExhausted() bool {
	return errors.Is(s.Err, ErrFormatExhausted)
}

// Handle follows a running session
type Handle struct {
	id      string
	updates chan model.DownloadSession
	done    chan struct{}

	mu      sync.Mutex
	closed  bool
	summary Summary
}

func newHandle(id string) *Handle {
	return &Handle{
		id:      id,
		updates: make(chan model.DownloadSession, 1),
		done:    make(chan struct{}),
	}
}

// ID returns the session ID
func (h *Handle) ID() string {
	return h.id
}

// Updates delivers the latest session snapshot. Only the newest snapshot is
// kept; the channel is closed when the session ends.
func (h *Handle) Updates() <-chan model.DownloadSession {
	return h.updates
}

// Done is closed when the summary is available
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the session ends and returns its summary
func (h *Handle) Wait() Summary {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.summary
}

// publish replaces any unread snapshot with snapshot without blocking
func (h *Handle) publish(snapshot model.DownloadSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	select {
	case <-h.updates:
	default:
	}
	select {
	case h.updates <- snapshot:
	default:
	}
}

func (h *Handle) finish(summary Summary) {
	h.mu.Lock()
	h.summary = summary
	h.closed = true
	close(h.updates)
	h.mu.Unlock()
	close(h.done)
}
