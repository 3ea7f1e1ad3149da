package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ItemStatus is the final status of a single item within a session
type ItemStatus string

const (
	ItemStatusCompleted ItemStatus = "completed"
	ItemStatusFailed    ItemStatus = "failed"
)

// ItemResult describes one item resolved from the session URL
type ItemResult struct {
	Title    string
	Filename string
	Status   ItemStatus
	Query    FormatQuery
}

// DownloadOutcome is the result of running the format fallback loop
type DownloadOutcome struct {
	Success bool
	Query   FormatQuery // winning query, empty when Success is false
	Items   []ItemResult
}

// CompletedItems returns the items that finished downloading
func (o *DownloadOutcome) CompletedItems() []ItemResult {
	var completed []ItemResult
	for _, item := range o.Items {
		if item.Status == ItemStatusCompleted {
			completed = append(completed, item)
		}
	}
	return completed
}

// DownloadSession holds the state of one download-and-archive invocation.
// Only the worker that owns a session mutates it; readers get copies via Snapshot.
type DownloadSession struct {
	ID    string
	URL   string
	Tier  FormatTier
	State SessionState

	Attempted    int
	Succeeded    int
	FailedTitles []string
	TotalItems   int

	ActiveQuery     FormatQuery
	CurrentName     string
	DownloadedBytes int64
	TotalBytes      int64   // 0 when unknown
	Percent         float64 // 0 to 100, valid only when HasPercent
	HasPercent      bool
	Finishing       bool // last event for the current item was "finished"

	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time

	seen map[string]struct{}
}

// NewDownloadSession creates an idle session
func NewDownloadSession(id, url string, tier FormatTier) *DownloadSession {
	return &DownloadSession{
		ID:           id,
		URL:          url,
		Tier:         tier,
		State:        SessionStateIdle,
		FailedTitles: make([]string, 0),
		seen:         make(map[string]struct{}),
	}
}

// Start moves the session into the running state
func (s *DownloadSession) Start(totalItems int) {
	s.State = SessionStateRunning
	s.StartedAt = time.Now()
	if totalItems > s.TotalItems {
		s.TotalItems = totalItems
	}
}

// SetActiveQuery records which format query the worker is currently trying
func (s *DownloadSession) SetActiveQuery(q FormatQuery) {
	s.ActiveQuery = q
}

// touchItem counts key as attempted the first time it is seen
func (s *DownloadSession) touchItem(key string) {
	if key == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.Attempted++
	s.balance()
}

// balance keeps Succeeded+len(FailedTitles) <= Attempted <= TotalItems
func (s *DownloadSession) balance() {
	if n := s.Succeeded + len(s.FailedTitles); n > s.Attempted {
		s.Attempted = n
	}
	if s.Attempted > s.TotalItems {
		s.TotalItems = s.Attempted
	}
}

// RecordProgress applies a "downloading" update for the item identified by key
func (s *DownloadSession) RecordProgress(key, name string, downloaded, total, estimate int64) {
	s.touchItem(key)
	if name != "" {
		s.CurrentName = name
	}
	s.Finishing = false
	s.DownloadedBytes = downloaded
	s.TotalBytes = total
	if s.TotalBytes <= 0 && estimate > 0 {
		s.TotalBytes = estimate
	}
	s.Percent, s.HasPercent = ComputePercent(downloaded, total, estimate)
}

// RecordFinished applies a "finished" update: percent becomes exactly 100
// and the success counter grows by one.
func (s *DownloadSession) RecordFinished(key, name string) {
	s.touchItem(key)
	if name != "" {
		s.CurrentName = name
	}
	s.Finishing = true
	s.Percent = 100
	s.HasPercent = true
	s.Succeeded++
	s.balance()
}

// RecordFailure appends a failed item title, preserving call order
func (s *DownloadSession) RecordFailure(title string) {
	s.touchItem(title)
	s.FailedTitles = append(s.FailedTitles, title)
	s.balance()
}

// Complete marks the session as completed
func (s *DownloadSession) Complete() {
	s.State = SessionStateCompleted
	s.FinishedAt = time.Now()
}

// Fail marks the session as failed with err
func (s *DownloadSession) Fail(err error) {
	s.State = SessionStateFailed
	if err != nil {
		s.LastError = err.Error()
	}
	s.FinishedAt = time.Now()
}

// Snapshot returns a copy safe to hand to another goroutine
func (s *DownloadSession) Snapshot() DownloadSession {
	cp := *s
	cp.FailedTitles = append([]string(nil), s.FailedTitles...)
	cp.seen = nil
	return cp
}

// GetDisplayName returns the current item name without directory or extension
func (s *DownloadSession) GetDisplayName() string {
	if s.CurrentName == "" {
		return ""
	}
	base := filepath.Base(strings.ReplaceAll(s.CurrentName, "\\", "/"))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}

// GetDownloadedMB returns the downloaded bytes of the current item in megabytes
func (s *DownloadSession) GetDownloadedMB() string {
	return fmt.Sprintf("%.1f", float64(s.DownloadedBytes)/1024/1024)
}

// ComputePercent derives a completion percentage from byte counts. The exact
// total wins over the estimate; when neither is known no percent is reported.
// The result is clamped to [0, 100].
func ComputePercent(downloaded, total, estimate int64) (float64, bool) {
	var denominator int64
	switch {
	case total > 0:
		denominator = total
	case estimate > 0:
		denominator = estimate
	default:
		return 0, false
	}

	percent := float64(downloaded) / float64(denominator) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
