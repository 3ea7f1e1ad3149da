package model

import (
	"fmt"
	"strings"
	"time"
)

// ArchiveTask represents bundling a staging directory into a zip archive
type ArchiveTask struct {
	ID         string
	SourceDir  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	Files      int     // number of files written so far
	TotalFiles int
	Bytes      int64 // uncompressed bytes written so far
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetElapsedString returns the task duration formatted as mm:ss or hh:mm:ss, or "—" if not started
func (at *ArchiveTask) GetElapsedString() string {
	if at.StartedAt.IsZero() {
		return "—"
	}

	end := at.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	total := int(end.Sub(at.StartedAt).Seconds())

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	if hours > 0 {
		b.WriteString(fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%02d:%02d", minutes, seconds))
	return b.String()
}
