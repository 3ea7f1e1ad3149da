package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/model"
)

const (
	refreshInterval = 100 * time.Millisecond
	barWidth        = 30
	clearLine       = "\r\x1b[2K"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// renderer draws session progress on a single terminal line
type renderer struct {
	mu  sync.Mutex
	out io.Writer
	bar progress.Model

	failedShown int
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
	}
}

// follow prints snapshots at refreshInterval until the session is done
func (r *renderer) follow(handle *download.Handle) {
	r.print(titleStyle.Render("YT Archiver") + " " + dimStyle.Render(handle.ID()) + "\n")

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	updates := handle.Updates()
	var latest model.DownloadSession
	dirty := false

	for {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			latest = snapshot
			dirty = true
		case <-ticker.C:
			if dirty {
				r.draw(latest)
				dirty = false
			}
		case <-handle.Done():
			if updates != nil {
				for snapshot := range updates {
					latest = snapshot
					dirty = true
				}
			}
			if dirty {
				r.draw(latest)
			}
			return
		}
	}
}

func (r *renderer) draw(s model.DownloadSession) {
	var b strings.Builder
	// failed items scroll above the live line
	for _, title := range s.FailedTitles[min(r.failedShown, len(s.FailedTitles)):] {
		b.WriteString(clearLine)
		b.WriteString(warningStyle.Render("Failed: " + title))
		b.WriteString("\n")
	}
	r.failedShown = len(s.FailedTitles)

	b.WriteString(clearLine)
	b.WriteString(r.line(s))
	r.print(b.String())
}

// line renders the live status line for a snapshot
func (r *renderer) line(s model.DownloadSession) string {
	parts := []string{r.bar.ViewAs(barPercent(s))}

	switch {
	case s.Finishing:
		parts = append(parts, infoStyle.Render("Download finished, processing..."))
	case s.HasPercent:
		parts = append(parts, infoStyle.Render(fmt.Sprintf("Progress: %.1f%%", s.Percent)))
	case s.DownloadedBytes > 0:
		parts = append(parts, infoStyle.Render(fmt.Sprintf("Downloaded: %s MB", s.GetDownloadedMB())))
	default:
		parts = append(parts, infoStyle.Render("Starting download..."))
	}

	if s.TotalItems > 0 {
		parts = append(parts, fmt.Sprintf("Downloaded: %d of %d", s.Succeeded, s.TotalItems))
	}
	if name := s.GetDisplayName(); name != "" {
		parts = append(parts, dimStyle.Render(name))
	}
	return strings.Join(parts, "  ")
}

func barPercent(s model.DownloadSession) float64 {
	if !s.HasPercent {
		return 0
	}
	return s.Percent / 100
}

// archiving shows zip progress; called from the session worker
func (r *renderer) archiving(task model.ArchiveTask) {
	if task.Status != model.TaskStatusArchiving {
		return
	}
	r.print(clearLine + r.bar.ViewAs(task.Progress) + "  " + infoStyle.Render("Creating zip file..."))
}

// summary prints the final report
func (r *renderer) summary(sum download.Summary) {
	style := successStyle
	switch {
	case sum.Err != nil:
		style = errorStyle
	case sum.Cancelled:
		style = warningStyle
	}
	r.print("\n" + style.Render(sum.Message()) + "\n")
}

func (r *renderer) print(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, s)
}
