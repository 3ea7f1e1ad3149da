package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/model"
)

// SessionView is the text and bar state rendered for one session snapshot
type SessionView struct {
	Progress    float64 // 0.0 to 1.0
	Status      string
	Count       string
	Current     string
	FailedLines []string
}

// BuildSessionView maps a snapshot to the strings shown in the window
func BuildSessionView(loc *Localization, s model.DownloadSession) SessionView {
	v := SessionView{}

	switch {
	case s.State == model.SessionStateIdle:
		v.Status = loc.GetText(KeyReady)
	case s.State == model.SessionStateRunning && s.Attempted == 0 && !s.HasPercent:
		v.Status = loc.GetText(KeyStarting)
	case s.Finishing:
		v.Status = loc.GetText(KeyFinishing)
	case s.HasPercent:
		v.Status = loc.Format(KeyProgressPercent, s.Percent)
	case s.DownloadedBytes > 0:
		v.Status = loc.Format(KeyProgressBytes, s.GetDownloadedMB())
	default:
		v.Status = loc.GetText(KeyStarting)
	}

	if s.HasPercent {
		v.Progress = s.Percent / 100
	}
	if s.State == model.SessionStateCompleted {
		v.Progress = 1
	}

	if s.TotalItems > 0 {
		v.Count = loc.Format(KeyDownloadedCount, s.Succeeded, s.TotalItems)
	}
	if name := s.GetDisplayName(); name != "" {
		v.Current = loc.Format(KeyDownloadingFile, name)
	}

	for _, title := range s.FailedTitles {
		v.FailedLines = append(v.FailedLines, loc.Format(KeyFailedEntry, title))
	}
	return v
}

// SummaryDialog is the title and body of the dialog shown when a session ends
type SummaryDialog struct {
	Title      string
	Message    string
	RevealPath string // non-empty when the archive can be shown in a folder
	IsError    bool
}

// BuildSummaryDialog turns a finished session summary into dialog text
func BuildSummaryDialog(loc *Localization, sum download.Summary) SummaryDialog {
	if sum.Err != nil {
		return SummaryDialog{
			Title:   loc.GetText(KeyErrorTitle),
			Message: loc.Format(KeyErrorOccurred, sum.Err.Error()),
			IsError: true,
		}
	}
	if sum.Cancelled {
		return SummaryDialog{
			Title:   loc.GetText(KeyCancelledTitle),
			Message: loc.GetText(KeySaveCancelled),
		}
	}

	var b strings.Builder
	b.WriteString(loc.Format(KeyCompletedMessage, sum.Succeeded))
	b.WriteString("\n")
	if failed := sum.Failed(); failed > 0 {
		b.WriteString(loc.Format(KeyFailedCountLine, failed))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(loc.Format(KeySavedAsLine, sum.ArchivePath))
	if sum.PublishedURL != "" {
		b.WriteString("\n")
		b.WriteString(loc.Format(KeyUploadedLine, sum.PublishedURL))
	}

	return SummaryDialog{
		Title:      loc.GetText(KeySuccessTitle),
		Message:    b.String(),
		RevealPath: sum.ArchivePath,
	}
}

// validateURL validates the entered URL; empty input is allowed
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
