package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/config"
	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/model"
	"github.com/ytget/yt-archiver/internal/platform"
)

// SessionService is the part of the download service the window drives
type SessionService interface {
	download.Starter
	SetFFmpegLocation(location string)
	SetOutputTemplate(template string)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	service      SessionService
	settings     *config.Settings
	localization *Localization
	logger       logrus.FieldLogger

	urlEntry    *widget.Entry
	urlLabel    *widget.Label
	formatLabel *widget.Label
	tierRadio   *widget.RadioGroup
	downloadBtn *widget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	countLabel  *widget.Label
	currentLbl  *widget.Label
	failedLabel *widget.Label
	failedList  *widget.List
	failedBox   *fyne.Container

	tierByLabel map[string]model.FormatTier

	mu          sync.Mutex
	failedLines []string
	running     bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, service SessionService, settings *config.Settings, logger logrus.FieldLogger) *RootUI {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		service:      service,
		settings:     settings,
		localization: localization,
		logger:       logger.WithField("component", "ui"),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel(ui.localization.GetText(KeyEnterURLLabel))
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = validateURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.formatLabel = widget.NewLabel(ui.localization.GetText(KeySelectFormat))
	ui.tierRadio = widget.NewRadioGroup(nil, nil)
	ui.tierRadio.Required = true
	ui.refreshTierOptions(ui.settings.GetDefaultTier())

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, nil, settingsBtn, ui.urlLabel)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, logoImage, settingsBtn, ui.urlLabel)
	}

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyReady))
	ui.countLabel = widget.NewLabel("")
	ui.currentLbl = widget.NewLabel("")
	ui.currentLbl.Truncation = fyne.TextTruncateEllipsis

	ui.failedLabel = widget.NewLabel(ui.localization.GetText(KeyFailedDownloads))
	ui.failedLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.failedList = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.failedLines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			if id < len(ui.failedLines) {
				obj.(*widget.Label).SetText(ui.failedLines[id])
			}
		},
	)
	failedScroll := container.NewVScroll(ui.failedList)
	failedScroll.SetMinSize(fyne.NewSize(0, FailedListHeight))
	ui.failedBox = container.NewBorder(ui.failedLabel, nil, nil, nil, failedScroll)
	ui.failedBox.Hide()

	form := container.NewVBox(
		header,
		ui.urlEntry,
		ui.formatLabel,
		ui.tierRadio,
		ui.downloadBtn,
		widget.NewSeparator(),
		ui.progressBar,
		ui.statusLabel,
		ui.countLabel,
		ui.currentLbl,
	)

	ui.window.SetContent(container.NewBorder(form, nil, nil, nil, ui.failedBox))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// refreshTierOptions rebuilds the radio labels in the current language and selects tier
func (ui *RootUI) refreshTierOptions(tier model.FormatTier) {
	ui.tierByLabel = make(map[string]model.FormatTier)
	options := make([]string, 0, len(ui.settings.GetTierOptions()))
	for _, t := range ui.settings.GetTierOptions() {
		label := ui.localization.TierLabel(t)
		ui.tierByLabel[label] = t
		options = append(options, label)
	}
	ui.tierRadio.Options = options
	ui.tierRadio.SetSelected(ui.localization.TierLabel(tier))
	ui.tierRadio.Refresh()
}

// selectedTier returns the tier picked in the radio group
func (ui *RootUI) selectedTier() model.FormatTier {
	if tier, ok := ui.tierByLabel[ui.tierRadio.Selected]; ok {
		return tier
	}
	return ui.settings.GetDefaultTier()
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlLabel.SetText(ui.localization.GetText(KeyEnterURLLabel))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.formatLabel.SetText(ui.localization.GetText(KeySelectFormat))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.failedLabel.SetText(ui.localization.GetText(KeyFailedDownloads))
	ui.refreshTierOptions(ui.selectedTier())

	ui.mu.Lock()
	running := ui.running
	ui.mu.Unlock()
	if !running {
		ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
			ui.onLanguageChange(lang)
		}
	}).Show()
}

// onDownloadClick validates the URL and starts a session
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		dialog.ShowError(errors.New(ui.localization.GetText(KeyPleaseEnterURL)), ui.window)
		return
	}
	if err := validateURL(urlText); err != nil {
		dialog.ShowError(errors.New(ui.localization.GetText(KeyInvalidURL)+": "+err.Error()), ui.window)
		return
	}

	ui.service.SetFFmpegLocation(ui.settings.GetFFmpegLocation())
	ui.service.SetOutputTemplate(ui.settings.GetFilenameTemplate())

	tier := ui.selectedTier()
	handle, err := ui.service.Start(context.Background(), download.Request{
		URL:         urlText,
		Tier:        tier,
		Destination: ui.askDestination,
	})
	if err != nil {
		if errors.Is(err, download.ErrSessionActive) {
			dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeySessionRunning), ui.window)
			return
		}
		dialog.ShowError(err, ui.window)
		return
	}

	ui.logger.WithFields(logrus.Fields{
		"session": handle.ID(),
		"url":     urlText,
		"tier":    tier,
	}).Info("Session started")

	ui.setRunning(true)
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(ui.localization.GetText(KeyStarting))
	ui.countLabel.SetText("")
	ui.currentLbl.SetText("")
	ui.setFailedLines(nil)

	go ui.watch(handle)
}

// setRunning toggles the controls that must stay disabled during a session
func (ui *RootUI) setRunning(running bool) {
	ui.mu.Lock()
	ui.running = running
	ui.mu.Unlock()

	if running {
		ui.downloadBtn.Disable()
		ui.urlEntry.Disable()
		ui.tierRadio.Disable()
		return
	}
	ui.downloadBtn.Enable()
	ui.urlEntry.Enable()
	ui.tierRadio.Enable()
}

// watch drains session snapshots at UIRefreshInterval until the session ends
func (ui *RootUI) watch(handle *download.Handle) {
	ticker := time.NewTicker(UIRefreshInterval)
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
				view := BuildSessionView(ui.localization, latest)
				fyne.Do(func() { ui.render(view) })
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
				view := BuildSessionView(ui.localization, latest)
				fyne.Do(func() { ui.render(view) })
			}
			summary := handle.Wait()
			fyne.Do(func() { ui.onSessionDone(summary) })
			return
		}
	}
}

// render applies a session view to the widgets; Fyne thread only
func (ui *RootUI) render(view SessionView) {
	ui.progressBar.SetValue(view.Progress)
	ui.statusLabel.SetText(view.Status)
	ui.countLabel.SetText(view.Count)
	ui.currentLbl.SetText(view.Current)
	ui.setFailedLines(view.FailedLines)
}

func (ui *RootUI) setFailedLines(lines []string) {
	ui.mu.Lock()
	ui.failedLines = append([]string(nil), lines...)
	n := len(ui.failedLines)
	ui.mu.Unlock()

	if n == 0 {
		ui.failedBox.Hide()
	} else {
		ui.failedBox.Show()
	}
	ui.failedList.Refresh()
}

// OnArchiveUpdate reflects zip progress in the status line. It is called
// from the session worker.
func (ui *RootUI) OnArchiveUpdate(task model.ArchiveTask) {
	if task.Status != model.TaskStatusArchiving {
		return
	}
	status := ui.localization.GetText(KeyCreatingArchive)
	progress := task.Progress
	fyne.Do(func() {
		ui.statusLabel.SetText(status)
		ui.progressBar.SetValue(progress)
	})
}

// askDestination shows the save dialog and blocks the worker until the user answers
func (ui *RootUI) askDestination(ctx context.Context, suggested string) (string, bool) {
	type answer struct {
		path string
		ok   bool
	}
	result := make(chan answer, 1)

	fyne.Do(func() {
		save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				ui.logger.WithError(err).Warn("Save dialog failed")
				result <- answer{}
				return
			}
			if writer == nil {
				result <- answer{}
				return
			}
			path := writer.URI().Path()
			if cerr := writer.Close(); cerr != nil {
				ui.logger.WithError(cerr).Debug("Closing placeholder file")
			}
			result <- answer{path: path, ok: true}
		}, ui.window)

		save.SetFileName(suggested)
		save.SetFilter(storage.NewExtensionFileFilter([]string{ArchiveExt}))

		dir := ui.settings.GetArchiveDirectory()
		if err := platform.CreateDirectoryIfNotExists(dir); err == nil {
			if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
				save.SetLocation(lister)
			}
		}
		save.Resize(fyne.NewSize(SaveDialogWidth, SaveDialogHeight))
		save.Show()
	})

	select {
	case a := <-result:
		if !a.ok || a.path == "" {
			return "", false
		}
		return platform.EnsureExtension(a.path, ArchiveExt), true
	case <-ctx.Done():
		return "", false
	}
}

// onSessionDone shows the final dialog; Fyne thread only
func (ui *RootUI) onSessionDone(summary download.Summary) {
	ui.setRunning(false)

	entry := ui.logger.WithFields(logrus.Fields{
		"session":   summary.SessionID,
		"state":     summary.State,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed(),
	})
	if summary.Err != nil {
		entry.WithError(summary.Err).Error("Session failed")
		ui.statusLabel.SetText(IconError + " " + ui.localization.GetText(KeyErrorTitle))
	} else {
		entry.Info("Session finished")
		ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
	}
	if summary.PublishErr != nil {
		entry.WithError(summary.PublishErr).Warn("Archive upload failed")
	}

	view := BuildSummaryDialog(ui.localization, summary)
	if view.IsError {
		dialog.ShowError(errors.New(view.Message), ui.window)
		return
	}
	if view.RevealPath == "" {
		dialog.ShowInformation(view.Title, view.Message, ui.window)
		return
	}

	ui.urlEntry.SetText("")
	if ui.settings.GetAutoRevealOnComplete() {
		ui.revealFile(view.RevealPath)
	}

	message := widget.NewLabel(view.Message)
	message.Wrapping = fyne.TextWrapWord
	dialog.ShowCustomConfirm(
		view.Title,
		IconFolder+" "+ui.localization.GetText(KeyShowInFolder),
		ui.localization.GetText(KeyClose),
		message,
		func(reveal bool) {
			if reveal {
				ui.revealFile(view.RevealPath)
			}
		},
		ui.window,
	)
}

// revealFile opens the system file manager at path
func (ui *RootUI) revealFile(path string) {
	if err := platform.OpenFileInManager(path); err != nil {
		ui.logger.WithError(err).WithField("path", path).Warn("Cannot reveal file")
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window)
	}
}
