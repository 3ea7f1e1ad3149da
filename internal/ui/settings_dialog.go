package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-archiver/internal/config"
	"github.com/ytget/yt-archiver/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	archiveDirEntry *widget.Entry
	tierSelect      *widget.Select
	ffmpegEntry     *widget.Entry
	filenameEntry   *widget.Entry
	languageSelect  *widget.Select
	revealCheck     *widget.Check

	tierByLabel     map[string]model.FormatTier
	languageByLabel map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs on the Fyne
// thread after preferences were written.
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: loc,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.archiveDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	archiveDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.archiveDirEntry)

	sd.tierByLabel = make(map[string]model.FormatTier)
	var tierOptions []string
	for _, tier := range sd.settings.GetTierOptions() {
		label := loc.TierLabel(tier)
		sd.tierByLabel[label] = tier
		tierOptions = append(tierOptions, label)
	}
	sd.tierSelect = widget.NewSelect(tierOptions, nil)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder(loc.GetText(KeyFFmpegPlaceholder))

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(config.DefaultFilenameTemplate)

	sd.languageByLabel = make(map[string]string)
	var languageOptions []string
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageByLabel[label] = code
		languageOptions = append(languageOptions, label)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.revealCheck = widget.NewCheck(loc.GetText(KeyRevealOnComplete), nil)

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyArchiveDirectory)),
		archiveDirRow,

		widget.NewLabel(loc.GetText(KeyDefaultTier)),
		sd.tierSelect,

		widget.NewLabel(loc.GetText(KeyFFmpegLocation)),
		sd.ffmpegEntry,

		widget.NewLabel(loc.GetText(KeyFilenameTemplate)),
		sd.filenameEntry,

		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyLanguage)),
		sd.languageSelect,
		sd.revealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.archiveDirEntry.SetText(sd.settings.GetArchiveDirectory())
	sd.tierSelect.SetSelected(sd.localization.TierLabel(sd.settings.GetDefaultTier()))
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegLocation())
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.revealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.archiveDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.archiveDirEntry.Text; dir != "" {
		sd.settings.SetArchiveDirectory(dir)
	}

	if tier, ok := sd.tierByLabel[sd.tierSelect.Selected]; ok {
		sd.settings.SetDefaultTier(tier)
	}

	// empty restores the configured location
	sd.settings.SetFFmpegLocation(sd.ffmpegEntry.Text)

	if sd.filenameEntry.Text != "" {
		sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)
	}

	if code, ok := sd.languageByLabel[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetAutoRevealOnComplete(sd.revealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
