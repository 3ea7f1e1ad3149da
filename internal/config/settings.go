package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-archiver/internal/format"
	"github.com/ytget/yt-archiver/internal/model"
)

// Settings keys for Fyne preferences
const (
	PrefArchiveDir         = "archive_directory"
	PrefDefaultTier        = "default_tier"
	PrefFFmpegLocation     = "ffmpeg_location"
	PrefFilenameTemplate   = "filename_template"
	PrefLanguage           = "app_language"
	PrefAutoRevealComplete = "auto_reveal_on_complete"
)

// DefaultAutoRevealComplete opens the file manager after a successful save
const DefaultAutoRevealComplete = false

// Settings manages persisted GUI preferences. Unset preferences fall back to
// the loaded Config.
type Settings struct {
	app  fyne.App
	base *Config
}

// NewSettings creates a new settings manager; base may be nil
func NewSettings(app fyne.App, base *Config) *Settings {
	if base == nil {
		base = &Config{
			DefaultTier:      DefaultTier,
			FilenameTemplate: DefaultFilenameTemplate,
			Language:         DefaultLanguage,
		}
	}
	return &Settings{app: app, base: base}
}

func (s *Settings) prefs() fyne.Preferences {
	return s.app.Preferences()
}

// GetArchiveDirectory returns the directory the save dialog opens in
func (s *Settings) GetArchiveDirectory() string {
	dir := s.prefs().String(PrefArchiveDir)
	if dir == "" {
		if s.base.ArchiveDir != "" {
			return s.base.ArchiveDir
		}
		return defaultArchiveDir()
	}
	return dir
}

// SetArchiveDirectory sets the archive directory
func (s *Settings) SetArchiveDirectory(dir string) {
	s.prefs().SetString(PrefArchiveDir, strings.TrimSpace(dir))
}

// GetDefaultTier returns the tier preselected in the window
func (s *Settings) GetDefaultTier() model.FormatTier {
	tier, err := model.ParseFormatTier(s.prefs().String(PrefDefaultTier))
	if err != nil {
		if s.base.DefaultTier.IsValid() {
			return s.base.DefaultTier
		}
		return DefaultTier
	}
	return tier
}

// SetDefaultTier sets the preselected tier; unknown tiers are ignored
func (s *Settings) SetDefaultTier(tier model.FormatTier) {
	if !tier.IsValid() {
		return
	}
	s.prefs().SetString(PrefDefaultTier, string(tier))
}

// GetTierOptions returns available tiers in display order
func (s *Settings) GetTierOptions() []model.FormatTier {
	return format.Tiers()
}

// GetFFmpegLocation returns the ffmpeg binary or directory, empty for PATH lookup
func (s *Settings) GetFFmpegLocation() string {
	if location := s.prefs().String(PrefFFmpegLocation); location != "" {
		return location
	}
	return s.base.FFmpegLocation
}

// SetFFmpegLocation sets the ffmpeg location; empty restores the configured value
func (s *Settings) SetFFmpegLocation(location string) {
	s.prefs().SetString(PrefFFmpegLocation, strings.TrimSpace(location))
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.prefs().String(PrefFilenameTemplate)
	if template == "" {
		if s.base.FilenameTemplate != "" {
			return s.base.FilenameTemplate
		}
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template. Templates with path
// separators are rejected and reset to the default.
func (s *Settings) SetFilenameTemplate(template string) {
	template = strings.TrimSpace(template)
	if template == "" || strings.ContainsAny(template, `/\`) {
		template = DefaultFilenameTemplate
	}
	s.prefs().SetString(PrefFilenameTemplate, template)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs().String(PrefLanguage)
	if lang == "" {
		if s.base.Language != "" {
			return s.base.Language
		}
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs().SetString(PrefLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the archive after saving
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.prefs().BoolWithFallback(PrefAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the archive after saving
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.prefs().SetBool(PrefAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
