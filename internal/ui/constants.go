package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconError    = "❌"
)

// ArchiveExt is the extension offered by the save dialog
const ArchiveExt = ".zip"

// Window sizing
const (
	WindowWidth  float32 = 560
	WindowHeight float32 = 520

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420

	SaveDialogWidth  float32 = 720
	SaveDialogHeight float32 = 520

	FailedListHeight float32 = 120
)

// Snapshot polling
const (
	UIRefreshInterval = 100 * time.Millisecond
)
