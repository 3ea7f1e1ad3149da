package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ArchiverTheme keeps the default look but tightens spacing so the single
// window fits the progress block and the failed list without scrolling.
type ArchiverTheme struct {
	base fyne.Theme
}

// NewArchiverTheme creates the application theme
func NewArchiverTheme() fyne.Theme {
	return &ArchiverTheme{base: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *ArchiverTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNamePrimary:
		// progress bar fill
		return color.RGBA{R: 204, G: 32, B: 32, A: 255}
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *ArchiverTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *ArchiverTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes
func (t *ArchiverTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameInputRadius:
		return 3
	}
	return t.base.Size(name)
}
