package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme is the dark, tightly packed theme of the overlay strip.
// It ignores the system variant: the strip always sits on a dark taskbar.
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameButton, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return BackgroundColor
	case theme.ColorNameForeground:
		return ForegroundColor
	case theme.ColorNameHover:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x1f}
	case theme.ColorNamePressed:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
	case theme.ColorNameSeparator:
		return SeparatorColor
	case theme.ColorNamePrimary:
		return VisualizerColor
	case theme.ColorNameError:
		return CloseColor
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 3 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 1 // Reduced from default 4
	case theme.SizeNameSeparatorThickness:
		return SeparatorWidth
	case theme.SizeNameText:
		return TextSize
	case theme.SizeNameCaptionText:
		return 9 // Reduced from default 11
	case theme.SizeNameInlineIcon:
		return 14 // Reduced from default 20
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 0
	}

	return theme.DefaultTheme().Size(name)
}
