package ui

import (
	"image/color"
	"time"
)

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (symbols)
const (
	IconPrevious  = "⏮"
	IconPlay      = "▶"
	IconPause     = "⏸"
	IconPlayPause = "⏯"
	IconNext      = "⏭"
	IconClose     = "×"
	IconMusic     = "♫"
)

// Text fragments
const (
	Ellipsis      = "…"
	TitleMaxRunes = 22
)

// Layout sizing
const (
	ThumbnailSize   float32 = 32
	SeparatorWidth  float32 = 1
	SectionPadding  float32 = 5
	WidgetMinHeight float32 = 40
	TextSize        float32 = 11
	TitleTextSize   float32 = 11
	CloseTextSize   float32 = 14

	SettingsWidth  float32 = 360
	SettingsHeight float32 = 220
)

// BarCount is the number of visualizer bars
const BarCount = 5

// Visualizer sizing
const (
	BarWidth     float32 = 3
	BarMaxHeight float32 = 14
	MinBarHeight float32 = 0.15
)

// Colors
var (
	BackgroundColor = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	ForegroundColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ArtworkColor    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	SeparatorColor  = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	UploadColor     = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	DownloadColor   = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	CloseColor      = color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
	VisualizerColor = color.NRGBA{R: 0x1d, G: 0xb9, B: 0x54, A: 0xff}
)

// Delays
const (
	DefaultVizFrameInterval = 150 * time.Millisecond
)
