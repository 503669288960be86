package ui

// Package ui contains the Fyne overlay strip: music, network and system
// sections laid out from the current layout plan, transport buttons, a
// cosmetic visualizer and the system tray menu. Every update arriving from
// background goroutines is handed to the Fyne main loop with fyne.Do.
