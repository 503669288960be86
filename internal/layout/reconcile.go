// Package layout derives the visible widget sections from settings and media state.
package layout

import (
	"github.com/ytget/taskbar-widget/internal/config"
	"github.com/ytget/taskbar-widget/internal/model"
)

// slot is one content section and the separator placed before it
type slot struct {
	section   model.Section
	separator model.Section
}

// order is fixed; Music never has a leading separator
var order = []slot{
	{section: model.SectionMusic},
	{section: model.SectionNetwork, separator: model.SectionSepA},
	{section: model.SectionSystem, separator: model.SectionSepB},
}

// MusicVisible reports whether the music section is shown for the given state
func MusicVisible(mode config.MusicMode, snap model.MediaSnapshot) bool {
	return mode != config.MusicModeAuto || snap.HasTitle()
}

// Reconcile builds the layout plan from scratch. A separator is emitted only
// between two consecutive visible content sections; Close is always last.
func Reconcile(values config.Values, snap model.MediaSnapshot) model.LayoutPlan {
	visible := map[model.Section]bool{
		model.SectionMusic:   MusicVisible(values.MusicMode, snap),
		model.SectionNetwork: values.ShowTraffic,
		model.SectionSystem:  values.ShowSystem,
	}

	plan := make(model.LayoutPlan, 0, 6)
	for _, s := range order {
		if !visible[s.section] {
			continue
		}
		if len(plan) > 0 && s.separator != "" {
			plan = append(plan, s.separator)
		}
		plan = append(plan, s.section)
	}
	return append(plan, model.SectionClose)
}

// NeedsReplan reports whether moving from prev to next changes music visibility
func NeedsReplan(mode config.MusicMode, prev, next model.MediaSnapshot) bool {
	return MusicVisible(mode, prev) != MusicVisible(mode, next)
}
