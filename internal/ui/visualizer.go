package ui

import (
	"math/rand/v2"

	"github.com/ytget/taskbar-widget/internal/config"
)

// presetWeights bias the random bar heights; index 0 is the lowest band
var presetWeights = map[config.VizPreset][BarCount]float32{
	config.VizDefault: {1, 1, 1, 1, 1},
	config.VizBass:    {1, 0.9, 0.6, 0.4, 0.3},
	config.VizTreble:  {0.3, 0.4, 0.6, 0.9, 1},
	config.VizRock:    {1, 0.7, 0.45, 0.7, 1},
	config.VizPop:     {0.45, 0.8, 1, 0.8, 0.45},
}

// Bars returns one animation frame of bar heights in [MinBarHeight, 1].
// The animation is cosmetic; it does not reflect the audio signal.
func Bars(preset config.VizPreset, rnd *rand.Rand) [BarCount]float32 {
	weights, ok := presetWeights[preset]
	if !ok {
		weights = presetWeights[config.VizDefault]
	}

	var bars [BarCount]float32
	for i := range bars {
		bars[i] = MinBarHeight + (1-MinBarHeight)*rnd.Float32()*weights[i]
	}
	return bars
}

// IdleBars is the frame shown while nothing is playing
func IdleBars() [BarCount]float32 {
	var bars [BarCount]float32
	for i := range bars {
		bars[i] = MinBarHeight
	}
	return bars
}
