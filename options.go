package faceveil

import (
	"fmt"
	"image/color"
)

type Option func(*Engine) error

// WithMode selects the pipeline variant. The default is ModeFullBlur,
// the most destructive of the blur modes.
func WithMode(mode PrivacyMode) Option {
	return func(e *Engine) error {
		if !mode.IsValid() {
			return fmt.Errorf("unknown privacy mode %d", mode)
		}
		e.mode = mode
		return nil
	}
}

// WithIntensity controls pixel-block coarseness and blur radius.
// Values outside [0,1] are clamped; interactive sliders routinely
// produce transient out-of-range values.
func WithIntensity(intensity float64) Option {
	return func(e *Engine) error {
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 1 {
			intensity = 1
		}
		e.intensity = intensity
		return nil
	}
}

// WithBoxColor sets the fill color used by ModeCustomColorBox.
// ModeBlackBox and ModeWhiteBox ignore it.
func WithBoxColor(c color.RGBA) Option {
	return func(e *Engine) error {
		e.boxColor = c
		return nil
	}
}
