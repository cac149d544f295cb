package obscure

import "image/color"

// Mode selects the destruction pipeline applied to a region.
type Mode int

const (
	// ModeFullBlur runs pixelate, Gaussian blur, then a final coarser
	// re-pixelation. The re-pixelation removes the smooth gradients the
	// blur pass introduces, which could otherwise leak edge information.
	ModeFullBlur Mode = iota
	// ModeBlurNoFinalPixelate stops after the blur pass. Smoother, but
	// slightly less destructive.
	ModeBlurNoFinalPixelate
	// ModePixelateOnly runs a single pixelation pass.
	ModePixelateOnly
	// ModeBlackBox, ModeWhiteBox and ModeCustomColorBox paint a solid
	// rotated rectangle. No source pixel survives in any form.
	ModeBlackBox
	ModeWhiteBox
	ModeCustomColorBox
)

// IsBox reports whether the mode bypasses the blur pipeline and fills
// the region with a solid color.
func (m Mode) IsBox() bool {
	switch m {
	case ModeBlackBox, ModeWhiteBox, ModeCustomColorBox:
		return true
	}
	return false
}

// IsValid reports whether m is one of the defined modes.
func (m Mode) IsValid() bool {
	return m >= ModeFullBlur && m <= ModeCustomColorBox
}

func (m Mode) String() string {
	switch m {
	case ModeFullBlur:
		return "full_blur"
	case ModeBlurNoFinalPixelate:
		return "blur"
	case ModePixelateOnly:
		return "pixelate"
	case ModeBlackBox:
		return "black_box"
	case ModeWhiteBox:
		return "white_box"
	case ModeCustomColorBox:
		return "color_box"
	}
	return "unknown"
}

// Color returns the fill color for box modes.
func (m Mode) Color(custom color.RGBA) color.RGBA {
	switch m {
	case ModeBlackBox:
		return color.RGBA{A: 0xff}
	case ModeWhiteBox:
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	default:
		return custom
	}
}
