package obscure

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
)

// runPipeline executes the destruction passes for the selected mode on
// an axis-aligned crop.
func runPipeline(img *image.RGBA, block, radius float64, mode Mode) *image.RGBA {
	switch mode {
	case ModePixelateOnly:
		return pixelate(img, block)
	case ModeBlurNoFinalPixelate:
		return blur.Gaussian(pixelate(img, block), radius)
	default:
		out := pixelate(img, block)
		out = blur.Gaussian(out, radius)
		// The final coarser pass flattens the gradients the blur
		// introduced.
		return pixelate(out, block*1.2)
	}
}

// pixelate average-pools the image into cells of the given size and
// scales back up with nearest-neighbor sampling, leaving uniform
// blocks.
func pixelate(img image.Image, block float64) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dw := int(math.Ceil(float64(w) / block))
	dh := int(math.Ceil(float64(h) / block))
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	small := transform.Resize(img, dw, dh, transform.Box)
	return transform.Resize(small, w, h, transform.NearestNeighbor)
}
