package obscure

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
)

const (
	// rotationEpsilon is the rotation magnitude, in radians, below which
	// a region is treated as axis-aligned.
	rotationEpsilon = 0.01

	// blurExpansion and boxExpansion grow the pixel rectangle outward on
	// each axis so the processed patch fully covers feature edges and no
	// thin unmodified rim survives at the region boundary.
	blurExpansion = 0.15
	boxExpansion  = 0.10
)

// Target is one region to obscure: normalized bounds with a bottom-left
// origin plus a rotation about the rectangle center.
type Target struct {
	X, Y, W, H float64
	Rotation   float64
}

// Params configures a pipeline run.
type Params struct {
	Mode      Mode
	Intensity float64 // [0,1]; higher destroys more
	BoxColor  color.RGBA
}

// Apply processes every target in order over a single canvas cloned
// from src, and returns the canvas. Later targets composite over the
// output of earlier ones, so overlapping regions compound. The source
// image is never modified.
func Apply(ctx context.Context, src image.Image, targets []Target, p Params) *image.RGBA {
	canvas := clone.AsRGBA(src)
	for _, t := range targets {
		applyOne(canvas, t, p)
	}
	return canvas
}

func applyOne(canvas *image.RGBA, t Target, p Params) {
	full := canvas.Bounds()
	rect := pixelRect(t, full)

	f := blurExpansion
	if p.Mode.IsBox() {
		f = boxExpansion
	}
	rect = expandRect(rect, f)

	visible := rect.Intersect(full)
	if visible.Empty() {
		// The region lies entirely outside the image; skip it.
		return
	}

	if p.Mode.IsBox() {
		drawBox(canvas, rect, t.Rotation, p.Mode.Color(p.BoxColor))
		return
	}

	block, radius := passSizes(rect, p.Intensity)
	if math.Abs(t.Rotation) > rotationEpsilon {
		obscureRotated(canvas, rect, t.Rotation, block, radius, p.Mode)
		return
	}

	crop := cropRGBA(canvas, visible)
	out := runPipeline(crop, block, radius, p.Mode)
	draw.Draw(canvas, visible, out, out.Bounds().Min, draw.Src)
}

// obscureRotated crops a square working area large enough to contain
// the rotated rectangle, rotates it so the region is axis-aligned, runs
// the pipeline in that frame, rotates back, and composites only the
// expanded rectangle. Pixel blocks end up aligned to the region's own
// axes rather than the image axes.
func obscureRotated(canvas *image.RGBA, rect image.Rectangle, rotation float64, block, radius float64, mode Mode) {
	full := canvas.Bounds()
	square := workingSquare(rect).Intersect(full)
	if square.Empty() {
		return
	}
	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	pivot := image.Point{X: cx - square.Min.X, Y: cy - square.Min.Y}

	crop := cropRGBA(canvas, square)
	aligned := rotateAbout(crop, -rotation, pivot)
	processed := runPipeline(aligned, block, radius, mode)
	restored := rotateAbout(processed, rotation, pivot)

	target := rect.Intersect(full)
	offset := image.Point{X: target.Min.X - square.Min.X, Y: target.Min.Y - square.Min.Y}
	draw.Draw(canvas, target, restored, offset, draw.Over)
}

// passSizes derives the pixelation block size and Gaussian radius from
// the region extent and intensity. The block divisor ranges over
// [4,20]; higher intensity means a smaller divisor and larger blocks.
// Hard floors of 8px (block) and 3px (radius) guarantee a minimum
// destruction level for tiny regions and low intensities.
func passSizes(rect image.Rectangle, intensity float64) (block, radius float64) {
	divisor := 4 + (1-intensity)*16
	block = float64(max(rect.Dx(), rect.Dy())) / divisor
	if block < 8 {
		block = 8
	}
	radius = block * 0.5 * intensity
	if radius < 3 {
		radius = 3
	}
	return block, radius
}

// pixelRect converts normalized bottom-left-origin bounds to a
// top-down pixel rectangle against the image extent.
func pixelRect(t Target, full image.Rectangle) image.Rectangle {
	w := float64(full.Dx())
	h := float64(full.Dy())
	x0 := float64(full.Min.X) + t.X*w
	y0 := float64(full.Min.Y) + (1-t.Y-t.H)*h
	return image.Rect(
		int(math.Round(x0)),
		int(math.Round(y0)),
		int(math.Round(x0+t.W*w)),
		int(math.Round(y0+t.H*h)),
	)
}

// expandRect grows the rectangle outward by the given fraction of its
// width and height on each axis.
func expandRect(r image.Rectangle, f float64) image.Rectangle {
	dx := int(math.Round(float64(r.Dx()) * f))
	dy := int(math.Round(float64(r.Dy()) * f))
	return image.Rect(r.Min.X-dx, r.Min.Y-dy, r.Max.X+dx, r.Max.Y+dy)
}

// workingSquare returns the square centered on the rectangle whose side
// equals the rectangle's diagonal, so any rotation of the rectangle
// stays inside it.
func workingSquare(r image.Rectangle) image.Rectangle {
	side := int(math.Ceil(math.Hypot(float64(r.Dx()), float64(r.Dy()))))
	cx := r.Min.X + r.Dx()/2
	cy := r.Min.Y + r.Dy()/2
	return image.Rect(cx-side/2, cy-side/2, cx-side/2+side, cy-side/2+side)
}

// rotateAbout rotates the image by the given angle in the normalized
// bottom-up frame about the pivot. Pixel rows run top-down, so the sign
// flips when converting to degrees for the raster rotation.
func rotateAbout(img *image.RGBA, radians float64, pivot image.Point) *image.RGBA {
	deg := -radians * 180 / math.Pi
	return transform.Rotate(img, deg, &transform.RotationOptions{Pivot: &pivot})
}

// cropRGBA copies the given area into a fresh image anchored at (0,0).
func cropRGBA(src *image.RGBA, r image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out
}
