package obscure

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// drawBox paints a solid rectangle over the canvas, rotated about its
// center when the rotation exceeds the epsilon. Intensity plays no part
// in box modes.
func drawBox(canvas *image.RGBA, rect image.Rectangle, rotation float64, col color.RGBA) {
	full := canvas.Bounds()
	if math.Abs(rotation) <= rotationEpsilon {
		draw.Draw(canvas, rect.Intersect(full), image.NewUniform(col), image.Point{}, draw.Src)
		return
	}

	// Stamp the rectangle onto a transparent square, rotate the stamp,
	// then composite over the canvas so only the rotated fill lands.
	square := workingSquare(rect)
	stamp := image.NewRGBA(image.Rect(0, 0, square.Dx(), square.Dy()))
	rel := rect.Sub(square.Min)
	draw.Draw(stamp, rel, image.NewUniform(col), image.Point{}, draw.Src)

	cx := rect.Min.X + rect.Dx()/2
	cy := rect.Min.Y + rect.Dy()/2
	pivot := image.Point{X: cx - square.Min.X, Y: cy - square.Min.Y}
	rotated := rotateAbout(stamp, rotation, pivot)

	target := square.Intersect(full)
	if target.Empty() {
		return
	}
	offset := image.Point{X: target.Min.X - square.Min.X, Y: target.Min.Y - square.Min.Y}
	draw.Draw(canvas, target, rotated, offset, draw.Over)
}
