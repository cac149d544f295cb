package faceveil

import (
	"github.com/google/uuid"
)

const (
	// MinRegionSize is the floor for region width and height after any
	// transform, in normalized units.
	MinRegionSize = 0.03

	defaultCustomWidth  = 0.15
	defaultCustomHeight = 0.10
)

// Rect is an axis-aligned rectangle in normalized image coordinates.
// Every component lies in [0,1] and the origin is the bottom-left corner
// of the image, following the vision coordinate convention. UI layers
// rendering top-down must convert before display.
type Rect struct {
	X, Y, W, H float64
}

// Point is a position in normalized image coordinates, origin bottom-left.
type Point struct {
	X, Y float64
}

// Contains reports whether p lies within the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Kind tells how a region came to exist. Only custom regions may be
// moved, resized, rotated, or deleted by the user.
type Kind int

const (
	KindFace Kind = iota
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

// Handle identifies which edge or corner of a region a resize gesture grabs.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTop
	HandleBottom
	HandleLeft
	HandleRight
)

// Region is one rectangular area of a photo marked for obscuring.
// All transform operations return a modified copy; a Region value is
// never mutated in place.
type Region struct {
	ID       string
	Kind     Kind
	Bounds   Rect
	Rotation float64 // radians, about the rectangle center, unbounded
	Blurred  bool
	Selected bool
}

// NewFaceRegion creates a region from a detector bounding box.
// The box is clamped into the unit square.
func NewFaceRegion(bounds Rect) Region {
	return Region{
		ID:     uuid.NewString(),
		Kind:   KindFace,
		Bounds: clampUnit(bounds),
	}
}

// NewCustomRegion creates a user-drawn region of the default size
// centered at p, clamped into the unit square.
func NewCustomRegion(center Point) Region {
	return Region{
		ID:   uuid.NewString(),
		Kind: KindCustom,
		Bounds: clampUnit(Rect{
			X: center.X - defaultCustomWidth/2,
			Y: center.Y - defaultCustomHeight/2,
			W: defaultCustomWidth,
			H: defaultCustomHeight,
		}),
	}
}

// WithBounds returns a copy with the bounds replaced and clamped into
// the unit square.
func (r Region) WithBounds(bounds Rect) Region {
	r.Bounds = clampUnit(bounds)
	return r
}

// WithRotation returns a copy with the rotation replaced. Rotation is
// never clamped; repeated rotations accumulate in the caller.
func (r Region) WithRotation(radians float64) Region {
	r.Rotation = radians
	return r
}

// Scaled returns a copy with width and height scaled uniformly about
// the rectangle's center, then re-clamped.
func (r Region) Scaled(factor float64) Region {
	c := r.Bounds.Center()
	w := r.Bounds.W * factor
	h := r.Bounds.H * factor
	return r.WithBounds(Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h})
}

// Moved returns a copy translated by a pixel-space drag delta. The
// delta is interpreted against the currently displayed size, so edits
// stay stable under zoom. The vertical sign flips because drag deltas
// are top-down screen deltas while the region's Y axis is bottom-up.
func (r Region) Moved(dx, dy float64, displayWidth, displayHeight int) Region {
	ndx := dx / float64(displayWidth)
	ndy := -dy / float64(displayHeight)
	b := r.Bounds
	b.X += ndx
	b.Y += ndy
	return r.WithBounds(b)
}

// Resized returns a copy resized by dragging the given handle by a
// pixel-space delta. Each handle updates only the origin/size
// components of the side(s) it controls. Width and height are floored
// at MinRegionSize; when the floor triggers the dimension is forced to
// the floor without preserving the opposite edge.
func (r Region) Resized(dx, dy float64, handle Handle, displayWidth, displayHeight int) Region {
	ndx := dx / float64(displayWidth)
	ndy := -dy / float64(displayHeight)
	b := r.Bounds

	// "top" is the far Y edge and "bottom" the origin edge, because the
	// rect origin is bottom-left.
	switch handle {
	case HandleLeft:
		b.X += ndx
		b.W -= ndx
	case HandleRight:
		b.W += ndx
	case HandleTop:
		b.H += ndy
	case HandleBottom:
		b.Y += ndy
		b.H -= ndy
	case HandleTopLeft:
		b.X += ndx
		b.W -= ndx
		b.H += ndy
	case HandleTopRight:
		b.W += ndx
		b.H += ndy
	case HandleBottomLeft:
		b.X += ndx
		b.W -= ndx
		b.Y += ndy
		b.H -= ndy
	case HandleBottomRight:
		b.W += ndx
		b.Y += ndy
		b.H -= ndy
	}

	if b.W < MinRegionSize {
		b.W = MinRegionSize
	}
	if b.H < MinRegionSize {
		b.H = MinRegionSize
	}
	return r.WithBounds(b)
}

// clampUnit forces a rectangle into [0,1]x[0,1] with the size floor
// applied. The origin is shifted before the size is shrunk, so a rect
// that fits is translated into place rather than squashed.
func clampUnit(r Rect) Rect {
	if r.W < MinRegionSize {
		r.W = MinRegionSize
	}
	if r.H < MinRegionSize {
		r.H = MinRegionSize
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.W > 1 {
		r.X = 1 - r.W
	}
	if r.Y+r.H > 1 {
		r.Y = 1 - r.H
	}
	if r.X < 0 {
		r.X = 0
		r.W = 1
	}
	if r.Y < 0 {
		r.Y = 0
		r.H = 1
	}
	return r
}
