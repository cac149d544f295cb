package faceveil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func inUnitSquare(t *testing.T, r Rect) {
	t.Helper()
	assert.GreaterOrEqual(t, r.X, 0.0)
	assert.GreaterOrEqual(t, r.Y, 0.0)
	assert.LessOrEqual(t, r.X+r.W, 1.0+tol)
	assert.LessOrEqual(t, r.Y+r.H, 1.0+tol)
	assert.GreaterOrEqual(t, r.W, MinRegionSize)
	assert.GreaterOrEqual(t, r.H, MinRegionSize)
}

func TestWithBounds(t *testing.T) {
	test := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already valid", Rect{0.2, 0.3, 0.4, 0.5}, Rect{0.2, 0.3, 0.4, 0.5}},
		{"shift preferred over shrink", Rect{0.8, 0.1, 0.5, 0.2}, Rect{0.5, 0.1, 0.5, 0.2}},
		{"negative origin shifted", Rect{-0.2, -0.1, 0.4, 0.3}, Rect{0, 0, 0.4, 0.3}},
		{"oversized shrinks after shift", Rect{0.5, 0, 1.4, 0.2}, Rect{0, 0, 1, 0.2}},
		{"size floor applied", Rect{0.5, 0.5, 0.001, 0.001}, Rect{0.5, 0.5, MinRegionSize, MinRegionSize}},
		{"floor then shift at far edge", Rect{0.999, 0.999, 0.001, 0.001}, Rect{1 - MinRegionSize, 1 - MinRegionSize, MinRegionSize, MinRegionSize}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got := Region{}.WithBounds(tt.in)
			assert.InDelta(t, tt.want.X, got.Bounds.X, tol)
			assert.InDelta(t, tt.want.Y, got.Bounds.Y, tol)
			assert.InDelta(t, tt.want.W, got.Bounds.W, tol)
			assert.InDelta(t, tt.want.H, got.Bounds.H, tol)
			inUnitSquare(t, got.Bounds)
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		for _, in := range []Rect{
			{0.8, 0.1, 0.5, 0.2},
			{-3, -3, 9, 9},
			{0.99, 0.99, 0.001, 0.001},
			{0.2, 0.3, 0.4, 0.5},
		} {
			once := Region{}.WithBounds(in)
			twice := once.WithBounds(once.Bounds)
			assert.Equal(t, once.Bounds, twice.Bounds)
		}
	})
}

func TestNewCustomRegion(t *testing.T) {
	test := []struct {
		name   string
		center Point
		want   Rect
	}{
		{"centered", Point{0.5, 0.5}, Rect{0.425, 0.45, 0.15, 0.10}},
		{"clamped at corner", Point{0, 0}, Rect{0, 0, 0.15, 0.10}},
		{"clamped at far corner", Point{1, 1}, Rect{0.85, 0.90, 0.15, 0.10}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCustomRegion(tt.center)
			assert.Equal(t, KindCustom, r.Kind)
			assert.NotEmpty(t, r.ID)
			assert.Zero(t, r.Rotation)
			assert.False(t, r.Blurred)
			assert.InDelta(t, tt.want.X, r.Bounds.X, tol)
			assert.InDelta(t, tt.want.Y, r.Bounds.Y, tol)
			assert.InDelta(t, tt.want.W, r.Bounds.W, tol)
			assert.InDelta(t, tt.want.H, r.Bounds.H, tol)
		})
	}
}

func TestNewFaceRegion(t *testing.T) {
	r := NewFaceRegion(Rect{0.1, 0.2, 0.3, 0.4})
	assert.Equal(t, KindFace, r.Kind)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, Rect{0.1, 0.2, 0.3, 0.4}, r.Bounds)

	r2 := NewFaceRegion(Rect{0.1, 0.2, 0.3, 0.4})
	assert.NotEqual(t, r.ID, r2.ID, "ids must be unique")
}

func TestWithRotation(t *testing.T) {
	r := NewCustomRegion(Point{0.5, 0.5})

	t.Run("accumulation is additive", func(t *testing.T) {
		a := r.WithRotation(r.Rotation + 1.3)
		a = a.WithRotation(a.Rotation + 2.9)
		b := r.WithRotation(r.Rotation + 1.3 + 2.9)
		assert.True(t, scalar.EqualWithinAbs(a.Rotation, b.Rotation, tol))
		assert.Equal(t, a.Bounds, b.Bounds)
	})

	t.Run("unbounded", func(t *testing.T) {
		got := r.WithRotation(100).WithRotation(-250)
		assert.Equal(t, -250.0, got.Rotation)
	})
}

func TestMoved(t *testing.T) {
	r := Region{Kind: KindCustom, Bounds: Rect{0.4, 0.4, 0.2, 0.2}}
	test := []struct {
		name   string
		dx, dy float64
		want   Rect
	}{
		{"right", 100, 0, Rect{0.65, 0.4, 0.2, 0.2}},
		// Screen deltas grow downward; normalized Y grows upward.
		{"screen down moves region down", 0, 100, Rect{0.4, 0.15, 0.2, 0.2}},
		{"clamped at edges", -400, -400, Rect{0, 1 - 0.2, 0.2, 0.2}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Moved(tt.dx, tt.dy, 400, 400)
			assert.InDelta(t, tt.want.X, got.Bounds.X, tol)
			assert.InDelta(t, tt.want.Y, got.Bounds.Y, tol)
			assert.InDelta(t, tt.want.W, got.Bounds.W, tol)
			assert.InDelta(t, tt.want.H, got.Bounds.H, tol)
			inUnitSquare(t, got.Bounds)
		})
	}
}

func TestResized(t *testing.T) {
	// 400x400 display, so 40 screen px = 0.1 normalized.
	base := Region{Kind: KindCustom, Bounds: Rect{0.3, 0.3, 0.4, 0.4}}
	test := []struct {
		name   string
		handle Handle
		dx, dy float64
		want   Rect
	}{
		{"right grows width only", HandleRight, 40, 0, Rect{0.3, 0.3, 0.5, 0.4}},
		{"right shrinks width only", HandleRight, -40, 0, Rect{0.3, 0.3, 0.3, 0.4}},
		{"left moves origin and width", HandleLeft, -40, 0, Rect{0.2, 0.3, 0.5, 0.4}},
		{"top grows height on upward drag", HandleTop, 0, -40, Rect{0.3, 0.3, 0.4, 0.5}},
		{"bottom moves origin and height", HandleBottom, 0, 40, Rect{0.3, 0.2, 0.4, 0.5}},
		{"top left", HandleTopLeft, -40, -40, Rect{0.2, 0.3, 0.5, 0.5}},
		{"top right", HandleTopRight, 40, -40, Rect{0.3, 0.3, 0.5, 0.5}},
		{"bottom left", HandleBottomLeft, -40, 40, Rect{0.2, 0.2, 0.5, 0.5}},
		{"bottom right", HandleBottomRight, 40, 40, Rect{0.3, 0.2, 0.5, 0.5}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Resized(tt.dx, tt.dy, tt.handle, 400, 400)
			assert.InDelta(t, tt.want.X, got.Bounds.X, tol)
			assert.InDelta(t, tt.want.Y, got.Bounds.Y, tol)
			assert.InDelta(t, tt.want.W, got.Bounds.W, tol)
			assert.InDelta(t, tt.want.H, got.Bounds.H, tol)
		})
	}

	t.Run("floor forces dimension without preserving opposite edge", func(t *testing.T) {
		got := base.Resized(-200, 0, HandleRight, 400, 400)
		assert.InDelta(t, 0.3, got.Bounds.X, tol)
		assert.InDelta(t, MinRegionSize, got.Bounds.W, tol)
		assert.InDelta(t, 0.4, got.Bounds.H, tol)
	})
}

func TestScaled(t *testing.T) {
	r := Region{Kind: KindCustom, Bounds: Rect{0.4, 0.4, 0.2, 0.2}}

	t.Run("about center", func(t *testing.T) {
		got := r.Scaled(2)
		assert.InDelta(t, 0.3, got.Bounds.X, tol)
		assert.InDelta(t, 0.3, got.Bounds.Y, tol)
		assert.InDelta(t, 0.4, got.Bounds.W, tol)
		assert.InDelta(t, 0.4, got.Bounds.H, tol)
		c := r.Bounds.Center()
		gc := got.Bounds.Center()
		assert.InDelta(t, c.X, gc.X, tol)
		assert.InDelta(t, c.Y, gc.Y, tol)
	})

	t.Run("re-clamped when oversized", func(t *testing.T) {
		got := r.Scaled(100)
		inUnitSquare(t, got.Bounds)
	})

	t.Run("floored when tiny", func(t *testing.T) {
		got := r.Scaled(0.001)
		require.InDelta(t, MinRegionSize, got.Bounds.W, tol)
		require.InDelta(t, MinRegionSize, got.Bounds.H, tol)
	})
}
