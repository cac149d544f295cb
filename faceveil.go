// Package faceveil irreversibly destroys the visual information inside
// rectangular regions of a photo. Regions come from a face detector or
// from user gestures, may be rotated, and are processed through a
// deterministic multi-pass pixelate/blur pipeline (or a solid box)
// before being composited back into the image.
//
// Irreversible means lossy-image-processing irreversible, not
// cryptographically irreversible.
package faceveil

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/yyyoichi/faceveil/internal/obscure"
)

var (
	// ErrNoPixelData is returned when the source image is nil or has no
	// decodable pixel buffer. The whole operation fails; no partial
	// output is produced.
	ErrNoPixelData = errors.New("source image has no pixel data")
	// ErrRender is returned when the final composite could not be
	// rasterized.
	ErrRender = errors.New("failed to render output image")
)

// PrivacyMode selects the pipeline variant applied to each region.
type PrivacyMode = obscure.Mode

const (
	ModeFullBlur            PrivacyMode = obscure.ModeFullBlur
	ModeBlurNoFinalPixelate PrivacyMode = obscure.ModeBlurNoFinalPixelate
	ModePixelateOnly        PrivacyMode = obscure.ModePixelateOnly
	ModeBlackBox            PrivacyMode = obscure.ModeBlackBox
	ModeWhiteBox            PrivacyMode = obscure.ModeWhiteBox
	ModeCustomColorBox      PrivacyMode = obscure.ModeCustomColorBox
)

// Apply obscures the given regions of src with the specified options.
// This is a convenience function that creates an Engine and calls its
// Apply method.
func Apply(ctx context.Context, src image.Image, regions []Region, opts ...Option) (image.Image, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return e.Apply(ctx, src, regions)
}

// Engine runs the obscuring pipeline. An Engine is immutable after New
// and safe for concurrent use; each Apply call works on its own canvas.
type Engine struct {
	mode      PrivacyMode
	intensity float64
	boxColor  color.RGBA
}

// New initializes an engine. Mode, intensity, and the custom box color
// can be optionally specified; for default values refer to the init
// function.
func New(opts ...Option) (*Engine, error) {
	e := new(Engine)
	if err := e.init(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply returns a new image in which every region has been processed
// with the engine's privacy mode.
//
// Process per region:
//  1. Converts the normalized bounds (bottom-left origin) to a pixel
//     rectangle and expands it outward so no unmodified rim survives
//     at the region boundary.
//  2. For rotated regions, crops a square working area, rotates it so
//     the region is axis-aligned, and runs the passes in the region's
//     own frame.
//  3. Runs the pipeline for the configured mode, or fills a solid
//     rotated rectangle for box modes.
//  4. Composites the result over the canvas at the region's position.
//
// Regions are processed strictly in list order over one shared canvas,
// so overlapping regions compound. A region that does not intersect
// the image is skipped. The source image is never modified.
func (e *Engine) Apply(ctx context.Context, src image.Image, regions []Region) (image.Image, error) {
	if src == nil {
		return nil, ErrNoPixelData
	}
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: bounds %v", ErrNoPixelData, b)
	}

	targets := make([]obscure.Target, len(regions))
	for i, r := range regions {
		targets[i] = obscure.Target{
			X:        r.Bounds.X,
			Y:        r.Bounds.Y,
			W:        r.Bounds.W,
			H:        r.Bounds.H,
			Rotation: r.Rotation,
		}
	}

	out := obscure.Apply(ctx, src, targets, obscure.Params{
		Mode:      e.mode,
		Intensity: e.intensity,
		BoxColor:  e.boxColor,
	})
	if out == nil || out.Bounds().Empty() {
		return nil, ErrRender
	}
	return out, nil
}

// Mode returns the configured privacy mode.
func (e *Engine) Mode() PrivacyMode { return e.mode }

// Intensity returns the configured intensity.
func (e *Engine) Intensity() float64 { return e.intensity }

func (e *Engine) init(opts ...Option) error {
	e.intensity = -1
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return err
		}
	}
	if e.intensity < 0 {
		e.intensity = 0.5
	}
	if e.boxColor == (color.RGBA{}) {
		e.boxColor = color.RGBA{A: 0xff}
	}
	return nil
}
