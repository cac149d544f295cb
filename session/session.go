// Package session holds the mutable editing state for one photo: the
// ordered region collection, transient selection, and the bookkeeping
// of which regions were already obscured in the displayed image.
//
// A session is owned by a single logical editing flow and is expected
// to be mutated from one control-flow context at a time; it takes no
// locks.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/yyyoichi/faceveil"
)

var (
	ErrRegionNotFound = errors.New("region not found")
	// ErrRegionLocked marks a region whose pixels were already
	// irrecoverably altered in the displayed image; its geometry can no
	// longer be edited until the session resets.
	ErrRegionLocked = errors.New("region already obscured")
	// ErrNotCustom is returned for geometric edits on detector-created
	// regions. Only user-drawn regions may be moved, resized, rotated,
	// or removed.
	ErrNotCustom = errors.New("region is not user-drawn")
)

// Detector supplies normalized face bounding boxes (bottom-left
// origin, components in [0,1]) for an image. The session does not
// validate detector quality; boxes are clamped on region creation.
type Detector interface {
	DetectFaces(ctx context.Context, img image.Image) ([]faceveil.Rect, error)
}

type Session struct {
	engine  *faceveil.Engine
	regions []faceveil.Region
}

type Option func(*Session) error

// WithEngine replaces the default engine used on Apply.
func WithEngine(e *faceveil.Engine) Option {
	return func(s *Session) error {
		s.engine = e
		return nil
	}
}

// New creates an empty editing session.
func New(opts ...Option) (*Session, error) {
	s := new(Session)
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.engine == nil {
		e, err := faceveil.New()
		if err != nil {
			return nil, err
		}
		s.engine = e
	}
	return s, nil
}

// DetectFaces runs the detector and appends one face region per
// returned box. It returns the number of regions added.
func (s *Session) DetectFaces(ctx context.Context, img image.Image, d Detector) (int, error) {
	boxes, err := d.DetectFaces(ctx, img)
	if err != nil {
		return 0, fmt.Errorf("face detection failed: %w", err)
	}
	for _, b := range boxes {
		s.regions = append(s.regions, faceveil.NewFaceRegion(b))
	}
	return len(boxes), nil
}

// AddCustom creates a user-drawn region of the default size centered
// at p and returns it.
func (s *Session) AddCustom(p faceveil.Point) faceveil.Region {
	r := faceveil.NewCustomRegion(p)
	s.regions = append(s.regions, r)
	return r
}

// Regions returns the regions in creation order.
func (s *Session) Regions() []faceveil.Region {
	out := make([]faceveil.Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Region returns the region with the given ID.
func (s *Session) Region(id string) (faceveil.Region, bool) {
	if i := s.index(id); i >= 0 {
		return s.regions[i], true
	}
	return faceveil.Region{}, false
}

// Move translates a custom region by a pixel-space drag delta
// interpreted against the displayed size.
func (s *Session) Move(id string, dx, dy float64, displayWidth, displayHeight int) error {
	i, err := s.editable(id)
	if err != nil {
		return err
	}
	s.regions[i] = s.regions[i].Moved(dx, dy, displayWidth, displayHeight)
	return nil
}

// Resize drags one handle of a custom region by a pixel-space delta.
func (s *Session) Resize(id string, dx, dy float64, handle faceveil.Handle, displayWidth, displayHeight int) error {
	i, err := s.editable(id)
	if err != nil {
		return err
	}
	s.regions[i] = s.regions[i].Resized(dx, dy, handle, displayWidth, displayHeight)
	return nil
}

// Rotate adds delta radians to a custom region's rotation. Repeated
// rotations accumulate without bound.
func (s *Session) Rotate(id string, delta float64) error {
	i, err := s.editable(id)
	if err != nil {
		return err
	}
	s.regions[i] = s.regions[i].WithRotation(s.regions[i].Rotation + delta)
	return nil
}

// Scale resizes a custom region uniformly about its center.
func (s *Session) Scale(id string, factor float64) error {
	i, err := s.editable(id)
	if err != nil {
		return err
	}
	s.regions[i] = s.regions[i].Scaled(factor)
	return nil
}

// Remove deletes a custom region.
func (s *Session) Remove(id string) error {
	i, err := s.editable(id)
	if err != nil {
		return err
	}
	s.regions = append(s.regions[:i], s.regions[i+1:]...)
	return nil
}

// Select sets the transient selection state of any region.
func (s *Session) Select(id string, selected bool) error {
	i := s.index(id)
	if i < 0 {
		return ErrRegionNotFound
	}
	s.regions[i].Selected = selected
	return nil
}

// Apply hands the selected, not-yet-obscured regions to the engine and
// returns the new image. On success those regions are marked obscured
// and deselected; their geometry is locked until Reset.
func (s *Session) Apply(ctx context.Context, img image.Image) (image.Image, error) {
	var picked []int
	var targets []faceveil.Region
	for i, r := range s.regions {
		if r.Selected && !r.Blurred {
			picked = append(picked, i)
			targets = append(targets, r)
		}
	}
	out, err := s.engine.Apply(ctx, img, targets)
	if err != nil {
		return nil, err
	}
	for _, i := range picked {
		s.regions[i].Blurred = true
		s.regions[i].Selected = false
	}
	return out, nil
}

// Reset ends the edit session, discarding all regions and their
// obscured state.
func (s *Session) Reset() {
	s.regions = nil
}

func (s *Session) index(id string) int {
	for i := range s.regions {
		if s.regions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) editable(id string) (int, error) {
	i := s.index(id)
	if i < 0 {
		return -1, ErrRegionNotFound
	}
	if s.regions[i].Blurred {
		return -1, fmt.Errorf("%w: %s", ErrRegionLocked, id)
	}
	if s.regions[i].Kind != faceveil.KindCustom {
		return -1, fmt.Errorf("%w: %s", ErrNotCustom, id)
	}
	return i, nil
}
