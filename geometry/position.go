// Package geometry holds coordinate value types, page arithmetic and the
// reading context (viewport, direction, spread) shared by locators.
package geometry

import "fmt"

// ViewportPosition is document wide offset of the viewport.
type ViewportPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p ViewportPosition) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// SpineItemPosition is offset relative to reading item box, always within
// item bounds.
type SpineItemPosition struct {
	X float64
	Y float64
}

// UnsafeSpineItemPosition is item relative offset which may be out of item
// bounds.
type UnsafeSpineItemPosition struct {
	X float64
	Y float64
}

// Size is width and height of something.
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether either dimension is not measured yet.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is absolute bounding box.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
	Width  float64
	Height float64
}

// NewRect builds rectangle from its origin and size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Left, r.Top, r.Width, r.Height)
}
