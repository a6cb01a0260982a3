package component

import "image/color"

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapeSegment
)

// Shape is a vector-rendered primitive centered on the entity transform.
// Circles use Radius, rects use W/H, segments run to (X+DX, Y+DY).
type Shape struct {
	Kind    ShapeKind
	Radius  float64
	W       float64
	H       float64
	DX      float64
	DY      float64
	Fill    color.Color
	Outline color.Color
}

var ShapeComponent = NewComponent[Shape]()
