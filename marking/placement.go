package marking

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Shape is the outline of a placement.
type Shape int

const (
	Bar   Shape = iota // rectangle centred on the placement
	Arrow              // triangle with its base on the placement centre
)

func (s Shape) String() string {
	switch s {
	case Bar:
		return "bar"
	case Arrow:
		return "arrow"
	default:
		return "shape?"
	}
}

// Placement positions one marking primitive.
//
// Length is measured along the Orientation angle (radians, counterclockwise
// from the x-axis) and Width across it.  A Bar extends Length/2 to either
// side of Center.  An Arrow has its base, of size Width, at Center and its
// tip Length ahead.
type Placement struct {
	Center      vec.Vec2
	Orientation float64
	Length      float64
	Width       float64
	Shape       Shape
}

// Direction returns the unit vector along the placement.
func (p Placement) Direction() vec.Vec2 {
	return vec.Vec2{X: math.Cos(p.Orientation), Y: math.Sin(p.Orientation)}
}

// Matrix maps placement coordinates (x along the length, y across, origin
// at the centre) to path coordinates.
func (p Placement) Matrix() matrix.Matrix {
	c, s := math.Cos(p.Orientation), math.Sin(p.Orientation)
	return matrix.Matrix{c, s, -s, c, p.Center.X, p.Center.Y}
}

// Outline returns the corners of the placement in counterclockwise order.
func (p Placement) Outline() []vec.Vec2 {
	hl, hw := p.Length/2, p.Width/2

	var local []vec.Vec2
	switch p.Shape {
	case Arrow:
		local = []vec.Vec2{{X: 0, Y: -hw}, {X: p.Length, Y: 0}, {X: 0, Y: hw}}
	default:
		local = []vec.Vec2{{X: -hl, Y: -hw}, {X: hl, Y: -hw}, {X: hl, Y: hw}, {X: -hl, Y: hw}}
	}

	m := p.Matrix()
	for i, v := range local {
		local[i] = apply(m, v)
	}
	return local
}

// apply maps v through the affine transformation m.
func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}
