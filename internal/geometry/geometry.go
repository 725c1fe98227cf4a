// Package geometry implements the spatial primitives aura collection
// needs: circles, wall-constrained circle polygons, template shapes,
// point containment and elevation-aware distance. Coordinates are scene
// pixels throughout; callers convert to distance units at the edges.
package geometry

import (
	"math"
)

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Segment is one blocking wall segment.
type Segment struct {
	A Point
	B Point
}

// Shape is anything that can answer point containment.
type Shape interface {
	Contains(p Point) bool
}

// Circle is an unconstrained radius area.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c Circle) Contains(p Point) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Polygon is a closed area tested with ray casting. Points on an edge
// count as inside.
type Polygon struct {
	Points []Point
}

// Contains reports whether p lies inside the polygon, using the crossing
// count with an on-edge short circuit.
func (poly Polygon) Contains(p Point) bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a := poly.Points[i]
		b := poly.Points[j]

		if onSegment(p, a, b) {
			return true
		}

		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

const epsilon = 1e-9

func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > epsilon*(math.Abs(b.X-a.X)+math.Abs(b.Y-a.Y)+1) {
		return false
	}
	if p.X < math.Min(a.X, b.X)-epsilon || p.X > math.Max(a.X, b.X)+epsilon {
		return false
	}
	if p.Y < math.Min(a.Y, b.Y)-epsilon || p.Y > math.Max(a.Y, b.Y)+epsilon {
		return false
	}
	return true
}

// constrainedRays is the ray count used to approximate a clipped circle.
// One ray every three degrees keeps grid-center tests exact enough at
// typical aura ranges.
const constrainedRays = 120

// ConstrainedCircle builds the polygon of a radius area clipped by
// blocking walls: rays are cast from the center and each stops at the
// nearest intersecting wall. With no walls in reach the result matches
// the plain circle.
func ConstrainedCircle(center Point, radius float64, walls []Segment) Polygon {
	points := make([]Point, 0, constrainedRays)
	for i := 0; i < constrainedRays; i++ {
		angle := 2 * math.Pi * float64(i) / constrainedRays
		end := Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		points = append(points, clipRay(center, end, walls))
	}
	return Polygon{Points: points}
}

// clipRay returns the farthest reachable point along center->end.
func clipRay(center, end Point, walls []Segment) Point {
	nearest := 1.0
	for _, w := range walls {
		if t, ok := intersectRatio(center, end, w.A, w.B); ok && t < nearest {
			nearest = t
		}
	}
	return Point{
		X: center.X + (end.X-center.X)*nearest,
		Y: center.Y + (end.Y-center.Y)*nearest,
	}
}

// intersectRatio finds where segment p->q crosses segment a->b, returned
// as the ratio along p->q.
func intersectRatio(p, q, a, b Point) (float64, bool) {
	rX := q.X - p.X
	rY := q.Y - p.Y
	sX := b.X - a.X
	sY := b.Y - a.Y

	denom := rX*sY - rY*sX
	if math.Abs(denom) < epsilon {
		return 0, false
	}

	t := ((a.X-p.X)*sY - (a.Y-p.Y)*sX) / denom
	u := ((a.X-p.X)*rY - (a.Y-p.Y)*rX) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// SegmentBlocked reports whether any wall crosses the segment p->q.
func SegmentBlocked(p, q Point, walls []Segment) bool {
	for _, w := range walls {
		if _, ok := intersectRatio(p, q, w.A, w.B); ok {
			return true
		}
	}
	return false
}

// Distance returns the straight-line distance between two points with an
// elevation difference, all in the same unit.
func Distance(a, b Point, elevationDelta float64) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy + elevationDelta*elevationDelta)
}

// GridCenters returns the center points of the cells a footprint occupies:
// a token at pixel (x, y) spanning width x height cells on a grid of the
// given pixel size.
func GridCenters(x, y float64, width, height int, gridSize float64) []Point {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	points := make([]Point, 0, width*height)
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			points = append(points, Point{
				X: x + (float64(col)+0.5)*gridSize,
				Y: y + (float64(row)+0.5)*gridSize,
			})
		}
	}
	return points
}

// Cone builds a cone polygon: origin, facing direction (degrees), arc
// angle (degrees), reach in pixels.
func Cone(origin Point, direction, angle, reach float64) Polygon {
	if angle <= 0 {
		angle = 53.13
	}
	half := angle / 2
	steps := int(math.Max(angle/3, 4))
	points := make([]Point, 0, steps+2)
	points = append(points, origin)
	for i := 0; i <= steps; i++ {
		a := (direction - half + angle*float64(i)/float64(steps)) * math.Pi / 180
		points = append(points, Point{
			X: origin.X + reach*math.Cos(a),
			Y: origin.Y + reach*math.Sin(a),
		})
	}
	return Polygon{Points: points}
}

// Ray builds a thin rotated rectangle: origin, facing direction (degrees),
// length and width in pixels.
func Ray(origin Point, direction, length, width float64) Polygon {
	if width <= 0 {
		width = 1
	}
	rad := direction * math.Pi / 180
	dirX := math.Cos(rad)
	dirY := math.Sin(rad)
	// Perpendicular, half a width to each side.
	perpX := -dirY * width / 2
	perpY := dirX * width / 2
	end := Point{X: origin.X + length*dirX, Y: origin.Y + length*dirY}
	return Polygon{Points: []Point{
		{X: origin.X + perpX, Y: origin.Y + perpY},
		{X: end.X + perpX, Y: end.Y + perpY},
		{X: end.X - perpX, Y: end.Y - perpY},
		{X: origin.X - perpX, Y: origin.Y - perpY},
	}}
}

// Rect builds an axis-aligned rectangle from an origin corner spanning
// w x h pixels.
func Rect(origin Point, w, h float64) Polygon {
	return Polygon{Points: []Point{
		origin,
		{X: origin.X + w, Y: origin.Y},
		{X: origin.X + w, Y: origin.Y + h},
		{X: origin.X, Y: origin.Y + h},
	}}
}
