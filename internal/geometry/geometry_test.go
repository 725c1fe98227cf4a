package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bonus-engine/internal/geometry"
)

func TestCircle_Contains(t *testing.T) {
	c := geometry.Circle{Center: geometry.Point{X: 100, Y: 100}, Radius: 50}

	assert.True(t, c.Contains(geometry.Point{X: 100, Y: 100}))
	assert.True(t, c.Contains(geometry.Point{X: 130, Y: 140})) // 50 exactly
	assert.True(t, c.Contains(geometry.Point{X: 150, Y: 100}))
	assert.False(t, c.Contains(geometry.Point{X: 151, Y: 100}))
	assert.False(t, c.Contains(geometry.Point{X: 140, Y: 140}))
}

func TestPolygon_Contains(t *testing.T) {
	square := geometry.Polygon{Points: []geometry.Point{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100},
	}}

	assert.True(t, square.Contains(geometry.Point{X: 50, Y: 50}))
	assert.True(t, square.Contains(geometry.Point{X: 0, Y: 50}), "edge counts as inside")
	assert.True(t, square.Contains(geometry.Point{X: 100, Y: 100}), "corner counts as inside")
	assert.False(t, square.Contains(geometry.Point{X: 150, Y: 50}))
	assert.False(t, square.Contains(geometry.Point{X: 50, Y: -1}))
}

func TestPolygon_Contains_Degenerate(t *testing.T) {
	assert.False(t, geometry.Polygon{}.Contains(geometry.Point{}))
	line := geometry.Polygon{Points: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}}
	assert.False(t, line.Contains(geometry.Point{X: 5, Y: 5}))
}

func TestConstrainedCircle(t *testing.T) {
	center := geometry.Point{X: 0, Y: 0}

	t.Run("no walls matches the circle", func(t *testing.T) {
		poly := geometry.ConstrainedCircle(center, 100, nil)
		assert.True(t, poly.Contains(geometry.Point{X: 90, Y: 0}))
		assert.True(t, poly.Contains(geometry.Point{X: 0, Y: -90}))
		assert.False(t, poly.Contains(geometry.Point{X: 120, Y: 0}))
	})

	t.Run("wall clips one side", func(t *testing.T) {
		wall := geometry.Segment{
			A: geometry.Point{X: 50, Y: -200},
			B: geometry.Point{X: 50, Y: 200},
		}
		poly := geometry.ConstrainedCircle(center, 100, []geometry.Segment{wall})

		assert.True(t, poly.Contains(geometry.Point{X: 40, Y: 0}))
		assert.False(t, poly.Contains(geometry.Point{X: 80, Y: 0}), "behind the wall")
		assert.True(t, poly.Contains(geometry.Point{X: -80, Y: 0}), "open side keeps full reach")
	})
}

func TestSegmentBlocked(t *testing.T) {
	wall := geometry.Segment{
		A: geometry.Point{X: 50, Y: -50},
		B: geometry.Point{X: 50, Y: 50},
	}

	assert.True(t, geometry.SegmentBlocked(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0},
		[]geometry.Segment{wall}))
	assert.False(t, geometry.SegmentBlocked(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 40, Y: 0},
		[]geometry.Segment{wall}), "stops short of the wall")
	assert.False(t, geometry.SegmentBlocked(
		geometry.Point{X: 0, Y: 100}, geometry.Point{X: 100, Y: 100},
		[]geometry.Segment{wall}), "passes beside the wall")
	assert.False(t, geometry.SegmentBlocked(
		geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, nil))
}

func TestDistance(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 3, Y: 4}

	assert.InDelta(t, 5, geometry.Distance(a, b, 0), 1e-9)
	assert.InDelta(t, 13, geometry.Distance(a, geometry.Point{X: 3, Y: 4}, 12), 1e-9)
	assert.InDelta(t, 7, geometry.Distance(a, a, 7), 1e-9, "pure elevation difference")
}

func TestGridCenters(t *testing.T) {
	t.Run("single cell", func(t *testing.T) {
		points := geometry.GridCenters(200, 300, 1, 1, 100)
		require.Len(t, points, 1)
		assert.Equal(t, geometry.Point{X: 250, Y: 350}, points[0])
	})

	t.Run("two by two footprint", func(t *testing.T) {
		points := geometry.GridCenters(0, 0, 2, 2, 100)
		require.Len(t, points, 4)
		assert.Contains(t, points, geometry.Point{X: 50, Y: 50})
		assert.Contains(t, points, geometry.Point{X: 150, Y: 50})
		assert.Contains(t, points, geometry.Point{X: 50, Y: 150})
		assert.Contains(t, points, geometry.Point{X: 150, Y: 150})
	})

	t.Run("zero size clamps to one cell", func(t *testing.T) {
		points := geometry.GridCenters(0, 0, 0, 0, 100)
		require.Len(t, points, 1)
	})
}

func TestCone(t *testing.T) {
	// Facing east, 90 degree arc, 200px reach.
	cone := geometry.Cone(geometry.Point{X: 0, Y: 0}, 0, 90, 200)

	assert.True(t, cone.Contains(geometry.Point{X: 100, Y: 0}))
	assert.True(t, cone.Contains(geometry.Point{X: 100, Y: 60}))
	assert.False(t, cone.Contains(geometry.Point{X: -50, Y: 0}), "behind the origin")
	assert.False(t, cone.Contains(geometry.Point{X: 0, Y: 100}), "outside the arc")
	assert.False(t, cone.Contains(geometry.Point{X: 300, Y: 0}), "past the reach")
}

func TestRay(t *testing.T) {
	// Facing south, 200px long, 40px wide.
	ray := geometry.Ray(geometry.Point{X: 0, Y: 0}, 90, 200, 40)

	assert.True(t, ray.Contains(geometry.Point{X: 0, Y: 100}))
	assert.True(t, ray.Contains(geometry.Point{X: 15, Y: 150}))
	assert.False(t, ray.Contains(geometry.Point{X: 40, Y: 100}), "outside the width")
	assert.False(t, ray.Contains(geometry.Point{X: 0, Y: 250}), "past the length")
}

func TestRect(t *testing.T) {
	rect := geometry.Rect(geometry.Point{X: 100, Y: 100}, 200, 100)

	assert.True(t, rect.Contains(geometry.Point{X: 150, Y: 150}))
	assert.True(t, rect.Contains(geometry.Point{X: 100, Y: 100}), "origin corner")
	assert.False(t, rect.Contains(geometry.Point{X: 50, Y: 150}))
	assert.False(t, rect.Contains(geometry.Point{X: 150, Y: 250}))
}
