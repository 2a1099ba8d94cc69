package editing

import (
	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/unit"
)

// ShapeKind identifies a mask primitive.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeHexagon   ShapeKind = "hexagon"
	ShapeLine      ShapeKind = "line"
	ShapePolygon   ShapeKind = "polygon"
)

// Point is a 2D coordinate in MicroUnits.
type Point struct {
	X unit.MicroUnit `json:"x"`
	Y unit.MicroUnit `json:"y"`
}

// Shape is a user-drawn mask primitive. Geometry depends on the kind:
// rectangle uses Origin plus Width/Height, circle and hexagon use Origin as
// center plus Radius, line uses Points[0] and Points[1], polygon uses the
// whole Points list as a closed ring. Shapes are additive: each one holds the
// ids of the cells it masks, and a cell stays hidden while any shape still
// references it.
type Shape struct {
	ID     string         `json:"id"`
	Kind   ShapeKind      `json:"kind"`
	Origin Point          `json:"origin"`
	Width  unit.MicroUnit `json:"width,omitempty"`
	Height unit.MicroUnit `json:"height,omitempty"`
	Radius unit.MicroUnit `json:"radius,omitempty"`
	Points []Point        `json:"points,omitempty"`

	AffectedCells []string `json:"affected_cells"`
	Active        bool     `json:"active"`
}

// covers reports whether the shape masks the given cell. Area shapes
// (rectangle, circle, hexagon) test the cell's four corners and center;
// line and polygon shapes test segment-rectangle intersection, and a closed
// polygon additionally swallows cells whose center lies inside it.
func (s *Shape) covers(c *layout.Cell) bool {
	corners := [4]Point{
		{c.X, c.Y},
		{c.X + c.Width, c.Y},
		{c.X, c.Y + c.Height},
		{c.X + c.Width, c.Y + c.Height},
	}
	center := Point{c.X + c.Width/2, c.Y + c.Height/2}

	switch s.Kind {
	case ShapeRectangle:
		for _, p := range corners {
			if s.rectContains(p) {
				return true
			}
		}
		return s.rectContains(center)
	case ShapeCircle:
		for _, p := range corners {
			if s.circleContains(p) {
				return true
			}
		}
		return s.circleContains(center)
	case ShapeHexagon:
		hex := s.hexagonRing()
		for _, p := range corners {
			if pointInRing(p, hex) {
				return true
			}
		}
		return pointInRing(center, hex)
	case ShapeLine:
		if len(s.Points) < 2 {
			return false
		}
		return segmentIntersectsRect(s.Points[0], s.Points[1], c)
	case ShapePolygon:
		if len(s.Points) < 2 {
			return false
		}
		for i := range s.Points {
			a := s.Points[i]
			b := s.Points[(i+1)%len(s.Points)]
			if segmentIntersectsRect(a, b, c) {
				return true
			}
		}
		// A large polygon can contain the whole cell without any edge
		// touching it.
		return len(s.Points) >= 3 && pointInRing(center, s.Points)
	}
	return false
}

func (s *Shape) rectContains(p Point) bool {
	return p.X >= s.Origin.X && p.X <= s.Origin.X+s.Width &&
		p.Y >= s.Origin.Y && p.Y <= s.Origin.Y+s.Height
}

func (s *Shape) circleContains(p Point) bool {
	dx := int64(p.X - s.Origin.X)
	dy := int64(p.Y - s.Origin.Y)
	r := int64(s.Radius)
	return dx*dx+dy*dy <= r*r
}

// hexagonRing returns the six vertices of a flat-top regular hexagon centered
// at Origin with circumradius Radius. sin(60°) is approximated as 866/1000,
// which is far below the masking tolerance anyone can draw by hand.
func (s *Shape) hexagonRing() []Point {
	r := s.Radius
	half := r / 2
	v := r * 866 / 1000
	cx, cy := s.Origin.X, s.Origin.Y
	return []Point{
		{cx + r, cy},
		{cx + half, cy + v},
		{cx - half, cy + v},
		{cx - r, cy},
		{cx - half, cy - v},
		{cx + half, cy - v},
	}
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point) int64 {
	return int64(b.X-a.X)*int64(p.Y-a.Y) - int64(b.Y-a.Y)*int64(p.X-a.X)
}

// pointInRing tests p against a closed convex or simple ring using the
// even-odd ray-casting rule.
func pointInRing(p Point, ring []Point) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			// x coordinate of the edge at height p.Y, compared without
			// division: p.X < a.X + (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)
			num := int64(b.X-a.X) * int64(p.Y-a.Y)
			den := int64(b.Y - a.Y)
			lhs := int64(p.X-a.X) * den
			if den < 0 {
				if lhs > num {
					inside = !inside
				}
			} else if lhs < num {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentIntersectsRect reports whether segment ab touches the cell's
// bounding rectangle, including the degenerate case of an endpoint inside.
func segmentIntersectsRect(a, b Point, c *layout.Cell) bool {
	x0, y0 := c.X, c.Y
	x1, y1 := c.X+c.Width, c.Y+c.Height

	inside := func(p Point) bool {
		return p.X >= x0 && p.X <= x1 && p.Y >= y0 && p.Y <= y1
	}
	if inside(a) || inside(b) {
		return true
	}

	edges := [4][2]Point{
		{{x0, y0}, {x1, y0}},
		{{x1, y0}, {x1, y1}},
		{{x1, y1}, {x0, y1}},
		{{x0, y1}, {x0, y0}},
	}
	for _, e := range edges {
		if segmentsIntersect(a, b, e[0], e[1]) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segments ab and cd intersect, treating
// collinear touching as an intersection.
func segmentsIntersect(a, b, c, d Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

// onSegment assumes p is collinear with ab and checks that it lies between
// the endpoints.
func onSegment(a, b, p Point) bool {
	return min64(a.X, b.X) <= p.X && p.X <= max64(a.X, b.X) &&
		min64(a.Y, b.Y) <= p.Y && p.Y <= max64(a.Y, b.Y)
}

func min64(a, b unit.MicroUnit) unit.MicroUnit {
	if a < b {
		return a
	}
	return b
}

func max64(a, b unit.MicroUnit) unit.MicroUnit {
	if a > b {
		return a
	}
	return b
}
