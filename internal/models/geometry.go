package models

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Polygon is a traced boundary. The last point implicitly connects back to the first.
type Polygon []Point

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p) }

// Bounds returns the inclusive bounding box of the polygon.
func (p Polygon) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// ContourSet is the collection of polygons traced from one mask, in emission order.
type ContourSet []Polygon

// TotalPoints sums vertex counts across all polygons.
func (cs ContourSet) TotalPoints() int {
	n := 0
	for _, p := range cs {
		n += len(p)
	}
	return n
}
