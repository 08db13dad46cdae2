package contour

import "contour-sketch/internal/models"

// Simplify collapses runs of collinear steps of a closed polygon to their end points.
// The polygon is treated cyclically, so a vertex is kept only when the direction
// entering it differs from the direction leaving it. The shape is unchanged and a
// second pass removes nothing.
func Simplify(poly models.Polygon) models.Polygon {
	n := len(poly)
	if n <= 2 {
		out := make(models.Polygon, n)
		copy(out, poly)
		return out
	}

	out := make(models.Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := poly[(i-1+n)%n]
		next := poly[(i+1)%n]
		if direction(prev, poly[i]) != direction(poly[i], next) {
			out = append(out, poly[i])
		}
	}

	if len(out) == 0 {
		// Every step points the same way, which only happens for repeated points.
		return models.Polygon{poly[0]}
	}
	return out
}

// direction reduces the step a->b to its primitive integer vector.
func direction(a, b models.Point) models.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	g := gcd(abs(dx), abs(dy))
	if g == 0 {
		return models.Point{}
	}
	return models.Point{X: dx / g, Y: dy / g}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
