// Package contour traces the borders of foreground regions in a binary mask.
//
// Borders are followed with the Suzuki-Abe algorithm on an 8-connected foreground.
// Every border is emitted, outer borders and hole borders alike, as an independent
// polygon of foreground pixel coordinates; no containment hierarchy is kept.
//
// Seeds are found by a row-major scan, so emission order is a pure function of the
// mask. A border starts at the first pixel the scan meets: an outer border at a
// pixel whose left neighbour is background, a hole border at a pixel whose right
// neighbour is background. Around the current pixel the eight neighbours are
// numbered counter-clockwise starting east (E, NE, N, NW, W, SW, S, SE); when two
// neighbours qualify, the first one in that rotation wins, which is how diagonal
// steps are chosen over the orthogonal pixel they cut across.
package contour

import (
	"contour-sketch/internal/models"
)

// MinPoints is the fixed floor applied at extraction: polygons with this many
// simplified points or fewer are dropped.
const MinPoints = 10

// neighbour offsets in counter-clockwise order, starting east. Y grows downwards.
var directions = [8]models.Point{
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// Tracer extracts borders from a mask.
type Tracer struct {
	// MinPoints drops polygons with at most this many simplified points.
	MinPoints int
}

// NewTracer returns a tracer with the fixed extraction floor.
func NewTracer() *Tracer {
	return &Tracer{MinPoints: MinPoints}
}

func (t *Tracer) Name() string {
	return "suzuki_abe"
}

// Extract traces every border in mask. An empty set is a valid result.
func (t *Tracer) Extract(mask *models.BinaryMask) (models.ContourSet, error) {
	if err := mask.Validate(); err != nil {
		return nil, err
	}

	g := newLabelGrid(mask)
	contours := models.ContourSet{}
	nbd := int32(1)

	for y := 1; y <= mask.Height; y++ {
		for x := 1; x <= mask.Width; x++ {
			v := g.at(x, y)
			if v == 0 {
				continue
			}

			var from int
			switch {
			case v == 1 && g.at(x-1, y) == 0:
				from = 4 // outer border, enter from the west
			case v >= 1 && g.at(x+1, y) == 0:
				from = 0 // hole border, enter from the east
			default:
				continue
			}

			nbd++
			raw := g.follow(x, y, from, nbd)
			poly := Simplify(raw)
			if len(poly) <= t.MinPoints {
				continue
			}
			for i := range poly {
				poly[i].X--
				poly[i].Y--
			}
			contours = append(contours, poly)
		}
	}

	return contours, nil
}

// labelGrid is the mask padded by one background pixel on every side.
// 0 is background, 1 unvisited foreground, other values are border labels.
type labelGrid struct {
	stride int
	cells  []int32
}

func newLabelGrid(mask *models.BinaryMask) *labelGrid {
	stride := mask.Width + 2
	g := &labelGrid{
		stride: stride,
		cells:  make([]int32, stride*(mask.Height+2)),
	}
	for y := 0; y < mask.Height; y++ {
		row := mask.Pix[y*mask.Width : (y+1)*mask.Width]
		for x, v := range row {
			if v == models.MaskForeground {
				g.cells[(y+1)*stride+x+1] = 1
			}
		}
	}
	return g
}

func (g *labelGrid) at(x, y int) int32 {
	return g.cells[y*g.stride+x]
}

func (g *labelGrid) set(x, y int, v int32) {
	g.cells[y*g.stride+x] = v
}

func (g *labelGrid) neighbour(p models.Point, dir int) models.Point {
	d := directions[dir&7]
	return models.Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// follow walks one border starting at (x, y), whose background neighbour lies in
// direction from, labels it with nbd and returns the visited pixels in order.
func (g *labelGrid) follow(x, y, from int, nbd int32) models.Polygon {
	start := models.Point{X: x, Y: y}

	// Clockwise search from the background neighbour for the first foreground pixel.
	firstDir := -1
	for i := 0; i < 8; i++ {
		dir := (from - i + 8) & 7
		p := g.neighbour(start, dir)
		if g.at(p.X, p.Y) != 0 {
			firstDir = dir
			break
		}
	}
	if firstDir < 0 {
		g.set(x, y, -nbd)
		return models.Polygon{start}
	}

	last := g.neighbour(start, firstDir)
	points := models.Polygon{start}
	cur := start
	prevDir := firstDir

	for {
		// Counter-clockwise search starting just after the previous pixel.
		eastIsBackground := false
		var next models.Point
		var nextDir int
		for i := 1; i <= 8; i++ {
			dir := (prevDir + i) & 7
			p := g.neighbour(cur, dir)
			if g.at(p.X, p.Y) != 0 {
				next, nextDir = p, dir
				break
			}
			if dir == 0 {
				eastIsBackground = true
			}
		}

		switch {
		case eastIsBackground:
			g.set(cur.X, cur.Y, -nbd)
		case g.at(cur.X, cur.Y) == 1:
			g.set(cur.X, cur.Y, nbd)
		}

		if next == start && cur == last {
			return points
		}

		// Direction from next back to cur.
		prevDir = (nextDir + 4) & 7
		cur = next
		points = append(points, cur)
	}
}
