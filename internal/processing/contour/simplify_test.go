package contour

import (
	"testing"

	"contour-sketch/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		in   models.Polygon
		want models.Polygon
	}{
		{
			name: "horizontal and vertical runs",
			in:   pts(0, 0, 0, 1, 0, 2, 1, 2, 2, 2, 2, 1, 2, 0, 1, 0),
			want: pts(0, 0, 0, 2, 2, 2, 2, 0),
		},
		{
			name: "diagonal runs",
			in:   pts(2, 0, 1, 1, 0, 2, 1, 3, 2, 4, 3, 3, 4, 2, 3, 1),
			want: pts(2, 0, 0, 2, 2, 4, 4, 2),
		},
		{
			name: "start in the middle of a run",
			in:   pts(1, 0, 2, 0, 2, 1, 2, 2, 0, 2, 0, 0),
			want: pts(2, 0, 2, 2, 0, 2, 0, 0),
		},
		{
			name: "steep slope is not merged with a diagonal",
			in:   pts(0, 0, 1, 1, 3, 2, 0, 2),
			want: pts(0, 0, 1, 1, 3, 2, 0, 2),
		},
		{
			name: "single point",
			in:   pts(4, 4),
			want: pts(4, 4),
		},
		{
			name: "two points",
			in:   pts(1, 1, 5, 1),
			want: pts(1, 1, 5, 1),
		},
		{
			name: "repeated point",
			in:   pts(3, 3, 3, 3, 3, 3),
			want: pts(3, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Simplify(got), "second pass must not change the polygon")
		})
	}
}

func TestSimplifyIsIdempotentOnTracedBorders(t *testing.T) {
	m := newMask(t, 41, 41)
	for y := 0; y < 41; y++ {
		for x := 0; x < 41; x++ {
			if (x-20)*(x-20)+(y-18)*(y-18) <= 150 || (x > 25 && y > 28 && x+y < 66) {
				m.SetForeground(x, y)
			}
		}
	}

	raw := traceFirst(t, m)
	once := Simplify(raw)
	assert.Less(t, len(once), len(raw))
	assert.Equal(t, once, Simplify(once))
}

func TestSimplifyDoesNotAliasInput(t *testing.T) {
	in := pts(1, 1, 2, 2)
	out := Simplify(in)
	out[0].X = 99
	assert.Equal(t, 1, in[0].X)
}

// traceFirst follows the outer border of the first foreground pixel in scan order
// and returns it without simplification.
func traceFirst(t *testing.T, m *models.BinaryMask) models.Polygon {
	t.Helper()
	g := newLabelGrid(m)
	for y := 1; y <= m.Height; y++ {
		for x := 1; x <= m.Width; x++ {
			if g.at(x, y) == 1 {
				return g.follow(x, y, 4, 2)
			}
		}
	}
	t.Fatal("mask has no foreground")
	return nil
}
