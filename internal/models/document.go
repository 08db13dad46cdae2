package models

import (
	"strconv"
	"strings"
)

// PathOp is a single vector path instruction.
type PathOp int

const (
	MoveTo PathOp = iota
	LineTo
	ClosePath
)

// PathCommand is one instruction of a path. X and Y are unused for ClosePath.
type PathCommand struct {
	Op   PathOp
	X, Y int
}

// Rect is the opaque background shape.
type Rect struct {
	X, Y          int
	Width, Height int
	Fill          Color
}

// StrokedPath is an unfilled outline.
type StrokedPath struct {
	Commands    []PathCommand
	Stroke      Color
	StrokeWidth float64
}

// Points returns the number of vertices the path visits.
func (p StrokedPath) Points() int {
	n := 0
	for _, c := range p.Commands {
		if c.Op != ClosePath {
			n++
		}
	}
	return n
}

// Data renders the path in the compact "M x,y L x,y x,y Z" form.
func (p StrokedPath) Data() string {
	var b strings.Builder
	prev := PathOp(-1)
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			b.WriteString("M ")
			writeCoord(&b, c.X, c.Y)
		case LineTo:
			if prev != LineTo {
				b.WriteString("L ")
			}
			writeCoord(&b, c.X, c.Y)
		case ClosePath:
			b.WriteByte('Z')
		}
		prev = c.Op
	}
	return b.String()
}

func writeCoord(b *strings.Builder, x, y int) {
	b.WriteString(strconv.Itoa(x))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(y))
}

// VectorDocument is the terminal artifact of a conversion: a background rectangle
// plus stroked outlines, sized to the source raster.
type VectorDocument struct {
	Width      int
	Height     int
	Background Rect
	Paths      []StrokedPath
}
