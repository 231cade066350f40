package render

import (
	"image"
	"image/color"
	"math"
)

// Point is a position on the drawing surface, in surface units.
type Point struct{ X, Y float32 }

// Mid returns the point halfway between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Pen is the paint style applied to strokes. Caps and joins are always round.
type Pen struct {
	Color color.NRGBA
	Width float32
}

const (
	MinWidth     float32 = 1
	MaxWidth     float32 = 100
	DefaultWidth float32 = 5
)

// DefaultPen is opaque black, 5 units wide.
func DefaultPen() Pen {
	return Pen{Color: color.NRGBA{A: 255}, Width: DefaultWidth}
}

// ClampWidth keeps a stroke width inside [MinWidth, MaxWidth].
func ClampWidth(w float32) float32 {
	if w < MinWidth || math.IsNaN(float64(w)) {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

type SegmentKind uint8

const (
	SegMove SegmentKind = iota
	SegQuad
)

// Segment is one path element. Ctrl is only meaningful for SegQuad.
type Segment struct {
	Kind SegmentKind
	Ctrl Point
	To   Point
}

// Path is a sequence of move and quadratic Bezier segments.
type Path struct {
	segs []Segment
}

func (p *Path) MoveTo(pt Point) {
	p.segs = append(p.segs, Segment{Kind: SegMove, To: pt})
}

// QuadTo appends a quadratic curve. A path without a current point gets an
// implicit MoveTo at ctrl.
func (p *Path) QuadTo(ctrl, to Point) {
	if len(p.segs) == 0 {
		p.MoveTo(ctrl)
	}
	p.segs = append(p.segs, Segment{Kind: SegQuad, Ctrl: ctrl, To: to})
}

func (p *Path) Reset() {
	p.segs = p.segs[:0]
}

// Len is the number of segments, moves included.
func (p *Path) Len() int {
	return len(p.segs)
}

// Empty reports whether the path has nothing to stroke.
func (p *Path) Empty() bool {
	for _, s := range p.segs {
		if s.Kind == SegQuad {
			return false
		}
	}
	return true
}

func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segs))
	copy(out, p.segs)
	return out
}

// Last returns the end point of the final segment.
func (p *Path) Last() (Point, bool) {
	if len(p.segs) == 0 {
		return Point{}, false
	}
	return p.segs[len(p.segs)-1].To, true
}

// Clone returns an independent copy.
func (p *Path) Clone() *Path {
	return &Path{segs: p.Segments()}
}

// Bounds returns the integer box covering every point and control point,
// grown by pad on each side. The control hull contains the curve, so the box
// is conservative.
func (p *Path) Bounds(pad float32) image.Rectangle {
	if len(p.segs) == 0 {
		return image.Rectangle{}
	}
	minX, minY := p.segs[0].To.X, p.segs[0].To.Y
	maxX, maxY := minX, minY
	grow := func(pt Point) {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	for _, s := range p.segs {
		grow(s.To)
		if s.Kind == SegQuad {
			grow(s.Ctrl)
		}
	}
	return image.Rect(
		int(math.Floor(float64(minX-pad))),
		int(math.Floor(float64(minY-pad))),
		int(math.Ceil(float64(maxX+pad))),
		int(math.Ceil(float64(maxY+pad))),
	)
}
