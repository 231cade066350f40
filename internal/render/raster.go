package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Preview geometry used by the line width dialog.
const (
	PreviewWidth  = 400
	PreviewHeight = 100
)

func toFixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}

func scanner(dst draw.Image) (*rasterx.ScannerGV, int, int) {
	b := dst.Bounds()
	return rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b), b.Dx(), b.Dy()
}

func dasher(dst draw.Image, pen Pen) *rasterx.Dasher {
	sc, w, h := scanner(dst)
	d := rasterx.NewDasher(w, h, sc)
	d.SetStroke(
		fixed.Int26_6(ClampWidth(pen.Width)*64),
		fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round,
		nil, 0)
	d.SetColor(pen.Color)
	return d
}

// StrokePath rasterises path onto dst with the pen, antialiased, composited
// over what is already there.
func StrokePath(dst draw.Image, path *Path, pen Pen) {
	if path == nil || path.Empty() {
		return
	}
	d := dasher(dst, pen)
	open := false
	for _, s := range path.segs {
		switch s.Kind {
		case SegMove:
			if open {
				d.Stop(false)
			}
			d.Start(toFixed(s.To))
			open = true
		case SegQuad:
			d.QuadBezier(toFixed(s.Ctrl), toFixed(s.To))
		}
	}
	if open {
		d.Stop(false)
	}
	d.Draw()
	d.Clear()
}

// Line strokes a straight segment from a to b.
func Line(dst draw.Image, a, b Point, pen Pen) {
	d := dasher(dst, pen)
	d.Start(toFixed(a))
	d.Line(toFixed(b))
	d.Stop(false)
	d.Draw()
	d.Clear()
}

// Dot fills a disc of diameter pen.Width centred on p.
func Dot(dst draw.Image, p Point, pen Pen) {
	sc, w, h := scanner(dst)
	f := rasterx.NewFiller(w, h, sc)
	f.SetColor(pen.Color)
	rasterx.AddCircle(float64(p.X), float64(p.Y), float64(ClampWidth(pen.Width))/2, f)
	f.Draw()
	f.Clear()
}

// Fill paints the whole image with c.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// PreviewLine renders the sample stroke shown while choosing a line width.
func PreviewLine(pen Pen) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, PreviewWidth, PreviewHeight))
	Fill(img, color.White)
	Line(img, Point{X: 30, Y: 50}, Point{X: 350, Y: 50}, pen)
	return img
}
