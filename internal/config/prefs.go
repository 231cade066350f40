package config

import (
	"image/color"

	"fyne.io/fyne/v2"

	"drawsignature/internal/render"
)

const (
	keyPenColor = "pen.color"
	keyPenWidth = "pen.width"
)

// PackColor stores a colour as 0xAARRGGBB.
func PackColor(c color.NRGBA) int {
	return int(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

func UnpackColor(v int) color.NRGBA {
	u := uint32(v)
	return color.NRGBA{
		A: uint8(u >> 24),
		R: uint8(u >> 16),
		G: uint8(u >> 8),
		B: uint8(u),
	}
}

// LoadPen reads the last used pen, falling back to the default one.
func LoadPen(p fyne.Preferences) render.Pen {
	def := render.DefaultPen()
	if p == nil {
		return def
	}
	return render.Pen{
		Color: UnpackColor(p.IntWithFallback(keyPenColor, PackColor(def.Color))),
		Width: render.ClampWidth(float32(p.FloatWithFallback(keyPenWidth, float64(def.Width)))),
	}
}

func SavePen(p fyne.Preferences, pen render.Pen) {
	if p == nil {
		return
	}
	p.SetInt(keyPenColor, PackColor(pen.Color))
	p.SetFloat(keyPenWidth, float64(pen.Width))
}
