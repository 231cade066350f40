package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"drawsignature/internal/render"
)

// colorPicker is the body of the "Choose Colors" dialog: one 0..255 slider per
// channel and a swatch that follows them.
type colorPicker struct {
	alpha, red, green, blue *widget.Slider
	swatch                  *canvas.Rectangle
	content                 fyne.CanvasObject
}

func channelSlider(v uint8) *widget.Slider {
	s := widget.NewSlider(0, 255)
	s.Step = 1
	s.Value = float64(v)
	return s
}

func newColorPicker(initial color.NRGBA) *colorPicker {
	p := &colorPicker{
		alpha: channelSlider(initial.A),
		red:   channelSlider(initial.R),
		green: channelSlider(initial.G),
		blue:  channelSlider(initial.B),
	}
	p.swatch = canvas.NewRectangle(initial)
	p.swatch.SetMinSize(fyne.NewSize(280, 48))
	p.swatch.StrokeColor = color.Gray{Y: 150}
	p.swatch.StrokeWidth = 1

	for _, s := range []*widget.Slider{p.alpha, p.red, p.green, p.blue} {
		s.OnChanged = func(float64) { p.update() }
	}
	p.content = container.NewVBox(
		p.swatch,
		widget.NewForm(
			widget.NewFormItem("Alpha", p.alpha),
			widget.NewFormItem("Red", p.red),
			widget.NewFormItem("Green", p.green),
			widget.NewFormItem("Blue", p.blue),
		),
	)
	return p
}

func (p *colorPicker) Color() color.NRGBA {
	return color.NRGBA{
		A: uint8(p.alpha.Value),
		R: uint8(p.red.Value),
		G: uint8(p.green.Value),
		B: uint8(p.blue.Value),
	}
}

func (p *colorPicker) update() {
	p.swatch.FillColor = p.Color()
	p.swatch.Refresh()
}

// showColorDialog opens the modal colour chooser. It can only be left through
// "Set Color".
func showColorDialog(win fyne.Window, initial color.NRGBA, apply func(color.NRGBA)) *colorPicker {
	p := newColorPicker(initial)
	var d dialog.Dialog
	set := widget.NewButton("Set Color", func() {
		apply(p.Color())
		d.Hide()
	})
	set.Importance = widget.HighImportance
	d = dialog.NewCustomWithoutButtons("Choose Colors", container.NewVBox(p.content, set), win)
	d.Show()
	return p
}

// widthPicker is the body of the "Set Line Width" dialog.
type widthPicker struct {
	pen     render.Pen
	slider  *widget.Slider
	label   *widget.Label
	preview *canvas.Image
	content fyne.CanvasObject
}

func newWidthPicker(pen render.Pen) *widthPicker {
	p := &widthPicker{pen: pen}
	p.slider = widget.NewSlider(float64(render.MinWidth), float64(render.MaxWidth))
	p.slider.Step = 1
	p.slider.Value = float64(pen.Width)
	p.label = widget.NewLabel("")
	p.preview = canvas.NewImageFromImage(render.PreviewLine(pen))
	p.preview.FillMode = canvas.ImageFillContain
	p.preview.SetMinSize(fyne.NewSize(render.PreviewWidth, render.PreviewHeight))
	p.slider.OnChanged = func(float64) { p.update() }
	p.setLabel()
	p.content = container.NewVBox(p.preview, p.slider, p.label)
	return p
}

func (p *widthPicker) Width() float32 {
	return render.ClampWidth(float32(p.slider.Value))
}

func (p *widthPicker) setLabel() {
	p.label.SetText(fmt.Sprintf("Width: %.0f", p.Width()))
}

func (p *widthPicker) update() {
	pen := p.pen
	pen.Width = p.Width()
	p.preview.Image = render.PreviewLine(pen)
	p.preview.Refresh()
	p.setLabel()
}

func showWidthDialog(win fyne.Window, pen render.Pen, apply func(float32)) *widthPicker {
	p := newWidthPicker(pen)
	d := dialog.NewCustomConfirm("Set Line Width", "Set Line Width", "Cancel", p.content, func(ok bool) {
		if ok {
			apply(p.Width())
		}
	}, win)
	d.Show()
	return p
}
