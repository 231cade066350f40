package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Quick picks shown next to the toolbar; anything else goes through the
// colour dialog.
var palette = []color.NRGBA{
	{A: 255},
	{R: 255, A: 255},
	{G: 160, A: 255},
	{B: 255, A: 255},
	{R: 20, G: 40, B: 120, A: 255},
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the action bar above the signature view.
func NewToolbar(c *Controller) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ColorPaletteIcon(), c.ShowColorDialog),
		widget.NewToolbarAction(theme.MoreHorizontalIcon(), c.ShowWidthDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), c.Clear),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), c.Save),
		widget.NewToolbarAction(theme.FolderOpenIcon(), c.ShowOpenDialog),
	)

	swatches := container.NewHBox()
	for _, col := range palette {
		swatches.Add(newColorSwatch(col, c.SetColor))
	}

	eraser := widget.NewCheck("Eraser", c.SetEraser)
	c.eraserCheck = eraser

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		eraser,
		layout.NewSpacer(),
	)
}
