package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"drawsignature/internal/logger"
	"drawsignature/internal/render"
	"drawsignature/internal/state"
)

// Fyne reports a single pointer for both mouse and touch input.
const primaryPointer state.PointerID = 0

// SignatureView displays a state.Surface and feeds it pointer input.
type SignatureView struct {
	widget.BaseWidget
	surface *state.Surface
	log     zerolog.Logger

	// pixels per Fyne unit on the canvas the view was last laid out on
	scale float32
}

var _ fyne.Widget = (*SignatureView)(nil)
var _ fyne.Draggable = (*SignatureView)(nil)
var _ desktop.Mouseable = (*SignatureView)(nil)
var _ mobile.Touchable = (*SignatureView)(nil)

func NewSignatureView(s *state.Surface) *SignatureView {
	v := &SignatureView{surface: s, log: logger.For("view"), scale: 1}
	v.ExtendBaseWidget(v)
	s.OnChanged = v.Refresh
	return v
}

func (v *SignatureView) Surface() *state.Surface {
	return v.surface
}

func (v *SignatureView) toPoint(p fyne.Position) render.Point {
	return render.Point{X: p.X * v.scale, Y: p.Y * v.scale}
}

func (v *SignatureView) canvasScale() float32 {
	if c := fyne.CurrentApp().Driver().CanvasForObject(v); c != nil && c.Scale() > 0 {
		return c.Scale()
	}
	return 1
}

func (v *SignatureView) dispatch(a state.Action, pos fyne.Position) {
	v.surface.Dispatch(state.Event{
		Action:   a,
		Pointers: []state.Pointer{{ID: primaryPointer, Pos: v.toPoint(pos)}},
	})
}

func (v *SignatureView) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		v.dispatch(state.ActionDown, e.Position)
	}
}

func (v *SignatureView) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		v.dispatch(state.ActionUp, e.Position)
	}
}

func (v *SignatureView) Dragged(e *fyne.DragEvent) {
	v.dispatch(state.ActionMove, e.Position)
}

// DragEnd commits the stroke; it is a no-op when MouseUp already did.
func (v *SignatureView) DragEnd() {
	v.surface.Dispatch(state.Event{
		Action:   state.ActionUp,
		Pointers: []state.Pointer{{ID: primaryPointer}},
	})
}

func (v *SignatureView) TouchDown(e *mobile.TouchEvent) {
	v.dispatch(state.ActionDown, e.Position)
}

func (v *SignatureView) TouchUp(e *mobile.TouchEvent) {
	v.dispatch(state.ActionUp, e.Position)
}

func (v *SignatureView) TouchCancel(e *mobile.TouchEvent) {
	v.log.Debug().Msg("touch cancelled")
	v.dispatch(state.ActionCancel, e.Position)
}

func (v *SignatureView) CreateRenderer() fyne.WidgetRenderer {
	r := &signatureRenderer{view: v}
	r.background = canvas.NewRectangle(color.White)
	r.image = canvas.NewImageFromImage(v.surface.Composite())
	r.image.FillMode = canvas.ImageFillStretch
	return r
}

type signatureRenderer struct {
	view       *SignatureView
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *signatureRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

// Layout sizes the bitmap to the widget in device pixels.
func (r *signatureRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)

	v := r.view
	if scale := v.canvasScale(); scale != v.scale {
		v.log.Debug().Float32("scale", scale).Msg("canvas scale changed")
		v.scale = scale
	}
	v.surface.SetScale(v.scale)
	v.surface.Resize(int(size.Width*v.scale), int(size.Height*v.scale))
}

func (r *signatureRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *signatureRenderer) Refresh() {
	r.image.Image = r.view.surface.Composite()
	canvas.Refresh(r.image)
}

func (r *signatureRenderer) Destroy() {}
