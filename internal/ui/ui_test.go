package ui

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"drawsignature/internal/config"
	"drawsignature/internal/render"
	"drawsignature/internal/state"
)

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: b}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func drawLine(v *SignatureView) {
	v.MouseDown(mouse(20, 40, desktop.MouseButtonPrimary))
	v.Dragged(drag(60, 40))
	v.Dragged(drag(120, 40))
	v.DragEnd()
}

func newTestController(t *testing.T, outDir string) (*Controller, fyne.App) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	cfg := config.Default()
	cfg.OutputDir = outDir
	cfg.Width, cfg.Height = 300, 300
	w := test.NewWindow(widget.NewLabel(""))
	c := NewController(a, w, cfg)
	w.SetContent(c.Content())
	c.MainMenu()
	return c, a
}

func TestViewMouseStroke(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := state.NewSurface(300, 300)
	v := NewSignatureView(s)
	w := test.NewWindow(v)
	defer w.Close()

	v.MouseDown(mouse(20, 40, desktop.MouseButtonPrimary))
	v.Dragged(drag(60, 40))
	if s.Active() != 1 {
		t.Fatalf("Active = %d during drag", s.Active())
	}
	path, _ := s.ActivePath(primaryPointer)
	if path.Empty() {
		t.Fatal("drag should extend the path")
	}
	v.DragEnd()
	v.MouseUp(mouse(60, 40, desktop.MouseButtonPrimary))
	if s.Active() != 0 {
		t.Fatal("stroke should be committed on release")
	}
	if s.IsBlank() {
		t.Fatal("committed stroke should ink the surface")
	}
}

func TestViewIgnoresSecondaryButton(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := state.NewSurface(100, 100)
	v := NewSignatureView(s)
	v.MouseDown(mouse(10, 10, desktop.MouseButtonSecondary))
	v.Dragged(drag(50, 50))
	if s.Active() != 0 {
		t.Fatal("secondary button must not draw")
	}
}

func TestViewTouch(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := state.NewSurface(100, 100)
	v := NewSignatureView(s)
	v.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}})
	v.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}})
	if s.IsBlank() {
		t.Fatal("a tap should leave a dot")
	}

	v.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	v.TouchCancel(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	if s.Active() != 0 {
		t.Fatal("cancel should end the touch")
	}
	if c := s.Bitmap().NRGBAAt(10, 10); c != state.Background {
		t.Fatalf("cancelled touch left ink: %v", c)
	}
}

func TestViewUsesDevicePixels(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := state.NewSurface(10, 10)
	v := NewSignatureView(s)
	w := test.NewWindow(v)
	defer w.Close()
	w.Canvas().(test.WindowlessCanvas).SetScale(2)
	w.Resize(fyne.NewSize(400, 360))

	size := v.Size()
	if gw, gh := s.Size(); gw != int(size.Width*2) || gh != int(size.Height*2) {
		t.Fatalf("surface %dx%d for a %v view at scale 2", gw, gh, size)
	}

	v.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 30)}})
	v.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 30)}})
	bmp := s.Bitmap()
	if c := bmp.NRGBAAt(60, 60); c.R > 128 {
		t.Fatalf("tap should land at device pixel (60,60), got %v", c)
	}
	if c := bmp.NRGBAAt(30, 30); c != state.Background {
		t.Fatalf("nothing should be drawn at the unscaled position, got %v", c)
	}
}

func TestSaveProducesFile(t *testing.T) {
	dir := t.TempDir()
	c, _ := newTestController(t, dir)
	drawLine(c.View())

	path, err := c.SaveNow()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("saved image is empty")
	}
	if !strings.HasPrefix(c.status.Text(), "Image saved: ") {
		t.Fatalf("status = %q", c.status.Text())
	}
}

func TestSaveFailureNotifies(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := newTestController(t, filepath.Join(blocker, "out"))

	if _, err := c.SaveNow(); err == nil {
		t.Fatal("expected save to fail")
	}
	if got, want := c.status.Text(), "Image not saved: could not create the output folder"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

type brokenWriter struct{ uri fyne.URI }

func (w brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (w brokenWriter) Close() error              { return nil }
func (w brokenWriter) URI() fyne.URI             { return w.uri }

func TestSaveToFailureNotifies(t *testing.T) {
	c, _ := newTestController(t, t.TempDir())
	drawLine(c.View())

	w := brokenWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), "sig.png"))}
	if err := c.SaveTo(w); err == nil {
		t.Fatal("expected save as to fail")
	}
	if got, want := c.status.Text(), "Image not saved: could not write the file"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestClearEmptiesCanvas(t *testing.T) {
	c, _ := newTestController(t, t.TempDir())
	drawLine(c.View())
	if c.Surface().IsBlank() {
		t.Fatal("setup: expected ink")
	}
	c.Clear()
	if !c.Surface().IsBlank() {
		t.Fatal("clear should empty the canvas")
	}
	if c.status.Text() != "Canvas cleared" {
		t.Fatalf("status = %q", c.status.Text())
	}
}

func TestSetColorPersistsPen(t *testing.T) {
	c, a := newTestController(t, t.TempDir())
	c.SetEraser(true)

	red := color.NRGBA{R: 255, A: 255}
	c.SetColor(red)
	c.SetWidth(14)

	pen := config.LoadPen(a.Preferences())
	if pen.Color != red || pen.Width != 14 {
		t.Fatalf("persisted pen = %+v", pen)
	}
	if c.Surface().Eraser() {
		t.Fatal("picking a colour should leave eraser mode")
	}
}

func TestEraserToggleSyncsControls(t *testing.T) {
	c, _ := newTestController(t, t.TempDir())
	c.SetEraser(true)
	if !c.eraserCheck.Checked || !c.eraserItem.Checked {
		t.Fatal("check box and menu item should follow eraser mode")
	}
	c.eraserItem.Action()
	if c.Surface().Eraser() || c.eraserCheck.Checked {
		t.Fatal("menu item should toggle eraser off")
	}
}

func TestColorPicker(t *testing.T) {
	p := newColorPicker(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	if got := p.Color(); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Fatalf("initial colour = %v", got)
	}
	p.red.SetValue(200)
	p.alpha.SetValue(128)
	p.update()
	want := color.NRGBA{R: 200, G: 2, B: 3, A: 128}
	if p.Color() != want {
		t.Fatalf("Color = %v, want %v", p.Color(), want)
	}
	if p.swatch.FillColor != want {
		t.Fatalf("swatch = %v", p.swatch.FillColor)
	}
}

func TestWidthPicker(t *testing.T) {
	p := newWidthPicker(render.Pen{Color: color.NRGBA{G: 255, A: 255}, Width: 5})
	p.slider.SetValue(30)
	p.update()
	if p.Width() != 30 {
		t.Fatalf("Width = %v", p.Width())
	}
	if p.label.Text != "Width: 30" {
		t.Fatalf("label = %q", p.label.Text)
	}
	img := p.preview.Image.(*image.NRGBA)
	if c := img.NRGBAAt(190, 50); c.G != 255 || c.R > 10 {
		t.Fatalf("preview line colour = %v", c)
	}
}

func TestDialogsOpen(t *testing.T) {
	c, _ := newTestController(t, t.TempDir())
	c.ShowColorDialog()
	c.ShowWidthDialog()
	if len(c.window.Canvas().Overlays().List()) == 0 {
		t.Fatal("dialogs should be shown as overlays")
	}
}

func TestLoadFrom(t *testing.T) {
	c, _ := newTestController(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "in.png")
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	render.Fill(img, color.NRGBA{B: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	r, err := storage.Reader(storage.NewFileURI(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFrom(r); err != nil {
		t.Fatal(err)
	}
	if c.Surface().IsBlank() {
		t.Fatal("loaded image should count as ink")
	}
}

func TestLoadFromRejectsGarbage(t *testing.T) {
	c, _ := newTestController(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := storage.Reader(storage.NewFileURI(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFrom(r); err == nil {
		t.Fatal("expected a decode error")
	}
	if c.status.Text() != "Image not loaded: not a supported image" {
		t.Fatalf("status = %q", c.status.Text())
	}
}

func TestNotifierKeepsLatest(t *testing.T) {
	n := newNotifier()
	n.Notify("first")
	n.Notify("second")
	if n.Text() != "second" {
		t.Fatalf("Text = %q", n.Text())
	}
}
