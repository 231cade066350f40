package state

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	"drawsignature/internal/logger"
	"drawsignature/internal/render"
)

// TouchTolerance is the distance a pointer has to travel on either axis
// before a move extends its path.
const TouchTolerance float32 = 10

// Background is the colour of an empty surface.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Surface is the drawing state behind the signature view: a persistent
// bitmap plus one in-progress path per active pointer.
type Surface struct {
	mu        sync.RWMutex
	bitmap    *image.NRGBA
	composite *image.NRGBA
	pen       render.Pen
	eraser    bool
	scale     float32
	paths     map[PointerID]*render.Path
	last      map[PointerID]render.Point
	ink       inkBounds
	log       zerolog.Logger

	// OnChanged is called after anything visible changed.
	OnChanged func()
}

func NewSurface(width, height int) *Surface {
	s := &Surface{
		pen:   render.DefaultPen(),
		scale: 1,
		paths: make(map[PointerID]*render.Path),
		last:  make(map[PointerID]render.Point),
		log:   logger.For("surface"),
	}
	s.bitmap = newBlank(width, height)
	return s
}

func newBlank(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	render.Fill(img, Background)
	return img
}

func (s *Surface) changed() {
	if s.OnChanged != nil {
		s.OnChanged()
	}
}

// Size returns the bitmap dimensions.
func (s *Surface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.bitmap.Bounds()
	return b.Dx(), b.Dy()
}

// Resize gives the surface a new bitmap. Existing ink is kept in the top-left
// corner and cropped if the surface shrank.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	b := s.bitmap.Bounds()
	if b.Dx() == max(width, 1) && b.Dy() == max(height, 1) {
		s.mu.Unlock()
		return
	}
	next := newBlank(width, height)
	draw.Draw(next, next.Bounds(), s.bitmap, image.Point{}, draw.Src)
	s.bitmap = next
	s.composite = nil
	s.mu.Unlock()

	s.log.Debug().Int("width", width).Int("height", height).Msg("surface resized")
	s.changed()
}

// Dispatch routes a platform pointer event to the matching touch handler.
func (s *Surface) Dispatch(ev Event) {
	s.log.Debug().Stringer("action", ev.Action).Int("pointers", len(ev.Pointers)).Msg("pointer event")

	switch ev.Action {
	case ActionDown, ActionPointerDown:
		if p, ok := ev.changed(); ok {
			s.TouchStarted(p.ID, p.Pos)
		}
	case ActionUp, ActionPointerUp:
		if p, ok := ev.changed(); ok {
			s.TouchEnded(p.ID)
		}
	case ActionCancel:
		for _, p := range ev.Pointers {
			s.TouchCancelled(p.ID)
		}
	case ActionMove:
		for _, p := range ev.Pointers {
			s.TouchMoved(p.ID, p.Pos)
		}
	}
}

// TouchStarted begins (or restarts) the path for a pointer at p.
func (s *Surface) TouchStarted(id PointerID, p render.Point) {
	s.mu.Lock()
	path, ok := s.paths[id]
	if !ok {
		path = &render.Path{}
		s.paths[id] = path
	}
	path.MoveTo(p)
	s.last[id] = p
	s.mu.Unlock()

	s.changed()
}

// TouchMoved extends the pointer's path with a quadratic curve through the
// previous sample, ending halfway to p. Moves under TouchTolerance on both
// axes are dropped. It reports whether the path grew.
func (s *Surface) TouchMoved(id PointerID, p render.Point) bool {
	s.mu.Lock()
	path, ok := s.paths[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	prev := s.last[id]
	dx, dy := abs(p.X-prev.X), abs(p.Y-prev.Y)
	if dx < TouchTolerance && dy < TouchTolerance {
		s.mu.Unlock()
		return false
	}
	path.QuadTo(prev, prev.Mid(p))
	s.last[id] = p
	s.mu.Unlock()

	s.changed()
	return true
}

// TouchEnded commits the pointer's path to the bitmap and forgets the pointer.
// A touch that never moved far enough leaves a dot.
func (s *Surface) TouchEnded(id PointerID) {
	s.mu.Lock()
	path, ok := s.paths[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	pen := s.strokePen()
	if path.Empty() {
		if p, ok := path.Last(); ok {
			render.Dot(s.bitmap, p, pen)
			if !s.eraser {
				s.ink.claim(dotBounds(p, pen.Width))
			}
		}
	} else {
		render.StrokePath(s.bitmap, path, pen)
		if !s.eraser {
			s.ink.claim(path.Bounds(pen.Width/2 + 1))
		}
	}
	delete(s.paths, id)
	delete(s.last, id)
	s.mu.Unlock()

	s.log.Debug().Int("pointer", int(id)).Msg("stroke committed")
	s.changed()
}

// TouchCancelled forgets the pointer without committing its path.
func (s *Surface) TouchCancelled(id PointerID) {
	s.mu.Lock()
	if _, ok := s.paths[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.paths, id)
	delete(s.last, id)
	s.mu.Unlock()

	s.log.Debug().Int("pointer", int(id)).Msg("stroke cancelled")
	s.changed()
}

// Clear drops every active path and erases the bitmap.
func (s *Surface) Clear() {
	s.mu.Lock()
	clear(s.paths)
	clear(s.last)
	render.Fill(s.bitmap, Background)
	s.ink.reset()
	s.mu.Unlock()

	s.log.Info().Msg("surface cleared")
	s.changed()
}

// Active returns the number of pointers currently drawing.
func (s *Surface) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// ActivePath returns a copy of the in-progress path for a pointer.
func (s *Surface) ActivePath(id PointerID) (*render.Path, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Pen returns the style used for new strokes.
func (s *Surface) Pen() render.Pen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pen
}

func (s *Surface) SetPen(p render.Pen) {
	s.mu.Lock()
	p.Width = render.ClampWidth(p.Width)
	s.pen = p
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) Color() color.NRGBA {
	return s.Pen().Color
}

func (s *Surface) SetColor(c color.NRGBA) {
	p := s.Pen()
	p.Color = c
	s.SetPen(p)
}

func (s *Surface) Width() float32 {
	return s.Pen().Width
}

func (s *Surface) SetWidth(w float32) {
	p := s.Pen()
	p.Width = w
	s.SetPen(p)
}

// SetEraser switches between drawing with the pen colour and painting the
// background colour.
func (s *Surface) SetEraser(on bool) {
	s.mu.Lock()
	s.eraser = on
	s.mu.Unlock()
}

func (s *Surface) Eraser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eraser
}

// SetScale sets the number of bitmap pixels per pen width unit. Pointer
// positions are expected in pixels already.
func (s *Surface) SetScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()
}

func (s *Surface) strokePen() render.Pen {
	p := s.pen
	if s.eraser {
		p.Color = Background
	}
	p.Width *= s.scale
	return p
}

// Composite renders the bitmap with every in-progress path on top. The
// returned image is reused by the next call.
func (s *Surface) Composite() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.composite == nil || s.composite.Bounds() != s.bitmap.Bounds() {
		s.composite = image.NewNRGBA(s.bitmap.Bounds())
	}
	copy(s.composite.Pix, s.bitmap.Pix)

	pen := s.strokePen()
	for _, id := range s.activeIDs() {
		path := s.paths[id]
		if path.Empty() {
			if p, ok := path.Last(); ok {
				render.Dot(s.composite, p, pen)
			}
			continue
		}
		render.StrokePath(s.composite, path, pen)
	}
	return s.composite
}

func (s *Surface) activeIDs() []PointerID {
	ids := make([]PointerID, 0, len(s.paths))
	for id := range s.paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Bitmap returns a copy of the committed drawing.
func (s *Surface) Bitmap() *image.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := image.NewNRGBA(s.bitmap.Bounds())
	copy(out.Pix, s.bitmap.Pix)
	return out
}

// InkBounds is the area covered by strokes committed since the last clear,
// clipped to the bitmap. It is empty on a blank surface.
func (s *Surface) InkBounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ink.within(s.bitmap.Bounds())
}

// IsBlank reports whether nothing has been drawn since the last clear.
func (s *Surface) IsBlank() bool {
	return s.InkBounds().Empty()
}

// Load paints img onto the bitmap at the origin, scaled down to fit when it
// is larger than the surface.
func (s *Surface) Load(img image.Image) {
	s.mu.Lock()
	src := img.Bounds()
	dst := s.bitmap.Bounds()
	target := image.Rect(0, 0, src.Dx(), src.Dy())
	if src.Dx() > dst.Dx() || src.Dy() > dst.Dy() {
		scale := min(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
		target = image.Rect(0, 0, int(float64(src.Dx())*scale), int(float64(src.Dy())*scale))
		xdraw.CatmullRom.Scale(s.bitmap, target, img, src, xdraw.Over, nil)
	} else {
		xdraw.Draw(s.bitmap, target, img, src.Min, xdraw.Over)
	}
	s.ink.claim(target)
	s.mu.Unlock()

	s.log.Info().Int("width", target.Dx()).Int("height", target.Dy()).Msg("image loaded")
	s.changed()
}

func dotBounds(p render.Point, width float32) image.Rectangle {
	var path render.Path
	path.MoveTo(p)
	return path.Bounds(width/2 + 1)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
