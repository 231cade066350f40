package state

import "image"

// inkBounds accumulates the area covered by committed strokes so exports can
// be trimmed to the signature.
type inkBounds struct {
	area  image.Rectangle
	valid bool
}

func (b *inkBounds) claim(r image.Rectangle) {
	if r.Empty() {
		return
	}
	if !b.valid {
		b.area = r
		b.valid = true
		return
	}
	b.area = b.area.Union(r)
}

func (b *inkBounds) reset() {
	b.area = image.Rectangle{}
	b.valid = false
}

// within clips the accumulated area to the bitmap.
func (b *inkBounds) within(limit image.Rectangle) image.Rectangle {
	if !b.valid {
		return image.Rectangle{}
	}
	return b.area.Intersect(limit)
}
