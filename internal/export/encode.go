package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"drawsignature/internal/apperrors"
)

const DefaultQuality = 100

// Options controls how a drawing is written out.
type Options struct {
	Format  Format
	Quality int  // JPEG quality, 1..100
	Trim    bool // crop to the inked area
	Padding int  // margin kept around the ink when trimming
}

func DefaultOptions() Options {
	return Options{Format: FormatPNG, Quality: DefaultQuality, Padding: 16}
}

func (o Options) quality() int {
	if o.Quality < 1 || o.Quality > 100 {
		return DefaultQuality
	}
	return o.Quality
}

// Crop returns the part of img inside r, grown by pad and clipped to the
// image. An empty r leaves img untouched.
func Crop(img image.Image, r image.Rectangle, pad int) image.Image {
	if r.Empty() {
		return img
	}
	r = r.Inset(-pad).Intersect(img.Bounds())
	if r.Empty() {
		return img
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// flatten composites img over white so formats without alpha keep the look.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, opts Options) error {
	var err error
	switch opts.Format {
	case FormatPNG, "":
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: opts.quality()})
	case FormatBMP:
		err = bmp.Encode(w, flatten(img))
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatPDF:
		err = encodePDF(w, img)
	default:
		return apperrors.Validation(fmt.Sprintf("unsupported image format %q", opts.Format))
	}
	if err != nil {
		return apperrors.New(apperrors.KindEncode, "could not encode the image", err)
	}
	return nil
}

// encodePDF writes a single page the size of the image, in points, with the
// drawing embedded as a PNG. Portrait keeps gofpdf from swapping the sides.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, flatten(img)); err != nil {
		return err
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("signature", opts, &buf)
	p.ImageOptions("signature", 0, 0, wd, ht, false, opts, 0, "")
	if p.Err() {
		return p.Error()
	}
	return p.Output(w)
}
