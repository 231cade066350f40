package ui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"drawsignature/internal/apperrors"
	"drawsignature/internal/export"
)

var openFilter = storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"})

func (c *Controller) outputDir() string {
	if c.cfg.OutputDir != "" {
		return c.cfg.OutputDir
	}
	return c.app.Storage().RootURI().Path()
}

// Save writes the drawing into the output directory and reports the outcome
// in the status bar.
func (c *Controller) Save() {
	_, _ = c.SaveNow()
}

func (c *Controller) SaveNow() (string, error) {
	path, err := export.SaveToDir(c.outputDir(), c.surface.Bitmap(), c.surface.InkBounds(), c.cfg.ExportOptions())
	if err != nil {
		c.log.Error().Err(err).Str("dir", c.outputDir()).Msg("save failed")
		c.status.Notify("Image not saved: " + apperrors.UserMessage(err))
		return "", err
	}
	c.status.Notify("Image saved: " + path)
	return path, nil
}

func (c *Controller) ShowSaveAsDialog() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.window)
			return
		}
		if w == nil {
			return
		}
		c.SaveTo(w)
	}, c.window)
	d.SetFileName(export.FileName(time.Now(), c.cfg.Format))
	d.Show()
}

// SaveTo writes the drawing to a user-chosen location.
func (c *Controller) SaveTo(w fyne.URIWriteCloser) error {
	uri := w.URI().String()
	if err := export.WriteTo(w, c.surface.Bitmap(), c.surface.InkBounds(), c.cfg.ExportOptions()); err != nil {
		c.log.Error().Err(err).Str("uri", uri).Msg("save as failed")
		c.status.Notify("Image not saved: " + apperrors.UserMessage(err))
		return err
	}
	c.status.Notify("Image saved: " + uri)
	return nil
}

func (c *Controller) ShowOpenDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.window)
			return
		}
		if r == nil {
			return
		}
		_ = c.LoadFrom(r)
	}, c.window)
	d.SetFilter(openFilter)
	d.Show()
}

// LoadFrom decodes an image and paints it onto the canvas. The reader is
// closed.
func (c *Controller) LoadFrom(r fyne.URIReadCloser) error {
	defer func() {
		if err := r.Close(); err != nil {
			c.log.Warn().Err(err).Msg("closing reader")
		}
	}()

	img, format, err := image.Decode(r)
	if err != nil {
		err = apperrors.New(apperrors.KindValidation, "not a supported image", fmt.Errorf("decode %s: %w", r.URI().Name(), err))
		c.log.Error().Err(err).Msg("load failed")
		c.status.Notify("Image not loaded: " + apperrors.UserMessage(err))
		return err
	}
	c.surface.Load(img)
	c.log.Info().Str("uri", r.URI().String()).Str("format", format).Msg("image opened")
	c.status.Notify("Loaded " + r.URI().Name())
	return nil
}
