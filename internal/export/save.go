package export

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"drawsignature/internal/apperrors"
	"drawsignature/internal/logger"
)

const filePrefix = "signature"

// FileName builds a unique name such as signature-20261019-142501-1a2b3c4d.png.
func FileName(now time.Time, f Format) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s%s", filePrefix, now.Format("20060102-150405"), id, f.Ext())
}

// Render encodes img into memory, applying the trim options. bounds is the
// inked area, used only when opts.Trim is set.
func Render(img image.Image, bounds image.Rectangle, opts Options) ([]byte, error) {
	if opts.Trim {
		img = Crop(img, bounds, opts.Padding)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, apperrors.New(apperrors.KindEncode, "the encoder produced no data", nil)
	}
	return buf.Bytes(), nil
}

// SaveToDir writes the drawing into dir under a fresh file name and returns
// the full path.
func SaveToDir(dir string, img image.Image, bounds image.Rectangle, opts Options) (string, error) {
	log := logger.For("export")

	data, err := Render(img, bounds, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.New(apperrors.KindIO, "could not create the output folder", err)
	}
	path := filepath.Join(dir, FileName(time.Now(), opts.Format))
	if err := replaceFile(path, data); err != nil {
		return "", apperrors.New(apperrors.KindIO, "could not write the file", err)
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Str("format", string(opts.Format)).Msg("image saved")
	return path, nil
}

// WriteTo saves into a writer picked by the user. The format follows the
// URI extension when it names one, opts.Format otherwise. The writer is
// always closed.
func WriteTo(writer fyne.URIWriteCloser, img image.Image, bounds image.Rectangle, opts Options) (err error) {
	log := logger.For("export")
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = apperrors.New(apperrors.KindIO, "could not finish writing the file", cerr)
		}
	}()

	if f, ok := FormatFromExt(writer.URI().Extension()); ok {
		opts.Format = f
	}
	data, err := Render(img, bounds, opts)
	if err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return apperrors.New(apperrors.KindIO, "could not write the file", err)
	}

	log.Info().Str("uri", writer.URI().String()).Int("bytes", len(data)).Msg("image written")
	return nil
}

// replaceFile stages data in a hidden file next to path and renames it into
// place once it is synced.
func replaceFile(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	// CreateTemp opens with 0600.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	committed = true

	if err := syncDir(dir); err != nil {
		log := logger.For("export")
		log.Warn().Err(err).Str("dir", dir).Msg("directory fsync failed")
	}
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
