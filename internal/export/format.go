package export

import (
	"fmt"
	"strings"

	"drawsignature/internal/apperrors"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
)

var formats = []Format{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF, FormatPDF}

// Formats lists every supported output format, PNG first.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", apperrors.Validation(fmt.Sprintf("unsupported image format %q", s))
}

// FormatFromExt maps a file extension (with or without the dot) to a format.
func FormatFromExt(ext string) (Format, bool) {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tiff"
	case FormatPDF:
		return ".pdf"
	}
	return ".png"
}

func (f Format) MimeType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatPDF:
		return "application/pdf"
	}
	return "image/png"
}
