// Package imaging decides which files are images and decodes them for display.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned when no decoder in a chain accepts a file.
var ErrUnsupported = errors.New("unsupported image format")

// Decoder probes and decodes image files.
type Decoder interface {
	// Probe reports whether path holds an image this decoder can read.
	Probe(path string) bool
	Decode(path string) (image.Image, error)
}

// StdDecoder uses the codecs registered with the image package: gif, jpeg,
// png, bmp, tiff and webp.
type StdDecoder struct{}

func (StdDecoder) Probe(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	return err == nil && cfg.Width > 0 && cfg.Height > 0
}

func (StdDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Chain tries each decoder in order.
type Chain []Decoder

func (c Chain) Probe(path string) bool {
	for _, d := range c {
		if d.Probe(path) {
			return true
		}
	}
	return false
}

func (c Chain) Decode(path string) (image.Image, error) {
	var errs []error
	for _, d := range c {
		if !d.Probe(path) {
			continue
		}
		img, err := d.Decode(path)
		if err == nil {
			return img, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	return nil, errors.Join(errs...)
}
