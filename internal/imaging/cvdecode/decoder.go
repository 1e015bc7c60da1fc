// Package cvdecode reads images through OpenCV for formats the Go codecs
// cannot handle (jpeg2000, pnm, OpenEXR and friends).
package cvdecode

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Decoder implements imaging.Decoder on top of gocv.
type Decoder struct{}

func New() Decoder {
	return Decoder{}
}

// Probe decodes the whole file; OpenCV has no header-only read.
func (Decoder) Probe(path string) bool {
	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer mat.Close()
	return validateMat(mat, path) == nil
}

func (Decoder) Decode(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()

	if err := validateMat(mat, path); err != nil {
		return nil, err
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	return img, nil
}
