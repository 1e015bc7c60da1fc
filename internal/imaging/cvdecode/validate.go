package cvdecode

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MaxDimension bounds either side of an image read through OpenCV.
const MaxDimension = 32768

func validateMat(mat gocv.Mat, path string) error {
	if mat.Empty() {
		return fmt.Errorf("opencv could not read %s", path)
	}
	return checkDimensions(mat.Cols(), mat.Rows(), path)
}

func checkDimensions(width, height int, path string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for %s", width, height, path)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("dimensions %dx%d of %s exceed %d", width, height, path, MaxDimension)
	}
	return nil
}
