// Package geometry maps between image and canvas coordinates for an image
// letterboxed into a viewport, and lays out crosshair markers.
package geometry

import (
	"math"

	"point-tagger/internal/models"
)

// Viewport is the placement of an image inside a canvas.
type Viewport struct {
	// Scale converts image pixels to canvas units.
	Scale float64
	// OffsetX and OffsetY locate the image's top-left corner on the canvas.
	OffsetX float64
	OffsetY float64
	// Width and Height are the displayed image size in canvas units.
	Width  int
	Height int
	// CrossHalf is the crosshair arm length and the removal hit radius.
	CrossHalf float64
}

// Fit scales an image of imgW x imgH to fill the limiting dimension of a
// viewW x viewH canvas, keeping its aspect ratio and centering it in the
// other dimension. crossFrac is the full crosshair length as a fraction of
// the smaller displayed dimension. ok is false when either size is empty.
func Fit(imgW, imgH int, viewW, viewH, crossFrac float64) (v Viewport, ok bool) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return Viewport{}, false
	}

	arImg := float64(imgW) / float64(imgH)
	arView := viewW / viewH

	if arImg < arView {
		v.Width = int(arImg * viewH)
		v.Height = int(viewH)
	} else {
		v.Width = int(viewW)
		v.Height = int(viewW / arImg)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return Viewport{}, false
	}

	v.OffsetX = 0.5 * (viewW - float64(v.Width))
	v.OffsetY = 0.5 * (viewH - float64(v.Height))

	scaleW := float64(v.Width) / float64(imgW)
	scaleH := float64(v.Height) / float64(imgH)
	v.Scale = 0.5 * (scaleW + scaleH)

	v.CrossHalf = 0.5 * crossFrac * float64(min(v.Width, v.Height))

	return v, true
}

// ToCanvas maps an image-space point onto the canvas.
func (v Viewport) ToCanvas(p models.Point) models.Point {
	return models.Point{
		X: p.X*v.Scale + v.OffsetX,
		Y: p.Y*v.Scale + v.OffsetY,
	}
}

// ToImage maps a canvas position back into image space.
func (v Viewport) ToImage(x, y float64) models.Point {
	return models.Point{
		X: (x - v.OffsetX) / v.Scale,
		Y: (y - v.OffsetY) / v.Scale,
	}
}

// ToCanvasAll maps a whole point set.
func (v Viewport) ToCanvasAll(ps models.PointSet) models.PointSet {
	out := make(models.PointSet, len(ps))
	for i, p := range ps {
		out[i] = v.ToCanvas(p)
	}
	return out
}

// Contains reports whether a canvas position falls on the displayed image.
func (v Viewport) Contains(x, y float64) bool {
	return x >= v.OffsetX && y >= v.OffsetY &&
		x < v.OffsetX+float64(v.Width) &&
		y < v.OffsetY+float64(v.Height)
}

// Nearest returns the index of the canvas point closest to (x, y) within the
// crosshair radius, or -1.
func (v Viewport) Nearest(canvasPoints models.PointSet, x, y float64) int {
	click := models.Point{X: x, Y: y}
	best := -1
	bestDist := math.Inf(1)
	for i, p := range canvasPoints {
		d := p.Distance(click)
		if d <= v.CrossHalf && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
