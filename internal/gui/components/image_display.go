package components

import (
	"image"
	"image/color"

	"point-tagger/internal/geometry"
	"point-tagger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	BackgroundColor  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	FirstCrossColor  = color.NRGBA{R: 0xff, A: 0xff}
	SecondCrossColor = color.NRGBA{G: 0xff, A: 0xff}
	OtherCrossColor  = color.NRGBA{G: 0xff, B: 0xff, A: 0xff}
)

// CrossColor returns the marker color for a point role
func CrossColor(role geometry.Role) color.Color {
	switch role {
	case geometry.RoleFirst:
		return FirstCrossColor
	case geometry.RoleSecond:
		return SecondCrossColor
	default:
		return OtherCrossColor
	}
}

// ImageDisplay shows the current image letterboxed in its area with a
// crosshair on every landmark, and reports clicks and size changes.
type ImageDisplay struct {
	widget.BaseWidget

	background *canvas.Rectangle
	image      *canvas.Image
	markers    []fyne.CanvasObject
	lineWidth  float32

	onPrimary   func(x, y float32)
	onSecondary func(x, y float32)
	onResize    func(width, height float32)
}

func NewImageDisplay(lineWidth float32) *ImageDisplay {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleSmooth
	img.Hide()

	d := &ImageDisplay{
		background: canvas.NewRectangle(BackgroundColor),
		image:      img,
		lineWidth:  lineWidth,
	}
	d.ExtendBaseWidget(d)
	return d
}

func (d *ImageDisplay) SetPrimaryTapHandler(fn func(x, y float32)) {
	d.onPrimary = fn
}

func (d *ImageDisplay) SetSecondaryTapHandler(fn func(x, y float32)) {
	d.onSecondary = fn
}

func (d *ImageDisplay) SetResizeHandler(fn func(width, height float32)) {
	d.onResize = fn
}

// SetImage replaces the displayed pixels; Render places them.
func (d *ImageDisplay) SetImage(img image.Image) {
	d.image.Image = img
	d.image.Refresh()
}

// Render lays the image out at v and redraws a crosshair per canvas point.
func (d *ImageDisplay) Render(v geometry.Viewport, ok bool, canvasPoints models.PointSet) {
	d.markers = nil

	if !ok || d.image.Image == nil {
		d.image.Hide()
		d.Refresh()
		return
	}

	d.image.Move(fyne.NewPos(float32(v.OffsetX), float32(v.OffsetY)))
	d.image.Resize(fyne.NewSize(float32(v.Width), float32(v.Height)))
	d.image.Show()

	for i, p := range canvasPoints {
		stroke := CrossColor(geometry.RoleOf(i))
		vertical, horizontal := v.Crosshair(p)
		d.markers = append(d.markers, d.line(vertical, stroke), d.line(horizontal, stroke))
	}

	d.Refresh()
}

func (d *ImageDisplay) line(s geometry.Segment, stroke color.Color) *canvas.Line {
	l := canvas.NewLine(stroke)
	l.StrokeWidth = d.lineWidth
	l.Position1 = fyne.NewPos(float32(s.From.X), float32(s.From.Y))
	l.Position2 = fyne.NewPos(float32(s.To.X), float32(s.To.Y))
	return l
}

// Markers returns the crosshair lines currently drawn.
func (d *ImageDisplay) Markers() []fyne.CanvasObject {
	return d.markers
}

func (d *ImageDisplay) Tapped(e *fyne.PointEvent) {
	if d.onPrimary != nil {
		d.onPrimary(e.Position.X, e.Position.Y)
	}
}

func (d *ImageDisplay) TappedSecondary(e *fyne.PointEvent) {
	if d.onSecondary != nil {
		d.onSecondary(e.Position.X, e.Position.Y)
	}
}

func (d *ImageDisplay) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (d *ImageDisplay) CreateRenderer() fyne.WidgetRenderer {
	return &imageDisplayRenderer{display: d}
}

type imageDisplayRenderer struct {
	display *ImageDisplay
	size    fyne.Size
}

func (r *imageDisplayRenderer) Layout(size fyne.Size) {
	r.display.background.Resize(size)
	if size == r.size {
		return
	}
	r.size = size
	if r.display.onResize != nil {
		r.display.onResize(size.Width, size.Height)
	}
}

func (r *imageDisplayRenderer) MinSize() fyne.Size {
	return r.display.MinSize()
}

func (r *imageDisplayRenderer) Refresh() {
	r.display.background.Refresh()
	r.display.image.Refresh()
	for _, m := range r.display.markers {
		m.Refresh()
	}
}

func (r *imageDisplayRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, 2+len(r.display.markers))
	objects = append(objects, r.display.background, r.display.image)
	return append(objects, r.display.markers...)
}

func (r *imageDisplayRenderer) Destroy() {}
