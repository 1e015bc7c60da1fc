package geometry

import "point-tagger/internal/models"

// Segment is a line between two canvas positions.
type Segment struct {
	From models.Point
	To   models.Point
}

// Crosshair returns the vertical and horizontal arms centered on a canvas
// point, each clipped to the displayed image.
func (v Viewport) Crosshair(c models.Point) (vertical, horizontal Segment) {
	minX, minY := v.OffsetX, v.OffsetY
	maxX := v.OffsetX + float64(v.Width) - 1
	maxY := v.OffsetY + float64(v.Height) - 1

	x0 := max(c.X-v.CrossHalf, minX)
	x1 := min(c.X+v.CrossHalf, maxX)
	y0 := max(c.Y-v.CrossHalf, minY)
	y1 := min(c.Y+v.CrossHalf, maxY)

	vertical = Segment{From: models.Point{X: c.X, Y: y0}, To: models.Point{X: c.X, Y: y1}}
	horizontal = Segment{From: models.Point{X: x0, Y: c.Y}, To: models.Point{X: x1, Y: c.Y}}
	return vertical, horizontal
}

// Role tells primary landmarks apart for coloring.
type Role int

const (
	RoleFirst Role = iota
	RoleSecond
	RoleOther
)

// RoleOf returns the display role of the point at index i.
func RoleOf(i int) Role {
	switch i {
	case 0:
		return RoleFirst
	case 1:
		return RoleSecond
	default:
		return RoleOther
	}
}
