package geometry

import (
	"math"
	"testing"

	"point-tagger/internal/models"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFitImageNarrowerThanViewport(t *testing.T) {
	// 100x200 portrait image in a 400x300 landscape viewport: height limits.
	v, ok := Fit(100, 200, 400, 300, 0.05)
	if !ok {
		t.Fatal("Fit returned !ok")
	}

	if v.Height != 300 {
		t.Errorf("Height = %d, want viewport height 300", v.Height)
	}
	if v.Width != 150 {
		t.Errorf("Width = %d, want 150", v.Width)
	}
	if !near(v.OffsetX, 125) || !near(v.OffsetY, 0) {
		t.Errorf("offset = (%g, %g), want (125, 0)", v.OffsetX, v.OffsetY)
	}
	if !near(v.Scale, 1.5) {
		t.Errorf("Scale = %g, want 1.5", v.Scale)
	}
	if !near(v.CrossHalf, 0.5*0.05*150) {
		t.Errorf("CrossHalf = %g", v.CrossHalf)
	}
}

func TestFitImageWiderThanViewport(t *testing.T) {
	// 400x100 image in a 200x200 viewport: width limits.
	v, ok := Fit(400, 100, 200, 200, 0.05)
	if !ok {
		t.Fatal("Fit returned !ok")
	}

	if v.Width != 200 || v.Height != 50 {
		t.Errorf("size = %dx%d, want 200x50", v.Width, v.Height)
	}
	if !near(v.OffsetX, 0) || !near(v.OffsetY, 75) {
		t.Errorf("offset = (%g, %g), want (0, 75)", v.OffsetX, v.OffsetY)
	}
	if !near(v.Scale, 0.5) {
		t.Errorf("Scale = %g, want 0.5", v.Scale)
	}
}

func TestFitEmpty(t *testing.T) {
	cases := [][4]float64{
		{0, 10, 10, 10},
		{10, 10, 0, 10},
		{10, 10, 10, -1},
	}
	for _, c := range cases {
		if _, ok := Fit(int(c[0]), int(c[1]), c[2], c[3], 0.05); ok {
			t.Errorf("Fit(%v) ok, want !ok", c)
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	v, _ := Fit(640, 480, 1000, 600, 0.05)

	p := models.Point{X: 123.25, Y: 400.5}
	c := v.ToCanvas(p)
	back := v.ToImage(c.X, c.Y)

	if !near(back.X, p.X) || !near(back.Y, p.Y) {
		t.Errorf("round trip %v -> %v -> %v", p, c, back)
	}
}

func TestContains(t *testing.T) {
	v, _ := Fit(100, 200, 400, 300, 0.05) // image spans x in [125, 275), y in [0, 300)

	tests := []struct {
		x, y float64
		want bool
	}{
		{125, 0, true},
		{274.9, 299.9, true},
		{124.9, 10, false},
		{275, 10, false},
		{200, 300, false},
	}
	for _, tt := range tests {
		if got := v.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNearest(t *testing.T) {
	v := Viewport{CrossHalf: 10, Width: 500, Height: 500}
	pts := models.PointSet{{X: 100, Y: 100}, {X: 108, Y: 100}, {X: 300, Y: 300}}

	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"closest of two candidates", 106, 100, 1},
		{"single candidate", 95, 100, 0},
		{"on the radius", 310, 300, 2},
		{"outside every radius", 200, 200, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Nearest(pts, tt.x, tt.y); got != tt.want {
				t.Errorf("Nearest = %d, want %d", got, tt.want)
			}
		})
	}

	if got := v.Nearest(nil, 1, 1); got != -1 {
		t.Errorf("Nearest(empty) = %d", got)
	}
}

func TestCrosshairClipped(t *testing.T) {
	v := Viewport{OffsetX: 10, OffsetY: 20, Width: 100, Height: 50, CrossHalf: 8}

	vert, horiz := v.Crosshair(models.Point{X: 12, Y: 65})

	if vert.From != (models.Point{X: 12, Y: 57}) || vert.To != (models.Point{X: 12, Y: 69}) {
		t.Errorf("vertical = %+v", vert)
	}
	if horiz.From != (models.Point{X: 10, Y: 65}) || horiz.To != (models.Point{X: 20, Y: 65}) {
		t.Errorf("horizontal = %+v", horiz)
	}
}

func TestRoleOf(t *testing.T) {
	if RoleOf(0) != RoleFirst || RoleOf(1) != RoleSecond || RoleOf(2) != RoleOther || RoleOf(7) != RoleOther {
		t.Error("unexpected roles")
	}
}
