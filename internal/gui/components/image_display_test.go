package components

import (
	"image"
	"testing"

	"point-tagger/internal/geometry"
	"point-tagger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
)

func TestImageDisplayReportsResizeOnce(t *testing.T) {
	test.NewApp()

	d := NewImageDisplay(2)
	var calls int
	var got fyne.Size
	d.SetResizeHandler(func(w, h float32) {
		calls++
		got = fyne.NewSize(w, h)
	})

	d.Resize(fyne.NewSize(400, 300))
	d.Resize(fyne.NewSize(400, 300))

	if calls != 1 {
		t.Errorf("resize handler called %d times, want 1", calls)
	}
	if got != fyne.NewSize(400, 300) {
		t.Errorf("size = %v", got)
	}
}

func TestImageDisplayTaps(t *testing.T) {
	test.NewApp()

	d := NewImageDisplay(2)
	var primary, secondary fyne.Position
	d.SetPrimaryTapHandler(func(x, y float32) { primary = fyne.NewPos(x, y) })
	d.SetSecondaryTapHandler(func(x, y float32) { secondary = fyne.NewPos(x, y) })

	d.Tapped(&fyne.PointEvent{Position: fyne.NewPos(10, 20)})
	d.TappedSecondary(&fyne.PointEvent{Position: fyne.NewPos(30, 40)})

	if primary != fyne.NewPos(10, 20) {
		t.Errorf("primary = %v", primary)
	}
	if secondary != fyne.NewPos(30, 40) {
		t.Errorf("secondary = %v", secondary)
	}
}

func TestImageDisplayRender(t *testing.T) {
	test.NewApp()

	d := NewImageDisplay(2)
	d.Resize(fyne.NewSize(400, 400))
	d.SetImage(image.NewRGBA(image.Rect(0, 0, 200, 100)))

	vp, ok := geometry.Fit(200, 100, 400, 400, 0.05)
	pts := vp.ToCanvasAll(models.PointSet{{X: 10, Y: 10}, {X: 100, Y: 50}, {X: 190, Y: 90}})
	d.Render(vp, ok, pts)

	markers := d.Markers()
	if len(markers) != 6 {
		t.Fatalf("markers = %d, want 6", len(markers))
	}

	wantColors := []any{FirstCrossColor, FirstCrossColor, SecondCrossColor, SecondCrossColor, OtherCrossColor, OtherCrossColor}
	for i, m := range markers {
		line := m.(*canvas.Line)
		if line.StrokeColor != wantColors[i] {
			t.Errorf("marker %d color = %v, want %v", i, line.StrokeColor, wantColors[i])
		}
		if line.StrokeWidth != 2 {
			t.Errorf("marker %d width = %v", i, line.StrokeWidth)
		}
	}

	objects := test.WidgetRenderer(d).Objects()
	if len(objects) != 2+len(markers) {
		t.Errorf("renderer objects = %d, want background, image and markers", len(objects))
	}

	if d.image.Position() != fyne.NewPos(0, 100) || d.image.Size() != fyne.NewSize(400, 200) {
		t.Errorf("image placed at %v size %v", d.image.Position(), d.image.Size())
	}

	d.Render(vp, false, nil)
	if len(d.Markers()) != 0 || d.image.Visible() {
		t.Error("markers or image left after rendering without a viewport")
	}
}
