package components

import (
	"testing"

	"point-tagger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func renderRow(il *ImageList, id int) (mark, name string) {
	item := il.list.CreateItem()
	il.list.UpdateItem(id, item)
	m, n := rowLabels(item)
	return m.Text, n.Text
}

func TestImageListRows(t *testing.T) {
	test.NewApp()

	entries := []models.ImageEntry{
		{Path: "/img/a.png", Name: "a.png"},
		{Path: "/img/sub/b.png", Name: "sub/b.png", Labeled: true},
	}
	il := NewImageList(func() []models.ImageEntry { return entries })

	if n := il.list.Length(); n != 2 {
		t.Fatalf("Length = %d, want 2", n)
	}

	tests := []struct {
		id       int
		wantMark string
		wantName string
	}{
		{0, " ", "a.png"},
		{1, LabeledMark, "sub/b.png"},
	}
	for _, tt := range tests {
		mark, name := renderRow(il, tt.id)
		if mark != tt.wantMark || name != tt.wantName {
			t.Errorf("row %d = (%q, %q), want (%q, %q)", tt.id, mark, name, tt.wantMark, tt.wantName)
		}
	}

	entries[0].Labeled = true
	entries[1].Labeled = false
	if mark, _ := renderRow(il, 0); mark != LabeledMark {
		t.Errorf("row 0 mark after labeling = %q", mark)
	}
	if mark, _ := renderRow(il, 1); mark != " " {
		t.Errorf("row 1 mark after unlabeling = %q", mark)
	}
}

func TestImageListSelectFromCodeIsSilent(t *testing.T) {
	test.NewApp()

	entries := []models.ImageEntry{{Name: "a.png"}, {Name: "b.png"}}
	il := NewImageList(func() []models.ImageEntry { return entries })

	var picked []int
	il.SetSelectHandler(func(i int) { picked = append(picked, i) })

	il.Select(1)
	if len(picked) != 0 {
		t.Errorf("handler called for programmatic select: %v", picked)
	}

	il.list.Select(0)
	if len(picked) != 1 || picked[0] != 0 {
		t.Errorf("picked = %v, want [0]", picked)
	}
}

func TestImageListForwardsArrowKeys(t *testing.T) {
	test.NewApp()

	entries := []models.ImageEntry{{Name: "a.png"}, {Name: "b.png"}}
	il := NewImageList(func() []models.ImageEntry { return entries })

	var moves []int
	il.SetNavigateHandler(func(delta int) { moves = append(moves, delta) })

	il.list.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDown})
	il.list.TypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})
	il.list.TypedKey(&fyne.KeyEvent{Name: fyne.KeySpace})

	if len(moves) != 2 || moves[0] != 1 || moves[1] != -1 {
		t.Errorf("moves = %v, want [1 -1]", moves)
	}
}
