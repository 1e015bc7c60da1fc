package components

import (
	"point-tagger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LabeledMark flags list rows whose image has a point file.
const LabeledMark = "+"

// navList is a widget.List that hands Up/Down to the image navigation
// instead of moving its own focus highlight.
type navList struct {
	widget.List
	onNavigate func(delta int)
}

func newNavList(length func() int, create func() fyne.CanvasObject, update func(widget.ListItemID, fyne.CanvasObject)) *navList {
	l := &navList{}
	l.Length = length
	l.CreateItem = create
	l.UpdateItem = update
	l.ExtendBaseWidget(l)
	return l
}

func (l *navList) TypedKey(ev *fyne.KeyEvent) {
	if l.onNavigate != nil {
		switch ev.Name {
		case fyne.KeyUp:
			l.onNavigate(-1)
			return
		case fyne.KeyDown:
			l.onNavigate(1)
			return
		}
	}
	l.List.TypedKey(ev)
}

// ImageList shows the discovered images with a labeled marker column.
type ImageList struct {
	list    *navList
	entries func() []models.ImageEntry

	// selecting suppresses the change handler while the selection is
	// driven from code.
	selecting bool
	onSelect  func(index int)
}

// NewImageList renders the rows returned by entries; the slice is read on
// every refresh so label changes show up without copying.
func NewImageList(entries func() []models.ImageEntry) *ImageList {
	il := &ImageList{entries: entries}

	il.list = newNavList(
		func() int {
			return len(il.entries())
		},
		func() fyne.CanvasObject {
			mark := widget.NewLabelWithStyle(LabeledMark, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
			name := widget.NewLabel("")
			name.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, mark, nil, name)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			all := il.entries()
			if id < 0 || id >= len(all) {
				return
			}
			mark, name := rowLabels(item)
			if all[id].Labeled {
				mark.SetText(LabeledMark)
			} else {
				mark.SetText(" ")
			}
			name.SetText(all[id].Name)
		},
	)

	il.list.OnSelected = func(id widget.ListItemID) {
		if il.selecting || il.onSelect == nil {
			return
		}
		il.onSelect(id)
	}

	return il
}

// rowLabels unpacks a row built by the list's create callback; the border
// container stores its center object first.
func rowLabels(item fyne.CanvasObject) (mark, name *widget.Label) {
	row := item.(*fyne.Container)
	return row.Objects[1].(*widget.Label), row.Objects[0].(*widget.Label)
}

func (il *ImageList) GetContainer() fyne.CanvasObject {
	return il.list
}

// SetSelectHandler is called when the user picks a row.
func (il *ImageList) SetSelectHandler(fn func(index int)) {
	il.onSelect = fn
}

// SetNavigateHandler receives -1 for Up and 1 for Down while the list has
// keyboard focus.
func (il *ImageList) SetNavigateHandler(fn func(delta int)) {
	il.list.onNavigate = fn
}

// Select highlights and reveals a row without invoking the select handler.
func (il *ImageList) Select(index int) {
	il.selecting = true
	il.list.Select(index)
	il.selecting = false
	il.list.ScrollTo(index)
}

// RefreshItem redraws one row, e.g. after its labeled state changed.
func (il *ImageList) RefreshItem(index int) {
	il.list.RefreshItem(index)
}
