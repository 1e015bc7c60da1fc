package gui

import (
	"image"

	"point-tagger/internal/geometry"
	"point-tagger/internal/gui/components"
	"point-tagger/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

const WindowTitle = "Image Point Tagging Tool"

// ViewConfig sizes the view.
type ViewConfig struct {
	// WindowWidth is used for the split position while the canvas has no size yet.
	WindowWidth        float32
	ListWidth          float32
	CrosshairLineWidth float32
}

// View owns the widgets of the main window and their layout. It holds no
// annotation state.
type View struct {
	window fyne.Window

	imageDisplay  *components.ImageDisplay
	imageList     *components.ImageList
	statusBar     *components.StatusBar
	mainContainer *fyne.Container
}

// NewView builds the widgets. entries feeds the image list.
func NewView(window fyne.Window, cfg ViewConfig, entries func() []models.ImageEntry) *View {
	view := &View{
		window: window,
	}

	view.setupComponents(cfg, entries)
	view.setupLayout(cfg)

	return view
}

func (v *View) setupComponents(cfg ViewConfig, entries func() []models.ImageEntry) {
	v.imageDisplay = components.NewImageDisplay(cfg.CrosshairLineWidth)
	v.imageList = components.NewImageList(entries)
	v.statusBar = components.NewStatusBar()
}

func (v *View) setupLayout(cfg ViewConfig) {
	split := container.NewHSplit(v.imageDisplay, v.imageList.GetContainer())

	windowWidth := v.window.Canvas().Size().Width
	if windowWidth <= 0 {
		windowWidth = cfg.WindowWidth
	}
	if windowWidth > 0 && cfg.ListWidth > 0 && cfg.ListWidth < windowWidth {
		split.SetOffset(float64(1 - cfg.ListWidth/windowWidth))
	} else {
		split.SetOffset(0.75)
	}

	v.mainContainer = container.NewBorder(
		nil,
		v.statusBar.GetContainer(),
		nil, nil,
		split,
	)
}

// Callbacks wires user input to the controller.
type Callbacks struct {
	PrimaryTap   func(x, y float32)
	SecondaryTap func(x, y float32)
	CanvasResize func(width, height float32)
	ListSelect   func(index int)
	PrevImage    func()
	NextImage    func()
}

func (v *View) SetCallbacks(cb Callbacks) {
	v.imageDisplay.SetPrimaryTapHandler(cb.PrimaryTap)
	v.imageDisplay.SetSecondaryTapHandler(cb.SecondaryTap)
	v.imageDisplay.SetResizeHandler(cb.CanvasResize)

	v.imageList.SetSelectHandler(func(index int) {
		if cb.ListSelect != nil {
			cb.ListSelect(index)
		}
	})

	navigate := func(delta int) {
		switch {
		case delta < 0 && cb.PrevImage != nil:
			cb.PrevImage()
		case delta > 0 && cb.NextImage != nil:
			cb.NextImage()
		}
	}
	v.imageList.SetNavigateHandler(navigate)

	v.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyUp:
			navigate(-1)
		case fyne.KeyDown:
			navigate(1)
		}
	})
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func (v *View) ImageDisplay() *components.ImageDisplay {
	return v.imageDisplay
}

// ShowImage displays a newly selected image and highlights its row.
func (v *View) ShowImage(img image.Image, entry models.ImageEntry, index, total int) {
	v.imageDisplay.SetImage(img)
	v.imageList.Select(index)
	v.statusBar.SetPosition(index, total)
	v.statusBar.SetStatus(entry.Name)
	v.window.SetTitle(WindowTitle + " - " + entry.Name)
}

// Render redraws the image placement and its crosshairs.
func (v *View) Render(vp geometry.Viewport, ok bool, canvasPoints models.PointSet) {
	v.imageDisplay.Render(vp, ok, canvasPoints)
	v.statusBar.SetPointCount(len(canvasPoints))
}

// SelectRow highlights a row without notifying the controller.
func (v *View) SelectRow(index int) {
	v.imageList.Select(index)
}

// RefreshRow redraws one list row's labeled marker.
func (v *View) RefreshRow(index int) {
	v.imageList.RefreshItem(index)
}

func (v *View) SetStatus(status string) {
	v.statusBar.SetStatus(status)
}

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
