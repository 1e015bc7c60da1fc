package gui

import (
	"point-tagger/internal/annotator"
	"point-tagger/internal/logger"
)

// Controller turns view events into annotator operations and pushes the
// resulting state back into the view. All methods run on the UI goroutine.
type Controller struct {
	view      *View
	annotator *annotator.Annotator
	logger    logger.Logger
}

func NewController(a *annotator.Annotator, log logger.Logger) *Controller {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Controller{
		annotator: a,
		logger:    log,
	}
}

// SetView attaches the view and registers the input callbacks.
func (c *Controller) SetView(view *View) {
	c.view = view
	c.view.SetCallbacks(Callbacks{
		PrimaryTap:   c.AddPoint,
		SecondaryTap: c.RemovePoint,
		CanvasResize: c.ResizeCanvas,
		ListSelect:   c.SelectImage,
		PrevImage:    c.SelectPrev,
		NextImage:    c.SelectNext,
	})
}

// Start opens the initial image.
func (c *Controller) Start() {
	err := c.annotator.Start()
	c.showSelection()
	if err != nil {
		c.handleError("Initial selection error", err)
	}
}

func (c *Controller) SelectImage(index int) {
	before := c.annotator.Current()
	err := c.annotator.Select(index)
	c.afterNavigation(before)
	if err != nil {
		c.handleError("Image selection error", err)
	}
}

func (c *Controller) SelectPrev() {
	before := c.annotator.Current()
	_, err := c.annotator.SelectPrev()
	c.afterNavigation(before)
	if err != nil {
		c.handleError("Image selection error", err)
	}
}

func (c *Controller) SelectNext() {
	before := c.annotator.Current()
	_, err := c.annotator.SelectNext()
	c.afterNavigation(before)
	if err != nil {
		c.handleError("Image selection error", err)
	}
}

// afterNavigation refreshes the previous row, whose labeled state may have
// been changed by the save on leave, then shows the current selection.
func (c *Controller) afterNavigation(before int) {
	if before >= 0 {
		c.view.RefreshRow(before)
	}
	if c.annotator.Current() == before {
		// selection did not move; undo any row highlight the user made
		c.view.SelectRow(before)
		return
	}
	c.showSelection()
}

func (c *Controller) showSelection() {
	entry, ok := c.annotator.CurrentEntry()
	if !ok {
		return
	}
	c.view.ShowImage(c.annotator.Image(), entry, c.annotator.Current(), c.annotator.Len())
	c.render()
}

func (c *Controller) ResizeCanvas(width, height float32) {
	c.annotator.Resize(float64(width), float64(height))
	c.render()
}

func (c *Controller) AddPoint(x, y float32) {
	added, err := c.annotator.Add(float64(x), float64(y))
	if added {
		c.logger.Debug("Controller", "point added", map[string]interface{}{
			"x": x,
			"y": y,
		})
		c.afterEdit()
	}
	if err != nil {
		c.handleError("Save error", err)
	}
}

func (c *Controller) RemovePoint(x, y float32) {
	removed, err := c.annotator.Remove(float64(x), float64(y))
	if removed {
		c.logger.Debug("Controller", "point removed", map[string]interface{}{
			"x": x,
			"y": y,
		})
		c.afterEdit()
	}
	if err != nil {
		c.handleError("Save error", err)
	}
}

func (c *Controller) afterEdit() {
	c.view.RefreshRow(c.annotator.Current())
	c.render()
}

func (c *Controller) render() {
	vp, ok := c.annotator.Viewport()
	c.view.Render(vp, ok, c.annotator.CanvasPoints())
}

func (c *Controller) handleError(title string, err error) {
	c.logger.Error("Controller", err, map[string]interface{}{
		"title": title,
	})
	c.view.SetStatus(title)
	c.view.ShowError(err)
}

// Shutdown writes pending changes of the current image.
func (c *Controller) Shutdown() {
	if err := c.annotator.Finalize(); err != nil {
		c.logger.Error("Controller", err, map[string]interface{}{
			"title": "Final save error",
		})
		return
	}
	c.logger.Info("Controller", "shutdown completed", nil)
}
