// Package annotator holds the state of an annotation session: the image list,
// the current selection, its landmark points and the viewport they are shown
// in. It is driven from UI callbacks and is not safe for concurrent use.
package annotator

import (
	"errors"
	"fmt"
	"image"

	"point-tagger/internal/geometry"
	"point-tagger/internal/logger"
	"point-tagger/internal/models"
)

var (
	ErrNoImages   = errors.New("no images to annotate")
	ErrOutOfRange = errors.New("image index out of range")
)

// ImageDecoder loads the pixels of a discovered image.
type ImageDecoder interface {
	Decode(path string) (image.Image, error)
}

// PointStore persists per-image point sets.
type PointStore interface {
	Load(imagePath string) (models.PointSet, error)
	Save(imagePath string, points models.PointSet) error
}

type Options struct {
	// ReorderFaceLandmarks applies models.ReorderFaceLandmarks before leaving
	// an image.
	ReorderFaceLandmarks bool
	// CrossFraction is the crosshair length relative to the smaller displayed
	// image dimension.
	CrossFraction float64
}

type Annotator struct {
	entries []models.ImageEntry
	decoder ImageDecoder
	store   PointStore
	opts    Options
	logger  logger.Logger

	current int
	image   image.Image
	points  models.PointSet
	dirty   bool

	viewW, viewH float64
	viewport     geometry.Viewport
	hasViewport  bool
	canvasPoints models.PointSet
}

func New(entries []models.ImageEntry, decoder ImageDecoder, store PointStore, opts Options, log logger.Logger) (*Annotator, error) {
	if len(entries) == 0 {
		return nil, ErrNoImages
	}
	if opts.CrossFraction <= 0 {
		opts.CrossFraction = 0.05
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	return &Annotator{
		entries: entries,
		decoder: decoder,
		store:   store,
		opts:    opts,
		logger:  log,
		current: -1,
	}, nil
}

// Start selects the first image that has no points yet, or the first image
// when all are labeled.
func (a *Annotator) Start() error {
	return a.Select(models.FirstUnlabeled(a.entries))
}

// Select makes image i current. Pending changes to the previous image are
// written first; a failed write keeps the previous image selected.
func (a *Annotator) Select(i int) error {
	if i < 0 || i >= len(a.entries) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}

	if err := a.Finalize(); err != nil {
		return err
	}

	entry := a.entries[i]
	img, err := a.decoder.Decode(entry.Path)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	a.current = i
	a.image = img
	a.dirty = false

	points, loadErr := a.store.Load(entry.Path)
	a.points = points
	a.refit()

	a.logger.Debug("Annotator", "image selected", map[string]interface{}{
		"index":  i,
		"path":   entry.Path,
		"points": len(points),
	})

	if loadErr != nil {
		return fmt.Errorf("load points: %w", loadErr)
	}
	return nil
}

// SelectPrev moves one image up, stopping at the first image.
func (a *Annotator) SelectPrev() (bool, error) {
	if a.current <= 0 {
		return false, nil
	}
	if err := a.Select(a.current - 1); err != nil {
		return false, err
	}
	return true, nil
}

// SelectNext moves one image down, stopping at the last image.
func (a *Annotator) SelectNext() (bool, error) {
	if a.current >= len(a.entries)-1 {
		return false, nil
	}
	if err := a.Select(a.current + 1); err != nil {
		return false, err
	}
	return true, nil
}

// Finalize applies the face reordering heuristic, when enabled, and writes
// any unsaved change of the current image.
func (a *Annotator) Finalize() error {
	if a.current < 0 {
		return nil
	}

	if a.opts.ReorderFaceLandmarks && models.ReorderFaceLandmarks(a.points) {
		a.dirty = true
		a.refit()
		a.logger.Debug("Annotator", "face landmarks reordered", map[string]interface{}{
			"path": a.entries[a.current].Path,
		})
	}

	// An unreadable point file loaded as an empty set stays on disk until
	// the image is edited.
	if !a.dirty {
		return nil
	}
	return a.save()
}

// Resize recomputes the viewport for a canvas of w x h.
func (a *Annotator) Resize(w, h float64) {
	a.viewW, a.viewH = w, h
	a.refit()
}

// Add appends a point at a canvas position on the displayed image. It reports
// false when the position is outside the image.
func (a *Annotator) Add(x, y float64) (bool, error) {
	if !a.hasViewport || !a.viewport.Contains(x, y) {
		return false, nil
	}

	a.points = append(a.points, a.viewport.ToImage(x, y))
	a.canvasPoints = append(a.canvasPoints, models.Point{X: x, Y: y})
	a.dirty = true

	return true, a.save()
}

// Remove deletes the point whose crosshair is nearest to a canvas position.
// It reports false when no crosshair covers the position.
func (a *Annotator) Remove(x, y float64) (bool, error) {
	if !a.hasViewport || !a.viewport.Contains(x, y) {
		return false, nil
	}

	i := a.viewport.Nearest(a.canvasPoints, x, y)
	if i < 0 {
		return false, nil
	}

	a.points = a.points.Remove(i)
	a.canvasPoints = a.canvasPoints.Remove(i)
	a.dirty = true

	return true, a.save()
}

func (a *Annotator) save() error {
	entry := &a.entries[a.current]

	if err := a.store.Save(entry.Path, a.points); err != nil {
		a.logger.Error("Annotator", err, map[string]interface{}{
			"path": entry.Path,
		})
		return fmt.Errorf("save points: %w", err)
	}

	a.dirty = false
	entry.Labeled = len(a.points) > 0
	return nil
}

func (a *Annotator) refit() {
	if a.image == nil {
		a.hasViewport = false
		a.canvasPoints = nil
		return
	}

	b := a.image.Bounds()
	a.viewport, a.hasViewport = geometry.Fit(b.Dx(), b.Dy(), a.viewW, a.viewH, a.opts.CrossFraction)
	if !a.hasViewport {
		a.canvasPoints = nil
		return
	}
	a.canvasPoints = a.viewport.ToCanvasAll(a.points)
}

// Entries returns the image list. Labeled flags follow saves.
func (a *Annotator) Entries() []models.ImageEntry {
	return a.entries
}

func (a *Annotator) Len() int {
	return len(a.entries)
}

// Current returns the selected index, or -1 before the first selection.
func (a *Annotator) Current() int {
	return a.current
}

func (a *Annotator) CurrentEntry() (models.ImageEntry, bool) {
	if a.current < 0 {
		return models.ImageEntry{}, false
	}
	return a.entries[a.current], true
}

func (a *Annotator) Image() image.Image {
	return a.image
}

// Points returns a copy of the current image-space points.
func (a *Annotator) Points() models.PointSet {
	return a.points.Clone()
}

// CanvasPoints returns a copy of the current points in canvas coordinates.
func (a *Annotator) CanvasPoints() models.PointSet {
	return a.canvasPoints.Clone()
}

// Viewport returns the current image placement; ok is false until both an
// image and a non-empty canvas size are known.
func (a *Annotator) Viewport() (geometry.Viewport, bool) {
	return a.viewport, a.hasViewport
}
