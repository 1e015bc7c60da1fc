// Package discovery finds the image files to annotate under a directory tree.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"point-tagger/internal/logger"
	"point-tagger/internal/models"
)

// Prober reports whether a file can be decoded as an image.
type Prober interface {
	Probe(path string) bool
}

// LabelChecker reports whether an image already has points.
type LabelChecker interface {
	Exists(imagePath string) bool
}

type Options struct {
	// ExcludeSuffixes skips files by name suffix before probing them.
	ExcludeSuffixes []string
	Logger          logger.Logger
}

// Find walks root recursively, descending into symlinked directories, and
// returns every decodable image sorted by path. A symlink leading back
// into one of its own ancestors is not followed.
func Find(root string, prober Prober, opts Options) ([]string, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NoOpLogger{}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	w := &walker{
		prober: prober,
		opts:   opts,
		active: make(map[string]bool),
	}
	if err := w.walk(root, true); err != nil {
		return nil, err
	}

	sort.Strings(w.found)

	opts.Logger.Info("Discovery", "image discovery complete", map[string]interface{}{
		"root":    root,
		"images":  len(w.found),
		"skipped": w.skipped,
	})
	return w.found, nil
}

// Entries pairs discovered paths with their display names and label state.
func Entries(root string, paths []string, labels LabelChecker) []models.ImageEntry {
	entries := make([]models.ImageEntry, len(paths))
	for i, p := range paths {
		entries[i] = models.NewImageEntry(root, p, labels.Exists(p))
	}
	return entries
}

type walker struct {
	prober  Prober
	opts    Options
	active  map[string]bool // real paths of the directories being walked
	found   []string
	skipped int
}

func (w *walker) walk(dir string, isRoot bool) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		real = dir
	}
	if w.active[real] {
		w.opts.Logger.Debug("Discovery", "symlink cycle skipped", map[string]interface{}{
			"dir": dir,
		})
		return nil
	}
	w.active[real] = true
	defer delete(w.active, real)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if isRoot {
			return fmt.Errorf("read root: %w", err)
		}
		w.opts.Logger.Warning("Discovery", "unreadable directory skipped", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
		return nil
	}

	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		mode := d.Type()

		if mode&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				continue
			}
			mode = target.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if err := w.walk(path, false); err != nil {
				return err
			}
		case mode.IsRegular():
			w.consider(path)
		}
	}
	return nil
}

func (w *walker) consider(path string) {
	name := filepath.Base(path)
	for _, suffix := range w.opts.ExcludeSuffixes {
		if strings.HasSuffix(name, suffix) {
			w.skipped++
			return
		}
	}
	if strings.EqualFold(filepath.Ext(name), models.SidecarExt) {
		return
	}

	if w.prober.Probe(path) {
		w.found = append(w.found, path)
	}
}
