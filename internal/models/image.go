package models

import (
	"path/filepath"
	"strings"
)

// SidecarExt is the extension of the per-image point file.
const SidecarExt = ".pts"

// ImageEntry is a discovered image file and its annotation state
type ImageEntry struct {
	Path    string
	Name    string // path relative to the browsed root, for display
	Labeled bool
}

// NewImageEntry creates an entry for path, naming it relative to root when possible
func NewImageEntry(root, path string, labeled bool) ImageEntry {
	name := path
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		name = rel
	}

	return ImageEntry{
		Path:    path,
		Name:    name,
		Labeled: labeled,
	}
}

// SidecarPath returns the point file path for an image: same base name, .pts extension
func SidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + SidecarExt
}

// FirstUnlabeled returns the index of the first entry without points, or 0 if all are labeled
func FirstUnlabeled(entries []ImageEntry) int {
	for i, e := range entries {
		if !e.Labeled {
			return i
		}
	}
	return 0
}
