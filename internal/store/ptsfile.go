// Package store persists landmark points to .pts sidecar files next to the
// annotated images.
package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"point-tagger/internal/logger"
	"point-tagger/internal/models"
)

// ErrMalformed is returned when a sidecar line is not an "x, y" pair.
var ErrMalformed = errors.New("malformed point file")

// PointStore reads and writes point files.
type PointStore struct {
	logger logger.Logger
}

func NewPointStore(log logger.Logger) *PointStore {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &PointStore{logger: log}
}

// Exists reports whether the image already has a point file.
func (s *PointStore) Exists(imagePath string) bool {
	info, err := os.Stat(models.SidecarPath(imagePath))
	return err == nil && info.Mode().IsRegular()
}

// Load returns the points stored for an image. A missing point file yields
// an empty set and no error.
func (s *PointStore) Load(imagePath string) (models.PointSet, error) {
	path := models.SidecarPath(imagePath)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read point file: %w", err)
	}

	points, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Debug("PointStore", "points loaded", map[string]interface{}{
		"path":  path,
		"count": len(points),
	})
	return points, nil
}

// Save replaces the image's point file with points. An empty set leaves no
// file behind.
func (s *PointStore) Save(imagePath string, points models.PointSet) error {
	path := models.SidecarPath(imagePath)

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove point file: %w", err)
	}

	if len(points) == 0 {
		s.logger.Debug("PointStore", "point file removed", map[string]interface{}{
			"path": path,
		})
		return nil
	}

	if err := os.WriteFile(path, Format(points), 0o644); err != nil {
		return fmt.Errorf("write point file: %w", err)
	}

	s.logger.Debug("PointStore", "points saved", map[string]interface{}{
		"path":  path,
		"count": len(points),
	})
	return nil
}

// Format renders points one "x, y" line each, using the shortest
// representation that parses back to the same value.
func Format(points models.PointSet) []byte {
	var buf bytes.Buffer
	for _, p := range points {
		buf.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		buf.WriteString(", ")
		buf.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Parse reads "x, y" lines. Blank lines are skipped.
func Parse(data []byte) (models.PointSet, error) {
	var points models.PointSet

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %w: want 2 fields, got %d", line, ErrMalformed, len(fields))
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformed, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformed, err)
		}

		points = append(points, models.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
