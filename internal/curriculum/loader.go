package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lernify/road-api/internal/models"
)

// LoadDir reads track YAML files from a directory, one file per domain.
// Files are processed in sorted filename order so the resulting domain
// order is stable across restarts. When the directory holds no track
// files an error is returned; the caller decides whether to fall back
// to the built-in curriculum.
func LoadDir(dir string) ([]Track, error) {
	slog.Info("loading curriculum from directory", "dir", dir)

	patterns := []string{"*.yaml", "*.yml"}
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no track files in %s", dir)
	}

	tracks := make([]Track, 0, len(files))
	for _, file := range files {
		track, err := LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filepath.Base(file), err)
		}
		tracks = append(tracks, track)
		slog.Info("track loaded", "name", track.Name, "lessons", len(track.Lessons))
	}

	return tracks, nil
}

// LoadFile reads a single track from a YAML file
func LoadFile(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Track{}, fmt.Errorf("failed to read file: %w", err)
	}

	var tf trackFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return Track{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if tf.Name == "" {
		return Track{}, fmt.Errorf("track name is required")
	}
	if len(tf.Lessons) == 0 {
		return Track{}, fmt.Errorf("track %q has no lessons", tf.Name)
	}

	track := Track{
		Name:        tf.Name,
		Description: tf.Description,
		Lessons:     make([]Lesson, 0, len(tf.Lessons)),
	}
	for _, lf := range tf.Lessons {
		track.Lessons = append(track.Lessons, Lesson{
			Title:       lf.Title,
			Description: lf.Description,
			Videos:      lf.Videos,
			Quiz:        lf.Quiz,
		})
	}

	return track, nil
}

// --- YAML file structs ---

// trackFile represents the YAML structure of a track file
type trackFile struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Lessons     []lessonFile `yaml:"lessons"`
}

// lessonFile represents one lesson entry within a track file
type lessonFile struct {
	Title       string             `yaml:"title"`
	Description string             `yaml:"description"`
	Videos      []string           `yaml:"videos"`
	Quiz        models.QuestionSet `yaml:"quiz"`
}
