// Package seed loads the exercise catalog and the global workout templates from JSON files.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/escartian/FitByte/internal/domain"
)

// exerciseRecord is the on-disk exercise format. Its "id" is a slug, not an ObjectID, so it is dropped.
type exerciseRecord struct {
	Name             string   `json:"name"`
	Aliases          []string `json:"aliases"`
	Force            *string  `json:"force"`
	Level            string   `json:"level"`
	Mechanic         *string  `json:"mechanic"`
	Equipment        *string  `json:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	Tips             []string `json:"tips"`
}

// ExerciseFile is an exercise read from disk together with the image files that belong to it.
type ExerciseFile struct {
	Exercise domain.Exercise
	// ImageFiles maps each entry of Exercise.ImagePaths to the file on disk, in the same order.
	ImageFiles []string
}

type templateRecord struct {
	Name       string                 `json:"name"`
	Exercises  []domain.ExerciseEntry `json:"exercises"`
	Date       *time.Time             `json:"date"`
	IsTemplate string                 `json:"isTemplate"`
}

// LoadExerciseDir reads <dir>/<exercise>/*.json. Images are taken from <dir>/<exercise>/images/*.jpg|png.
func LoadExerciseDir(dir string) ([]ExerciseFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read exercises dir: %w", err)
	}

	var out []ExerciseFile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())

		images, err := imageFiles(filepath.Join(sub, "images"))
		if err != nil {
			return nil, err
		}

		jsonFiles, err := filepath.Glob(filepath.Join(sub, "*.json"))
		if err != nil {
			return nil, err
		}
		slices.Sort(jsonFiles)

		for _, file := range jsonFiles {
			ex, err := readExercise(file)
			if err != nil {
				return nil, err
			}

			loaded := ExerciseFile{Exercise: ex}
			for _, img := range images {
				loaded.Exercise.ImagePaths = append(loaded.Exercise.ImagePaths, path.Join("/exercises", ex.Name, "images", filepath.Base(img)))
				loaded.ImageFiles = append(loaded.ImageFiles, img)
			}
			out = append(out, loaded)
		}
	}
	return out, nil
}

func imageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".jpg" && ext != ".png") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func readExercise(file string) (domain.Exercise, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return domain.Exercise{}, err
	}
	var rec exerciseRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Exercise{}, fmt.Errorf("decode %s: %w", file, err)
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return domain.Exercise{}, fmt.Errorf("decode %s: exercise without a name", file)
	}

	return domain.Exercise{
		Name:             rec.Name,
		Aliases:          rec.Aliases,
		PrimaryMuscles:   muscles(rec.PrimaryMuscles),
		SecondaryMuscles: muscles(rec.SecondaryMuscles),
		Force:            domain.Force(deref(rec.Force)),
		Level:            domain.Level(rec.Level),
		Mechanic:         domain.Mechanic(deref(rec.Mechanic)),
		Equipment:        domain.Equipment(deref(rec.Equipment)),
		Category:         domain.Category(rec.Category),
		Instructions:     rec.Instructions,
		Description:      rec.Description,
		Tips:             rec.Tips,
	}, nil
}

// LoadTemplates reads the global workout templates. Templates without a flag are marked as templates.
func LoadTemplates(file string, now time.Time) ([]domain.WorkoutTemplate, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var recs []templateRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	out := make([]domain.WorkoutTemplate, 0, len(recs))
	for _, r := range recs {
		w := domain.WorkoutTemplate{
			Name:       strings.TrimSpace(r.Name),
			Exercises:  r.Exercises,
			Date:       now.UTC(),
			IsTemplate: r.IsTemplate,
		}
		if r.Date != nil {
			w.Date = r.Date.UTC()
		}
		if w.IsTemplate == "" {
			w.IsTemplate = domain.TemplateFlagOn
		}
		for i := range w.Exercises {
			for j := range w.Exercises[i].Sets {
				w.Exercises[i].Sets[j].SetNumber = j + 1
			}
		}
		out = append(out, w)
	}
	return out, nil
}

func muscles(in []string) []domain.Muscle {
	out := make([]domain.Muscle, len(in))
	for i, m := range in {
		out[i] = domain.Muscle(m)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
