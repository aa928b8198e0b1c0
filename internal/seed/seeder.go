package seed

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/escartian/FitByte/internal/config"
	"github.com/escartian/FitByte/internal/repository"
	"github.com/escartian/FitByte/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Report summarizes a seeding run.
type Report struct {
	ExercisesInserted int
	ExercisesSkipped  int
	ImagesUploaded    int
	TemplatesInserted int
}

type Seeder struct {
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	images    storage.ImageStorage
	now       func() time.Time
}

func NewSeeder(exercises repository.ExerciseRepository, workouts repository.WorkoutRepository, images storage.ImageStorage) *Seeder {
	if images == nil {
		images = storage.NewDisabledStorage()
	}
	return &Seeder{
		exercises: exercises,
		workouts:  workouts,
		images:    images,
		now:       time.Now,
	}
}

// Run seeds exercises and then templates. An empty path skips that step.
func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) (Report, error) {
	var report Report
	if cfg.ExercisesDir != "" {
		if err := s.SeedExercises(ctx, cfg.ExercisesDir, cfg.UploadImages, &report); err != nil {
			return report, err
		}
	}
	if cfg.TemplatesFile != "" {
		n, err := s.SeedTemplates(ctx, cfg.TemplatesFile)
		if err != nil {
			return report, err
		}
		report.TemplatesInserted = n
	}
	return report, nil
}

// SeedExercises inserts every exercise whose name is not in the catalog yet. Existing ones are left untouched.
func (s *Seeder) SeedExercises(ctx context.Context, dir string, uploadImages bool, report *Report) error {
	files, err := LoadExerciseDir(dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		ex := f.Exercise
		inserted, err := s.exercises.InsertIfAbsent(ctx, &ex)
		if err != nil {
			return fmt.Errorf("insert exercise %q: %w", ex.Name, err)
		}
		if !inserted {
			log.Debugf("exercise %q already exists, skipping", ex.Name)
			report.ExercisesSkipped++
			continue
		}
		report.ExercisesInserted++

		if !uploadImages {
			continue
		}
		for i, file := range f.ImageFiles {
			if err := s.uploadImage(ctx, storage.ObjectKey(ex.ImagePaths[i]), file); err != nil {
				if errors.Is(err, storage.ErrDisabled) {
					log.Warn("image upload requested but image storage is disabled")
					uploadImages = false
					break
				}
				return fmt.Errorf("upload image %s: %w", file, err)
			}
			report.ImagesUploaded++
		}
	}

	log.Infof("seeded exercises: %d inserted, %d already present", report.ExercisesInserted, report.ExercisesSkipped)
	return nil
}

func (s *Seeder) uploadImage(ctx context.Context, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(file))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.images.PutImage(ctx, key, contentType, f)
}

// SeedTemplates inserts the global templates, but only into an empty workouts collection.
func (s *Seeder) SeedTemplates(ctx context.Context, file string) (int, error) {
	count, err := s.workouts.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Infof("workouts collection holds %d documents, skipping templates", count)
		return 0, nil
	}

	templates, err := LoadTemplates(file, s.now())
	if err != nil {
		return 0, err
	}
	n, err := s.workouts.InsertMany(ctx, templates)
	if err != nil {
		return 0, fmt.Errorf("insert templates: %w", err)
	}
	log.Infof("seeded %d workout templates", n)
	return n, nil
}
