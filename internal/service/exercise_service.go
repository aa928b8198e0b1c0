package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/escartian/FitByte/internal/catalog"
	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"
	"github.com/escartian/FitByte/internal/sanitize"
	"github.com/escartian/FitByte/internal/storage"

	log "github.com/sirupsen/logrus"
)

const (
	minExerciseNameLength = 2
	maxExerciseNameLength = 100
)

// ExerciseQuery carries the catalog query parameters.
type ExerciseQuery struct {
	Search    string
	Sort      string
	SortOrder string
	Filter    catalog.ExerciseFilter
}

// ExerciseInput is a user-submitted catalog entry. Enum fields are matched case-insensitively.
type ExerciseInput struct {
	Name             string
	Force            string
	Level            string
	Mechanic         string
	Equipment        string
	Category         string
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Instructions     []string
	Description      string
}

// Cache is the read-through cache in front of catalog searches.
type Cache interface {
	Get(key string, dst any) bool
	Set(key string, value any)
	Clear()
}

type ExerciseService interface {
	Search(ctx context.Context, q ExerciseQuery) ([]domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// CreateExercise adds a catalog entry unless one with the same name (any case) exists.
	CreateExercise(ctx context.Context, in ExerciseInput) (*domain.Exercise, error)
	// ImageURL returns a temporary URL for the index-th image of the named exercise.
	ImageURL(ctx context.Context, name string, index int) (string, error)
	Enums() domain.Enums
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	cache        Cache
	images       storage.ImageStorage
	sanitizer    sanitize.Sanitizer
	imageExpiry  time.Duration
	enums        domain.Enums
}

// NewExerciseService creates a new instance of exerciseService. cache may be nil.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, cache Cache, images storage.ImageStorage, sanitizer sanitize.Sanitizer, genders []domain.Gender) ExerciseService {
	if images == nil {
		images = storage.NewDisabledStorage()
	}
	if sanitizer == nil {
		sanitizer = sanitize.NewStrict()
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		cache:        cache,
		images:       images,
		sanitizer:    sanitizer,
		imageExpiry:  storage.DefaultPresignedURLExpiry,
		enums:        domain.NewEnums(genders),
	}
}

// Search fetches by name, then filters and sorts in memory. Only the fetch is cached.
func (s *exerciseService) Search(ctx context.Context, q ExerciseQuery) ([]domain.Exercise, error) {
	term := strings.TrimSpace(q.Search)
	key := "exercises:search:" + strings.ToLower(term)

	var list []domain.Exercise
	if s.cache == nil || !s.cache.Get(key, &list) {
		var err error
		list, err = s.exerciseRepo.Search(ctx, term)
		if err != nil {
			return nil, storageErr(err)
		}
		if s.cache != nil {
			s.cache.Set(key, list)
		}
	}

	list = catalog.FilterExercises(list, q.Filter)
	return catalog.SortExercises(list, q.Sort, q.SortOrder), nil
}

func (s *exerciseService) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "exercise name is required")
	}
	exercise, err := s.exerciseRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, storageErr(err)
	}
	return exercise, nil
}

func (s *exerciseService) CreateExercise(ctx context.Context, in ExerciseInput) (*domain.Exercise, error) {
	exercise, err := s.buildExercise(in)
	if err != nil {
		return nil, err
	}

	inserted, err := s.exerciseRepo.InsertIfAbsent(ctx, exercise)
	if err != nil {
		return nil, storageErr(err)
	}
	if !inserted {
		return nil, ErrDuplicateExercise
	}

	// cached searches no longer reflect the catalog
	if s.cache != nil {
		s.cache.Clear()
	}
	return exercise, nil
}

// buildExercise sanitizes free text and checks every enum field. Checks run in field order; the first violation wins.
func (s *exerciseService) buildExercise(in ExerciseInput) (*domain.Exercise, error) {
	name := s.sanitizer.Sanitize(in.Name)
	if name == "" {
		return nil, invalid("name", "exercise name is required")
	}
	if n := len([]rune(name)); n < minExerciseNameLength || n > maxExerciseNameLength {
		return nil, invalid("name", "exercise name must be between %d and %d characters", minExerciseNameLength, maxExerciseNameLength)
	}

	level := domain.Level(enumValue(in.Level))
	if level == "" {
		return nil, invalid("level", "level is required")
	}
	if err := oneOf("level", level, domain.AllLevels); err != nil {
		return nil, err
	}

	force := domain.Force(enumValue(in.Force))
	if err := optionalOneOf("force", force, domain.AllForces); err != nil {
		return nil, err
	}
	mechanic := domain.Mechanic(enumValue(in.Mechanic))
	if err := optionalOneOf("mechanic", mechanic, domain.AllMechanics); err != nil {
		return nil, err
	}
	equipment := domain.Equipment(enumValue(in.Equipment))
	if err := optionalOneOf("equipment", equipment, domain.AllEquipment); err != nil {
		return nil, err
	}
	category := domain.Category(enumValue(in.Category))
	if err := optionalOneOf("category", category, domain.AllCategories); err != nil {
		return nil, err
	}

	primary, err := muscleList("primaryMuscles", in.PrimaryMuscles)
	if err != nil {
		return nil, err
	}
	secondary, err := muscleList("secondaryMuscles", in.SecondaryMuscles)
	if err != nil {
		return nil, err
	}

	instructions := make([]string, 0, len(in.Instructions))
	for _, line := range in.Instructions {
		if line = s.sanitizer.Sanitize(line); line != "" {
			instructions = append(instructions, line)
		}
	}

	return &domain.Exercise{
		Name:             name,
		PrimaryMuscles:   primary,
		SecondaryMuscles: secondary,
		Force:            force,
		Level:            level,
		Mechanic:         mechanic,
		Equipment:        equipment,
		Category:         category,
		Instructions:     instructions,
		Description:      s.sanitizer.Sanitize(in.Description),
	}, nil
}

func enumValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func oneOf[T ~string](field string, v T, allowed []T) error {
	if !slices.Contains(allowed, v) {
		return invalid(field, "%s must be one of %v", field, allowed)
	}
	return nil
}

func optionalOneOf[T ~string](field string, v T, allowed []T) error {
	if v == "" {
		return nil
	}
	return oneOf(field, v, allowed)
}

func muscleList(field string, in []string) ([]domain.Muscle, error) {
	out := make([]domain.Muscle, 0, len(in))
	for _, raw := range in {
		m := domain.Muscle(enumValue(raw))
		if err := oneOf(field, m, domain.AllMuscles); err != nil {
			return nil, err
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *exerciseService) ImageURL(ctx context.Context, name string, index int) (string, error) {
	exercise, err := s.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(exercise.ImagePaths) {
		return "", ErrImageNotFound
	}

	url, err := s.images.PresignedImageURL(ctx, storage.ObjectKey(exercise.ImagePaths[index]), s.imageExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			return "", ErrImageNotFound
		}
		log.Errorf("presign image %d of %q: %s", index, exercise.Name, err)
		return "", ErrStorageUnavailable
	}
	return url, nil
}

func (s *exerciseService) Enums() domain.Enums {
	return s.enums
}
