package service

import (
	"context"
	"errors"
	"time"

	"github.com/escartian/FitByte/internal/catalog"
	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"
	"github.com/escartian/FitByte/internal/sanitize"
	"github.com/escartian/FitByte/internal/workoutbuilder"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutInput is a submitted workout: a name and the exercises composed in the session.
type WorkoutInput struct {
	Name      string
	Exercises []domain.ExerciseEntry
}

// FinishResult is what finishing a session produces.
type FinishResult struct {
	Workout *domain.WorkoutTemplate `json:"workout"`
	User    domain.UserInfo         `json:"user"`
}

type WorkoutService interface {
	// CreateWorkout saves an explicit template owned by ownerID.
	CreateWorkout(ctx context.Context, ownerID *primitive.ObjectID, in WorkoutInput) (*domain.WorkoutTemplate, error)
	// FinishWorkout stores the finished session and records it in the owner's history.
	FinishWorkout(ctx context.Context, ownerID *primitive.ObjectID, in WorkoutInput, saveAsTemplate bool) (*FinishResult, error)
	ListVisible(ctx context.Context, userID *primitive.ObjectID, sortField, sortOrder string) ([]domain.WorkoutTemplate, error)
	GetByID(ctx context.Context, userID *primitive.ObjectID, workoutID string) (*domain.WorkoutTemplate, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	completions CompletionService
	sanitizer   sanitize.Sanitizer
	now         func() time.Time
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, completions CompletionService, sanitizer sanitize.Sanitizer) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		completions: completions,
		sanitizer:   sanitizer,
		now:         time.Now,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, ownerID *primitive.ObjectID, in WorkoutInput) (*domain.WorkoutTemplate, error) {
	return s.store(ctx, ownerID, in, domain.TemplateFlagOn)
}

func (s *workoutService) FinishWorkout(ctx context.Context, ownerID *primitive.ObjectID, in WorkoutInput, saveAsTemplate bool) (*FinishResult, error) {
	flag := domain.TemplateFlagOff
	if saveAsTemplate {
		flag = domain.TemplateFlagOn
	}

	workout, err := s.store(ctx, ownerID, in, flag)
	if err != nil {
		return nil, err
	}

	user, err := s.completions.RecordCompletion(ctx, *ownerID, workout.Name, workout.ID)
	if err != nil {
		s.discard(ctx, workout.ID)
		return nil, err
	}
	return &FinishResult{Workout: workout, User: user}, nil
}

// discard removes a workout whose completion could not be recorded, so a failed finish leaves nothing behind.
// It runs detached from ctx because the request may already be cancelled.
func (s *workoutService) discard(ctx context.Context, workoutID primitive.ObjectID) {
	if err := s.workoutRepo.Delete(context.WithoutCancel(ctx), workoutID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Errorf("finish workout: remove orphaned workout %s: %s", workoutID.Hex(), err)
	}
}

// store validates and inserts a new workout document.
func (s *workoutService) store(ctx context.Context, ownerID *primitive.ObjectID, in WorkoutInput, flag string) (*domain.WorkoutTemplate, error) {
	if ownerID == nil || ownerID.IsZero() {
		return nil, ErrUnauthenticated
	}

	workout, err := s.build(in)
	if err != nil {
		return nil, err
	}
	owner := *ownerID
	workout.UserID = &owner
	workout.IsTemplate = flag

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, storageErr(err)
	}
	workout.ID = id
	return workout, nil
}

// build sanitizes free text and runs the payload through the session builder so set numbers are canonical.
func (s *workoutService) build(in WorkoutInput) (*domain.WorkoutTemplate, error) {
	name := s.sanitizer.Sanitize(in.Name)
	if name == "" {
		return nil, invalid("name", "%s", workoutbuilder.ErrEmptyName.Error())
	}
	if len(in.Exercises) == 0 {
		return nil, invalid("exercises", "%s", workoutbuilder.ErrNoExercises.Error())
	}

	entries := make([]domain.ExerciseEntry, len(in.Exercises))
	for i, e := range in.Exercises {
		entries[i] = domain.ExerciseEntry{ExerciseName: s.sanitizer.Sanitize(e.ExerciseName), Sets: e.Sets}
	}

	b, err := workoutbuilder.FromEntries(entries)
	if err != nil {
		return nil, invalid("exercises", "%s", err.Error())
	}
	workout, err := b.Build(name, s.now())
	if err != nil {
		return nil, invalid("exercises", "%s", err.Error())
	}
	return workout, nil
}

func (s *workoutService) ListVisible(ctx context.Context, userID *primitive.ObjectID, sortField, sortOrder string) ([]domain.WorkoutTemplate, error) {
	list, err := s.workoutRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	if sortField == "" {
		return list, nil
	}
	return catalog.SortWorkouts(list, sortField, sortOrder), nil
}

// GetByID hides workouts the caller may not see behind ErrWorkoutNotFound.
func (s *workoutService) GetByID(ctx context.Context, userID *primitive.ObjectID, workoutID string) (*domain.WorkoutTemplate, error) {
	id, err := primitive.ObjectIDFromHex(workoutID)
	if err != nil {
		return nil, invalid("id", "workout id is not a valid identifier")
	}

	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, storageErr(err)
	}
	if !workout.VisibleTo(userID) {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}
