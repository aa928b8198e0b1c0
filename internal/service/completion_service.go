package service

import (
	"context"
	"errors"
	"time"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"
	"github.com/escartian/FitByte/internal/sanitize"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CompletionService interface {
	// RecordCompletion appends {workoutName, workoutID} to the user's history and returns the updated user.
	RecordCompletion(ctx context.Context, userID primitive.ObjectID, workoutName string, workoutID primitive.ObjectID) (domain.UserInfo, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.CompletedWorkout, error)
	RemoveCompletion(ctx context.Context, userID primitive.ObjectID, entryID string) (domain.UserInfo, error)
}

type completionService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	sanitizer   sanitize.Sanitizer
	now         func() time.Time
}

func NewCompletionService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository, sanitizer sanitize.Sanitizer) CompletionService {
	return &completionService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		sanitizer:   sanitizer,
		now:         time.Now,
	}
}

func (s *completionService) RecordCompletion(ctx context.Context, userID primitive.ObjectID, workoutName string, workoutID primitive.ObjectID) (domain.UserInfo, error) {
	if workoutID.IsZero() {
		return domain.UserInfo{}, invalid("workoutId", "workout id is required")
	}

	// The user is resolved first, so a missing user wins over a missing workout.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrWorkoutNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}
	if !workout.VisibleTo(&userID) {
		return domain.UserInfo{}, ErrWorkoutNotFound
	}

	name := s.sanitizer.Sanitize(workoutName)
	if name == "" {
		name = workout.Name
	}

	entry := domain.CompletedWorkout{
		ID:          primitive.NewObjectID(),
		WorkoutName: name,
		WorkoutID:   workoutID,
		CompletedAt: s.now().UTC(),
	}
	user, err := s.userRepo.AppendCompletedWorkout(ctx, userID, entry)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}
	return user.Info(), nil
}

func (s *completionService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.CompletedWorkout, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	return user.Info().CustomWorkouts, nil
}

func (s *completionService) RemoveCompletion(ctx context.Context, userID primitive.ObjectID, entryID string) (domain.UserInfo, error) {
	id, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return domain.UserInfo{}, invalid("entryId", "history entry id is not a valid identifier")
	}

	user, err := s.userRepo.RemoveCompletedWorkout(ctx, userID, id)
	if err == nil {
		return user.Info(), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.UserInfo{}, storageErr(err)
	}

	// Tell a missing user apart from a missing entry.
	if _, err = s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserInfo{}, ErrUserNotFound
		}
		return domain.UserInfo{}, storageErr(err)
	}
	return domain.UserInfo{}, ErrHistoryNotFound
}
