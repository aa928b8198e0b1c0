package api

import (
	"context"
	"time"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/ratelimit"
	"github.com/escartian/FitByte/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubAuthService struct {
	registerFn   func(in service.RegisterInput) (domain.UserInfo, error)
	loginFn      func(email, password string) (string, domain.UserInfo, error)
	removeFn     func(id string) (domain.UserInfo, error)
	getProfileFn func(id primitive.ObjectID) (domain.UserInfo, error)
}

func (s *stubAuthService) Register(_ context.Context, in service.RegisterInput) (domain.UserInfo, error) {
	return s.registerFn(in)
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, domain.UserInfo, error) {
	return s.loginFn(email, password)
}

func (s *stubAuthService) RemoveUser(_ context.Context, id string) (domain.UserInfo, error) {
	return s.removeFn(id)
}

func (s *stubAuthService) GetProfile(_ context.Context, id primitive.ObjectID) (domain.UserInfo, error) {
	return s.getProfileFn(id)
}

type stubExerciseService struct {
	searchFn   func(q service.ExerciseQuery) ([]domain.Exercise, error)
	getFn      func(name string) (*domain.Exercise, error)
	imageURLFn func(name string, index int) (string, error)
	createFn   func(in service.ExerciseInput) (*domain.Exercise, error)
}

func (s *stubExerciseService) Search(_ context.Context, q service.ExerciseQuery) ([]domain.Exercise, error) {
	return s.searchFn(q)
}

func (s *stubExerciseService) GetByName(_ context.Context, name string) (*domain.Exercise, error) {
	return s.getFn(name)
}

func (s *stubExerciseService) CreateExercise(_ context.Context, in service.ExerciseInput) (*domain.Exercise, error) {
	return s.createFn(in)
}

func (s *stubExerciseService) ImageURL(_ context.Context, name string, index int) (string, error) {
	return s.imageURLFn(name, index)
}

func (s *stubExerciseService) Enums() domain.Enums {
	return domain.NewEnums(nil)
}

type stubWorkoutService struct {
	createFn func(owner *primitive.ObjectID, in service.WorkoutInput) (*domain.WorkoutTemplate, error)
	finishFn func(owner *primitive.ObjectID, in service.WorkoutInput, saveAsTemplate bool) (*service.FinishResult, error)
	listFn   func(user *primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	getFn    func(user *primitive.ObjectID, id string) (*domain.WorkoutTemplate, error)
}

func (s *stubWorkoutService) CreateWorkout(_ context.Context, owner *primitive.ObjectID, in service.WorkoutInput) (*domain.WorkoutTemplate, error) {
	return s.createFn(owner, in)
}

func (s *stubWorkoutService) FinishWorkout(_ context.Context, owner *primitive.ObjectID, in service.WorkoutInput, saveAsTemplate bool) (*service.FinishResult, error) {
	return s.finishFn(owner, in, saveAsTemplate)
}

func (s *stubWorkoutService) ListVisible(_ context.Context, user *primitive.ObjectID, _, _ string) ([]domain.WorkoutTemplate, error) {
	return s.listFn(user)
}

func (s *stubWorkoutService) GetByID(_ context.Context, user *primitive.ObjectID, id string) (*domain.WorkoutTemplate, error) {
	return s.getFn(user, id)
}

type stubCompletionService struct {
	recordFn  func(user primitive.ObjectID, name string, workoutID primitive.ObjectID) (domain.UserInfo, error)
	historyFn func(user primitive.ObjectID) ([]domain.CompletedWorkout, error)
	removeFn  func(user primitive.ObjectID, entryID string) (domain.UserInfo, error)
}

func (s *stubCompletionService) RecordCompletion(_ context.Context, user primitive.ObjectID, name string, workoutID primitive.ObjectID) (domain.UserInfo, error) {
	return s.recordFn(user, name, workoutID)
}

func (s *stubCompletionService) History(_ context.Context, user primitive.ObjectID) ([]domain.CompletedWorkout, error) {
	return s.historyFn(user)
}

func (s *stubCompletionService) RemoveCompletion(_ context.Context, user primitive.ObjectID, entryID string) (domain.UserInfo, error) {
	return s.removeFn(user, entryID)
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (l *stubLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{Allowed: l.allowed, RetryAfter: 1500 * time.Millisecond}, l.err
}
