package service

import (
	"context"
	"strings"
	"sync"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository with a unique email constraint.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
	order []primitive.ObjectID

	// skipLookup makes GetByEmail miss, simulating a registration that raced past the pre-check.
	skipLookup bool
	err        error
	// appendErr fails only the history push, after every lookup succeeded.
	appendErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.CustomWorkouts = append([]domain.CompletedWorkout{}, u.CustomWorkouts...)
	return &c
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	for _, u := range r.users {
		if u.EmailAddress == user.EmailAddress {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.skipLookup {
		return nil, repository.ErrNotFound
	}
	for _, u := range r.users {
		if u.EmailAddress == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) AppendCompletedWorkout(_ context.Context, userID primitive.ObjectID, entry domain.CompletedWorkout) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.appendErr != nil {
		return nil, r.appendErr
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.CustomWorkouts = append(u.CustomWorkouts, entry)
	return cloneUser(u), nil
}

func (r *fakeUserRepo) RemoveCompletedWorkout(_ context.Context, userID, entryID primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i, w := range u.CustomWorkouts {
		if w.ID == entryID {
			u.CustomWorkouts = append(u.CustomWorkouts[:i], u.CustomWorkouts[i+1:]...)
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeWorkoutRepo stores workouts in insertion order.
type fakeWorkoutRepo struct {
	mu       sync.Mutex
	workouts []domain.WorkoutTemplate
	err      error
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	w.ID = primitive.NewObjectID()
	r.workouts = append(r.workouts, *w)
	return w.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			w := r.workouts[i]
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) ListVisible(_ context.Context, userID *primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.WorkoutTemplate{}
	for _, w := range r.workouts {
		if w.VisibleTo(userID) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) InsertMany(_ context.Context, workouts []domain.WorkoutTemplate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range workouts {
		w.ID = primitive.NewObjectID()
		r.workouts = append(r.workouts, w)
	}
	return len(workouts), nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			r.workouts = append(r.workouts[:i], r.workouts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.workouts)), nil
}

// fakeExerciseRepo counts Search calls so caching can be observed.
type fakeExerciseRepo struct {
	exercises   []domain.Exercise
	searchCalls int
	err         error
	insertErr   error
}

func (r *fakeExerciseRepo) Search(_ context.Context, term string) ([]domain.Exercise, error) {
	r.searchCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if strings.Contains(strings.ToLower(e.Name), strings.ToLower(term)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) GetByName(_ context.Context, name string) (*domain.Exercise, error) {
	for i := range r.exercises {
		if strings.EqualFold(r.exercises[i].Name, name) {
			e := r.exercises[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) InsertIfAbsent(_ context.Context, e *domain.Exercise) (bool, error) {
	if r.insertErr != nil {
		return false, r.insertErr
	}
	if _, err := r.GetByName(context.Background(), e.Name); err == nil {
		return false, nil
	}
	r.exercises = append(r.exercises, *e)
	return true, nil
}

// mapCache is a trivial Cache keeping values by reference.
type mapCache struct {
	values map[string][]domain.Exercise
}

func (c *mapCache) Get(key string, dst any) bool {
	v, ok := c.values[key]
	if !ok {
		return false
	}
	*(dst.(*[]domain.Exercise)) = v
	return true
}

func (c *mapCache) Set(key string, value any) {
	c.values[key] = value.([]domain.Exercise)
}

func (c *mapCache) Clear() {
	clear(c.values)
}
