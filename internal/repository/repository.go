package repository

import (
	"context"

	"github.com/escartian/FitByte/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound           = RepositoryError("not found")
	ErrDuplicateKey       = RepositoryError("duplicate key")
	ErrStorageUnavailable = RepositoryError("storage unavailable")
	ErrNotAcknowledged    = RepositoryError("write not acknowledged")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// customWorkouts is only ever touched through AppendCompletedWorkout and RemoveCompletedWorkout.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AppendCompletedWorkout pushes entry onto the end of the user's history and returns the updated user.
	AppendCompletedWorkout(ctx context.Context, userID primitive.ObjectID, entry domain.CompletedWorkout) (*domain.User, error)
	RemoveCompletedWorkout(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for the read-mostly exercise catalog.
type ExerciseRepository interface {
	// Search returns exercises whose name contains term, case-insensitively. An empty term matches everything.
	Search(ctx context.Context, term string) ([]domain.Exercise, error)
	// GetByName matches the whole name, case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// InsertIfAbsent inserts the exercise unless one with the same name exists. It reports whether it inserted.
	InsertIfAbsent(ctx context.Context, exercise *domain.Exercise) (bool, error)
}

// WorkoutRepository defines the interface for interacting with workout template data.
// Workouts are never updated in place.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	// ListVisible returns workouts owned by userID, global workouts and workouts flagged as templates.
	// A nil userID lists only the latter two.
	ListVisible(ctx context.Context, userID *primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	InsertMany(ctx context.Context, workouts []domain.WorkoutTemplate) (int, error)
	// Delete exists only to undo an insert whose follow-up write failed.
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
