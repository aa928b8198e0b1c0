package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered FitByte account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	EmailAddress string             `bson:"emailAddress" json:"emailAddress"` // Stored trimmed + lowercase, unique
	PasswordHash string             `bson:"password" json:"-"`                // bcrypt hash, never exposed via JSON
	DateOfBirth  string             `bson:"dateOfBirth" json:"dateOfBirth"`
	Age          int                `bson:"age" json:"age"`
	Gender       Gender             `bson:"gender" json:"gender"`
	RegisterDate time.Time          `bson:"registerDate" json:"registerDate"`

	// History of completed workouts, oldest first.
	// Only ever appended to or pruned through the user repository; entries are never edited.
	CustomWorkouts []CompletedWorkout `bson:"customWorkouts" json:"customWorkouts"`
}

// CompletedWorkout is a snapshot reference to a finished workout stored in a user's history.
type CompletedWorkout struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"` // Identity of the history entry itself
	WorkoutName string             `bson:"workoutName" json:"workoutName"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}

// UserInfo is the login-safe view of a user (no password hash).
type UserInfo struct {
	ID             primitive.ObjectID `json:"id"`
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	EmailAddress   string             `json:"emailAddress"`
	DateOfBirth    string             `json:"dateOfBirth"`
	Age            int                `json:"age"`
	Gender         Gender             `json:"gender"`
	RegisterDate   time.Time          `json:"registerDate"`
	CustomWorkouts []CompletedWorkout `json:"customWorkouts"`
}

// Info strips credentials from the user document.
func (u *User) Info() UserInfo {
	workouts := u.CustomWorkouts
	if workouts == nil {
		workouts = []CompletedWorkout{}
	}
	return UserInfo{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		EmailAddress:   u.EmailAddress,
		DateOfBirth:    u.DateOfBirth,
		Age:            u.Age,
		Gender:         u.Gender,
		RegisterDate:   u.RegisterDate,
		CustomWorkouts: workouts,
	}
}
