package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template flag values. Stored as strings to stay compatible with the seeded templates.
const (
	TemplateFlagOn  = "1"
	TemplateFlagOff = "0"
)

// WorkoutTemplate is a named, ordered exercise/set plan.
// Documents are never updated in place; a new save always produces a new document.
type WorkoutTemplate struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name       string              `bson:"name" json:"name"`
	Exercises  []ExerciseEntry     `bson:"exercises" json:"exercises"`
	Date       time.Time           `bson:"date" json:"date"`
	UserID     *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"` // nil => global template
	IsTemplate string              `bson:"isTemplate,omitempty" json:"isTemplate,omitempty"`
}

// IsGlobal reports whether the workout has no owner and is therefore visible to everyone.
func (w *WorkoutTemplate) IsGlobal() bool {
	return w.UserID == nil || w.UserID.IsZero()
}

// VisibleTo applies the three-way visibility rule: owned by the user, global, or flagged as template.
// A nil userID (anonymous caller) sees only global and flagged workouts.
func (w *WorkoutTemplate) VisibleTo(userID *primitive.ObjectID) bool {
	if w.IsGlobal() || w.IsTemplate == TemplateFlagOn {
		return true
	}
	return userID != nil && *w.UserID == *userID
}

// ExerciseEntry is one exercise inside a workout with its ordered sets.
type ExerciseEntry struct {
	ExerciseName string     `bson:"exerciseName" json:"exerciseName"`
	Sets         []SetEntry `bson:"sets" json:"sets"`
}

// SetEntry is a single set. SetNumber is a display index (position+1), never an identity.
type SetEntry struct {
	SetNumber int `bson:"setNumber" json:"setNumber"`
	Reps      int `bson:"reps" json:"reps"`
	Weight    int `bson:"weight" json:"weight"`
}
