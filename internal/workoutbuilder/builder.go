// Package workoutbuilder assembles the ordered exercise/set structure of a workout being composed.
// Exercises and sets are addressed by position; set numbers are always recomputed as position+1.
package workoutbuilder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/escartian/FitByte/internal/domain"
)

var (
	ErrEmptyName          = errors.New("workout name is required")
	ErrNoExercises        = errors.New("workout must contain at least one exercise")
	ErrEmptyExerciseName  = errors.New("exercise name is required")
	ErrInvalidSetCount    = errors.New("number of sets must be at least 1")
	ErrNegativeReps       = errors.New("reps cannot be negative")
	ErrExerciseOutOfRange = errors.New("exercise index out of range")
	ErrSetOutOfRange      = errors.New("set index out of range")
)

// Builder holds the in-progress exercise list. It is not safe for concurrent use.
type Builder struct {
	entries []domain.ExerciseEntry
}

func New() *Builder {
	return &Builder{}
}

// FromEntries loads a submitted payload, validating every entry and renumbering sets.
func FromEntries(entries []domain.ExerciseEntry) (*Builder, error) {
	b := New()
	for i, e := range entries {
		name := strings.TrimSpace(e.ExerciseName)
		if name == "" {
			return nil, fmt.Errorf("exercise %d: %w", i+1, ErrEmptyExerciseName)
		}
		sets := make([]domain.SetEntry, 0, len(e.Sets))
		for _, s := range e.Sets {
			if s.Reps < 0 {
				return nil, fmt.Errorf("exercise %q: %w", name, ErrNegativeReps)
			}
			sets = append(sets, domain.SetEntry{Reps: s.Reps, Weight: s.Weight})
		}
		b.entries = append(b.entries, domain.ExerciseEntry{ExerciseName: name, Sets: sets})
	}
	return b, nil
}

// AddExercise appends an exercise with `sets` identical sets of reps/weight.
func (b *Builder) AddExercise(name string, sets, reps, weight int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyExerciseName
	}
	if sets < 1 {
		return ErrInvalidSetCount
	}
	if reps < 0 {
		return ErrNegativeReps
	}

	entry := domain.ExerciseEntry{ExerciseName: name, Sets: make([]domain.SetEntry, sets)}
	for i := range entry.Sets {
		entry.Sets[i] = domain.SetEntry{Reps: reps, Weight: weight}
	}
	b.entries = append(b.entries, entry)
	return nil
}

// RemoveExercise drops the exercise at index.
func (b *Builder) RemoveExercise(index int) error {
	if index < 0 || index >= len(b.entries) {
		return ErrExerciseOutOfRange
	}
	b.entries = append(b.entries[:index], b.entries[index+1:]...)
	return nil
}

// AddSet appends a set to the exercise, repeating the reps/weight of its last set.
func (b *Builder) AddSet(exerciseIndex int) error {
	if exerciseIndex < 0 || exerciseIndex >= len(b.entries) {
		return ErrExerciseOutOfRange
	}
	entry := &b.entries[exerciseIndex]
	var next domain.SetEntry
	if n := len(entry.Sets); n > 0 {
		next = domain.SetEntry{Reps: entry.Sets[n-1].Reps, Weight: entry.Sets[n-1].Weight}
	}
	entry.Sets = append(entry.Sets, next)
	return nil
}

// RemoveSet drops one set; the following sets shift down and are renumbered on read.
func (b *Builder) RemoveSet(exerciseIndex, setIndex int) error {
	if exerciseIndex < 0 || exerciseIndex >= len(b.entries) {
		return ErrExerciseOutOfRange
	}
	entry := &b.entries[exerciseIndex]
	if setIndex < 0 || setIndex >= len(entry.Sets) {
		return ErrSetOutOfRange
	}
	entry.Sets = append(entry.Sets[:setIndex], entry.Sets[setIndex+1:]...)
	return nil
}

func (b *Builder) Len() int {
	return len(b.entries)
}

// Entries returns a deep copy of the exercises with set numbers derived from position.
func (b *Builder) Entries() []domain.ExerciseEntry {
	out := make([]domain.ExerciseEntry, len(b.entries))
	for i, e := range b.entries {
		sets := make([]domain.SetEntry, len(e.Sets))
		for j, s := range e.Sets {
			sets[j] = domain.SetEntry{SetNumber: j + 1, Reps: s.Reps, Weight: s.Weight}
		}
		out[i] = domain.ExerciseEntry{ExerciseName: e.ExerciseName, Sets: sets}
	}
	return out
}

// Build produces the canonical workout document for submission.
func (b *Builder) Build(name string, now time.Time) (*domain.WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(b.entries) == 0 {
		return nil, ErrNoExercises
	}
	return &domain.WorkoutTemplate{
		Name:      name,
		Exercises: b.Entries(),
		Date:      now.UTC(),
	}, nil
}
