// internal/domain/exercise.go
package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one entry of the seeded exercise catalog.
// Documents are inserted once at seed time (only if no exercise with the same name exists)
// and never mutated by the application afterwards.
type Exercise struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"` // Unique, matched case-insensitively
	Aliases          []string           `bson:"aliases,omitempty" json:"aliases,omitempty"`
	PrimaryMuscles   []Muscle           `bson:"primaryMuscles" json:"primaryMuscles"`
	SecondaryMuscles []Muscle           `bson:"secondaryMuscles" json:"secondaryMuscles"`
	Force            Force              `bson:"force,omitempty" json:"force,omitempty"`
	Level            Level              `bson:"level" json:"level"`
	Mechanic         Mechanic           `bson:"mechanic,omitempty" json:"mechanic,omitempty"`
	Equipment        Equipment          `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Category         Category           `bson:"category" json:"category"`
	Instructions     []string           `bson:"instructions" json:"instructions"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Tips             []string           `bson:"tips,omitempty" json:"tips,omitempty"`
	ImagePaths       []string           `bson:"imagePaths,omitempty" json:"imagePaths,omitempty"` // e.g. /exercises/<name>/images/0.jpg
}

// Muscles returns the union of primary and secondary muscles, primaries first, without duplicates.
func (e *Exercise) Muscles() []Muscle {
	seen := make(map[Muscle]bool, len(e.PrimaryMuscles)+len(e.SecondaryMuscles))
	muscles := make([]Muscle, 0, len(e.PrimaryMuscles)+len(e.SecondaryMuscles))
	for _, group := range [][]Muscle{e.PrimaryMuscles, e.SecondaryMuscles} {
		for _, m := range group {
			if seen[m] {
				continue
			}
			seen[m] = true
			muscles = append(muscles, m)
		}
	}
	return muscles
}
