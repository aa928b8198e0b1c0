package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/escartian/FitByte/internal/catalog"
	"github.com/escartian/FitByte/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testExercises() []domain.Exercise {
	return []domain.Exercise{
		{
			Name:             "Squat",
			Level:            domain.LevelBeginner,
			Equipment:        domain.EquipmentBarbell,
			Force:            domain.ForcePush,
			Category:         domain.CategoryStrength,
			PrimaryMuscles:   []domain.Muscle{domain.MuscleQuadriceps},
			SecondaryMuscles: []domain.Muscle{domain.MuscleGlutes, domain.MuscleHamstrings},
		},
		{
			Name:           "Snatch",
			Level:          domain.LevelExpert,
			Equipment:      domain.EquipmentKettlebells,
			Force:          domain.ForcePull,
			Category:       domain.CategoryOlympicWeightlifting,
			PrimaryMuscles: []domain.Muscle{domain.MuscleShoulders},
		},
		{
			Name:             "Row",
			Level:            domain.LevelIntermediate,
			Equipment:        domain.EquipmentCable,
			Force:            domain.ForcePull,
			Category:         domain.CategoryStrength,
			PrimaryMuscles:   []domain.Muscle{domain.MuscleMiddleBack},
			SecondaryMuscles: []domain.Muscle{domain.MuscleBiceps},
		},
	}
}

func names(list []domain.Exercise) []string {
	out := make([]string, len(list))
	for i, ex := range list {
		out[i] = ex.Name
	}
	return out
}

func TestNewExerciseFilter_DropsAllAndEmpty(t *testing.T) {
	f := catalog.NewExerciseFilter("all", " ", "ALL", "Barbell", "", " Glutes ")
	assert.Equal(t, catalog.ExerciseFilter{Equipment: "barbell", Muscle: "glutes"}, f)
	assert.True(t, catalog.NewExerciseFilter("all", "all", "all", "all", "all", "all").IsEmpty())
}

func TestFilterExercises(t *testing.T) {
	exercises := testExercises()

	tests := []struct {
		name     string
		filter   catalog.ExerciseFilter
		expected []string
	}{
		{"empty filter", catalog.ExerciseFilter{}, []string{"Squat", "Snatch", "Row"}},
		{"equipment", catalog.ExerciseFilter{Equipment: "barbell"}, []string{"Squat"}},
		{"case insensitive", catalog.ExerciseFilter{Force: "PULL"}, []string{"Snatch", "Row"}},
		{"primary muscle", catalog.ExerciseFilter{Muscle: "shoulders"}, []string{"Snatch"}},
		{"secondary muscle", catalog.ExerciseFilter{Muscle: "biceps"}, []string{"Row"}},
		{"anded predicates", catalog.ExerciseFilter{Force: "pull", Category: "strength"}, []string{"Row"}},
		{"no match", catalog.ExerciseFilter{Level: "expert", Muscle: "glutes"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(catalog.FilterExercises(exercises, tt.filter)))
		})
	}
}

func TestFilterExercises_EmptyFilterIsIdentity(t *testing.T) {
	exercises := testExercises()
	assert.Equal(t, exercises, catalog.FilterExercises(exercises, catalog.ExerciseFilter{}))
}

func TestFilterExercises_Idempotent(t *testing.T) {
	filter := catalog.ExerciseFilter{Force: "pull"}
	once := catalog.FilterExercises(testExercises(), filter)
	twice := catalog.FilterExercises(once, filter)
	assert.Equal(t, once, twice)
}

func TestSortExercises_LevelUsesRanking(t *testing.T) {
	sorted := catalog.SortExercises(testExercises(), "level", "asc")
	assert.Equal(t, []string{"Squat", "Row", "Snatch"}, names(sorted))

	sorted = catalog.SortExercises(testExercises(), "level", "desc")
	assert.Equal(t, []string{"Snatch", "Row", "Squat"}, names(sorted))
}

func TestSortExercises_Defaults(t *testing.T) {
	sorted := catalog.SortExercises(testExercises(), "", "")
	assert.Equal(t, []string{"Row", "Snatch", "Squat"}, names(sorted))

	sorted = catalog.SortExercises(testExercises(), "name", "DESC")
	assert.Equal(t, []string{"Squat", "Snatch", "Row"}, names(sorted))
}

func TestSortExercises_Stable(t *testing.T) {
	exercises := []domain.Exercise{
		{Name: "B", Force: domain.ForcePull},
		{Name: "A", Force: domain.ForcePush},
		{Name: "C", Force: domain.ForcePull},
		{Name: "D", Force: domain.ForcePush},
	}

	assert.Equal(t, []string{"B", "C", "A", "D"}, names(catalog.SortExercises(exercises, "force", "asc")))
	// descending flips the key order but ties keep their input order
	assert.Equal(t, []string{"A", "D", "B", "C"}, names(catalog.SortExercises(exercises, "force", "desc")))
	// unknown field: everything ties
	assert.Equal(t, []string{"B", "A", "C", "D"}, names(catalog.SortExercises(exercises, "nope", "asc")))
}

func TestSortExercises_DoesNotMutateInput(t *testing.T) {
	exercises := testExercises()
	_ = catalog.SortExercises(exercises, "name", "asc")
	assert.Equal(t, []string{"Squat", "Snatch", "Row"}, names(exercises))
}

func TestSortWorkouts(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	workouts := []domain.WorkoutTemplate{
		{Name: "Push Day", Date: now},
		{Name: "Leg Day", Date: now.Add(-time.Hour)},
		{Name: "Arms", Date: now.Add(time.Hour)},
	}

	byName := catalog.SortWorkouts(workouts, "name", "asc")
	require.Len(t, byName, 3)
	assert.Equal(t, "Arms", byName[0].Name)
	assert.Equal(t, "Push Day", byName[2].Name)

	byDate := catalog.SortWorkouts(workouts, "date", "desc")
	assert.Equal(t, "Arms", byDate[0].Name)
	assert.Equal(t, "Leg Day", byDate[2].Name)
}
