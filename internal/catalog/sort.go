package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/escartian/FitByte/internal/domain"
)

// Sort fields understood by SortExercises.
const (
	SortByName      = "name"
	SortByLevel     = "level"
	SortByForce     = "force"
	SortByMechanic  = "mechanic"
	SortByEquipment = "equipment"
	SortByCategory  = "category"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Workout sort fields.
const (
	SortWorkoutsByName = "name"
	SortWorkoutsByDate = "date"
)

// NormalizeOrder maps anything other than "desc" to ascending.
func NormalizeOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), OrderDesc) {
		return OrderDesc
	}
	return OrderAsc
}

// SortExercises returns a stably sorted copy of list. The field defaults to name and the order to ascending.
// Level is ranked beginner < intermediate < expert rather than lexicographically.
// Unknown fields compare every pair as equal, so the input order is kept.
func SortExercises(list []domain.Exercise, field, order string) []domain.Exercise {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		field = SortByName
	}
	desc := NormalizeOrder(order) == OrderDesc

	compare := exerciseComparator(field)
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b domain.Exercise) int {
		c := compare(&a, &b)
		if desc {
			return -c
		}
		return c
	})
	return sorted
}

func exerciseComparator(field string) func(a, b *domain.Exercise) int {
	switch field {
	case SortByLevel:
		return func(a, b *domain.Exercise) int { return cmp.Compare(a.Level.Rank(), b.Level.Rank()) }
	case SortByName:
		return func(a, b *domain.Exercise) int { return cmp.Compare(a.Name, b.Name) }
	case SortByForce:
		return func(a, b *domain.Exercise) int { return cmp.Compare(a.Force, b.Force) }
	case SortByMechanic:
		return func(a, b *domain.Exercise) int { return cmp.Compare(a.Mechanic, b.Mechanic) }
	case SortByEquipment:
		return func(a, b *domain.Exercise) int { return cmp.Compare(a.Equipment, b.Equipment) }
	case SortByCategory:
		return func(a, b *domain.Exercise) int { return cmp.Compare(a.Category, b.Category) }
	default:
		return func(a, b *domain.Exercise) int { return 0 }
	}
}

// SortWorkouts returns a stably sorted copy of workouts by name or date (default name, ascending).
func SortWorkouts(list []domain.WorkoutTemplate, field, order string) []domain.WorkoutTemplate {
	desc := NormalizeOrder(order) == OrderDesc
	byDate := strings.EqualFold(strings.TrimSpace(field), SortWorkoutsByDate)

	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b domain.WorkoutTemplate) int {
		var c int
		if byDate {
			c = a.Date.Compare(b.Date)
		} else {
			c = cmp.Compare(a.Name, b.Name)
		}
		if desc {
			return -c
		}
		return c
	})
	return sorted
}
