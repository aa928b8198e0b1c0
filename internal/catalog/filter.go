// Package catalog holds the pure filter and sort functions applied to exercise and workout lists.
package catalog

import (
	"strings"

	"github.com/escartian/FitByte/internal/domain"
)

// AllValue is the query value meaning "do not filter on this field".
const AllValue = "all"

// ExerciseFilter enumerates every supported filter key. An empty field means "no constraint".
//
// Level, Force, Mechanic, Equipment and Category are scalar fields compared by case-normalized equality.
// Muscle matches if it is contained in the union of the exercise's primary and secondary muscles.
type ExerciseFilter struct {
	Level     string
	Force     string
	Mechanic  string
	Equipment string
	Category  string
	Muscle    string
}

// NewExerciseFilter builds a filter from raw query values, dropping empty and "all" values.
func NewExerciseFilter(level, force, mechanic, equipment, category, muscle string) ExerciseFilter {
	return ExerciseFilter{
		Level:     normalizeParam(level),
		Force:     normalizeParam(force),
		Mechanic:  normalizeParam(mechanic),
		Equipment: normalizeParam(equipment),
		Category:  normalizeParam(category),
		Muscle:    normalizeParam(muscle),
	}
}

// IsEmpty reports whether the filter constrains nothing.
func (f ExerciseFilter) IsEmpty() bool {
	return f == ExerciseFilter{}
}

// Matches reports whether the exercise satisfies every set predicate.
func (f ExerciseFilter) Matches(ex *domain.Exercise) bool {
	if !matchScalar(f.Level, string(ex.Level)) {
		return false
	}
	if !matchScalar(f.Force, string(ex.Force)) {
		return false
	}
	if !matchScalar(f.Mechanic, string(ex.Mechanic)) {
		return false
	}
	if !matchScalar(f.Equipment, string(ex.Equipment)) {
		return false
	}
	if !matchScalar(f.Category, string(ex.Category)) {
		return false
	}
	if f.Muscle != "" {
		muscles := ex.Muscles()
		values := make([]string, len(muscles))
		for i, m := range muscles {
			values[i] = string(m)
		}
		if !containsNormalized(values, f.Muscle) {
			return false
		}
	}
	return true
}

// FilterExercises returns the exercises matching every predicate of the filter, preserving input order.
// An empty filter returns the list unchanged.
func FilterExercises(list []domain.Exercise, filter ExerciseFilter) []domain.Exercise {
	if filter.IsEmpty() {
		return list
	}
	filtered := make([]domain.Exercise, 0, len(list))
	for i := range list {
		if filter.Matches(&list[i]) {
			filtered = append(filtered, list[i])
		}
	}
	return filtered
}

func normalizeParam(v string) string {
	v = normalize(v)
	if v == AllValue {
		return ""
	}
	return v
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func matchScalar(want, got string) bool {
	if want == "" {
		return true
	}
	return normalize(want) == normalize(got)
}

func containsNormalized(values []string, want string) bool {
	want = normalize(want)
	for _, v := range values {
		if normalize(v) == want {
			return true
		}
	}
	return false
}
