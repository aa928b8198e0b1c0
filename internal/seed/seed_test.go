package seed

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/escartian/FitByte/internal/config"
	"github.com/escartian/FitByte/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeExercises struct {
	byName map[string]domain.Exercise
}

func (f *fakeExercises) Search(context.Context, string) ([]domain.Exercise, error) { return nil, nil }
func (f *fakeExercises) GetByName(context.Context, string) (*domain.Exercise, error) {
	return nil, nil
}

func (f *fakeExercises) InsertIfAbsent(_ context.Context, ex *domain.Exercise) (bool, error) {
	key := strings.ToLower(ex.Name)
	if _, ok := f.byName[key]; ok {
		return false, nil
	}
	ex.ID = primitive.NewObjectID()
	f.byName[key] = *ex
	return true, nil
}

type fakeWorkouts struct {
	stored []domain.WorkoutTemplate
}

func (f *fakeWorkouts) Create(context.Context, *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}
func (f *fakeWorkouts) GetByID(context.Context, primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	return nil, nil
}
func (f *fakeWorkouts) ListVisible(context.Context, *primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	return f.stored, nil
}
func (f *fakeWorkouts) InsertMany(_ context.Context, ws []domain.WorkoutTemplate) (int, error) {
	f.stored = append(f.stored, ws...)
	return len(ws), nil
}
func (f *fakeWorkouts) Delete(context.Context, primitive.ObjectID) error { return nil }
func (f *fakeWorkouts) Count(context.Context) (int64, error) { return int64(len(f.stored)), nil }

type recordingImages struct {
	keys  []string
	types []string
}

func (r *recordingImages) PresignedImageURL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

func (r *recordingImages) PutImage(_ context.Context, key, contentType string, body io.Reader) error {
	if _, err := io.ReadAll(body); err != nil {
		return err
	}
	r.keys = append(r.keys, key)
	r.types = append(r.types, contentType)
	return nil
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func fixture(t *testing.T) (exercisesDir, templatesFile string) {
	t.Helper()
	root := t.TempDir()
	exercisesDir = filepath.Join(root, "exercises")

	writeFile(t, filepath.Join(exercisesDir, "Squat", "Squat.json"), `{
		"id": "Squat",
		"name": "Squat",
		"force": "push",
		"level": "beginner",
		"mechanic": "compound",
		"equipment": null,
		"primaryMuscles": ["quadriceps"],
		"secondaryMuscles": ["glutes"],
		"instructions": ["Stand", "Sit down", "Stand up"],
		"category": "strength"
	}`)
	writeFile(t, filepath.Join(exercisesDir, "Squat", "images", "0.jpg"), "jpg")
	writeFile(t, filepath.Join(exercisesDir, "Squat", "images", "1.png"), "png")
	writeFile(t, filepath.Join(exercisesDir, "Squat", "images", "notes.txt"), "ignored")

	writeFile(t, filepath.Join(exercisesDir, "Plank", "Plank.json"), `{
		"name": "Plank",
		"level": "beginner",
		"primaryMuscles": ["abdominals"],
		"secondaryMuscles": [],
		"instructions": ["Hold"],
		"category": "strength"
	}`)

	templatesFile = filepath.Join(root, "workout_templates.json")
	writeFile(t, templatesFile, `[
		{"name": "Full Body", "exercises": [{"exerciseName": "Squat", "sets": [{"reps": 10, "weight": 40}, {"reps": 8, "weight": 50}]}]},
		{"name": "Core", "isTemplate": "1", "exercises": [{"exerciseName": "Plank", "sets": [{"reps": 1, "weight": 0}]}]}
	]`)
	return exercisesDir, templatesFile
}

func TestLoadExerciseDir(t *testing.T) {
	dir, _ := fixture(t)

	files, err := LoadExerciseDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	// directories are read in name order
	assert.Equal(t, "Plank", files[0].Exercise.Name)
	assert.Empty(t, files[0].Exercise.ImagePaths)

	squat := files[1]
	assert.Equal(t, "Squat", squat.Exercise.Name)
	assert.Equal(t, domain.Force("push"), squat.Exercise.Force)
	assert.Equal(t, domain.Equipment(""), squat.Exercise.Equipment)
	assert.Equal(t, []domain.Muscle{"quadriceps"}, squat.Exercise.PrimaryMuscles)
	assert.True(t, squat.Exercise.ID.IsZero())
	assert.Equal(t, []string{"/exercises/Squat/images/0.jpg", "/exercises/Squat/images/1.png"}, squat.Exercise.ImagePaths)
	assert.Len(t, squat.ImageFiles, 2)
}

func TestLoadExerciseDir_Errors(t *testing.T) {
	_, err := LoadExerciseDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Broken", "Broken.json"), `{"name": `)
	_, err = LoadExerciseDir(dir)
	assert.ErrorContains(t, err, "Broken.json")

	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "Nameless", "Nameless.json"), `{"level": "beginner"}`)
	_, err = LoadExerciseDir(dir)
	assert.ErrorContains(t, err, "without a name")
}

func TestLoadTemplates(t *testing.T) {
	_, file := fixture(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	templates, err := LoadTemplates(file, now)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	full := templates[0]
	assert.Equal(t, "Full Body", full.Name)
	assert.Equal(t, domain.TemplateFlagOn, full.IsTemplate)
	assert.Equal(t, now, full.Date)
	assert.True(t, full.IsGlobal())
	assert.Equal(t, 1, full.Exercises[0].Sets[0].SetNumber)
	assert.Equal(t, 2, full.Exercises[0].Sets[1].SetNumber)
}

func TestSeeder_Run(t *testing.T) {
	dir, file := fixture(t)
	exercises := &fakeExercises{byName: map[string]domain.Exercise{}}
	workouts := &fakeWorkouts{}
	images := &recordingImages{}
	s := NewSeeder(exercises, workouts, images)

	cfg := config.SeedConfig{ExercisesDir: dir, TemplatesFile: file, UploadImages: true}
	report, err := s.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, Report{ExercisesInserted: 2, ImagesUploaded: 2, TemplatesInserted: 2}, report)
	assert.Equal(t, []string{"exercises/Squat/images/0.jpg", "exercises/Squat/images/1.png"}, images.keys)
	assert.Equal(t, []string{"image/jpeg", "image/png"}, images.types)

	// a second run inserts nothing: names exist and the workouts collection is no longer empty
	report, err = s.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, Report{ExercisesSkipped: 2}, report)
	assert.Len(t, workouts.stored, 2)
	assert.Len(t, images.keys, 2)
}

func TestSeeder_SkipsExistingNamesCaseInsensitively(t *testing.T) {
	dir, _ := fixture(t)
	exercises := &fakeExercises{byName: map[string]domain.Exercise{"squat": {Name: "SQUAT"}}}
	s := NewSeeder(exercises, &fakeWorkouts{}, nil)

	var report Report
	require.NoError(t, s.SeedExercises(context.Background(), dir, false, &report))
	assert.Equal(t, 1, report.ExercisesInserted)
	assert.Equal(t, 1, report.ExercisesSkipped)
	assert.Equal(t, "SQUAT", exercises.byName["squat"].Name)
}

func TestSeeder_UploadWithDisabledStorage(t *testing.T) {
	dir, _ := fixture(t)
	s := NewSeeder(&fakeExercises{byName: map[string]domain.Exercise{}}, &fakeWorkouts{}, nil)

	var report Report
	require.NoError(t, s.SeedExercises(context.Background(), dir, true, &report))
	assert.Equal(t, 2, report.ExercisesInserted)
	assert.Zero(t, report.ImagesUploaded)
}
