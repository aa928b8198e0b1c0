package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database, opTimeout time.Duration) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: newCollection(db, exerciseCollectionName, opTimeout),
	}
}

// Search runs a case-insensitive substring match on the name. term is matched literally.
func (r *mongoExerciseRepository) Search(ctx context.Context, term string) ([]domain.Exercise, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if term != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, mapError(err)
	}
	return exercises, nil
}

func (r *mongoExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exercise domain.Exercise
	if err := r.coll.FindOne(ctx, exactNameFilter(name)).Decode(&exercise); err != nil {
		return nil, mapError(err)
	}
	return &exercise, nil
}

// InsertIfAbsent upserts with $setOnInsert so an existing exercise is never overwritten.
func (r *mongoExerciseRepository) InsertIfAbsent(ctx context.Context, exercise *domain.Exercise) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if exercise.ID.IsZero() {
		exercise.ID = primitive.NewObjectID()
	}
	update := bson.M{"$setOnInsert": exercise}
	opts := options.Update().SetUpsert(true)

	result, err := r.coll.UpdateOne(ctx, exactNameFilter(exercise.Name), update, opts)
	if err != nil {
		err = mapError(err)
		// A concurrent seeder won the race for this name.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

func exactNameFilter(name string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// strength 2 makes the uniqueness case-insensitive
			Keys: bson.D{{Key: "name", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_name").
				SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
