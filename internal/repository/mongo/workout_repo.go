package mongo

import (
	"context"
	"time"

	"github.com/escartian/FitByte/internal/domain"
	"github.com/escartian/FitByte/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

type mongoWorkoutRepository struct {
	collection
}

// NewMongoWorkoutRepository creates a new Workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database, opTimeout time.Duration) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: newCollection(db, workoutCollectionName, opTimeout),
	}
}

// Create inserts a new workout. Workouts are immutable once stored.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	workout.ID = primitive.NewObjectID()
	if workout.Date.IsZero() {
		workout.Date = time.Now().UTC()
	}

	result, err := r.coll.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, mapError(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, repository.ErrNotAcknowledged
	}
	return insertedID, nil
}

func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var workout domain.WorkoutTemplate
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&workout); err != nil {
		return nil, mapError(err)
	}
	return &workout, nil
}

func (r *mongoWorkoutRepository) ListVisible(ctx context.Context, userID *primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, visibilityFilter(userID), findOptions)
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	workouts := []domain.WorkoutTemplate{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, mapError(err)
	}
	return workouts, nil
}

// visibilityFilter mirrors domain.WorkoutTemplate.VisibleTo. {userId: null} also matches a missing field.
func visibilityFilter(userID *primitive.ObjectID) bson.M {
	or := bson.A{
		bson.M{"userId": nil},
		bson.M{"isTemplate": domain.TemplateFlagOn},
	}
	if userID != nil {
		or = append(or, bson.M{"userId": *userID})
	}
	return bson.M{"$or": or}
}

// InsertMany stores seeded templates and returns how many were inserted.
func (r *mongoWorkoutRepository) InsertMany(ctx context.Context, workouts []domain.WorkoutTemplate) (int, error) {
	if len(workouts) == 0 {
		return 0, nil
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(workouts))
	for i := range workouts {
		if workouts[i].ID.IsZero() {
			workouts[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, workouts[i])
	}

	result, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, mapError(err)
	}
	return len(result.InsertedIDs), nil
}

func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// EnsureWorkoutIndexes creates necessary indexes for the workouts collection.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("by_owner"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
