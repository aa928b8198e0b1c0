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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
func NewMongoUserRepository(db *mongo.Database, opTimeout time.Duration) repository.UserRepository {
	return &mongoUserRepository{
		collection: newCollection(db, userCollectionName, opTimeout),
	}
}

// Create inserts a new user. The unique email index is the authoritative duplicate guard.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	// $push needs an array, not null.
	if user.CustomWorkouts == nil {
		user.CustomWorkouts = []domain.CompletedWorkout{}
	}

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, mapError(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, repository.ErrNotAcknowledged
	}
	return insertedID, nil
}

// GetByEmail retrieves a user by an already normalized email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"emailAddress": email})
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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

// AppendCompletedWorkout atomically pushes entry onto customWorkouts.
func (r *mongoUserRepository) AppendCompletedWorkout(ctx context.Context, userID primitive.ObjectID, entry domain.CompletedWorkout) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	update := bson.M{"$push": bson.M{"customWorkouts": entry}}
	return r.findOneAndUpdate(ctx, bson.M{"_id": userID}, update)
}

// RemoveCompletedWorkout pulls a single history entry. ErrNotFound covers both a missing user and a missing entry.
func (r *mongoUserRepository) RemoveCompletedWorkout(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"_id": userID, "customWorkouts._id": entryID}
	update := bson.M{"$pull": bson.M{"customWorkouts": bson.M{"_id": entryID}}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *mongoUserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "emailAddress", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
