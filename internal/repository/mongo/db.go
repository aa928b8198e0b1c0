package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escartian/FitByte/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and verifies it with a ping.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The driver connects lazily, so an unreachable server only shows up on the first round trip.
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if derr := client.Disconnect(disconnectCtx); derr != nil {
			log.Warnf("mongo: disconnect after failed ping: %s", derr)
		}
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on. Call this once during startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureUserIndexes(ctx, db.Collection(userCollectionName)); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName)); err != nil {
		return fmt.Errorf("exercises indexes: %w", err)
	}
	if err := EnsureWorkoutIndexes(ctx, db.Collection(workoutCollectionName)); err != nil {
		return fmt.Errorf("workouts indexes: %w", err)
	}
	return nil
}

// collection bounds every operation on the wrapped mongo collection by a fixed timeout.
type collection struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

func newCollection(db *mongo.Database, name string, opTimeout time.Duration) collection {
	if opTimeout <= 0 {
		opTimeout = defaultTimeout
	}
	return collection{coll: db.Collection(name), opTimeout: opTimeout}
}

func (c collection) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opTimeout)
}

// mapError translates driver errors into repository errors.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", repository.ErrDuplicateKey, err)
	case errors.Is(err, mongo.ErrUnacknowledgedWrite):
		return repository.ErrNotAcknowledged
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", repository.ErrStorageUnavailable, err)
	default:
		return err
	}
}
