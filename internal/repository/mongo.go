package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	foodsCollection   = "foods"
	usersCollection   = "users"
	basketsCollection = "baskets"
	ordersCollection  = "orders"
)

// MongoConfig holds the parameters for connecting to MongoDB
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// NewMongoStore connects to MongoDB, ensures the unique indexes the
// repositories rely on, and returns a Store over the configured database.
func NewMongoStore(ctx context.Context, cfg MongoConfig, logger *slog.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", classifyMongoError(err))
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo store connected", "database", cfg.Database)

	return &Store{
		Foods:   NewMongoFoodRepository(db),
		Users:   NewMongoUserRepository(db),
		Baskets: NewMongoBasketRepository(db),
		Orders:  NewMongoOrderRepository(db),
		ping: func(ctx context.Context) error {
			return classifyMongoError(client.Ping(ctx, readpref.Primary()))
		},
		close: client.Disconnect,
	}, nil
}

// EnsureIndexes creates the unique indexes on food titles, user emails
// and basket owners, and the lookup index on order owners.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		key        string
		unique     bool
	}{
		{foodsCollection, "title", true},
		{usersCollection, "email", true},
		{basketsCollection, "userID", true},
		{ordersCollection, "user", false},
	}

	for _, idx := range indexes {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: idx.key, Value: 1}},
			Options: options.Index().SetUnique(idx.unique),
		}
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index %s.%s: %w", idx.collection, idx.key, classifyMongoError(err))
		}
	}
	return nil
}

// classifyMongoError maps driver errors onto the repository error set.
// Unrecognized errors are returned unchanged.
func classifyMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

// parseObjectID converts a hex id. Malformed ids cannot match any
// document, so they are reported as ErrNotFound.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// parseObjectIDs converts the well-formed ids and skips the rest
func parseObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
