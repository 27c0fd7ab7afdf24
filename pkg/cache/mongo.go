package cache

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCache backs the cache with a MongoDB collection. Entries use the key
// as _id; expiry is checked lazily on Get so the collection needs no TTL
// index to behave correctly.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to MongoDB and verifies the connection.
func NewMongoCache(ctx context.Context, uri, database, collection string) (Cache, error) {
	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoCache{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Get retrieves a value from MongoDB. Transient transport failures are
// retried before the error is surfaced.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		hit  bool
	)
	err := RetryWithBackoff(ctx, func() error {
		var entry mongoEntry
		err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
		if err == mongo.ErrNoDocuments {
			return nil
		}
		if err != nil {
			return Retryable(fmt.Errorf("%w: mongo find: %v", ErrNetwork, err))
		}
		if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
			_, _ = c.coll.DeleteOne(ctx, bson.M{"_id": key})
			return nil
		}
		data, hit = entry.Data, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value in MongoDB with retries, replacing any existing entry
// for the key.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	return RetryWithBackoff(ctx, func() error {
		_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
		if err != nil {
			return Retryable(fmt.Errorf("%w: mongo replace: %v", ErrNetwork, err))
		}
		return nil
	})
}

// Delete removes a value from MongoDB with retries.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
			return Retryable(fmt.Errorf("%w: mongo delete: %v", ErrNetwork, err))
		}
		return nil
	})
}

// Close disconnects from MongoDB.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// Ensure MongoCache implements Cache.
var _ Cache = (*MongoCache)(nil)
