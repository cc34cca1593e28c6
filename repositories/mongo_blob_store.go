package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appStateCollection = "app_state"

type appStateDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoBlobStore struct {
	coll *mongo.Collection
}

func NewMongoBlobStore(db *mongo.Database) BlobStore {
	return &mongoBlobStore{coll: db.Collection(appStateCollection)}
}

// ConnectMongo opens a client and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

func (s *mongoBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc appStateDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read state %q: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *mongoBlobStore) Put(ctx context.Context, key string, value []byte) error {
	doc := appStateDocument{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}
