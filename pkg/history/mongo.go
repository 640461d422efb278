package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoStore keeps commits in a MongoDB collection, one document per
// commit keyed by id.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

type commitDoc struct {
	ID   int64  `bson:"_id"`
	Data []byte `bson:"data"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "skelstore"
	}
	if cfg.Collection == "" {
		cfg.Collection = "commits"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, id uint32, data []byte) error {
	_, err := s.coll.InsertOne(ctx, commitDoc{ID: int64(id), Data: data})
	if mongo.IsDuplicateKeyError(err) {
		return ErrExists
	}
	if err != nil {
		return fmt.Errorf("insert commit %d: %w", id, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id uint32) ([]byte, error) {
	var doc commitDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: int64(id)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find commit %d: %w", id, err)
	}
	return doc.Data, nil
}

func (s *MongoStore) Range(ctx context.Context, from, to uint32, fn func(uint32, []byte) error) error {
	bounds := bson.D{{Key: "$gte", Value: int64(from)}}
	if to != 0 {
		bounds = append(bounds, bson.E{Key: "$lt", Value: int64(to)})
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{{Key: "_id", Value: bounds}}, opts)
	if err != nil {
		return fmt.Errorf("find commits: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc commitDoc
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode commit: %w", err)
		}
		if err := fn(uint32(doc.ID), doc.Data); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (s *MongoStore) Count(ctx context.Context) (int, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	return int(n), nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
