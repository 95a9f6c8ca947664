package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/Sokol111/ecommerce-basket-service/internal/persistence/mongo"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "outbox"

// Store is the durable intent store. Insert runs inside the writer's
// transaction when the context carries a session; FetchPending and
// MarkProcessed are used by the processor only.
type Store interface {
	Insert(ctx context.Context, msg *Message) error

	// FetchPending returns all undelivered messages ordered by occurredAt
	// ascending (oldest first).
	FetchPending(ctx context.Context) ([]Message, error)

	MarkProcessed(ctx context.Context, ids []string) error
}

type store struct {
	coll *mongodriver.Collection
}

// NewStore creates a mongo-backed outbox store.
func NewStore(m mongo.Mongo) Store {
	return &store{
		coll: m.GetCollection(collectionName),
	}
}

func (s *store) Insert(ctx context.Context, msg *Message) error {
	if _, err := s.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert outbox message: %w", err)
	}
	return nil
}

func (s *store) FetchPending(ctx context.Context) ([]Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{"processedAt": nil}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending outbox messages: %w", err)
	}

	var messages []Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode pending outbox messages: %w", err)
	}

	return messages, nil
}

func (s *store) MarkProcessed(ctx context.Context, ids []string) error {
	// ProcessedAt is a one-way transition: only pending messages match,
	// so a concurrent or repeated mark can never move the timestamp.
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "processedAt": nil},
		bson.M{"$set": bson.M{"processedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to mark outbox messages processed: %w", err)
	}
	return nil
}

// EnsureIndexes creates required indexes for the outbox collection.
// This is idempotent - safe to call multiple times.
func EnsureIndexes(ctx context.Context, m mongo.Mongo) error {
	coll := m.GetCollection(collectionName)

	indexes := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "processedAt", Value: 1},
				{Key: "occurredAt", Value: 1},
			},
			Options: options.Index().SetName("outbox_processedAt_occurredAt"),
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
