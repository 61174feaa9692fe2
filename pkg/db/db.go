package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dglai-harvest/pkg/domain"
)

// Collection names used by the MongoDB store.
const (
	EntriesCollection   = "entries"
	UnmatchedCollection = "unmatched_labels"
	FailuresCollection  = "failed_sessions"
	BatchesCollection   = "batches"
)

// Client wraps the MongoDB client and the harvest collections
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	entries     *mongo.Collection
	unmatched   *mongo.Collection
	failures    *mongo.Collection
	batches     *mongo.Collection
}

// entryDocument is how an entry is stored; session_id is unique.
type entryDocument struct {
	SessionID   string                  `bson:"session_id"`
	BatchKey    string                  `bson:"batch_key"`
	RunID       string                  `bson:"run_id"`
	Entry       *domain.DictionaryEntry `bson:"entry"`
	HarvestedAt time.Time               `bson:"harvested_at"`
}

type batchDocument struct {
	Key         string    `bson:"key"`
	RunID       string    `bson:"run_id"`
	Identifiers int       `bson:"identifiers"`
	Entries     int       `bson:"entries"`
	Unmatched   int       `bson:"unmatched"`
	Failures    int       `bson:"failures"`
	SealedAt    time.Time `bson:"sealed_at"`
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Connect reports the missing client
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	return &Client{
		mongoClient: mongoClient,
		database:    database,
		entries:     database.Collection(EntriesCollection),
		unmatched:   database.Collection(UnmatchedCollection),
		failures:    database.Collection(FailuresCollection),
		batches:     database.Collection(BatchesCollection),
	}
}

// Connect verifies the connection and ensures the unique indexes exist
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	if err := c.mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}

	unique := options.Index().SetUnique(true)
	if _, err := c.entries.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: unique}); err != nil {
		return fmt.Errorf("create entries index: %w", err)
	}
	if _, err := c.batches.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: unique}); err != nil {
		return fmt.Errorf("create batches index: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveBatch upserts the batch entries by session id, appends its diagnostics
// and failures, and finally records the batch as sealed.
func (c *Client) SaveBatch(ctx context.Context, b *domain.Batch) error {
	if c.entries == nil {
		return fmt.Errorf("collection not initialized")
	}
	now := time.Now().UTC()

	ordered := b.OrderedEntries()
	if len(ordered) > 0 {
		models := make([]mongo.WriteModel, 0, len(ordered))
		for _, ie := range ordered {
			doc := entryDocument{
				SessionID:   ie.SessionID,
				BatchKey:    b.Key,
				RunID:       b.RunID,
				Entry:       ie.Entry,
				HarvestedAt: now,
			}
			models = append(models, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"session_id": ie.SessionID}).
				SetUpdate(bson.M{"$set": doc}).
				SetUpsert(true))
		}
		if _, err := c.entries.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("upsert entries: %w", err)
		}
	}

	diags := b.Diagnostics()
	if len(diags) > 0 {
		docs := make([]interface{}, len(diags))
		for i, d := range diags {
			docs[i] = bson.M{
				"session_id": d.SessionID,
				"vocabulary": d.Vocabulary,
				"label":      d.Label,
				"batch_key":  b.Key,
				"run_id":     b.RunID,
			}
		}
		if _, err := c.unmatched.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert unmatched labels: %w", err)
		}
	}

	failures := b.Failures()
	if len(failures) > 0 {
		docs := make([]interface{}, len(failures))
		for i, f := range failures {
			docs[i] = bson.M{
				"session_id": f.SessionID,
				"kind":       f.Kind,
				"detail":     f.Detail,
				"batch_key":  b.Key,
				"run_id":     b.RunID,
			}
		}
		if _, err := c.failures.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("insert failures: %w", err)
		}
	}

	record := batchDocument{
		Key:         b.Key,
		RunID:       b.RunID,
		Identifiers: len(b.Identifiers),
		Entries:     len(ordered),
		Unmatched:   len(diags),
		Failures:    len(failures),
		SealedAt:    now,
	}
	_, err := c.batches.UpdateOne(ctx, bson.M{"key": b.Key}, bson.M{"$set": record}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("record batch: %w", err)
	}
	return nil
}

// IsBatchSealed reports whether a batch with key was recorded
func (c *Client) IsBatchSealed(ctx context.Context, key string) (bool, error) {
	if c.batches == nil {
		return false, fmt.Errorf("collection not initialized")
	}
	err := c.batches.FindOne(ctx, bson.M{"key": key}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find batch: %w", err)
	}
	return true, nil
}

// GetAllSessionIDs returns the set of identifiers that already have an entry
func (c *Client) GetAllSessionIDs(ctx context.Context) (map[string]bool, error) {
	if c.entries == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.entries.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"session_id": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to query session ids: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make(map[string]bool)
	for cursor.Next(ctx) {
		var result struct {
			SessionID string `bson:"session_id"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue // Skip invalid documents
		}
		if result.SessionID != "" {
			ids[result.SessionID] = true
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return ids, nil
}
