package repository

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogsRepository stores access-log lines and audit events.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a LogsRepository on db.Logs.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts one entry. The caller stamps ID and Timestamp.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries unordered, so one bad document does not drop
// the rest of the batch.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		docs[i] = entry
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// ListAudit returns a farm's audit events matching filter, newest first.
// Access-log lines, which carry no action, are excluded.
func (r *LogsRepository) ListAudit(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error) {
	query := bson.M{"farm_id": farmID, "action": bson.M{"$exists": true, "$ne": ""}}
	if filter.Action != "" {
		query["action"] = filter.Action
	}

	window := bson.M{}
	if !filter.Since.IsZero() {
		window["$gte"] = filter.Since
	}
	if !filter.Until.IsZero() {
		window["$lt"] = filter.Until
	}
	if len(window) > 0 {
		query["timestamp"] = window
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(filter.PageSize()))
	return findAll[model.LogEntry](ctx, r.collection, query, opts)
}
