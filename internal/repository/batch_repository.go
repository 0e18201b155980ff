package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BatchRepository implements BatchRepositoryInterface using MongoDB.
type BatchRepository struct {
	collection *mongo.Collection
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *MongoDB) *BatchRepository {
	return &BatchRepository{collection: db.Batches}
}

// Create inserts a new batch at version 1.
func (r *BatchRepository) Create(ctx context.Context, batch *model.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	batch.Version = 1
	stamp(&batch.CreatedAt, &batch.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, batch)
	return translateWriteError(err)
}

// FindByID finds a batch by ID regardless of farm.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*model.Batch, error) {
	return findOne[model.Batch](ctx, r.collection, bson.M{"_id": id})
}

// FindByIDAndFarm finds a batch owned by the given farm.
func (r *BatchRepository) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Batch, error) {
	return findOne[model.Batch](ctx, r.collection, bson.M{"_id": id, "farm_id": farmID})
}

// ListByFarm lists a farm's batches, newest arrival first.
func (r *BatchRepository) ListByFarm(ctx context.Context, farmID string, includeArchived bool) ([]*model.Batch, error) {
	filter := bson.M{"farm_id": farmID}
	if !includeArchived {
		filter["is_archived"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "arrival_date", Value: -1}})
	return findAll[model.Batch](ctx, r.collection, filter, opts)
}

// ListActive lists unarchived batches across all farms.
func (r *BatchRepository) ListActive(ctx context.Context) ([]*model.Batch, error) {
	return findAll[model.Batch](ctx, r.collection, bson.M{"is_archived": false})
}

// Update writes the batch if nobody changed it since it was read and bumps its version.
func (r *BatchRepository) Update(ctx context.Context, batch *model.Batch) error {
	expected := batch.Version
	next := *batch
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	if err := replaceVersioned(ctx, r.collection, batch.ID, expected, &next); err != nil {
		return err
	}
	*batch = next
	return nil
}

// SetAge stores a recomputed age and bumps the version so in-flight
// read-modify-write cycles do not overwrite it.
func (r *BatchRepository) SetAge(ctx context.Context, id string, age int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{"age": age, "updated_at": time.Now().UTC()},
			"$inc": bson.M{"version": 1},
		},
	)
	return err
}

// Delete removes a batch.
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
