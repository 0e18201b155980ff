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

// AllocationRepository implements AllocationRepositoryInterface using MongoDB.
type AllocationRepository struct {
	collection *mongo.Collection
}

// NewAllocationRepository creates a new allocation repository.
func NewAllocationRepository(db *MongoDB) *AllocationRepository {
	return &AllocationRepository{collection: db.Allocations}
}

// Create inserts a new allocation at version 1.
func (r *AllocationRepository) Create(ctx context.Context, allocation *model.Allocation) error {
	if allocation.ID == "" {
		allocation.ID = uuid.NewString()
	}
	allocation.Version = 1
	stamp(&allocation.CreatedAt, &allocation.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, allocation)
	return translateWriteError(err)
}

// FindByID finds an allocation by ID.
func (r *AllocationRepository) FindByID(ctx context.Context, id string) (*model.Allocation, error) {
	return findOne[model.Allocation](ctx, r.collection, bson.M{"_id": id})
}

// FindByBatchAndHouse finds the allocation for a (batch, house) pair.
func (r *AllocationRepository) FindByBatchAndHouse(ctx context.Context, batchID, houseID string) (*model.Allocation, error) {
	return findOne[model.Allocation](ctx, r.collection, bson.M{"batch_id": batchID, "house_id": houseID})
}

// ListByBatch lists a batch's allocations in creation order.
func (r *AllocationRepository) ListByBatch(ctx context.Context, batchID string) ([]*model.Allocation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[model.Allocation](ctx, r.collection, bson.M{"batch_id": batchID}, opts)
}

// ListByHouse lists a house's allocations in creation order.
func (r *AllocationRepository) ListByHouse(ctx context.Context, houseID string) ([]*model.Allocation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[model.Allocation](ctx, r.collection, bson.M{"house_id": houseID}, opts)
}

// Update writes the allocation if nobody changed it since it was read and bumps its version.
func (r *AllocationRepository) Update(ctx context.Context, allocation *model.Allocation) error {
	expected := allocation.Version
	next := *allocation
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	if err := replaceVersioned(ctx, r.collection, allocation.ID, expected, &next); err != nil {
		return err
	}
	*allocation = next
	return nil
}

// DeleteByBatch removes every allocation of a batch.
func (r *AllocationRepository) DeleteByBatch(ctx context.Context, batchID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"batch_id": batchID})
	return err
}

// DeleteByHouse removes every allocation referencing a house.
func (r *AllocationRepository) DeleteByHouse(ctx context.Context, houseID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"house_id": houseID})
	return err
}
