package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FarmRepository implements FarmRepositoryInterface using MongoDB.
type FarmRepository struct {
	collection *mongo.Collection
}

// NewFarmRepository creates a new farm repository.
func NewFarmRepository(db *MongoDB) *FarmRepository {
	return &FarmRepository{collection: db.Farms}
}

// Create inserts a new farm. A second farm for the same owner fails with ErrDuplicateKey.
func (r *FarmRepository) Create(ctx context.Context, farm *model.Farm) error {
	if farm.ID == "" {
		farm.ID = uuid.NewString()
	}
	stamp(&farm.CreatedAt, &farm.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, farm)
	return translateWriteError(err)
}

// FindByID finds a farm by ID.
func (r *FarmRepository) FindByID(ctx context.Context, id string) (*model.Farm, error) {
	return findOne[model.Farm](ctx, r.collection, bson.M{"_id": id})
}

// FindByOwner finds the farm owned by the given user.
func (r *FarmRepository) FindByOwner(ctx context.Context, ownerID string) (*model.Farm, error) {
	return findOne[model.Farm](ctx, r.collection, bson.M{"owner_id": ownerID})
}

// Update replaces the mutable farm fields.
func (r *FarmRepository) Update(ctx context.Context, farm *model.Farm) error {
	farm.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": farm.ID},
		bson.M{"$set": bson.M{
			"name":       farm.Name,
			"location":   farm.Location,
			"updated_at": farm.UpdatedAt,
		}},
	)
	return err
}
