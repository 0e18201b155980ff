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

// HouseRepository implements HouseRepositoryInterface using MongoDB.
type HouseRepository struct {
	collection *mongo.Collection
}

// NewHouseRepository creates a new house repository.
func NewHouseRepository(db *MongoDB) *HouseRepository {
	return &HouseRepository{collection: db.Houses}
}

// Create inserts a new, empty house at version 1.
func (r *HouseRepository) Create(ctx context.Context, house *model.House) error {
	if house.ID == "" {
		house.ID = uuid.NewString()
	}
	house.Version = 1
	house.Occupancy = 0
	stamp(&house.CreatedAt, &house.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, house)
	return translateWriteError(err)
}

// FindByID finds a house by ID regardless of farm.
func (r *HouseRepository) FindByID(ctx context.Context, id string) (*model.House, error) {
	return findOne[model.House](ctx, r.collection, bson.M{"_id": id})
}

// FindByIDAndFarm finds a house owned by the given farm.
func (r *HouseRepository) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.House, error) {
	return findOne[model.House](ctx, r.collection, bson.M{"_id": id, "farm_id": farmID})
}

// ListByFarm lists a farm's houses by name.
func (r *HouseRepository) ListByFarm(ctx context.Context, farmID string) ([]*model.House, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[model.House](ctx, r.collection, bson.M{"farm_id": farmID}, opts)
}

// Update writes the house if nobody changed it since it was read and bumps its version.
func (r *HouseRepository) Update(ctx context.Context, house *model.House) error {
	expected := house.Version
	next := *house
	next.Version = expected + 1
	next.UpdatedAt = time.Now().UTC()

	if err := replaceVersioned(ctx, r.collection, house.ID, expected, &next); err != nil {
		return err
	}
	*house = next
	return nil
}

// Delete removes a house.
func (r *HouseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
