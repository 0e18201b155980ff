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

// ProductionRepository implements ProductionRepositoryInterface using MongoDB.
type ProductionRepository struct {
	collection *mongo.Collection
}

// NewProductionRepository creates a new production repository.
func NewProductionRepository(db *MongoDB) *ProductionRepository {
	return &ProductionRepository{collection: db.Productions}
}

// Create inserts a new production record.
func (r *ProductionRepository) Create(ctx context.Context, production *model.Production) error {
	if production.ID == "" {
		production.ID = uuid.NewString()
	}
	stamp(&production.CreatedAt, &production.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, production)
	return err
}

// FindByIDAndFarm finds a production record owned by the given farm.
func (r *ProductionRepository) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Production, error) {
	return findOne[model.Production](ctx, r.collection, bson.M{"_id": id, "farm_id": farmID})
}

// ListByFarm lists a farm's records, most recent date first, optionally for one batch.
func (r *ProductionRepository) ListByFarm(ctx context.Context, farmID, batchID string) ([]*model.Production, error) {
	filter := bson.M{"farm_id": farmID}
	if batchID != "" {
		filter["batch_id"] = batchID
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	return findAll[model.Production](ctx, r.collection, filter, opts)
}

// Update replaces the mutable production fields.
func (r *ProductionRepository) Update(ctx context.Context, production *model.Production) error {
	production.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": production.ID, "farm_id": production.FarmID},
		bson.M{"$set": bson.M{
			"batch_id":                 production.BatchID,
			"date":                     production.Date,
			"number_of_dead_birds":     production.NumberOfDeadBirds,
			"number_of_eggs_collected": production.NumberOfEggsCollected,
			"notes":                    production.Notes,
			"updated_at":               production.UpdatedAt,
		}},
	)
	return err
}

// Delete removes a production record and reports whether it existed.
func (r *ProductionRepository) Delete(ctx context.Context, id, farmID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "farm_id": farmID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
