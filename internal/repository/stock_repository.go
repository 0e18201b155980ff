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

// StockRepository implements StockRepositoryInterface using MongoDB.
type StockRepository struct {
	collection *mongo.Collection
}

// NewStockRepository creates a new stock repository.
func NewStockRepository(db *MongoDB) *StockRepository {
	return &StockRepository{collection: db.Stocks}
}

// Create inserts a new stock item.
func (r *StockRepository) Create(ctx context.Context, stock *model.Stock) error {
	if stock.ID == "" {
		stock.ID = uuid.NewString()
	}
	stamp(&stock.CreatedAt, &stock.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, stock)
	return err
}

// FindByIDAndFarm finds a stock item owned by the given farm.
func (r *StockRepository) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Stock, error) {
	return findOne[model.Stock](ctx, r.collection, bson.M{"_id": id, "farm_id": farmID})
}

// ListByFarm lists a farm's stock, newest first.
func (r *StockRepository) ListByFarm(ctx context.Context, farmID string) ([]*model.Stock, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[model.Stock](ctx, r.collection, bson.M{"farm_id": farmID}, opts)
}

// ListLow lists items whose quantity is at or below their threshold.
func (r *StockRepository) ListLow(ctx context.Context, farmID string) ([]*model.Stock, error) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$threshold"}}}
	if farmID != "" {
		filter["farm_id"] = farmID
	}
	opts := options.Find().SetSort(bson.D{{Key: "farm_id", Value: 1}, {Key: "item", Value: 1}})
	return findAll[model.Stock](ctx, r.collection, filter, opts)
}

// Update replaces the mutable stock fields.
func (r *StockRepository) Update(ctx context.Context, stock *model.Stock) error {
	stock.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": stock.ID, "farm_id": stock.FarmID},
		bson.M{"$set": bson.M{
			"item":       stock.Item,
			"category":   stock.Category,
			"quantity":   stock.Quantity,
			"threshold":  stock.Threshold,
			"updated_at": stock.UpdatedAt,
		}},
	)
	return err
}

// Delete removes a stock item and reports whether it existed.
func (r *StockRepository) Delete(ctx context.Context, id, farmID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "farm_id": farmID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
