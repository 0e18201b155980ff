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

// FeedFormulaRepository implements FeedFormulaRepositoryInterface using MongoDB.
type FeedFormulaRepository struct {
	collection *mongo.Collection
}

// NewFeedFormulaRepository creates a new feed formula repository.
func NewFeedFormulaRepository(db *MongoDB) *FeedFormulaRepository {
	return &FeedFormulaRepository{collection: db.FeedFormulas}
}

// Create inserts a new active formula.
func (r *FeedFormulaRepository) Create(ctx context.Context, formula *model.FeedFormula) error {
	if formula.ID == "" {
		formula.ID = uuid.NewString()
	}
	formula.IsActive = true
	stamp(&formula.CreatedAt, &formula.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, formula)
	return err
}

// FindByIDAndFarm finds an active formula owned by the given farm.
func (r *FeedFormulaRepository) FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.FeedFormula, error) {
	return findOne[model.FeedFormula](ctx, r.collection, bson.M{"_id": id, "farm_id": farmID, "is_active": true})
}

// ListActiveByFarm lists a farm's active formulas, newest first.
func (r *FeedFormulaRepository) ListActiveByFarm(ctx context.Context, farmID string) ([]*model.FeedFormula, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[model.FeedFormula](ctx, r.collection, bson.M{"farm_id": farmID, "is_active": true}, opts)
}

// Update replaces the mutable formula fields.
func (r *FeedFormulaRepository) Update(ctx context.Context, formula *model.FeedFormula) error {
	formula.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": formula.ID, "farm_id": formula.FarmID},
		bson.M{"$set": bson.M{
			"name":             formula.Name,
			"ingredients":      formula.Ingredients,
			"target_nutrition": formula.TargetNutrition,
			"target_group":     formula.TargetGroup,
			"total_cost":       formula.TotalCost,
			"notes":            formula.Notes,
			"updated_at":       formula.UpdatedAt,
		}},
	)
	return err
}

// Deactivate soft deletes a formula and reports whether an active one was found.
func (r *FeedFormulaRepository) Deactivate(ctx context.Context, id, farmID string) (bool, error) {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "farm_id": farmID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
