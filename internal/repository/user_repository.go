package repository

import (
	"context"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	authProjection = bson.M{
		"_id": 1, "email": 1, "username": 1, "password": 1,
		"name": 1, "roles": 1, "farm_id": 1, "active": 1,
	}
	profileProjection = bson.M{"password": 0}
)

// UserRepository stores accounts in the users collection.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *MongoDB) *UserRepository {
	return &UserRepository{collection: db.Users}
}

// Create inserts user, assigning an id when it has none. A duplicate email or
// username fails with ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stamp(&user.CreatedAt, &user.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, user)
	return translateWriteError(err)
}

// FindByEmail finds a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"email": email})
}

// FindByEmailForAuth loads only the fields login needs, password hash included.
func (r *UserRepository) FindByEmailForAuth(ctx context.Context, email string) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"email": email}, options.FindOne().SetProjection(authProjection))
}

// FindByUsername finds a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"username": username})
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"_id": id})
}

// FindByIDMinimal loads a profile without the password hash.
func (r *UserRepository) FindByIDMinimal(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return findOne[model.User](ctx, r.collection, bson.M{"_id": id}, options.FindOne().SetProjection(profileProjection))
}

// AssignFarm sets the user's farm unless one is already set. It reports
// whether the user was updated.
func (r *UserRepository) AssignFarm(ctx context.Context, id primitive.ObjectID, farmID string) (bool, error) {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "$or": bson.A{
			bson.M{"farm_id": bson.M{"$exists": false}},
			bson.M{"farm_id": ""},
		}},
		bson.M{"$set": bson.M{"farm_id": farmID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
