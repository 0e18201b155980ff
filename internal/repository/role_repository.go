package repository

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoleRepository implements RoleRepositoryInterface using MongoDB.
type RoleRepository struct {
	collection *mongo.Collection
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *MongoDB) *RoleRepository {
	return &RoleRepository{collection: db.Roles}
}

// Create inserts a role. Role names are unique.
func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	stamp(&role.CreatedAt, &role.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, role)
	return translateWriteError(err)
}

// FindByName finds a role by name.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return findOne[model.Role](ctx, r.collection, bson.M{"name": name})
}

// FindByIDs loads the active roles among ids.
func (r *RoleRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			objectIDs = append(objectIDs, oid)
		}
	}
	if len(objectIDs) == 0 {
		return []*model.Role{}, nil
	}
	return findAll[model.Role](ctx, r.collection, bson.M{"_id": bson.M{"$in": objectIDs}, "active": true})
}

// PermissionRepository implements PermissionRepositoryInterface using MongoDB.
type PermissionRepository struct {
	collection *mongo.Collection
}

// NewPermissionRepository creates a new permission repository.
func NewPermissionRepository(db *MongoDB) *PermissionRepository {
	return &PermissionRepository{collection: db.Permissions}
}

// Create inserts a permission. (resource, action) pairs are unique.
func (r *PermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	if permission.ID.IsZero() {
		permission.ID = primitive.NewObjectID()
	}
	stamp(&permission.CreatedAt, &permission.UpdatedAt)

	_, err := r.collection.InsertOne(ctx, permission)
	return translateWriteError(err)
}

// FindByResourceAndAction finds the permission granting action on resource.
func (r *PermissionRepository) FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error) {
	return findOne[model.Permission](ctx, r.collection, bson.M{"resource": resource, "action": action})
}
