// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lookups return (nil, nil) when the document does not exist. Lookups
// scoped by farm treat a document owned by another farm as missing.

// LogsRepositoryInterface stores access-log lines and audit events.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	ListAudit(ctx context.Context, farmID string, filter model.AuditFilter) ([]*model.LogEntry, error)
}

// FarmRepositoryInterface defines the interface for farm repository operations.
type FarmRepositoryInterface interface {
	Create(ctx context.Context, farm *model.Farm) error
	FindByID(ctx context.Context, id string) (*model.Farm, error)
	FindByOwner(ctx context.Context, ownerID string) (*model.Farm, error)
	Update(ctx context.Context, farm *model.Farm) error
}

// BatchRepositoryInterface defines the interface for batch repository operations.
// Update is version-checked and returns ErrVersionConflict on a stale write.
type BatchRepositoryInterface interface {
	Create(ctx context.Context, batch *model.Batch) error
	FindByID(ctx context.Context, id string) (*model.Batch, error)
	FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Batch, error)
	ListByFarm(ctx context.Context, farmID string, includeArchived bool) ([]*model.Batch, error)
	ListActive(ctx context.Context) ([]*model.Batch, error)
	Update(ctx context.Context, batch *model.Batch) error
	SetAge(ctx context.Context, id string, age int) error
	Delete(ctx context.Context, id string) error
}

// HouseRepositoryInterface defines the interface for house repository operations.
// Update is version-checked and returns ErrVersionConflict on a stale write.
type HouseRepositoryInterface interface {
	Create(ctx context.Context, house *model.House) error
	FindByID(ctx context.Context, id string) (*model.House, error)
	FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.House, error)
	ListByFarm(ctx context.Context, farmID string) ([]*model.House, error)
	Update(ctx context.Context, house *model.House) error
	Delete(ctx context.Context, id string) error
}

// AllocationRepositoryInterface defines the interface for allocation repository operations.
// Create returns ErrDuplicateKey when the (batch, house) pair already exists.
type AllocationRepositoryInterface interface {
	Create(ctx context.Context, allocation *model.Allocation) error
	FindByID(ctx context.Context, id string) (*model.Allocation, error)
	FindByBatchAndHouse(ctx context.Context, batchID, houseID string) (*model.Allocation, error)
	ListByBatch(ctx context.Context, batchID string) ([]*model.Allocation, error)
	ListByHouse(ctx context.Context, houseID string) ([]*model.Allocation, error)
	Update(ctx context.Context, allocation *model.Allocation) error
	DeleteByBatch(ctx context.Context, batchID string) error
	DeleteByHouse(ctx context.Context, houseID string) error
}

// StockRepositoryInterface defines the interface for stock repository operations.
type StockRepositoryInterface interface {
	Create(ctx context.Context, stock *model.Stock) error
	FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Stock, error)
	ListByFarm(ctx context.Context, farmID string) ([]*model.Stock, error)
	// ListLow lists items at or below threshold; an empty farmID scans all farms.
	ListLow(ctx context.Context, farmID string) ([]*model.Stock, error)
	Update(ctx context.Context, stock *model.Stock) error
	Delete(ctx context.Context, id, farmID string) (bool, error)
}

// ProductionRepositoryInterface defines the interface for production repository operations.
type ProductionRepositoryInterface interface {
	Create(ctx context.Context, production *model.Production) error
	FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.Production, error)
	ListByFarm(ctx context.Context, farmID, batchID string) ([]*model.Production, error)
	Update(ctx context.Context, production *model.Production) error
	Delete(ctx context.Context, id, farmID string) (bool, error)
}

// FeedFormulaRepositoryInterface defines the interface for feed formula repository operations.
type FeedFormulaRepositoryInterface interface {
	Create(ctx context.Context, formula *model.FeedFormula) error
	FindByIDAndFarm(ctx context.Context, id, farmID string) (*model.FeedFormula, error)
	ListActiveByFarm(ctx context.Context, farmID string) ([]*model.FeedFormula, error)
	Update(ctx context.Context, formula *model.FeedFormula) error
	Deactivate(ctx context.Context, id, farmID string) (bool, error)
}

// UnitOfWork runs fn atomically. Repository calls made with the context
// passed to fn take part in the transaction; any error from fn rolls it back.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepositoryInterface defines the interface for user repository operations.
// Create returns ErrDuplicateKey when the email or username is taken.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByEmailForAuth loads only the fields login needs, password hash included.
	FindByEmailForAuth(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	// FindByIDMinimal loads the user without the password hash.
	FindByIDMinimal(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	// AssignFarm links a user that has no farm yet and reports whether it did.
	AssignFarm(ctx context.Context, id primitive.ObjectID, farmID string) (bool, error)
}

// RoleRepositoryInterface defines the interface for role repository operations.
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *model.Role) error
	FindByName(ctx context.Context, name string) (*model.Role, error)
	// FindByIDs skips ids that are not valid object ids.
	FindByIDs(ctx context.Context, ids []string) ([]*model.Role, error)
}

// PermissionRepositoryInterface defines the interface for permission repository operations.
type PermissionRepositoryInterface interface {
	Create(ctx context.Context, permission *model.Permission) error
	FindByResourceAndAction(ctx context.Context, resource, action string) (*model.Permission, error)
}

// TokenRepositoryInterface defines the interface for stored refresh and
// blacklisted tokens. Expired tokens are removed by a TTL index.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteByToken(ctx context.Context, tokenString string) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID, tokenType string) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
}
