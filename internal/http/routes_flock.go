package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/middleware"
)

// Permission resources guarding the farm routes. Each has a read and a
// write action, e.g. "batches:write".
const (
	ResourceFarms       = "farms"
	ResourceBatches     = "batches"
	ResourceHouses      = "houses"
	ResourceAllocations = "allocations"
	ResourceStock       = "stock"
	ResourceProduction  = "production"
	ResourceFormulas    = "formulas"
	ResourceAudit       = "audit"
)

// FlockResources lists every resource with read and write permissions.
var FlockResources = []string{
	ResourceFarms,
	ResourceBatches,
	ResourceHouses,
	ResourceAllocations,
	ResourceStock,
	ResourceProduction,
	ResourceFormulas,
	ResourceAudit,
}

// FlockRoutes handles farm route registration.
type FlockRoutes struct {
	handler *Handler
}

// NewFlockRoutes creates a new FlockRoutes instance.
func NewFlockRoutes(handler *Handler) *FlockRoutes {
	return &FlockRoutes{handler: handler}
}

// RegisterProtectedRoutes registers the farm routes on an authenticated group.
// Creating a farm only needs a valid token; every other route is scoped to
// the caller's farm.
func (r *FlockRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	perms := r.resolvePermissions(cfg)
	read := func(resource string) []gin.HandlerFunc { return perms.require(resource, "read", cfg) }
	write := func(resource string) []gin.HandlerFunc { return perms.require(resource, "write", cfg) }
	h := r.handler

	if h.farms != nil {
		protected.POST("/farms", with(write(ResourceFarms), h.CreateFarm)...)
	}

	scoped := protected.Group("")
	scoped.Use(middleware.RequireFarm())

	if h.farms != nil {
		scoped.GET("/farms/current", with(read(ResourceFarms), h.GetFarm)...)
		scoped.PATCH("/farms/current", with(write(ResourceFarms), h.UpdateFarm)...)
	}

	if h.batches != nil {
		scoped.POST("/batches", with(write(ResourceBatches), h.CreateBatch)...)
		scoped.GET("/batches", with(read(ResourceBatches), h.ListBatches)...)
		scoped.GET("/batches/:id", with(read(ResourceBatches), h.GetBatch)...)
		scoped.PATCH("/batches/:id", with(write(ResourceBatches), h.UpdateBatch)...)
		scoped.DELETE("/batches/:id", with(write(ResourceBatches), h.DeleteBatch)...)
	}

	if h.houses != nil {
		scoped.POST("/houses", with(write(ResourceHouses), h.CreateHouse)...)
		scoped.GET("/houses", with(read(ResourceHouses), h.ListHouses)...)
		scoped.GET("/houses/:id", with(read(ResourceHouses), h.GetHouse)...)
		scoped.PATCH("/houses/:id", with(write(ResourceHouses), h.UpdateHouse)...)
		scoped.DELETE("/houses/:id", with(write(ResourceHouses), h.DeleteHouse)...)
	}

	if h.allocations != nil {
		scoped.POST("/allocations", with(write(ResourceAllocations), h.Allocate)...)
		scoped.POST("/allocations/transfer", with(write(ResourceAllocations), h.Transfer)...)
		scoped.GET("/allocations/:id", with(read(ResourceAllocations), h.GetAllocation)...)
		scoped.PATCH("/allocations/:id", with(write(ResourceAllocations), h.UpdateAllocation)...)
		scoped.GET("/batches/:id/allocations", with(read(ResourceAllocations), h.ListBatchAllocations)...)
		scoped.GET("/houses/:id/allocations", with(read(ResourceAllocations), h.ListHouseAllocations)...)
	}

	if h.stock != nil {
		scoped.POST("/stocks", with(write(ResourceStock), h.CreateStock)...)
		scoped.GET("/stocks", with(read(ResourceStock), h.ListStock)...)
		scoped.GET("/stocks/low", with(read(ResourceStock), h.ListLowStock)...)
		scoped.GET("/stocks/:id", with(read(ResourceStock), h.GetStock)...)
		scoped.PUT("/stocks/:id", with(write(ResourceStock), h.UpdateStock)...)
		scoped.DELETE("/stocks/:id", with(write(ResourceStock), h.DeleteStock)...)
	}

	if h.production != nil {
		scoped.POST("/production", with(write(ResourceProduction), h.CreateProduction)...)
		scoped.GET("/production", with(read(ResourceProduction), h.ListProduction)...)
		scoped.GET("/production/:id", with(read(ResourceProduction), h.GetProduction)...)
		scoped.PUT("/production/:id", with(write(ResourceProduction), h.UpdateProduction)...)
		scoped.DELETE("/production/:id", with(write(ResourceProduction), h.DeleteProduction)...)
	}

	if h.feedFormulas != nil {
		scoped.POST("/feed-formulas", with(write(ResourceFormulas), h.CreateFeedFormula)...)
		scoped.POST("/feed-formulas/optimize", with(read(ResourceFormulas), h.OptimizeFeedFormula)...)
		scoped.GET("/feed-formulas", with(read(ResourceFormulas), h.ListFeedFormulas)...)
		scoped.GET("/feed-formulas/:id", with(read(ResourceFormulas), h.GetFeedFormula)...)
		scoped.PUT("/feed-formulas/:id", with(write(ResourceFormulas), h.UpdateFeedFormula)...)
		scoped.DELETE("/feed-formulas/:id", with(write(ResourceFormulas), h.DeleteFeedFormula)...)
	}

	if h.logs != nil {
		scoped.GET("/audit", with(read(ResourceAudit), h.ListAudit)...)
	}
}

// permissionIDs maps "resource:action" to the stored permission id.
type permissionIDs map[string]string

// require returns the authorization middleware for a resource action, or
// nothing when authorization is not configured or the permission is unknown.
func (p permissionIDs) require(resource, action string, cfg *RouterConfig) []gin.HandlerFunc {
	permID := p[resource+":"+action]
	if permID == "" || cfg.RoleService == nil {
		return nil
	}
	return []gin.HandlerFunc{
		middleware.RequireAuthorization(middleware.AuthorizationConfig{
			RequiredPermissions: []string{permID},
		}, cfg.RoleService),
	}
}

// resolvePermissions fetches permission IDs from the permission service.
func (r *FlockRoutes) resolvePermissions(cfg *RouterConfig) permissionIDs {
	ids := make(permissionIDs)
	if cfg.PermissionService == nil {
		return ids
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, resource := range FlockResources {
		for _, action := range []string{"read", "write"} {
			ids[resource+":"+action] = cfg.PermissionService.PermissionID(ctx, resource, action)
		}
	}
	return ids
}

func with(chain []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(chain, handler)
}
