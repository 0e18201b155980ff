package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/guttosm/flock-service/internal/service/cache"
)

const permissionLookupTimeout = 2 * time.Second

// RoleService resolves the permissions a token's roles grant.
type RoleService interface {
	// Permissions returns the permissions granted by the active roles among roleIDs.
	Permissions(ctx context.Context, roleIDs []string) (model.PermissionSet, error)
}

type roleService struct {
	roles repository.RoleRepositoryInterface
	cache cache.Cache[model.PermissionSet]
}

// NewRoleService creates a role service. Resolved permission sets are kept in
// grants when it is non-nil.
func NewRoleService(roles repository.RoleRepositoryInterface, grants cache.Cache[model.PermissionSet]) RoleService {
	return &roleService{roles: roles, cache: grants}
}

func (s *roleService) Permissions(ctx context.Context, roleIDs []string) (model.PermissionSet, error) {
	if s.roles == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if len(roleIDs) == 0 {
		return model.PermissionSet{}, nil
	}

	key := roleSetKey(roleIDs)
	if s.cache != nil {
		if set, ok := s.cache.Get(key); ok {
			return set, nil
		}
	}

	roles, err := s.roles.FindByIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	set := model.GrantedBy(roles)
	if s.cache != nil {
		s.cache.Set(key, set)
	}
	return set, nil
}

// roleSetKey is independent of the order roles appear in the token.
func roleSetKey(roleIDs []string) string {
	sorted := slices.Clone(roleIDs)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}

// PermissionService looks up stored permission ids.
type PermissionService interface {
	// PermissionID returns the id of the permission for action on resource,
	// or "" when it does not exist or cannot be read.
	PermissionID(ctx context.Context, resource, action string) string
}

type permissionService struct {
	permissions repository.PermissionRepositoryInterface
}

// NewPermissionService creates a permission service.
func NewPermissionService(permissions repository.PermissionRepositoryInterface) PermissionService {
	return &permissionService{permissions: permissions}
}

func (s *permissionService) PermissionID(ctx context.Context, resource, action string) string {
	if s.permissions == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, permissionLookupTimeout)
	defer cancel()

	perm, err := s.permissions.FindByResourceAndAction(ctx, resource, action)
	if err != nil || perm == nil {
		return ""
	}
	return perm.ID.Hex()
}
