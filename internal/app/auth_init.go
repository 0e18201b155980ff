package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/flock-service/internal/domain/model"
	"github.com/guttosm/flock-service/internal/http"
	"github.com/guttosm/flock-service/internal/repository"
	"github.com/rs/zerolog/log"
)

const seedTimeout = 5 * time.Second

// adminRole holds every farm permission plus user and role management.
// model.DefaultRoleName, given to new accounts, only gets the farm ones.
const adminRole = "admin"

func newPermission(resource, action, verb string) *model.Permission {
	return &model.Permission{
		Name:        resource + ":" + action,
		Description: verb + " " + resource,
		Resource:    resource,
		Action:      action,
		Active:      true,
	}
}

func defaultFarmPermissions() []*model.Permission {
	perms := make([]*model.Permission, 0, 2*len(http.FlockResources))
	for _, resource := range http.FlockResources {
		perms = append(perms, newPermission(resource, "read", "Read"), newPermission(resource, "write", "Create/update"))
	}
	return perms
}

func defaultAdminPermissions() []*model.Permission {
	return []*model.Permission{
		newPermission("users", "read", "Read"),
		newPermission("users", "write", "Create/update"),
		newPermission("users", "delete", "Delete"),
		newPermission("roles", "read", "Read"),
		newPermission("roles", "write", "Create/update"),
	}
}

// seedAccessControl creates the built-in permissions and roles that are
// missing. Existing documents are left untouched. A permission that cannot be
// stored is left out of the roles; every failure is returned joined.
func seedAccessControl(ctx context.Context, roles repository.RoleRepositoryInterface, perms repository.PermissionRepositoryInterface) error {
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	var errs []error
	ensure := func(wanted []*model.Permission) []string {
		ids := make([]string, 0, len(wanted))
		for _, perm := range wanted {
			existing, err := perms.FindByResourceAndAction(ctx, perm.Resource, perm.Action)
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("look up permission %s: %w", perm.Name, err))
				continue
			case existing != nil:
				perm.ID = existing.ID
			default:
				if err := perms.Create(ctx, perm); err != nil {
					errs = append(errs, fmt.Errorf("create permission %s: %w", perm.Name, err))
					continue
				}
				log.Info().Str("permission", perm.Name).Msg("Created default permission")
			}
			ids = append(ids, perm.ID.Hex())
		}
		return ids
	}

	memberIDs := ensure(defaultFarmPermissions())
	adminIDs := append(append([]string{}, memberIDs...), ensure(defaultAdminPermissions())...)

	for _, role := range []*model.Role{
		{Name: model.DefaultRoleName, Description: "Farm member with access to every farm resource", Permissions: memberIDs, Active: true},
		{Name: adminRole, Description: "Administrator role with full access", Permissions: adminIDs, Active: true},
	} {
		existing, err := roles.FindByName(ctx, role.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("look up role %s: %w", role.Name, err))
			continue
		}
		if existing != nil {
			continue
		}
		if err := roles.Create(ctx, role); err != nil {
			errs = append(errs, fmt.Errorf("create role %s: %w", role.Name, err))
			continue
		}
		log.Info().Str("role", role.Name).Msg("Created default role")
	}

	return errors.Join(errs...)
}
