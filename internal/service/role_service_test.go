package service_test

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultRoles(t *testing.T) {
	db := newTestDB(t)
	roleService, _ := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, roleService.SeedDefaultRoles(ctx))

	roles, err := roleService.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	byName := make(map[string]model.Permission, len(roles))
	defaults := 0
	for _, r := range roles {
		byName[r.Name] = r.Permissions
		if r.IsDefault {
			defaults++
			assert.Equal(t, model.RoleUser, r.Name)
		}
	}

	assert.Equal(t, 1, defaults, "exactly one role is the default")
	assert.Equal(t, model.PermissionView, byName[model.RoleUser])
	assert.Equal(t, model.PermissionView|model.PermissionCreate|model.PermissionEdit, byName[model.RoleStaff])
	assert.Equal(t,
		model.PermissionView|model.PermissionCreate|model.PermissionEdit|model.PermissionDelete|model.PermissionAdmin,
		byName[model.RoleAdmin])
}

func TestSeedDefaultRoles_Idempotent(t *testing.T) {
	db := newTestDB(t)
	roleService, roleRepo := newRoleService(t, db)
	ctx := context.Background()

	require.NoError(t, roleService.SeedDefaultRoles(ctx))

	first, err := roleRepo.FindByName(ctx, model.RoleStaff)
	require.NoError(t, err)

	require.NoError(t, roleService.SeedDefaultRoles(ctx))

	roles, err := roleService.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3, "re-seeding must not duplicate roles")

	second, err := roleRepo.FindByName(ctx, model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "existing roles are updated in place")
	assert.Equal(t, first.Permissions, second.Permissions)
}

func TestSeedDefaultRoles_RepairsDriftedRole(t *testing.T) {
	db := newTestDB(t)
	roleService, roleRepo := newRoleService(t, db)
	ctx := context.Background()

	// A Staff role already exists with the wrong bitmask and default flag
	require.NoError(t, roleRepo.Create(ctx, &model.Role{
		Name:        model.RoleStaff,
		Permissions: model.PermissionAdmin,
		IsDefault:   true,
	}))

	require.NoError(t, roleService.SeedDefaultRoles(ctx))

	staff, err := roleRepo.FindByName(ctx, model.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionView|model.PermissionCreate|model.PermissionEdit, staff.Permissions)
	assert.False(t, staff.IsDefault)

	user, err := roleRepo.FindDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Name)
}
