package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionHas(t *testing.T) {
	staff := CombinePermissions(PermissionView, PermissionCreate, PermissionEdit)

	assert.True(t, staff.Has(PermissionView))
	assert.True(t, staff.Has(PermissionCreate))
	assert.True(t, staff.Has(PermissionEdit))
	assert.False(t, staff.Has(PermissionDelete))
	assert.False(t, staff.Has(PermissionAdmin))

	var none Permission
	assert.False(t, none.Has(PermissionView))
}

func TestUserHasPermission_UnionsRoles(t *testing.T) {
	user := User{
		Roles: []Role{
			{Name: RoleUser, Permissions: PermissionView},
			{Name: "Bookkeeper", Permissions: PermissionCreate | PermissionEdit},
		},
	}

	assert.True(t, user.HasPermission(PermissionView))
	assert.True(t, user.HasPermission(PermissionEdit))
	assert.False(t, user.HasPermission(PermissionDelete))
	assert.Equal(t, PermissionView|PermissionCreate|PermissionEdit, user.EffectivePermissions())
}

func TestUserHasPermission_NoRoles(t *testing.T) {
	user := User{}
	assert.False(t, user.HasPermission(PermissionView))
	assert.Equal(t, Permission(0), user.EffectivePermissions())
}

func TestSetPassword_NeverStoresPlaintext(t *testing.T) {
	user := User{}
	require.NoError(t, user.SetPassword("hunter2-secret"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "hunter2-secret")
	assert.True(t, user.VerifyPassword("hunter2-secret"))
	assert.False(t, user.VerifyPassword("wrong-password"))
}

func TestFullName_FallsBackToUsername(t *testing.T) {
	user := User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", user.FullName())

	user.LastName = ""
	assert.Equal(t, "jdoe", user.FullName())
}

func TestIsAdmin(t *testing.T) {
	admin := User{Roles: []Role{{Name: RoleAdmin, Permissions: PermissionAdmin}}}
	staff := User{Roles: []Role{{Name: RoleStaff}}}

	assert.True(t, admin.IsAdmin())
	assert.False(t, staff.IsAdmin())
}
