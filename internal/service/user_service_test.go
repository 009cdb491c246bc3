package service_test

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) service.UserService {
	t.Helper()
	svc := service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		repository.NewTransactionManager(db),
	)

	roleService, _ := newRoleService(t, db)
	require.NoError(t, roleService.SeedDefaultRoles(context.Background()))
	return svc
}

func TestCreateUser_DefaultRole(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, service.CreateUserRequest{
		Email:    "jdoe@parish.example",
		Username: "jdoe",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{model.RoleUser}, created.Roles, "new accounts get the default role")
	assert.Equal(t, model.PermissionView, created.Permissions)
}

func TestCreateUser_UnknownRoleRejected(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)

	_, err := userService.CreateUser(context.Background(), service.CreateUserRequest{
		Email:    "jdoe@parish.example",
		Username: "jdoe",
		Password: "correct-horse",
		Roles:    []string{"Sysop"},
	})
	assert.Error(t, err)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)
	ctx := context.Background()

	_, err := userService.CreateUser(ctx, service.CreateUserRequest{
		Email: "jdoe@parish.example", Username: "jdoe", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = userService.CreateUser(ctx, service.CreateUserRequest{
		Email: "jdoe@parish.example", Username: "other", Password: "correct-horse",
	})
	assert.Error(t, err)
}

func TestLogin_And_RefreshRotation(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)
	ctx := context.Background()

	_, err := userService.CreateUser(ctx, service.CreateUserRequest{
		Email: "jdoe@parish.example", Username: "jdoe", Password: "correct-horse",
	})
	require.NoError(t, err)

	pair, err := userService.Login(ctx, service.LoginRequest{
		Email: "jdoe@parish.example", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	rotated, err := userService.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token is single-use
	_, err = userService.Refresh(ctx, pair.RefreshToken)
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)
	ctx := context.Background()

	_, err := userService.CreateUser(ctx, service.CreateUserRequest{
		Email: "jdoe@parish.example", Username: "jdoe", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = userService.Login(ctx, service.LoginRequest{
		Email: "jdoe@parish.example", Password: "wrong",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown account fails with the same error, leaking nothing
	_, err = userService.Login(ctx, service.LoginRequest{
		Email: "nobody@parish.example", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, service.CreateUserRequest{
		Email: "jdoe@parish.example", Username: "jdoe", Password: "correct-horse",
	})
	require.NoError(t, err)

	inactive := false
	_, err = userService.UpdateUser(ctx, created.ID, service.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = userService.Login(ctx, service.LoginRequest{
		Email: "jdoe@parish.example", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUpdateUser_ReplaceRoles(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, service.CreateUserRequest{
		Email: "jdoe@parish.example", Username: "jdoe", Password: "correct-horse",
	})
	require.NoError(t, err)

	roles := []string{model.RoleStaff, model.RoleAdmin}
	updated, err := userService.UpdateUser(ctx, created.ID, service.UpdateUserRequest{Roles: &roles})
	require.NoError(t, err)

	assert.ElementsMatch(t, roles, updated.Roles)
	assert.True(t, updated.Permissions.Has(model.PermissionAdmin))

	fetched, err := userService.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, roles, fetched.Roles)
}

func TestDeleteUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	userService := newUserService(t, db)

	err := userService.DeleteUser(context.Background(), 404)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
