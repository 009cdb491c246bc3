package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

// RoleResponse mirrors a role for API consumers
type RoleResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Permissions model.Permission `json:"permissions"`
	IsDefault   bool             `json:"is_default"`
}

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	SeedDefaultRoles(ctx context.Context) error
}

type roleService struct {
	roleRepo  repository.RoleRepository
	txManager repository.TransactionManager
}

func NewRoleService(roleRepo repository.RoleRepository, txManager repository.TransactionManager) RoleService {
	return &roleService{roleRepo: roleRepo, txManager: txManager}
}

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

// SeedDefaultRoles idempotently ensures the three built-in roles exist with
// their expected permission bitmasks. Existing roles are updated in place
// (upsert-by-name), and exactly "User" ends up flagged as the default role
// assigned to new accounts.
func (s *roleService) SeedDefaultRoles(ctx context.Context) error {
	definitions := []struct {
		Name        string
		Description string
		Permissions model.Permission
	}{
		{
			Name:        model.RoleUser,
			Description: "Read-only access to vendor records",
			Permissions: model.PermissionView,
		},
		{
			Name:        model.RoleStaff,
			Description: "Day-to-day vendor management",
			Permissions: model.CombinePermissions(model.PermissionView, model.PermissionCreate, model.PermissionEdit),
		},
		{
			Name:        model.RoleAdmin,
			Description: "Full access including user and role administration",
			Permissions: model.CombinePermissions(model.PermissionView, model.PermissionCreate,
				model.PermissionEdit, model.PermissionDelete, model.PermissionAdmin),
		},
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, def := range definitions {
			role, err := s.roleRepo.FindByName(txCtx, def.Name)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				role = &model.Role{Name: def.Name}
			case err != nil:
				return fmt.Errorf("failed to look up role '%s': %w", def.Name, err)
			}

			role.Description = def.Description
			role.Permissions = def.Permissions
			role.IsDefault = def.Name == model.RoleUser

			if role.ID == 0 {
				if err := s.roleRepo.Create(txCtx, role); err != nil {
					return fmt.Errorf("failed to seed role '%s': %w", def.Name, err)
				}
			} else if err := s.roleRepo.Update(txCtx, role); err != nil {
				return fmt.Errorf("failed to update role '%s': %w", def.Name, err)
			}
		}

		return s.roleRepo.ClearDefaultExcept(txCtx, model.RoleUser)
	})
}

func toRoleResponse(r model.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
		IsDefault:   r.IsDefault,
	}
}
