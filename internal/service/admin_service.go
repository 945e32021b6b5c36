package service

import (
	"context"

	"github.com/prepmitra/mocktest-backend/internal/model"
)

// AdminStore is the persistence contract for admin accounts.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, a *model.Admin) error
}

// AdminService handles admin account lookups.
type AdminService struct {
	admins AdminStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(admins AdminStore) *AdminService {
	return &AdminService{admins: admins}
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.admins.GetByEmail(ctx, email)
}

// Create inserts a new admin account.
func (s *AdminService) Create(ctx context.Context, a *model.Admin) error {
	return s.admins.Create(ctx, a)
}
