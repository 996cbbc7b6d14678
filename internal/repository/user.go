package repository

import (
	"context"
	"errors"

	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles identity store operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetOwnerByTenantID retrieves the earliest user assigned to tenantID
func (r *UserRepository) GetOwnerByTenantID(ctx context.Context, tenantID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ListTenantOwners returns one user per tenant, the earliest created
func (r *UserRepository) ListTenantOwners(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (tenant_id) * FROM users
			WHERE tenant_id IS NOT NULL AND tenant_id <> ''
			ORDER BY tenant_id, created_at ASC`).
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return err
}
