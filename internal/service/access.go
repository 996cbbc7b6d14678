package service

import (
	"context"
	"fmt"
	"strings"

	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/metrics"
	"tenant-admin-backend/internal/repository"
	"tenant-admin-backend/internal/tenant"

	"github.com/google/uuid"
)

// Identity is the acting user as currently stored in the identity store
type Identity struct {
	UserID   uuid.UUID
	TenantID string
	Role     models.Role
	Email    string
}

// AccessService resolves acting users and decides which tenant data they
// may touch.
type AccessService struct {
	users           repository.UserRepositoryInterface
	superAdminEmail string
	metrics         *metrics.Metrics
}

// NewAccessService creates a new access service. superAdminEmail enables the
// legacy bootstrap identity; leave it empty to disable.
func NewAccessService(users repository.UserRepositoryInterface, superAdminEmail string, m *metrics.Metrics) *AccessService {
	return &AccessService{
		users:           users,
		superAdminEmail: strings.TrimSpace(superAdminEmail),
		metrics:         m,
	}
}

// Resolve loads the user's tenant and role. The store is read on every call.
func (s *AccessService) Resolve(ctx context.Context, userID string) (*Identity, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := models.ParseRole(string(user.Role))
	if err != nil {
		logger.WithContext(ctx).WithField("user", userID).WithError(err).Error("user has an unknown role")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRole, err)
	}

	identity := &Identity{UserID: user.ID, Role: role, Email: user.Email}
	if user.HasTenant() {
		identity.TenantID = *user.TenantID
	}
	return identity, nil
}

// Authorize reports whether actingUserID may read or write targetTenantID's
// data. A malformed tenant id is rejected before the user is looked up.
func (s *AccessService) Authorize(ctx context.Context, actingUserID, targetTenantID string) (bool, error) {
	if err := tenant.ValidateTenantID(targetTenantID); err != nil {
		return false, err
	}

	identity, err := s.Resolve(ctx, actingUserID)
	if err != nil {
		return false, err
	}

	allowed := s.permits(ctx, identity, targetTenantID)
	if !allowed {
		s.metrics.ObserveDenial()
		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"acting_user": actingUserID,
			"target":      targetTenantID,
		}).Warn("cross-tenant access denied")
	}
	return allowed, nil
}

func (s *AccessService) permits(ctx context.Context, identity *Identity, targetTenantID string) bool {
	if s.isSuperAdmin(ctx, identity) {
		return true
	}
	return identity.TenantID != "" && identity.TenantID == targetTenantID
}

func (s *AccessService) isSuperAdmin(ctx context.Context, identity *Identity) bool {
	switch identity.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin, models.RoleMember:
		if s.superAdminEmail != "" && strings.EqualFold(identity.Email, s.superAdminEmail) {
			logger.WithContext(ctx).WithField("user", identity.UserID.String()).
				Warn("super-admin granted through bootstrap e-mail instead of role")
			return true
		}
		return false
	default:
		return false
	}
}

// VerifyTenantAccess reports whether the user belongs to tenantID. It does
// not apply the super-admin override.
func (s *AccessService) VerifyTenantAccess(ctx context.Context, userID, tenantID string) bool {
	if tenant.ValidateTenantID(tenantID) != nil {
		return false
	}
	identity, err := s.Resolve(ctx, userID)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Debug("tenant membership check failed")
		return false
	}
	return identity.TenantID == tenantID
}

// IsSuperAdmin reports whether the user may act on any tenant
func (s *AccessService) IsSuperAdmin(ctx context.Context, userID string) bool {
	identity, err := s.Resolve(ctx, userID)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Debug("super-admin check failed")
		return false
	}
	return s.isSuperAdmin(ctx, identity)
}

// CanAccessTenantData is Authorize with errors treated as a denial
func (s *AccessService) CanAccessTenantData(ctx context.Context, userID, targetTenantID string) bool {
	allowed, err := s.Authorize(ctx, userID, targetTenantID)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Debug("tenant access check failed")
		return false
	}
	return allowed
}
