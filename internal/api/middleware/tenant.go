package middleware

import (
	"tenant-admin-backend/internal/api/handlers"
	"tenant-admin-backend/internal/auth"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TenantParam is the route parameter holding the target tenant id
const TenantParam = "tenantId"

// RequireTenantAccess lets the request through only when the authenticated
// user may act on the tenant named in the route. Denials do not reveal
// whether the tenant exists.
func RequireTenantAccess(access service.AccessServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			handlers.RespondError(c, apperrors.ErrMissingUserContext)
			return
		}

		tenantID := c.Param(TenantParam)
		allowed, err := access.Authorize(c, userID, tenantID)
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		if !allowed {
			handlers.RespondError(c, apperrors.ErrTenantAccessDenied)
			return
		}

		c.Set(logger.TenantIDKey, tenantID)
		c.Next()
	}
}

// RequireSuperAdmin restricts a route to super-admins
func RequireSuperAdmin(access service.AccessServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			handlers.RespondError(c, apperrors.ErrMissingUserContext)
			return
		}
		if !access.IsSuperAdmin(c, userID) {
			handlers.RespondError(c, apperrors.NewAuthorizationError("super-admin role required"))
			return
		}
		c.Next()
	}
}
