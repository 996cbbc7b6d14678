package handlers

import (
	"net/http"

	"tenant-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AccessResponse reports what the acting user may do with one tenant
type AccessResponse struct {
	TenantID            string `json:"tenant_id"`
	IsMember            bool   `json:"is_member"`
	IsSuperAdmin        bool   `json:"is_super_admin"`
	CanAccessTenantData bool   `json:"can_access_tenant_data"`
}

// AccessHandler exposes the tenant access checks to clients
type AccessHandler struct {
	accessService service.AccessServiceInterface
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(accessService service.AccessServiceInterface) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
	}
}

// GetAccess handles GET /me/access/:tenantId
// @Summary Check access to a tenant
// @Description Report whether the authenticated user belongs to the tenant, is a super-admin, and may read the tenant's data
// @Tags access
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} AccessResponse "Access flags"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /me/access/{tenantId} [get]
func (h *AccessHandler) GetAccess(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	tenantID := c.Param("tenantId")

	c.JSON(http.StatusOK, AccessResponse{
		TenantID:            tenantID,
		IsMember:            h.accessService.VerifyTenantAccess(c, userID, tenantID),
		IsSuperAdmin:        h.accessService.IsSuperAdmin(c, userID),
		CanAccessTenantData: h.accessService.CanAccessTenantData(c, userID, tenantID),
	})
}
