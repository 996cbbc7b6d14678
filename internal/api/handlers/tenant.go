package handlers

import (
	"net/http"

	"tenant-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TenantHandler handles HTTP requests for tenant listing and statistics
type TenantHandler struct {
	tenantService service.TenantServiceInterface
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService service.TenantServiceInterface) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// ListTenants handles GET /admin/tenants
// @Summary List all tenants
// @Description List every tenant with its owning user and row counts. A tenant whose counts could not be read is returned with zero stats and error set.
// @Tags tenants
// @Accept json
// @Produce json
// @Success 200 {object} service.TenantListResponse "Successfully retrieved tenants"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Super-admin role required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.TenantListResponse{
		Tenants: tenants,
		Total:   len(tenants),
	})
}

// GetStats handles GET /tenants/:tenantId/stats
// @Summary Get tenant statistics
// @Description Count repair tickets and team members of one tenant. Missing tenant tables are created on first access.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} models.TenantStats "Successfully retrieved statistics"
// @Failure 400 {object} ErrorResponse "Invalid tenant ID"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 503 {object} ErrorResponse "Service busy"
// @Security BearerAuth
// @Router /tenants/{tenantId}/stats [get]
func (h *TenantHandler) GetStats(c *gin.Context) {
	stats, err := h.tenantService.Stats(c, c.Param("tenantId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
