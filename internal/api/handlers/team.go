package handlers

import (
	"net/http"

	"tenant-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for a tenant's team members
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListMembers handles GET /tenants/:tenantId/team
// @Summary List team members
// @Tags team
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {array} models.TeamMember "Successfully retrieved team members"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /tenants/{tenantId}/team [get]
func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.teamService.List(c, c.Param("tenantId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// CreateMember handles POST /tenants/:tenantId/team
// @Summary Add a team member
// @Tags team
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param member body service.CreateTeamMemberRequest true "Team member data"
// @Success 201 {object} models.TeamMember "Successfully created team member"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /tenants/{tenantId}/team [post]
func (h *TeamHandler) CreateMember(c *gin.Context) {
	var req service.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	member, err := h.teamService.Create(c, c.Param("tenantId"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}
