package handlers

import (
	"net/http"
	"strconv"

	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TicketHandler handles HTTP requests for repair ticket operations
type TicketHandler struct {
	ticketService service.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService service.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// ListTickets handles GET /tenants/:tenantId/tickets
// @Summary List repair tickets
// @Description List the tenant's repair tickets that are not in the trash, newest first
// @Tags tickets
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param limit query int false "Number of items to return" default(20)
// @Param offset query int false "Number of items to skip" default(0)
// @Success 200 {object} service.TicketListResponse "Successfully retrieved tickets"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Security BearerAuth
// @Router /tenants/{tenantId}/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	page, err := h.ticketService.List(c, c.Param("tenantId"), limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListTrash handles GET /tenants/:tenantId/tickets/trash
// @Summary List trashed repair tickets
// @Description List the tenant's repair tickets that were moved to the trash, most recently deleted first
// @Tags tickets
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param limit query int false "Number of items to return" default(20)
// @Param offset query int false "Number of items to skip" default(0)
// @Success 200 {object} service.TicketListResponse "Successfully retrieved trashed tickets"
// @Failure 400 {object} ErrorResponse "Invalid pagination parameters"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Security BearerAuth
// @Router /tenants/{tenantId}/tickets/trash [get]
func (h *TicketHandler) ListTrash(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	page, err := h.ticketService.ListTrash(c, c.Param("tenantId"), limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateTicket handles POST /tenants/:tenantId/tickets
// @Summary Create a repair ticket
// @Description Open a repair ticket in the tenant's tickets table
// @Tags tickets
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param ticket body service.CreateTicketRequest true "Ticket data"
// @Success 201 {object} models.RepairTicket "Successfully created ticket"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /tenants/{tenantId}/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req service.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ticket, err := h.ticketService.Create(c, c.Param("tenantId"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// DeleteTicket handles DELETE /tenants/:tenantId/tickets/:id
// @Summary Move a repair ticket to the trash
// @Tags tickets
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path int true "Ticket ID"
// @Success 204 "Ticket moved to the trash"
// @Failure 400 {object} ErrorResponse "Invalid ticket ID"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Ticket not found"
// @Security BearerAuth
// @Router /tenants/{tenantId}/tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	if err := h.ticketService.Delete(c, c.Param("tenantId"), id); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreTicket handles POST /tenants/:tenantId/tickets/:id/restore
// @Summary Restore a repair ticket from the trash
// @Tags tickets
// @Accept json
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param id path int true "Ticket ID"
// @Success 204 "Ticket restored"
// @Failure 400 {object} ErrorResponse "Invalid ticket ID"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "Ticket not found in the trash"
// @Security BearerAuth
// @Router /tenants/{tenantId}/tickets/{id}/restore [post]
func (h *TicketHandler) RestoreTicket(c *gin.Context) {
	id, ok := ticketID(c)
	if !ok {
		return
	}

	if err := h.ticketService.Restore(c, c.Param("tenantId"), id); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func ticketID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, apperrors.NewValidationError("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// pagination parses limit and offset. Missing values are passed on as zero
// so the service applies its defaults.
func pagination(c *gin.Context) (int, int, bool) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		RespondError(c, apperrors.ErrInvalidPaginationParams)
		return 0, 0, false
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		RespondError(c, apperrors.ErrInvalidPaginationParams)
		return 0, 0, false
	}
	return limit, offset, true
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
