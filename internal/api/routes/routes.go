package routes

import (
	"net/http"

	"tenant-admin-backend/internal/api/handlers"
	"tenant-admin-backend/internal/api/middleware"
	"tenant-admin-backend/internal/auth"
	"tenant-admin-backend/internal/config"
	"tenant-admin-backend/internal/metrics"
	"tenant-admin-backend/internal/repository"
	"tenant-admin-backend/internal/service"
	"tenant-admin-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies are the process-wide resources the routes are built on
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	TenantStore *store.TenantStore
	Pool        handlers.Pinger
	Metrics     *metrics.Metrics
	Auth        *auth.AuthService
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	// Handlers pass the gin context to services; this makes it carry the
	// request's deadline and cancellation.
	router.ContextWithFallback = true

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	validate := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(deps.DB)
	ticketRepo := repository.NewTicketRepository(deps.TenantStore)
	teamRepo := repository.NewTeamRepository(deps.TenantStore)
	catalog := repository.NewTenantCatalog(deps.TenantStore.Querier())

	// Initialize services
	accessService := service.NewAccessService(userRepo, cfg.SuperAdminEmail, deps.Metrics)
	tenantService := service.NewTenantService(userRepo, ticketRepo, teamRepo, catalog, cfg.TenantListConcurrency)
	ticketService := service.NewTicketService(ticketRepo, validate)
	teamService := service.NewTeamService(teamRepo, validate)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Pool)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	teamHandler := handlers.NewTeamHandler(teamService)
	accessHandler := handlers.NewAccessHandler(accessService)

	authMiddleware := auth.NewAuthMiddleware(deps.Auth)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	v1.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireSuperAdmin(accessService))
		{
			admin.GET("/tenants", tenantHandler.ListTenants)
		}

		v1.GET("/me/access/:tenantId", accessHandler.GetAccess)

		tenants := v1.Group("/tenants/:" + middleware.TenantParam)
		tenants.Use(middleware.RequireTenantAccess(accessService))
		{
			tenants.GET("/stats", tenantHandler.GetStats)

			tenants.GET("/tickets", ticketHandler.ListTickets)
			tenants.POST("/tickets", ticketHandler.CreateTicket)
			tenants.GET("/tickets/trash", ticketHandler.ListTrash)
			tenants.DELETE("/tickets/:id", ticketHandler.DeleteTicket)
			tenants.POST("/tickets/:id/restore", ticketHandler.RestoreTicket)

			tenants.GET("/team", teamHandler.ListMembers)
			tenants.POST("/team", teamHandler.CreateMember)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: "route not found"})
	})

	return router
}
