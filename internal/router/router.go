package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alumnitrack/alumni-api/internal/config"
	"github.com/alumnitrack/alumni-api/internal/handler"
	"github.com/alumnitrack/alumni-api/internal/middleware"
	"github.com/alumnitrack/alumni-api/pkg/logger"
)

// Handler registers a set of routes under a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// ProtectedHandler additionally registers routes behind authentication.
type ProtectedHandler interface {
	RegisterProtectedRoutes(*gin.RouterGroup)
}

// AdminHandler additionally registers admin-only routes.
type AdminHandler interface {
	RegisterAdminRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	auditTrail    *middleware.AuditTrail
	authH         Handler
	alumnusH      Handler
	meetingH      Handler
	notificationH Handler
	slotH         Handler
	workshopH     Handler
	auditH        Handler
	reportH       Handler
	db            *sqlx.DB
}

func NewRouter(
	cfg *config.Config,
	log *logger.Logger,
	auth *middleware.AuthMiddleware,
	auditTrail *middleware.AuditTrail,
	authH Handler,
	alumnusH Handler,
	meetingH Handler,
	notificationH Handler,
	slotH Handler,
	workshopH Handler,
	auditH Handler,
	reportH Handler,
	db *sqlx.DB,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(&log.ZL),
		middleware.ErrorHandler(),
	)
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	return &Router{
		engine:        engine,
		auth:          auth,
		auditTrail:    auditTrail,
		authH:         authH,
		alumnusH:      alumnusH,
		meetingH:      meetingH,
		notificationH: notificationH,
		slotH:         slotH,
		workshopH:     workshopH,
		auditH:        auditH,
		reportH:       reportH,
		db:            db,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/health", handler.Health(r.db))
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public routes
	r.authH.RegisterRoutes(api)
	r.alumnusH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate(), r.auditTrail.Record())
	r.meetingH.RegisterRoutes(protected)
	r.notificationH.RegisterRoutes(protected)
	r.slotH.RegisterRoutes(protected)
	r.workshopH.RegisterRoutes(protected)
	if h, ok := r.authH.(ProtectedHandler); ok {
		h.RegisterProtectedRoutes(protected)
	}

	// Admin-only routes
	admin := protected.Group("")
	admin.Use(r.auth.RequireRole("admin"))
	r.auditH.RegisterRoutes(admin)
	r.reportH.RegisterRoutes(admin)
	if h, ok := r.authH.(AdminHandler); ok {
		h.RegisterAdminRoutes(admin)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
