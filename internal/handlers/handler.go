package handlers

import (
	"travel_journal/internal/logger"
	"travel_journal/internal/observability"
	"travel_journal/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds transport tuning knobs.
type Config struct {
	// MaxMessageBytes caps one inbound WebSocket message; article forms carry
	// the cover image, so this bounds upload size too.
	MaxMessageBytes int64
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *observability.Collector
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, cfg Config, log *logger.Logger, metrics *observability.Collector) *Handler {
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = defaultMaxMsgSize
	}
	return &Handler{services: services, log: log, metrics: metrics, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, h.accessLogMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	// One live channel per browser tab
	router.GET("/ws", h.wsConnect)

	h.registerPageRoutes(router)
	router.NoRoute(h.notFound)

	return router
}

// registerPageRoutes serves the app shell for every client route.
func (h *Handler) registerPageRoutes(r *gin.Engine) {
	for _, route := range service.Routes {
		r.GET(route.Pattern, h.page)
	}
}
