package routes

import (
	"net/http"
	"time"

	"gatekeeper/internal/admission"
	"gatekeeper/internal/bookings"
	"gatekeeper/internal/checkins"
	"gatekeeper/internal/shared/config"
	"gatekeeper/internal/shared/database"
	"gatekeeper/internal/tickets"
	"gatekeeper/pkg/cache"
	"gatekeeper/pkg/logger"
	"gatekeeper/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	limiter  *ratelimit.RateLimiter
	producer checkins.EventProducer
	log      *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, limiter *ratelimit.RateLimiter, producer checkins.EventProducer, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		limiter:  limiter,
		producer: producer,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAdmissionRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "gatekeeper",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "gatekeeper",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAdmissionRoutes configures the scan and status endpoints
func (r *Router) setupAdmissionRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	ledgerRepo := checkins.NewRepository(r.db.GetPostgreSQL())

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.GetRedisClient())
	}

	admissionService := admission.NewService(ticketRepo, bookingRepo, ledgerRepo, cacheService, r.producer, r.log)
	admissionController := admission.NewController(admissionService)

	admission.SetupAdmissionRoutes(rg, admissionController, r.limiter)
}

// setupBookingRoutes configures the booking collaborator endpoints
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())

	bookingService := bookings.NewService(bookingRepo, ticketRepo)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
