package admission

import (
	"gatekeeper/internal/shared/middleware"
	"gatekeeper/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// SetupAdmissionRoutes configures the gate-facing routes. Staff identity is
// optional: an authenticated terminal attributes the ledger entry, a kiosk
// scans anonymously.
func SetupAdmissionRoutes(rg *gin.RouterGroup, controller *Controller, limiter *ratelimit.RateLimiter) {
	admission := rg.Group("/admission")
	admission.Use(middleware.StaffContext())

	if limiter != nil {
		admission.POST("/scan", limiter.Middleware(ratelimit.RateLimitTypeScan), controller.Scan)
		admission.GET("/status/:token", limiter.Middleware(ratelimit.RateLimitTypeStatus), controller.Status)
		return
	}

	admission.POST("/scan", controller.Scan)          // POST /api/v1/admission/scan
	admission.GET("/status/:token", controller.Status) // GET  /api/v1/admission/status/:token
}
