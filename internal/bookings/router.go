package bookings

import (
	"gatekeeper/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the booking collaborator routes. These are
// the admin-facing hooks the payment/cancellation systems call; gate staff
// never use them from the door.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN"))
	{
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
	}
}
