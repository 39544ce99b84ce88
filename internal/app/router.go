package app

import "github.com/gin-gonic/gin"

// NewRouter builds the route table. The availability and booking endpoints
// are public; the bookings listing is an owner-facing surface behind bearer
// auth.
func NewRouter(a *App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", a.HealthzHandler)

	api := router.Group("/api/calendar")
	{
		api.GET("/availability", a.GetAvailabilityHandler)
		api.POST("/book", a.CreateBookingHandler)
	}

	admin := router.Group("/api/calendar", AuthMiddleware(a.Cfg))
	{
		admin.GET("/bookings", a.ListBookingsHandler)
		admin.GET("/bookings/:id", a.GetBookingHandler)
	}

	return router
}
