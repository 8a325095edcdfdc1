package routes

import (
	"time"

	"stayhub/handlers"
	"stayhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, hotelHandler *handlers.HotelHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Public hotel endpoints.
	hotels := r.Group("/api/hotels")
	{
		hotels.GET("/search", hotelHandler.Search)
		hotels.GET("/latest", hotelHandler.Latest)
		hotels.GET("/:hotelId", hotelHandler.GetByID)
		hotels.GET("/:hotelId/availability", bookingHandler.CheckAvailability)
	}

	// Booking endpoints require an authenticated renter.
	bookings := r.Group("/api/hotels/:hotelId/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("/payment-intent", bookingHandler.CreatePaymentIntent)
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.POST("/:bookingId/cancel", bookingHandler.CancelBooking)
	}

	// Renter's own bookings.
	me := r.Group("/api/my-bookings")
	me.Use(middleware.JWTAuthMiddleware())
	{
		me.GET("", bookingHandler.MyBookings)
	}

	// Owner listing management.
	myHotels := r.Group("/api/my-hotels")
	myHotels.Use(middleware.JWTAuthMiddleware())
	{
		myHotels.POST("", hotelHandler.CreateHotel)
		myHotels.GET("", hotelHandler.MyHotels)
		myHotels.GET("/:hotelId", hotelHandler.GetMyHotel)
		myHotels.PUT("/:hotelId", hotelHandler.UpdateHotel)
		myHotels.DELETE("/:hotelId", hotelHandler.DeleteHotel)
	}
}
