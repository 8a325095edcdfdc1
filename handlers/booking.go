package handlers

import (
	"net/http"
	"time"

	"stayhub/models"
	"stayhub/services/booking"
	"stayhub/services/hotel"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation engine over HTTP. It is a thin
// wrapper: validation and error mapping only, no booking logic.
type BookingHandler struct {
	availability booking.AvailabilityChecker
	payments     booking.PaymentAuthorizer
	committer    booking.BookingCommitter
	cancellation booking.CancellationPolicyEngine
	hotels       hotel.HotelService
	logger       *zap.Logger
}

func NewBookingHandler(
	availability booking.AvailabilityChecker,
	payments booking.PaymentAuthorizer,
	committer booking.BookingCommitter,
	cancellation booking.CancellationPolicyEngine,
	hotels hotel.HotelService,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		availability: availability,
		payments:     payments,
		committer:    committer,
		cancellation: cancellation,
		hotels:       hotels,
		logger:       logger,
	}
}

// statusForKind maps the engine's error taxonomy to HTTP statuses. Conflict
// and payment_not_succeeded stay distinguishable: callers remediate them
// differently (pick new dates vs. retry payment).
func statusForKind(kind booking.Kind) int {
	switch kind {
	case booking.KindInvalidArgument:
		return http.StatusBadRequest
	case booking.KindNotFound, booking.KindPaymentNotFound:
		return http.StatusNotFound
	case booking.KindForbidden, booking.KindPaymentMismatch:
		return http.StatusForbidden
	case booking.KindConflict, booking.KindAlreadyCancelled:
		return http.StatusConflict
	case booking.KindPaymentNotSucceeded:
		return http.StatusPaymentRequired
	case booking.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondBookingError(c *gin.Context, err error) {
	kind := booking.KindOf(err)
	if kind == "" {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
		return
	}
	utils.JSONError(c, statusForKind(kind), err.Error(), string(kind))
}

const dateLayout = "2006-01-02"

// CheckAvailability handles GET /api/hotels/:hotelId/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	checkIn, err := time.Parse(dateLayout, c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn date", string(booking.KindInvalidArgument))
		return
	}
	checkOut, err := time.Parse(dateLayout, c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut date", string(booking.KindInvalidArgument))
		return
	}

	available, err := h.availability.IsAvailable(c.Request.Context(), c.Param("hotelId"), checkIn, checkOut)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// CreatePaymentIntent handles POST /api/hotels/:hotelId/bookings/payment-intent.
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	var input struct {
		NumberOfNights int `json:"numberOfNights" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), string(booking.KindInvalidArgument))
		return
	}

	breakdown, err := h.payments.CreateAuthorization(
		c.Request.Context(), c.Param("hotelId"), input.NumberOfNights, c.GetString("userID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// CreateBooking handles POST /api/hotels/:hotelId/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		models.BookingInput
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error(), string(booking.KindInvalidArgument))
		return
	}

	created, err := h.committer.CreateBooking(
		c.Request.Context(), c.Param("hotelId"), input.BookingInput, input.PaymentIntentID, c.GetString("userID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CancelBooking handles POST /api/hotels/:hotelId/bookings/:bookingId/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	result, err := h.cancellation.Cancel(
		c.Request.Context(), c.Param("hotelId"), c.Param("bookingId"), c.GetString("userID"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyBookings handles GET /api/my-bookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	hotels, err := h.hotels.RenterBookings(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("failed to fetch renter bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch bookings", "")
		return
	}
	c.JSON(http.StatusOK, hotels)
}
