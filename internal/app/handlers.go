package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// GET /api/calendar/availability?date=ISO8601
func (a *App) GetAvailabilityHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date parameter is required"})
		return
	}
	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}

	slots := a.AvailableSlots(c.Request.Context(), date)
	if slots == nil {
		slots = []Slot{}
	}
	c.JSON(http.StatusOK, slots)
}

type bookingPayload struct {
	Name                string `json:"name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	BusinessDescription string `json:"businessDescription" binding:"required"`
	MeetingTime         string `json:"meetingTime" binding:"required"`
}

// POST /api/calendar/book
func (a *App) CreateBookingHandler(c *gin.Context) {
	var payload bookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking data", "details": err.Error()})
		return
	}
	meetingTime, err := time.Parse(time.RFC3339, payload.MeetingTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meetingTime, expected ISO8601"})
		return
	}

	result, err := a.BookMeeting(c.Request.Context(), BookingRequest{
		Name:                payload.Name,
		Email:               payload.Email,
		BusinessDescription: payload.BusinessDescription,
		MeetingTime:         meetingTime,
	})
	if errors.Is(err, ErrSlotUnavailable) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		a.Log.Error("creating booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": gin.H{
			"id":          result.Booking.ID,
			"meetingTime": result.Booking.MeetingTime.UTC().Format(time.RFC3339),
			"meetLink":    result.MeetLink,
		},
	})
}

// GET /api/calendar/bookings
func (a *App) ListBookingsHandler(c *gin.Context) {
	bookings, err := a.Store.ListBookings(c.Request.Context())
	if err != nil {
		a.Log.Error("listing bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	if bookings == nil {
		bookings = []Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/calendar/bookings/:id
func (a *App) GetBookingHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	booking, err := a.Store.GetBookingByID(c.Request.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if err != nil {
		a.Log.Error("fetching booking", zap.Error(err), zap.Int("booking_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (a *App) HealthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
