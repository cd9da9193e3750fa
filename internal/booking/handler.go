package booking

import (
	"errors"
	"net/http"
	"strconv"

	"campobook/internal/api"
	"campobook/internal/auth"
	"campobook/internal/facility"
	"campobook/internal/metrics"
	"campobook/internal/pricing"
	"campobook/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type admittedResponse struct {
	Booking *Booking       `json:"booking"`
	Quote   *pricing.Quote `json:"quote"`
}

// CreateBooking godoc
// @Summary      Book a field
// @Description  Validates the request against opening hours and existing bookings, prices it and creates the booking.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Reservation request"
// @Success      201      {object}  admittedResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordBookingRejection("missing_fields")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: "missing_fields"})
		return
	}

	booking, quote, err := h.service.AdmitBooking(c.Request.Context(), userID, role, req)
	if err != nil {
		status, code, message := rejection(err)
		metrics.RecordBookingRejection(code)
		c.JSON(status, api.ErrorResponse{Error: message, Code: code})
		return
	}

	metrics.RecordBookingAdmitted(quote.AppliedRule)
	c.JSON(http.StatusCreated, admittedResponse{Booking: booking, Quote: quote})
}

// QuoteBooking godoc
// @Summary      Price a reservation
// @Description  Returns the price a reservation would cost without creating it.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        fieldID  path      int     true  "Field ID"
// @Param        date     query     string  true  "Date (YYYY-MM-DD)"
// @Param        start    query     string  true  "Start time (HH:MM)"
// @Param        end      query     string  true  "End time (HH:MM)"
// @Success      200      {object}  pricing.Quote
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /fields/{fieldID}/quote [get]
func (h *Handler) QuoteBooking(c *gin.Context) {
	fieldID, err := strconv.Atoi(c.Param("fieldID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid field ID", Code: "missing_fields"})
		return
	}

	quote, err := h.service.QuoteBooking(c.Request.Context(), QuoteRequest{
		FieldID:   fieldID,
		Date:      c.Query("date"),
		StartTime: c.Query("start"),
		EndTime:   c.Query("end"),
	})
	if err != nil {
		status, code, message := rejection(err)
		c.JSON(status, api.ErrorResponse{Error: message, Code: code})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// ListFreeSlots godoc
// @Summary      List free start times
// @Description  Lists start times inside the opening window that do not collide with confirmed bookings.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        fieldID   path      int     true   "Field ID"
// @Param        date      query     string  true   "Date (YYYY-MM-DD)"
// @Param        duration  query     number  false  "Duration in hours (1 or 1.5, default 1)"
// @Success      200       {array}   FreeSlot
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /fields/{fieldID}/free [get]
func (h *Handler) ListFreeSlots(c *gin.Context) {
	fieldID, err := strconv.Atoi(c.Param("fieldID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid field ID", Code: "missing_fields"})
		return
	}

	duration := pricing.DurationOneHour
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid duration", Code: "unsupported_duration"})
			return
		}
	}

	slots, err := h.service.ListFreeSlots(c.Request.Context(), fieldID, c.Query("date"), duration)
	if err != nil {
		status, code, message := rejection(err)
		c.JSON(status, api.ErrorResponse{Error: message, Code: code})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels a booking of the current user. Cancelling twice is a no-op.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID", Code: "missing_fields"})
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), userID, bookingID); err != nil {
		status, code, message := rejection(err)
		c.JSON(status, api.ErrorResponse{Error: message, Code: code})
		return
	}

	metrics.RecordBookingCancellation()
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		status, code, message := rejection(err)
		c.JSON(status, api.ErrorResponse{Error: message, Code: code})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListBookingsByFacility godoc
// @Summary      List bookings for a facility
// @Description  Returns all bookings of one of the owner's facilities on a date.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        facilityID  path      int     true  "Facility ID"
// @Param        date        query     string  true  "Date (YYYY-MM-DD)"
// @Success      200         {array}   Booking
// @Failure      403         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /owner/facilities/{facilityID}/bookings [get]
func (h *Handler) ListBookingsByFacility(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID", Code: "missing_fields"})
		return
	}

	bookings, err := h.service.GetBookingsByFacility(c.Request.Context(), ownerID, facilityID, c.Query("date"))
	if err != nil {
		status, code, message := rejection(err)
		c.JSON(status, api.ErrorResponse{Error: message, Code: code})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// rejection maps an engine error to its HTTP status and stable code.
// Every rejection reason keeps a distinct code so clients can branch on
// cause.
func rejection(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		return http.StatusBadRequest, "missing_fields", err.Error()
	case errors.Is(err, schedule.ErrMalformedTime):
		return http.StatusBadRequest, "malformed_time", err.Error()
	case errors.Is(err, schedule.ErrInvalidDate):
		return http.StatusBadRequest, "invalid_date", err.Error()
	case errors.Is(err, pricing.ErrUnsupportedDuration):
		return http.StatusBadRequest, "unsupported_duration", err.Error()
	case errors.Is(err, ErrOwnerCannotBook):
		return http.StatusForbidden, "owner_cannot_book", err.Error()
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden, "not_authorized", err.Error()
	case errors.Is(err, ErrFieldNotFound):
		return http.StatusNotFound, "field_not_found", err.Error()
	case errors.Is(err, ErrFacilityNotFound):
		return http.StatusNotFound, "facility_not_found", err.Error()
	case errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound, "booking_not_found", err.Error()
	case errors.Is(err, facility.ErrClosedOnDate):
		return http.StatusConflict, "facility_closed", err.Error()
	case errors.Is(err, facility.ErrOutsideOpeningHours):
		return http.StatusConflict, "outside_opening_hours", err.Error()
	case errors.Is(err, ErrSlotAlreadyBooked):
		return http.StatusConflict, "slot_already_booked", err.Error()
	case errors.Is(err, ErrDependencyUnavailable):
		return http.StatusInternalServerError, "dependency_unavailable", err.Error()
	default:
		return http.StatusInternalServerError, "internal_error", "Internal error"
	}
}
