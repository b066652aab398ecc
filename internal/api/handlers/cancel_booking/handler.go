package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	"github.com/m04kA/SMC-StayService/internal/service/bookings"
)

const (
	msgUnauthorized     = "Authentication credentials were not provided."
	msgInvalidBookingID = "Invalid booking id."
	msgNotFound         = "No Booking matches the given query."
	msgForbidden        = "Not allowed."
	msgWindowClosed     = "You can no longer cancel on/after the check-in date."
	msgCannotCancel     = "This booking can no longer be cancelled."
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, identity)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, bookings.ErrCancelWindowClosed):
			h.logger.Warn("PUT /bookings/{id}/cancel - Cancel window closed: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgWindowClosed)
		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PUT /bookings/{id}/cancel - Booking cannot be cancelled: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)
		default:
			h.logger.Error("PUT /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d", bookingID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
