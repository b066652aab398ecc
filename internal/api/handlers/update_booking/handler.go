package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-StayService/internal/usecase/update_booking"
)

const (
	msgUnauthorized       = "Authentication credentials were not provided."
	msgInvalidBookingID   = "Invalid booking id."
	msgInvalidRequestBody = "Invalid request body."
	msgInvalidDateFormat  = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgNotFound           = "No Booking matches the given query."
	msgForbidden          = "Not allowed."
	msgListingImmutable   = "listing: The listing of a booking cannot be changed."
	msgNotEditable        = "Only pending bookings can change dates or guests."
	msgCheckInInPast      = "check_in cannot be in the past."
	msgInvalidDates       = "check_out must be after check_in."
	msgInvalidOccupancy   = "Invalid number of guests."
	msgDatesUnavailable   = "Those dates are not available."
	msgIllegalTransition  = "Payment status is not allowed for the current booking status."
	msgInvalidPayment     = "Invalid payment data."
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT|PATCH /api/bookings/{bookingId}
// PUT и PATCH обрабатываются одинаково, как частичное обновление.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /bookings/{id} - Invalid booking ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s /bookings/{id} - Invalid request body: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg := handlers.Validate(req); msg != "" {
		h.logger.Warn("%s /bookings/{id} - Validation failed: %s", r.Method, msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, identity)
	if err != nil {
		h.logger.Warn("%s /bookings/{id} - Failed to parse request: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, r, bookingID, err)
		return
	}

	h.logger.Info("%s /bookings/{id} - Booking updated successfully: booking_id=%d, status=%s", r.Method, bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, bookingID int64, err error) {
	switch {
	case errors.Is(err, updateBooking.ErrBookingNotFound):
		h.logger.Warn("%s /bookings/{id} - Booking not found: booking_id=%d", r.Method, bookingID)
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, updateBooking.ErrAccessDenied):
		h.logger.Warn("%s /bookings/{id} - Access denied: booking_id=%d", r.Method, bookingID)
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, updateBooking.ErrListingImmutable):
		handlers.RespondBadRequest(w, msgListingImmutable)
	case errors.Is(err, updateBooking.ErrNotEditable):
		handlers.RespondBadRequest(w, msgNotEditable)
	case errors.Is(err, updateBooking.ErrCheckInInPast):
		handlers.RespondBadRequest(w, msgCheckInInPast)
	case errors.Is(err, updateBooking.ErrInvalidDates):
		handlers.RespondBadRequest(w, msgInvalidDates)
	case errors.Is(err, updateBooking.ErrInvalidOccupancy):
		handlers.RespondBadRequest(w, msgInvalidOccupancy)
	case errors.Is(err, updateBooking.ErrDatesUnavailable):
		h.logger.Warn("%s /bookings/{id} - Dates not available: booking_id=%d", r.Method, bookingID)
		handlers.RespondBadRequest(w, msgDatesUnavailable)
	case errors.Is(err, updateBooking.ErrIllegalTransition):
		h.logger.Warn("%s /bookings/{id} - Illegal payment transition: booking_id=%d", r.Method, bookingID)
		handlers.RespondBadRequest(w, msgIllegalTransition)
	case errors.Is(err, updateBooking.ErrInvalidPayment):
		handlers.RespondBadRequest(w, msgInvalidPayment)
	default:
		h.logger.Error("%s /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", r.Method, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
