package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-StayService/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "Authentication credentials were not provided."
	msgInvalidRequestBody = "Invalid request body."
	msgMissingListing     = "listing: This field is required."
	msgInvalidDateFormat  = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgListingNotFound    = "Invalid pk - listing does not exist."
	msgCheckInInPast      = "check_in cannot be in the past."
	msgInvalidDates       = "check_out must be after check_in."
	msgInvalidOccupancy   = "Invalid number of guests."
	msgDatesUnavailable   = "Those dates are not available."
	msgInvalidInput       = "Invalid booking data."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg := handlers.Validate(req); msg != "" {
		h.logger.Warn("POST /bookings - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errMissingListing) {
			handlers.RespondBadRequest(w, msgMissingListing)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDateFormat)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDatesUnavailable):
			h.logger.Warn("POST /bookings - Dates not available: user_id=%d, listing_id=%d", identity.UserID, useCaseReq.ListingID)
			handlers.RespondBadRequest(w, msgDatesUnavailable)

		case errors.Is(err, createBooking.ErrListingNotFound):
			h.logger.Warn("POST /bookings - Listing not found: listing_id=%d", useCaseReq.ListingID)
			handlers.RespondBadRequest(w, msgListingNotFound)

		case errors.Is(err, createBooking.ErrCheckInInPast):
			h.logger.Warn("POST /bookings - Check-in in the past: user_id=%d, check_in=%s", identity.UserID, useCaseReq.CheckIn)
			handlers.RespondBadRequest(w, msgCheckInInPast)

		case errors.Is(err, createBooking.ErrInvalidDates):
			h.logger.Warn("POST /bookings - Invalid dates: user_id=%d", identity.UserID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createBooking.ErrInvalidOccupancy):
			h.logger.Warn("POST /bookings - Invalid occupancy: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidOccupancy)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, listing_id=%d, error=%v",
				identity.UserID, useCaseReq.ListingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, listing_id=%d",
		result.ID, identity.UserID, result.Listing)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
