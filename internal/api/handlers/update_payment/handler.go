package update_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	"github.com/m04kA/SMC-StayService/internal/service/payments"
	"github.com/m04kA/SMC-StayService/internal/service/payments/models"
)

const (
	msgUnauthorized         = "Authentication credentials were not provided."
	msgInvalidBookingID     = "Invalid booking id."
	msgInvalidRequestBody   = "Invalid request body."
	msgBookingNotFound      = "No Booking matches the given query."
	msgForbidden            = "Not allowed."
	msgIllegalTransition    = "Payment status is not allowed for the current booking status."
	msgInvalidPaymentMethod = "payment_method: Not a valid choice."
	msgInvalidAmount        = "amount: A valid non-negative number is required."
	msgInvalidInput         = "Invalid payment data."
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT|PATCH /api/payments/{bookingId}
// Статус "paid" подтверждает бронирование, любой другой статус (в том числе "refunded") записывается как failed и отменяет его.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s /payments/{id} - Invalid booking ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.UpdatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s /payments/{id} - Invalid request body: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg := handlers.Validate(req); msg != "" {
		h.logger.Warn("%s /payments/{id} - Validation failed: %s", r.Method, msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	payment, err := h.service.Update(r.Context(), bookingID, identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("%s /payments/{id} - Booking not found: booking_id=%d", r.Method, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("%s /payments/{id} - Access denied: booking_id=%d, user_id=%d", r.Method, bookingID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, payments.ErrIllegalTransition):
			h.logger.Warn("%s /payments/{id} - Illegal transition: booking_id=%d, status=%s", r.Method, bookingID, req.Status)
			handlers.RespondBadRequest(w, msgIllegalTransition)
		case errors.Is(err, payments.ErrInvalidPaymentMethod):
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)
		case errors.Is(err, payments.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)
		case errors.Is(err, payments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("%s /payments/{id} - Failed to record payment: booking_id=%d, error=%v", r.Method, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /payments/{id} - Payment recorded: booking_id=%d, status=%s", r.Method, bookingID, payment.Status)
	handlers.RespondJSON(w, http.StatusOK, payment)
}
