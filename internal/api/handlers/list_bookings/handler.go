package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/service/bookings/models"
)

const msgUnauthorized = "Authentication credentials were not provided."

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

// Handle GET /api/bookings?role=host
// Без role возвращаются бронирования пользователя как гостя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	role := domain.ListRoleGuest
	if r.URL.Query().Get("role") == string(domain.ListRoleHost) {
		role = domain.ListRoleHost
	}

	result, err := h.service.List(r.Context(), identity, role)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, role=%s, error=%v", identity.UserID, role, err)
		handlers.RespondInternalError(w)
		return
	}

	list := result.Bookings
	if list == nil {
		list = []models.BookingResponse{}
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%d, role=%s, count=%d", identity.UserID, role, len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
