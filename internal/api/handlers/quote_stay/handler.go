package quote_stay

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StayService/internal/api/handlers"
	quoteStay "github.com/m04kA/SMC-StayService/internal/usecase/quote_stay"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

const (
	msgInvalidListingID  = "Invalid listing id."
	msgInvalidDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgListingNotFound   = "No Listing matches the given query."
	msgCheckInInPast     = "check_in cannot be in the past."
	msgInvalidDates      = "check_out must be after check_in."
)

type Handler struct {
	useCase QuoteStayUseCase
	logger  Logger
}

func NewHandler(useCase QuoteStayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/listings/{listingId}/quote?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(mux.Vars(r)["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/quote - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	query := r.URL.Query()
	checkIn, err := types.ParseDate(query.Get("check_in"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}
	checkOut, err := types.ParseDate(query.Get("check_out"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	quote, err := h.useCase.Execute(r.Context(), &quoteStay.Request{
		ListingID: listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteStay.ErrListingNotFound):
			h.logger.Warn("GET /listings/{id}/quote - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)
		case errors.Is(err, quoteStay.ErrCheckInInPast):
			handlers.RespondBadRequest(w, msgCheckInInPast)
		case errors.Is(err, quoteStay.ErrInvalidDates), errors.Is(err, quoteStay.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDates)
		default:
			h.logger.Error("GET /listings/{id}/quote - Failed to quote stay: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, quote)
}
