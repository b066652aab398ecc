package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	"github.com/m04kA/SMC-StayService/internal/domain"
	bookingModels "github.com/m04kA/SMC-StayService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-StayService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*bookingModels.BookingResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookingModels.BookingResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, body string, withIdentity bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	if withIdentity {
		req = req.WithContext(middleware.WithIdentity(req.Context(), domain.Identity{UserID: 5, Role: domain.RoleGuest}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, nopLogger{})

	expected := &createBooking.Request{
		UserID:    5,
		ListingID: 10,
		CheckIn:   types.MustParseDate("2026-11-01"),
		CheckOut:  types.MustParseDate("2026-11-04"),
		Adults:    2,
		Children:  0,
		Infants:   1,
	}
	uc.On("Execute", mock.Anything, expected).
		Return(&bookingModels.BookingResponse{ID: 1, Listing: 10, TotalPrice: "3000.00", Status: "pending"}, nil)

	rec := doRequest(h, `{"listing_id":10,"check_in":"2026-11-01","check_out":"2026-11-04","adults":2,"infants":1}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "3000.00", resp["total_price"])
	assert.Equal(t, "pending", resp["status"])
	uc.AssertExpectations(t)
}

func TestHandle_DefaultsToOneAdult(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, nopLogger{})

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.ListingID == 3 && r.Adults == 1 && r.Children == 0 && r.Infants == 0
	})).Return(&bookingModels.BookingResponse{ID: 2, Listing: 3}, nil)

	rec := doRequest(h, `{"listing":3,"check_in":"2026-11-01","check_out":"2026-11-02"}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	validBody := `{"listing":10,"check_in":"2026-11-01","check_out":"2026-11-04","adult":1}`

	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
		wantDetail string
	}{
		{"dates taken", validBody, createBooking.ErrDatesUnavailable, http.StatusBadRequest, msgDatesUnavailable},
		{"bad range", validBody, createBooking.ErrInvalidDates, http.StatusBadRequest, msgInvalidDates},
		{"past check-in", validBody, createBooking.ErrCheckInInPast, http.StatusBadRequest, msgCheckInInPast},
		{"no listing", validBody, createBooking.ErrListingNotFound, http.StatusBadRequest, msgListingNotFound},
		{"occupancy", validBody, createBooking.ErrInvalidOccupancy, http.StatusBadRequest, msgInvalidOccupancy},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError, "A server error occurred."},
		{"broken json", `{"listing":`, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"missing dates", `{"listing":10}`, nil, http.StatusBadRequest, "check_in: This field is required."},
		{"missing listing", `{"check_in":"2026-11-01","check_out":"2026-11-04"}`, nil, http.StatusBadRequest, msgMissingListing},
		{"bad date", `{"listing":10,"check_in":"01.11.2026","check_out":"2026-11-04"}`, nil, http.StatusBadRequest, msgInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			h := NewHandler(uc, nopLogger{})

			rec := doRequest(h, tt.body, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"detail":"`+tt.wantDetail+`"}`, rec.Body.String())
			uc.AssertExpectations(t)
		})
	}
}

func TestHandle_RequiresIdentity(t *testing.T) {
	uc := &mockUseCase{}
	rec := doRequest(NewHandler(uc, nopLogger{}), `{}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
