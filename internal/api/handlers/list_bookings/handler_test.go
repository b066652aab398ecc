package list_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StayService/internal/api/middleware"
	"github.com/m04kA/SMC-StayService/internal/domain"
	"github.com/m04kA/SMC-StayService/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, actor domain.Identity, role domain.ListRole) (*models.BookingListResponse, error) {
	args := m.Called(ctx, actor, role)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var host = domain.Identity{UserID: 7, Role: domain.RoleHost}

func get(h *Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), host))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_RoleSelection(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, host, domain.ListRoleHost).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil)
	svc.On("List", mock.Anything, host, domain.ListRoleGuest).
		Return(&models.BookingListResponse{}, nil)
	h := NewHandler(svc, nopLogger{})

	rec := get(h, "/api/bookings?role=host")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)

	// Неизвестная роль трактуется как гость, пустой список сериализуется массивом
	rec = get(h, "/api/bookings?role=admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	svc.AssertExpectations(t)
}

func TestHandle_ServiceError(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, host, domain.ListRoleGuest).Return(nil, errors.New("db down"))

	rec := get(NewHandler(svc, nopLogger{}), "/api/bookings")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_RequiresIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&mockService{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
