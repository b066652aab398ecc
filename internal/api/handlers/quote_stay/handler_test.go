package quote_stay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	quoteStay "github.com/m04kA/SMC-StayService/internal/usecase/quote_stay"
	"github.com/m04kA/SMC-StayService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *quoteStay.Request) (*quoteStay.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*quoteStay.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc QuoteStayUseCase, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/listings/{listingId}/quote", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &quoteStay.Request{
		ListingID: 10,
		CheckIn:   types.MustParseDate("2026-11-01"),
		CheckOut:  types.MustParseDate("2026-11-03"),
	}).Return(&quoteStay.Response{ListingID: 10, Nights: 2, Subtotal: "2469.00", TaxAmount: "444.42", Total: "2913.42", Available: true}, nil)

	rec := serve(uc, "/api/listings/10/quote?check_in=2026-11-01&check_out=2026-11-03")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":"2913.42"`)
	assert.Contains(t, rec.Body.String(), `"available":true`)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *quoteStay.Request) bool { return r.ListingID == 404 })).
		Return(nil, quoteStay.ErrListingNotFound)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *quoteStay.Request) bool { return r.ListingID == 1 })).
		Return(nil, quoteStay.ErrInvalidDates)

	rec := serve(uc, "/api/listings/404/quote?check_in=2026-11-01&check_out=2026-11-03")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(uc, "/api/listings/1/quote?check_in=2026-11-03&check_out=2026-11-03")
	assert.JSONEq(t, `{"detail":"`+msgInvalidDates+`"}`, rec.Body.String())

	rec = serve(uc, "/api/listings/1/quote?check_in=2026-11-03")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"`+msgInvalidDateFormat+`"}`, rec.Body.String())
}
