package rates

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	ledgerservice "loyaltypoints/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*RateHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetRates(t *testing.T) {
	handler, service := NewMock(t)

	updatedAt := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Returns all rates", func(t *testing.T) {
		service.EXPECT().
			ListRates(gomock.Any()).
			Return([]domain.ExchangeRate{
				{ID: 1, FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.08"), UpdatedAt: updatedAt},
				{ID: 2, FromCurrency: "GBP", ToCurrency: "USD", Rate: decimal.RequireFromString("1.27"), UpdatedAt: updatedAt},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/exchange-rates", nil)
		rr := httptest.NewRecorder()
		handler.GetRates(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []dto.RateResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "EUR", resp[0].From)
		assert.True(t, decimal.RequireFromString("1.08").Equal(resp[0].Rate))
	})

	t.Run("Internal error", func(t *testing.T) {
		service.EXPECT().ListRates(gomock.Any()).Return(nil, errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/api/exchange-rates", nil)
		rr := httptest.NewRecorder()
		handler.GetRates(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestUpsertRate(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful upsert",
			body: `{"from":"EUR","to":"USD","rate":1.08}`,
			prepareMock: func() {
				service.EXPECT().
					UpsertRate(gomock.Any(), "EUR", "USD", decimal.RequireFromString("1.08")).
					Return(&domain.ExchangeRate{ID: 1, FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.08")}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Empty target defaults to base currency",
			body: `{"from":"EUR","rate":1.08}`,
			prepareMock: func() {
				service.EXPECT().
					UpsertRate(gomock.Any(), "EUR", "", decimal.RequireFromString("1.08")).
					Return(&domain.ExchangeRate{ID: 1, FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.RequireFromString("1.08")}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `not json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Missing source currency",
			body:          `{"rate":1.08}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "source currency is required",
		},
		{
			name: "Non-positive rate",
			body: `{"from":"EUR","to":"USD","rate":0}`,
			prepareMock: func() {
				service.EXPECT().
					UpsertRate(gomock.Any(), "EUR", "USD", decimal.RequireFromString("0")).
					Return(nil, ledgerservice.ErrInvalidAmount)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "amount must be positive",
		},
		{
			name: "Internal error",
			body: `{"from":"EUR","to":"USD","rate":1.08}`,
			prepareMock: func() {
				service.EXPECT().
					UpsertRate(gomock.Any(), "EUR", "USD", decimal.RequireFromString("1.08")).
					Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPut, "/api/exchange-rates", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler.UpsertRate(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedError)
			}
		})
	}
}
