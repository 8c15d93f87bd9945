package points

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	ledgerservice "loyaltypoints/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*PointsHandler, *MockService, *MockCustomerService) {
	ctrl := gomock.NewController(t)
	ledger := NewMockService(ctrl)
	customerService := NewMockCustomerService(ctrl)
	handler := New(ledger, customerService)
	defer ctrl.Finish()
	return handler, ledger, customerService
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetBalance(t *testing.T) {
	handler, ledger, customerService := NewMock(t)

	customer := &domain.Customer{ID: 1, Name: "Alice Johnson", Email: "alice@example.com"}

	tests := []struct {
		name          string
		id            string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Returns balance",
			id:   "1",
			prepareMock: func() {
				customerService.EXPECT().GetCustomer(gomock.Any(), 1).Return(customer, nil)
				ledger.EXPECT().
					GetBalance(gomock.Any(), 1).
					Return(&ledgerservice.BalanceSummary{
						CustomerID:       1,
						AvailableBalance: decimal.RequireFromString("500"),
						TotalCredits:     decimal.RequireFromString("600"),
						TotalDebits:      decimal.RequireFromString("100"),
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid customer ID",
			id:            "abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid customer ID",
		},
		{
			name: "Customer not found",
			id:   "99",
			prepareMock: func() {
				customerService.EXPECT().GetCustomer(gomock.Any(), 99).Return(nil, nil)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "customer not found",
		},
		{
			name: "Internal error",
			id:   "1",
			prepareMock: func() {
				customerService.EXPECT().GetCustomer(gomock.Any(), 1).Return(customer, nil)
				ledger.EXPECT().GetBalance(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/"+tt.id+"/points", nil), "id", tt.id)
			rr := httptest.NewRecorder()
			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedError)
			} else {
				var resp dto.PointsBalanceResponseDTO
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, 1, resp.CustomerID)
				assert.True(t, decimal.RequireFromString("500").Equal(resp.Available))
			}
		})
	}
}

func TestGetHistory(t *testing.T) {
	handler, ledger, customerService := NewMock(t)

	customer := &domain.Customer{ID: 1, Name: "Alice Johnson", Email: "alice@example.com"}
	orderID := 10
	expiry := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Returns transactions newest first", func(t *testing.T) {
		customerService.EXPECT().GetCustomer(gomock.Any(), 1).Return(customer, nil)
		ledger.EXPECT().
			GetHistory(gomock.Any(), 1).
			Return([]domain.PointsTransaction{
				{ID: 3, CustomerID: 1, Points: decimal.RequireFromString("500"), Type: domain.DebitTransaction},
				{ID: 2, CustomerID: 1, OrderID: &orderID, Points: decimal.RequireFromString("120"), Type: domain.CreditTransaction, ExpiryDate: expiry},
			}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/1/points/history", nil), "id", "1")
		rr := httptest.NewRecorder()
		handler.GetHistory(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []dto.PointsTransactionResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, 3, resp[0].ID)
		assert.Nil(t, resp[0].OrderID)
		assert.Equal(t, &orderID, resp[1].OrderID)
	})

	t.Run("Customer not found", func(t *testing.T) {
		customerService.EXPECT().GetCustomer(gomock.Any(), 99).Return(nil, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/99/points/history", nil), "id", "99")
		rr := httptest.NewRecorder()
		handler.GetHistory(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Internal error", func(t *testing.T) {
		customerService.EXPECT().GetCustomer(gomock.Any(), 1).Return(customer, nil)
		ledger.EXPECT().GetHistory(gomock.Any(), 1).Return(nil, errors.New("db error"))

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/1/points/history", nil), "id", "1")
		rr := httptest.NewRecorder()
		handler.GetHistory(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
