package customers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	customerservice "loyaltypoints/internal/service/customerservice"
)

func NewMock(t *testing.T) (*CustomerHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateCustomer(t *testing.T) {
	handler, service := NewMock(t)

	createdAt := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"name":"Alice Johnson","email":"alice@example.com"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateCustomer(gomock.Any(), "Alice Johnson", "alice@example.com").
					Return(&domain.Customer{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", CreatedAt: createdAt}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid request body",
			body:          `not json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Missing email",
			body:          `{"name":"Alice Johnson"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "name and email are required",
		},
		{
			name: "Email already registered",
			body: `{"name":"Alice Johnson","email":"alice@example.com"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateCustomer(gomock.Any(), "Alice Johnson", "alice@example.com").
					Return(nil, customerservice.ErrEmailAlreadyRegistered)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "email already registered",
		},
		{
			name: "Internal error",
			body: `{"name":"Alice Johnson","email":"alice@example.com"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateCustomer(gomock.Any(), "Alice Johnson", "alice@example.com").
					Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler.CreateCustomer(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedError)
			} else {
				var resp dto.CustomerResponseDTO
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, 1, resp.ID)
				assert.Equal(t, "alice@example.com", resp.Email)
			}
		})
	}
}

func TestGetCustomer(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		id            string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Existing customer",
			id:   "1",
			prepareMock: func() {
				service.EXPECT().
					GetCustomer(gomock.Any(), 1).
					Return(&domain.Customer{ID: 1, Name: "Alice Johnson", Email: "alice@example.com"}, nil)
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
				service.EXPECT().GetCustomer(gomock.Any(), 99).Return(nil, nil)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "customer not found",
		},
		{
			name: "Internal error",
			id:   "1",
			prepareMock: func() {
				service.EXPECT().GetCustomer(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/customers/"+tt.id, nil), "id", tt.id)
			rr := httptest.NewRecorder()
			handler.GetCustomer(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestListCustomers(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Returns all customers", func(t *testing.T) {
		service.EXPECT().
			ListCustomers(gomock.Any()).
			Return([]domain.Customer{
				{ID: 1, Name: "Alice Johnson", Email: "alice@example.com"},
				{ID: 2, Name: "Bob Smith", Email: "bob@example.com"},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		rr := httptest.NewRecorder()
		handler.ListCustomers(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []dto.CustomerResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("Internal error", func(t *testing.T) {
		service.EXPECT().ListCustomers(gomock.Any()).Return(nil, errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		rr := httptest.NewRecorder()
		handler.ListCustomers(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
