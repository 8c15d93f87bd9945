package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "loyaltypoints/docs"
	"loyaltypoints/internal/handlers/customers"
	"loyaltypoints/internal/handlers/orders"
	"loyaltypoints/internal/handlers/points"
	"loyaltypoints/internal/handlers/rates"
	"loyaltypoints/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		CustomerService: customers.NewMockService(ctrl),
		OrderService:    orders.NewMockService(ctrl),
		LedgerService:   points.NewMockService(ctrl),
		RateService:     rates.NewMockService(ctrl),
	}

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCustomerHandler := NewMockCustomerHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockPointsHandler := NewMockPointsHandler(ctrl)
	mockRateHandler := NewMockRateHandler(ctrl)

	mockCustomerHandler.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).AnyTimes()
	mockCustomerHandler.EXPECT().GetCustomer(gomock.Any(), gomock.Any()).AnyTimes()
	mockCustomerHandler.EXPECT().ListCustomers(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().AddOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockPointsHandler.EXPECT().GetHistory(gomock.Any(), gomock.Any()).AnyTimes()
	mockRateHandler.EXPECT().GetRates(gomock.Any(), gomock.Any()).AnyTimes()
	mockRateHandler.EXPECT().UpsertRate(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		CustomerHandler: mockCustomerHandler,
		OrderHandler:    mockOrderHandler,
		PointsHandler:   mockPointsHandler,
		RateHandler:     mockRateHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/customers", http.StatusOK},
		{"GET", "/api/customers", http.StatusOK},
		{"GET", "/api/customers/1", http.StatusOK},
		{"GET", "/api/customers/1/points", http.StatusOK},
		{"GET", "/api/customers/1/points/history", http.StatusOK},
		{"POST", "/api/orders", http.StatusOK},
		{"GET", "/api/orders", http.StatusOK},
		{"GET", "/api/orders/10", http.StatusOK},
		{"PATCH", "/api/orders/10/status", http.StatusOK},
		{"GET", "/api/exchange-rates", http.StatusOK},
		{"PUT", "/api/exchange-rates", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
