package orderservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/pg"
	"loyaltypoints/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockCustomerRepo, *MockLedger, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	customerRepo := NewMockCustomerRepo(ctrl)
	ledger := NewMockLedger(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	service := New(repo, customerRepo, ledger, txManager)
	defer ctrl.Finish()
	return service, repo, customerRepo, ledger, txManager
}

func inTransaction(txManager *pg.MockTXManager) {
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestCreateOrder(t *testing.T) {
	service, repo, customerRepo, ledger, txManager := NewMock(t)

	customer := &domain.Customer{ID: 1, Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name           string
		totalAmount    string
		pointsToUse    string
		prepareMock    func()
		expectedAmount string
		expectedError  string
	}{
		{
			name:        "Order without points",
			totalAmount: "120.00",
			pointsToUse: "0",
			prepareMock: func() {
				customerRepo.EXPECT().FindByID(gomock.Any(), 1).Return(customer, nil)
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) error {
						order.ID = 10
						return nil
					})
			},
			expectedAmount: "120.00",
		},
		{
			name:        "Order with points discount",
			totalAmount: "120.00",
			pointsToUse: "500",
			prepareMock: func() {
				customerRepo.EXPECT().FindByID(gomock.Any(), 1).Return(customer, nil)
				inTransaction(txManager)
				ledger.EXPECT().
					Debit(gomock.Any(), 1, decimal.RequireFromString("500"), nil).
					Return(decimal.RequireFromString("5.00"), &domain.PointsTransaction{ID: 3}, nil)
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) error {
						order.ID = 11
						return nil
					})
				ledger.EXPECT().AttachOrder(gomock.Any(), 1, 11).Return(nil)
			},
			expectedAmount: "115.00",
		},
		{
			name:        "Customer not found",
			totalAmount: "120.00",
			pointsToUse: "0",
			prepareMock: func() {
				customerRepo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrCustomerNotFound.Error(),
		},
		{
			name:        "Non-positive total rejected",
			totalAmount: "0",
			pointsToUse: "0",
			prepareMock: func() {
				customerRepo.EXPECT().FindByID(gomock.Any(), 1).Return(customer, nil)
			},
			expectedError: ledgerservice.ErrInvalidAmount.Error(),
		},
		{
			name:        "Insufficient points leaves no order behind",
			totalAmount: "120.00",
			pointsToUse: "501",
			prepareMock: func() {
				customerRepo.EXPECT().FindByID(gomock.Any(), 1).Return(customer, nil)
				inTransaction(txManager)
				ledger.EXPECT().
					Debit(gomock.Any(), 1, decimal.RequireFromString("501"), nil).
					Return(decimal.Decimal{}, nil, &ledgerservice.InsufficientPointsError{
						Available: decimal.RequireFromString("500"),
						Requested: decimal.RequireFromString("501"),
					})
			},
			expectedError: "insufficient points: available=500, requested=501",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.CreateOrder(context.Background(), 1, decimal.RequireFromString(tt.totalAmount), "USD", decimal.RequireFromString(tt.pointsToUse))
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.True(t, decimal.RequireFromString(tt.expectedAmount).Equal(order.TotalAmount))
				assert.Equal(t, domain.ActiveOrderStatus, order.Status)
				assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
				assert.Len(t, order.OrderNumber, 14)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	service, repo, _, ledger, txManager := NewMock(t)

	activeOrder := func() *domain.Order {
		return &domain.Order{
			ID:          10,
			CustomerID:  1,
			OrderNumber: "ORD-A1B2C3D4E5",
			TotalAmount: decimal.RequireFromString("120.00"),
			Currency:    "USD",
			Status:      domain.ActiveOrderStatus,
		}
	}

	t.Run("Transition to Delivered credits points", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), 10).Return(activeOrder(), nil)
		inTransaction(txManager)
		repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.DeliveredOrderStatus, gomock.Any()).Return(nil)
		ledger.EXPECT().
			Credit(gomock.Any(), 1, 10, decimal.RequireFromString("120.00"), "USD").
			Return(&domain.PointsTransaction{ID: 5}, nil)

		order, err := service.UpdateStatus(context.Background(), 10, domain.DeliveredOrderStatus)
		assert.NoError(t, err)
		assert.Equal(t, domain.DeliveredOrderStatus, order.Status)
		assert.NotNil(t, order.DeliveredAt)
	})

	t.Run("Already Delivered order is not credited again", func(t *testing.T) {
		delivered := activeOrder()
		delivered.Status = domain.DeliveredOrderStatus
		repo.EXPECT().FindByID(gomock.Any(), 10).Return(delivered, nil)

		order, err := service.UpdateStatus(context.Background(), 10, domain.DeliveredOrderStatus)
		assert.NoError(t, err)
		assert.Equal(t, domain.DeliveredOrderStatus, order.Status)
	})

	t.Run("Unknown status rejected", func(t *testing.T) {
		_, err := service.UpdateStatus(context.Background(), 10, "Shipped")
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})

	t.Run("Order not found", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), 99).Return(nil, nil)

		_, err := service.UpdateStatus(context.Background(), 99, domain.DeliveredOrderStatus)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Credit failure rolls back the status change", func(t *testing.T) {
		repo.EXPECT().FindByID(gomock.Any(), 10).Return(activeOrder(), nil)
		inTransaction(txManager)
		repo.EXPECT().UpdateStatus(gomock.Any(), 10, domain.DeliveredOrderStatus, gomock.Any()).Return(nil)
		ledger.EXPECT().
			Credit(gomock.Any(), 1, 10, decimal.RequireFromString("120.00"), "USD").
			Return(nil, &ledgerservice.RateNotFoundError{From: "USD", To: "USD"})

		_, err := service.UpdateStatus(context.Background(), 10, domain.DeliveredOrderStatus)
		assert.Error(t, err)
	})
}

func TestGetOrder(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	tests := []struct {
		name          string
		orderID       int
		prepareMock   func()
		expectedOrder *domain.Order
		expectedError error
	}{
		{
			name:    "Existing order",
			orderID: 10,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 10).Return(&domain.Order{ID: 10}, nil)
			},
			expectedOrder: &domain.Order{ID: 10},
		},
		{
			name:    "Missing order returns nil",
			orderID: 99,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 99).Return(nil, nil)
			},
		},
		{
			name:    "Database error",
			orderID: 10,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 10).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			order, err := service.GetOrder(context.Background(), tt.orderID)
			if tt.expectedError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedOrder, order)
			}
		})
	}
}

func TestListOrders(t *testing.T) {
	service, repo, _, _, _ := NewMock(t)

	orders := []domain.Order{{ID: 1, CustomerID: 1}, {ID: 2, CustomerID: 1}}

	t.Run("Filtered by customer", func(t *testing.T) {
		customerID := 1
		repo.EXPECT().FindByCustomerID(gomock.Any(), 1).Return(orders, nil)

		result, err := service.ListOrders(context.Background(), &customerID)
		assert.NoError(t, err)
		assert.Equal(t, orders, result)
	})

	t.Run("All orders", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any()).Return(orders, nil)

		result, err := service.ListOrders(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, orders, result)
	})
}
