package customerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"loyaltypoints/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestCreateCustomer(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		customerName  string
		email         string
		prepareMock   func()
		expectedError error
	}{
		{
			name:         "Successful customer creation",
			customerName: "Alice",
			email:        "alice@example.com",
			prepareMock: func() {
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
						customer.ID = 1
						return customer, nil
					})
			},
		},
		{
			name:         "Email already registered",
			customerName: "Alice",
			email:        "alice@example.com",
			prepareMock: func() {
				repo.EXPECT().FindByEmail(gomock.Any(), "alice@example.com").Return(&domain.Customer{
					ID:    1,
					Name:  "Alice",
					Email: "alice@example.com",
				}, nil)
			},
			expectedError: ErrEmailAlreadyRegistered,
		},
		{
			name:         "Database error on lookup",
			customerName: "Bob",
			email:        "bob@example.com",
			prepareMock: func() {
				repo.EXPECT().FindByEmail(gomock.Any(), "bob@example.com").Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
		{
			name:         "Database error on create",
			customerName: "Bob",
			email:        "bob@example.com",
			prepareMock: func() {
				repo.EXPECT().FindByEmail(gomock.Any(), "bob@example.com").Return(nil, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			customer, err := service.CreateCustomer(context.Background(), tt.customerName, tt.email)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, customer)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, customer)
				assert.Equal(t, tt.email, customer.Email)
			}
		})
	}
}

func TestGetCustomer(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name             string
		customerID       int
		prepareMock      func()
		expectedCustomer *domain.Customer
		expectedError    error
	}{
		{
			name:       "Existing customer",
			customerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.Customer{ID: 1, Name: "Alice"}, nil)
			},
			expectedCustomer: &domain.Customer{ID: 1, Name: "Alice"},
		},
		{
			name:       "Missing customer returns nil",
			customerID: 99,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedCustomer: nil,
		},
		{
			name:       "Database error",
			customerID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			customer, err := service.GetCustomer(context.Background(), tt.customerID)
			if tt.expectedError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCustomer, customer)
			}
		})
	}
}

func TestListCustomers(t *testing.T) {
	service, repo := NewMock(t)

	customers := []domain.Customer{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
	repo.EXPECT().List(gomock.Any()).Return(customers, nil)

	result, err := service.ListCustomers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, customers, result)
}
