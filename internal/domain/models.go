package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// ActiveOrderStatus order is created and awaiting delivery;
	ActiveOrderStatus string = "Active"
	// DeliveredOrderStatus order is delivered, points have been credited.
	DeliveredOrderStatus string = "Delivered"
)

const (
	// CreditTransaction points earned, counted until expiry_date;
	CreditTransaction string = "Credit"
	// DebitTransaction points spent, never expires.
	DebitTransaction string = "Debit"
)

type Customer struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Order struct {
	ID          int             `db:"id"`
	CustomerID  int             `db:"customer_id"`
	OrderNumber string          `db:"order_number"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Currency    string          `db:"currency"`
	Status      string          `db:"status"`
	DeliveredAt *time.Time      `db:"delivered_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

type PointsTransaction struct {
	ID          int             `db:"id"`
	CustomerID  int             `db:"customer_id"`
	OrderID     *int            `db:"order_id"`
	Points      decimal.Decimal `db:"points"`
	Type        string          `db:"transaction_type"`
	ExpiryDate  time.Time       `db:"expiry_date"`
	IsExpired   bool            `db:"is_expired"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

type ExchangeRate struct {
	ID           int             `db:"id"`
	FromCurrency string          `db:"from_currency"`
	ToCurrency   string          `db:"to_currency"`
	Rate         decimal.Decimal `db:"rate"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
