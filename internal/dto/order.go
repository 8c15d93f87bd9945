package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequestDTO struct {
	CustomerID  int             `json:"customer_id" example:"1"`
	TotalAmount decimal.Decimal `json:"total_amount" example:"120.00"`
	Currency    string          `json:"currency" example:"USD"`
	PointsToUse decimal.Decimal `json:"points_to_use" example:"500"`
}

type UpdateOrderStatusRequestDTO struct {
	Status string `json:"status" example:"Delivered"`
}

type OrderResponseDTO struct {
	ID          int             `json:"id" example:"10"`
	CustomerID  int             `json:"customer_id" example:"1"`
	OrderNumber string          `json:"order_number" example:"ORD-A1B2C3D4E5"`
	TotalAmount decimal.Decimal `json:"total_amount" example:"115.00"`
	Currency    string          `json:"currency" example:"USD"`
	Status      string          `json:"status" example:"Active"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty" example:"2024-06-15T12:00:00Z"`
	CreatedAt   time.Time       `json:"created_at" example:"2024-06-15T12:00:00Z"`
}
