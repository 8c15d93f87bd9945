package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PointsBalanceResponseDTO struct {
	CustomerID   int             `json:"customer_id" example:"1"`
	Available    decimal.Decimal `json:"available" example:"500"`
	TotalCredits decimal.Decimal `json:"total_credits" example:"600"`
	TotalDebits  decimal.Decimal `json:"total_debits" example:"100"`
}

type PointsTransactionResponseDTO struct {
	ID          int             `json:"id" example:"3"`
	OrderID     *int            `json:"order_id,omitempty" example:"10"`
	Points      decimal.Decimal `json:"points" example:"120"`
	Type        string          `json:"type" example:"Credit"`
	ExpiryDate  time.Time       `json:"expiry_date" example:"2025-06-15T00:00:00Z"`
	Description string          `json:"description" example:"Points earned from order #10"`
	CreatedAt   time.Time       `json:"created_at" example:"2024-06-15T12:00:00Z"`
}
