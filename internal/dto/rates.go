package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type UpsertRateRequestDTO struct {
	From string          `json:"from" example:"EUR"`
	To   string          `json:"to" example:"USD"`
	Rate decimal.Decimal `json:"rate" example:"1.08"`
}

type RateResponseDTO struct {
	ID        int             `json:"id" example:"1"`
	From      string          `json:"from" example:"EUR"`
	To        string          `json:"to" example:"USD"`
	Rate      decimal.Decimal `json:"rate" example:"1.08"`
	UpdatedAt time.Time       `json:"updated_at" example:"2024-06-15T12:00:00Z"`
}
