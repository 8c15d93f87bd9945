package dto

import "time"

type CreateCustomerRequestDTO struct {
	Name  string `json:"name" example:"Alice Johnson"`
	Email string `json:"email" example:"alice@example.com"`
}

type CustomerResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice Johnson"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2024-06-15T12:00:00Z"`
}
