package customers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	customerservice "loyaltypoints/internal/service/customerservice"
	"loyaltypoints/pkg/utils"
)

//go:generate mockgen -source=customers.go -destination=mock_customers.go -package=customers

type Service interface {
	CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id int) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

type CustomerHandler struct {
	customerService Service
}

func New(customerService Service) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer godoc
//
//	@Summary		Register a new customer
//	@Description	Create a customer with a unique email address.
//	@Tags			Customers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateCustomerRequestDTO	true	"Customer payload"
//	@Success		201		{object}	dto.CustomerResponseDTO			"Created customer"
//	@Failure		400		{object}	utils.Response					"Invalid payload or email already registered"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	customer, err := h.customerService.CreateCustomer(r.Context(), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, customerservice.ErrEmailAlreadyRegistered):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(customer))
}

// GetCustomer godoc
//
//	@Summary		Get customer by ID
//	@Description	Retrieve a single customer by its numeric identifier.
//	@Tags			Customers
//	@Produce		json
//	@Param			id	path		int						true	"Customer ID"
//	@Success		200	{object}	dto.CustomerResponseDTO	"Customer"
//	@Failure		400	{object}	utils.Response			"Invalid customer ID"
//	@Failure		404	{object}	utils.Response			"Customer not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if customer == nil {
		utils.RespondWithError(w, http.StatusNotFound, "customer not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(customer))
}

// ListCustomers godoc
//
//	@Summary		List customers
//	@Description	List all registered customers ordered by creation date.
//	@Tags			Customers
//	@Produce		json
//	@Success		200	{array}		dto.CustomerResponseDTO	"Customers"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	response := make([]dto.CustomerResponseDTO, len(customers))
	for i, c := range customers {
		response[i] = *toResponse(&c)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toResponse(c *domain.Customer) *dto.CustomerResponseDTO {
	return &dto.CustomerResponseDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}
