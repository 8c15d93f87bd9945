package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	ledgerservice "loyaltypoints/internal/service/ledgerservice"
	orderservice "loyaltypoints/internal/service/orderservice"
	"loyaltypoints/pkg/utils"
)

//go:generate mockgen -source=orders.go -destination=mock_orders.go -package=orders

type Service interface {
	CreateOrder(ctx context.Context, customerID int, totalAmount decimal.Decimal, currency string, pointsToUse decimal.Decimal) (*domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID *int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// AddOrder godoc
//
//	@Summary		Create a new order
//	@Description	Create an order for a customer. When points_to_use is set, the points are
//	@Description	redeemed first and the order total is reduced by their monetary value.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Order payload"
//	@Success		201		{object}	dto.OrderResponseDTO		"Created order"
//	@Failure		400		{object}	utils.Response				"Invalid payload"
//	@Failure		402		{object}	utils.Response				"Insufficient points"
//	@Failure		404		{object}	utils.Response				"Customer not found"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Currency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "currency is required")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req.CustomerID, req.TotalAmount, req.Currency, req.PointsToUse)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toResponse(order))
}

// GetOrder godoc
//
//	@Summary		Get order by ID
//	@Description	Retrieve a single order by its numeric identifier.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	dto.OrderResponseDTO	"Order"
//	@Failure		400	{object}	utils.Response			"Invalid order ID"
//	@Failure		404	{object}	utils.Response			"Order not found"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if order == nil {
		utils.RespondWithError(w, http.StatusNotFound, "order not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(order))
}

// GetOrders godoc
//
//	@Summary		List orders
//	@Description	List orders, optionally filtered by customer, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			customer_id	query		int						false	"Filter by customer ID"
//	@Success		200			{array}		dto.OrderResponseDTO	"Orders"
//	@Failure		400			{object}	utils.Response			"Invalid customer ID"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	var customerID *int
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
			return
		}
		customerID = &id
	}

	orders, err := h.orderService.ListOrders(r.Context(), customerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	response := make([]dto.OrderResponseDTO, len(orders))
	for i, o := range orders {
		response[i] = *toResponse(&o)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateStatus godoc
//
//	@Summary		Update order status
//	@Description	Change the order status. The transition into Delivered stamps delivered_at
//	@Description	and credits reward points for the order total.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Order ID"
//	@Param			request	body		dto.UpdateOrderStatusRequestDTO	true	"New status"
//	@Success		200		{object}	dto.OrderResponseDTO			"Updated order"
//	@Failure		400		{object}	utils.Response					"Invalid payload or unknown status"
//	@Failure		404		{object}	utils.Response					"Order not found"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req dto.UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(order))
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	var insufficientErr *ledgerservice.InsufficientPointsError
	var rateErr *ledgerservice.RateNotFoundError

	switch {
	case errors.Is(err, orderservice.ErrCustomerNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orderservice.ErrOrderNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orderservice.ErrUnknownStatus):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledgerservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficientErr):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.As(err, &rateErr):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toResponse(o *domain.Order) *dto.OrderResponseDTO {
	return &dto.OrderResponseDTO{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		OrderNumber: o.OrderNumber,
		TotalAmount: o.TotalAmount,
		Currency:    o.Currency,
		Status:      o.Status,
		DeliveredAt: o.DeliveredAt,
		CreatedAt:   o.CreatedAt,
	}
}
