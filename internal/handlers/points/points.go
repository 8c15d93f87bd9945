package points

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	ledgerservice "loyaltypoints/internal/service/ledgerservice"
	"loyaltypoints/pkg/utils"
)

//go:generate mockgen -source=points.go -destination=mock_points.go -package=points

type Service interface {
	GetBalance(ctx context.Context, customerID int) (*ledgerservice.BalanceSummary, error)
	GetHistory(ctx context.Context, customerID int) ([]domain.PointsTransaction, error)
}

type CustomerService interface {
	GetCustomer(ctx context.Context, id int) (*domain.Customer, error)
}

type PointsHandler struct {
	ledgerService   Service
	customerService CustomerService
}

func New(ledgerService Service, customerService CustomerService) *PointsHandler {
	return &PointsHandler{
		ledgerService:   ledgerService,
		customerService: customerService,
	}
}

// GetBalance godoc
//
//	@Summary		Get customer points balance
//	@Description	Retrieve the available points balance for a customer. Credits past their
//	@Description	expiry date are excluded, debits always count.
//	@Tags			Points
//	@Produce		json
//	@Param			id	path		int								true	"Customer ID"
//	@Success		200	{object}	dto.PointsBalanceResponseDTO	"Points balance"
//	@Failure		400	{object}	utils.Response					"Invalid customer ID"
//	@Failure		404	{object}	utils.Response					"Customer not found"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/customers/{id}/points [get]
func (h *PointsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.resolveCustomer(w, r)
	if !ok {
		return
	}

	balance, err := h.ledgerService.GetBalance(r.Context(), customerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PointsBalanceResponseDTO{
		CustomerID:   balance.CustomerID,
		Available:    balance.AvailableBalance,
		TotalCredits: balance.TotalCredits,
		TotalDebits:  balance.TotalDebits,
	})
}

// GetHistory godoc
//
//	@Summary		Get customer points history
//	@Description	List all points transactions for a customer, newest first.
//	@Tags			Points
//	@Produce		json
//	@Param			id	path		int									true	"Customer ID"
//	@Success		200	{array}		dto.PointsTransactionResponseDTO	"Points transactions"
//	@Failure		400	{object}	utils.Response						"Invalid customer ID"
//	@Failure		404	{object}	utils.Response						"Customer not found"
//	@Failure		500	{object}	utils.Response						"Internal server error"
//	@Router			/api/customers/{id}/points/history [get]
func (h *PointsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.resolveCustomer(w, r)
	if !ok {
		return
	}

	transactions, err := h.ledgerService.GetHistory(r.Context(), customerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch points history")
		return
	}

	response := make([]dto.PointsTransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = dto.PointsTransactionResponseDTO{
			ID:          tx.ID,
			OrderID:     tx.OrderID,
			Points:      tx.Points,
			Type:        tx.Type,
			ExpiryDate:  tx.ExpiryDate,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// resolveCustomer parses the customer ID and verifies the customer exists.
// It writes the error response itself when the lookup fails.
func (h *PointsHandler) resolveCustomer(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
		return 0, false
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return 0, false
	}
	if customer == nil {
		utils.RespondWithError(w, http.StatusNotFound, "customer not found")
		return 0, false
	}
	return id, true
}
