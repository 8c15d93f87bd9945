package rates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/dto"
	ledgerservice "loyaltypoints/internal/service/ledgerservice"
	"loyaltypoints/pkg/utils"
)

//go:generate mockgen -source=rates.go -destination=mock_rates.go -package=rates

type Service interface {
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
	UpsertRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal) (*domain.ExchangeRate, error)
}

type RateHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *RateHandler {
	return &RateHandler{
		ledgerService: ledgerService,
	}
}

// GetRates godoc
//
//	@Summary		List exchange rates
//	@Description	List all stored exchange rates. Rates are directed: EUR to USD does not
//	@Description	imply USD to EUR.
//	@Tags			Rates
//	@Produce		json
//	@Success		200	{array}		dto.RateResponseDTO	"Exchange rates"
//	@Failure		500	{object}	utils.Response		"Internal server error"
//	@Router			/api/exchange-rates [get]
func (h *RateHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.ledgerService.ListRates(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch exchange rates")
		return
	}

	response := make([]dto.RateResponseDTO, len(rates))
	for i, rate := range rates {
		response[i] = *toResponse(&rate)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpsertRate godoc
//
//	@Summary		Store an exchange rate
//	@Description	Insert or update the rate for a directed currency pair. An empty target
//	@Description	currency defaults to the base currency.
//	@Tags			Rates
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.UpsertRateRequestDTO	true	"Rate payload"
//	@Success		200		{object}	dto.RateResponseDTO			"Stored rate"
//	@Failure		400		{object}	utils.Response				"Invalid payload"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/exchange-rates [put]
func (h *RateHandler) UpsertRate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertRateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.From == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "source currency is required")
		return
	}

	rate, err := h.ledgerService.UpsertRate(r.Context(), req.From, req.To, req.Rate)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toResponse(rate))
}

func toResponse(rate *domain.ExchangeRate) *dto.RateResponseDTO {
	return &dto.RateResponseDTO{
		ID:        rate.ID,
		From:      rate.FromCurrency,
		To:        rate.ToCurrency,
		Rate:      rate.Rate,
		UpdatedAt: rate.UpdatedAt,
	}
}
