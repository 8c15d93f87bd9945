package raterepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	query := `
        SELECT id, from_currency, to_currency, rate, updated_at
        FROM exchange_rates
        WHERE from_currency = $1 AND to_currency = $2
    `
	row := r.db.QueryRow(ctx, query, fromCurrency, toCurrency)

	var rate domain.ExchangeRate
	err := row.Scan(&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &rate.Rate, &rate.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find exchange rate", zap.Error(err))
		return nil, err
	}
	return &rate, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
        SELECT id, from_currency, to_currency, rate, updated_at
        FROM exchange_rates
        ORDER BY from_currency, to_currency
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get exchange rates", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		err := rows.Scan(&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &rate.Rate, &rate.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan exchange rate row", zap.Error(err))
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

func (r *Repository) Upsert(ctx context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (from_currency, to_currency, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_currency, to_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = now()
		RETURNING id, updated_at
	`
	err := r.db.QueryRow(ctx, query, rate.FromCurrency, rate.ToCurrency, rate.Rate).
		Scan(&rate.ID, &rate.UpdatedAt)
	if err != nil {
		zap.L().Error("can't upsert exchange rate", zap.Error(err))
		return nil, err
	}
	return rate, nil
}
