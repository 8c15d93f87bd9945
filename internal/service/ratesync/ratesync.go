package ratesync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"loyaltypoints/internal/config"
	"loyaltypoints/internal/domain"
	"loyaltypoints/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var syncingCurrencies sync.Map

// Response is the rate provider's payload for one currency pair.
type Response struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

type RateRepo interface {
	Upsert(ctx context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// Service keeps the exchange_rates table seeded from an external provider.
// The ledger itself never refreshes rates, it only reads what is stored.
type Service struct {
	url            string
	baseCurrency   string
	currencies     []string
	rateRepo       RateRepo
	client         clients.HTTPClientI
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, rateRepo RateRepo, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.RatesAddress,
		baseCurrency:   cfg.BaseCurrency,
		currencies:     cfg.Currencies(),
		rateRepo:       rateRepo,
		client:         client,
		workerPool:     NewWorkerPool(4),
		updateInterval: time.Hour,
	}
}

func (s *Service) Start(ctx context.Context) {
	if len(s.currencies) == 0 {
		zap.L().Info("rate sync disabled: no currencies configured")
		return
	}
	zap.L().Info("rate sync started", zap.Strings("currencies", s.currencies))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	s.syncRates(ctx)

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping rate sync")
			return
		case <-ticker.C:
			s.syncRates(ctx)
		}
	}
}

func (s *Service) syncRates(ctx context.Context) {
	var g errgroup.Group
	for _, currency := range s.currencies {
		currency := currency

		if _, loaded := syncingCurrencies.LoadOrStore(currency, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer syncingCurrencies.Delete(currency)
				return s.syncCurrency(ctx, currency)
			})
			if err != nil {
				syncingCurrencies.Delete(currency)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error syncing exchange rates", zap.Error(err))
	}
}

func (s *Service) syncCurrency(ctx context.Context, currency string) error {
	url := s.url + "/api/rates/" + currency + "?base=" + s.baseCurrency

	var err error
	var statusCode int
	var respBody []byte

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, err = s.client.Get(ctx, url, nil)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to fetch rate for %s after %d retries: %w", currency, maxRetries, err)
			}
		}
		break
	}
	if statusCode != http.StatusOK {
		return fmt.Errorf("rate provider returned status %d for %s", statusCode, currency)
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("can't parse rate provider response for %s: %w", currency, err)
	}
	if !resp.Rate.IsPositive() {
		return fmt.Errorf("rate provider returned non-positive rate for %s", currency)
	}

	_, err = s.rateRepo.Upsert(ctx, &domain.ExchangeRate{
		FromCurrency: currency,
		ToCurrency:   s.baseCurrency,
		Rate:         resp.Rate,
	})
	if err != nil {
		return err
	}

	zap.L().Info("exchange rate updated",
		zap.String("from", currency),
		zap.String("to", s.baseCurrency),
		zap.String("rate", resp.Rate.String()))
	return nil
}
