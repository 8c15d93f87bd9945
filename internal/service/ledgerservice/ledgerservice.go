package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type PointsRepo interface {
	CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) (*domain.PointsTransaction, error)
	FindActiveCredits(ctx context.Context, customerID int, asOf time.Time) ([]domain.PointsTransaction, error)
	FindDebits(ctx context.Context, customerID int) ([]domain.PointsTransaction, error)
	FindLatestUnattachedDebit(ctx context.Context, customerID int) (*domain.PointsTransaction, error)
	AttachOrder(ctx context.Context, transactionID int, orderID int, description string) error
	FindByCustomerID(ctx context.Context, customerID int) ([]domain.PointsTransaction, error)
	LockCustomer(ctx context.Context, customerID int) error
}

type RateRepo interface {
	GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)
	List(ctx context.Context) ([]domain.ExchangeRate, error)
	Upsert(ctx context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// Clock supplies "today" for expiry arithmetic, so tests can pin the date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

const creditExpiryDays = 365

// One point is worth 0.01 units of the base currency. Fixed, not driven by
// the exchange rate table.
var pointValue = decimal.New(1, -2)

var ErrInvalidAmount = errors.New("amount must be positive")

type RateNotFoundError struct {
	From string
	To   string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("exchange rate not found for %s to %s", e.From, e.To)
}

type InsufficientPointsError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: available=%s, requested=%s", e.Available, e.Requested)
}

type BalanceSummary struct {
	CustomerID       int
	AvailableBalance decimal.Decimal
	TotalCredits     decimal.Decimal
	TotalDebits      decimal.Decimal
}

type Service struct {
	pointsRepo   PointsRepo
	rateRepo     RateRepo
	txManager    pg.TXManager
	baseCurrency string
	clock        Clock
}

func New(pointsRepo PointsRepo, rateRepo RateRepo, txManager pg.TXManager, baseCurrency string, clock Clock) *Service {
	if clock == nil {
		clock = systemClock{}
	}
	return &Service{
		pointsRepo:   pointsRepo,
		rateRepo:     rateRepo,
		txManager:    txManager,
		baseCurrency: baseCurrency,
		clock:        clock,
	}
}

// RateTo returns the multiplicative rate converting fromCurrency into the
// base currency. Only directly stored pairs are honored, there is no inverse
// or multi-hop fallback.
func (s *Service) RateTo(ctx context.Context, fromCurrency string) (decimal.Decimal, error) {
	if fromCurrency == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, err := s.rateRepo.GetRate(ctx, fromCurrency, s.baseCurrency)
	if err != nil {
		zap.L().Error("failed to get exchange rate", zap.Error(err))
		return decimal.Decimal{}, err
	}
	if rate == nil {
		return decimal.Decimal{}, &RateNotFoundError{From: fromCurrency, To: s.baseCurrency}
	}
	return rate.Rate, nil
}

// Convert normalizes an amount into the base currency. Amounts in the base
// currency pass through unchanged, without lookup or rounding.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	if currency == s.baseCurrency {
		return amount, nil
	}
	rate, err := s.RateTo(ctx, currency)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate), nil
}

// Credit appends one credit transaction for a delivered order. One unit of
// base currency spent earns one point, computed on the converted amount.
func (s *Service) Credit(ctx context.Context, customerID, orderID int, amount decimal.Decimal, currency string) (*domain.PointsTransaction, error) {
	points, err := s.Convert(ctx, amount, currency)
	if err != nil {
		return nil, err
	}
	if !points.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := s.clock.Now()
	tx := &domain.PointsTransaction{
		CustomerID:  customerID,
		OrderID:     &orderID,
		Points:      points,
		Type:        domain.CreditTransaction,
		ExpiryDate:  now.AddDate(0, 0, creditExpiryDays),
		IsExpired:   false,
		Description: fmt.Sprintf("Points earned from order #%d", orderID),
	}
	created, err := s.pointsRepo.CreateTransaction(ctx, tx)
	if err != nil {
		zap.L().Error("can't create credit transaction", zap.Error(err))
		return nil, err
	}

	zap.L().Info("points credited",
		zap.Int("customer_id", customerID),
		zap.Int("order_id", orderID),
		zap.String("points", points.String()))
	return created, nil
}

// AvailableBalance is the sum of non-expired credits minus the sum of all
// debits as of the given date. The expiry boundary is inclusive and the
// result is not clamped, inconsistent data is reported as a negative balance.
func (s *Service) AvailableBalance(ctx context.Context, customerID int, asOf time.Time) (decimal.Decimal, error) {
	credits, err := s.pointsRepo.FindActiveCredits(ctx, customerID, asOf)
	if err != nil {
		zap.L().Error("failed to get credit transactions", zap.Error(err))
		return decimal.Decimal{}, err
	}
	debits, err := s.pointsRepo.FindDebits(ctx, customerID)
	if err != nil {
		zap.L().Error("failed to get debit transactions", zap.Error(err))
		return decimal.Decimal{}, err
	}
	return sumPoints(credits).Sub(sumPoints(debits)), nil
}

func (s *Service) GetBalance(ctx context.Context, customerID int) (*BalanceSummary, error) {
	today := s.clock.Now()
	credits, err := s.pointsRepo.FindActiveCredits(ctx, customerID, today)
	if err != nil {
		zap.L().Error("failed to get credit transactions", zap.Error(err))
		return nil, err
	}
	debits, err := s.pointsRepo.FindDebits(ctx, customerID)
	if err != nil {
		zap.L().Error("failed to get debit transactions", zap.Error(err))
		return nil, err
	}

	totalCredits := sumPoints(credits)
	totalDebits := sumPoints(debits)
	return &BalanceSummary{
		CustomerID:       customerID,
		AvailableBalance: totalCredits.Sub(totalDebits),
		TotalCredits:     totalCredits,
		TotalDebits:      totalDebits,
	}, nil
}

// Debit spends points as a discount on a new order. The whole
// check-then-write sequence runs in one storage transaction under a
// per-customer lock, so two concurrent redemptions cannot both pass the
// balance check. A single aggregate debit row is written, individual credit
// lots are not consumed.
func (s *Service) Debit(ctx context.Context, customerID int, pointsToUse decimal.Decimal, orderID *int) (decimal.Decimal, *domain.PointsTransaction, error) {
	if !pointsToUse.IsPositive() {
		return decimal.Decimal{}, nil, ErrInvalidAmount
	}

	var created *domain.PointsTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.pointsRepo.LockCustomer(ctx, customerID); err != nil {
			return err
		}

		today := s.clock.Now()
		available, err := s.AvailableBalance(ctx, customerID, today)
		if err != nil {
			return err
		}
		if available.LessThan(pointsToUse) {
			return &InsufficientPointsError{Available: available, Requested: pointsToUse}
		}

		description := "Points redeemed"
		if orderID != nil {
			description = fmt.Sprintf("Points redeemed for order #%d", *orderID)
		}
		tx := &domain.PointsTransaction{
			CustomerID:  customerID,
			OrderID:     orderID,
			Points:      pointsToUse,
			Type:        domain.DebitTransaction,
			ExpiryDate:  today,
			IsExpired:   false,
			Description: description,
		}
		created, err = s.pointsRepo.CreateTransaction(ctx, tx)
		if err != nil {
			zap.L().Error("can't create debit transaction", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return decimal.Decimal{}, nil, err
	}

	discount := pointsToUse.Mul(pointValue)
	zap.L().Info("points debited",
		zap.Int("customer_id", customerID),
		zap.String("points", pointsToUse.String()),
		zap.String("discount", discount.String()))
	return discount, created, nil
}

// AttachOrder binds the most recent order-less debit of the customer to the
// given order. A debit created before its order exists is attached exactly
// once; if no unattached debit remains this is a no-op.
func (s *Service) AttachOrder(ctx context.Context, customerID, orderID int) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.pointsRepo.LockCustomer(ctx, customerID); err != nil {
			return err
		}
		debit, err := s.pointsRepo.FindLatestUnattachedDebit(ctx, customerID)
		if err != nil {
			return err
		}
		if debit == nil {
			return nil
		}
		description := fmt.Sprintf("Points redeemed for order #%d", orderID)
		return s.pointsRepo.AttachOrder(ctx, debit.ID, orderID, description)
	})
}

func (s *Service) GetHistory(ctx context.Context, customerID int) ([]domain.PointsTransaction, error) {
	history, err := s.pointsRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		zap.L().Error("failed to get points history", zap.Error(err))
		return nil, err
	}
	return history, nil
}

func (s *Service) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list exchange rates", zap.Error(err))
		return nil, err
	}
	return rates, nil
}

func (s *Service) UpsertRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal) (*domain.ExchangeRate, error) {
	if !rate.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if toCurrency == "" {
		toCurrency = s.baseCurrency
	}
	updated, err := s.rateRepo.Upsert(ctx, &domain.ExchangeRate{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         rate,
	})
	if err != nil {
		zap.L().Error("failed to upsert exchange rate", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func sumPoints(transactions []domain.PointsTransaction) decimal.Decimal {
	total := decimal.Decimal{}
	for _, tx := range transactions {
		total = total.Add(tx.Points)
	}
	return total
}
