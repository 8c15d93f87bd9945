package orderservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loyaltypoints/internal/domain"
	"loyaltypoints/internal/pg"
	"loyaltypoints/internal/service/ledgerservice"
)

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice

type Repo interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID int) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string, deliveredAt *time.Time) error
}

type CustomerRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Customer, error)
}

// Ledger is the points engine the order workflow calls into: redeeming on
// order creation, crediting on delivery, late-binding a debit to its order.
type Ledger interface {
	Credit(ctx context.Context, customerID, orderID int, amount decimal.Decimal, currency string) (*domain.PointsTransaction, error)
	Debit(ctx context.Context, customerID int, pointsToUse decimal.Decimal, orderID *int) (decimal.Decimal, *domain.PointsTransaction, error)
	AttachOrder(ctx context.Context, customerID, orderID int) error
}

type Service struct {
	repo         Repo
	customerRepo CustomerRepo
	ledger       Ledger
	txManager    pg.TXManager
}

func New(repo Repo, customerRepo CustomerRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		repo:         repo,
		customerRepo: customerRepo,
		ledger:       ledger,
		txManager:    txManager,
	}
}

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUnknownStatus    = errors.New("unknown order status")
)

// CreateOrder creates an order, optionally paying part of it with points.
// The redeem-create-attach sequence commits as one unit: the debit happens
// before the order row exists, so the debit is written order-less and bound
// to the new order afterwards.
func (s *Service) CreateOrder(ctx context.Context, customerID int, totalAmount decimal.Decimal, currency string, pointsToUse decimal.Decimal) (*domain.Order, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	if !totalAmount.IsPositive() || pointsToUse.IsNegative() {
		return nil, ledgerservice.ErrInvalidAmount
	}

	order := &domain.Order{
		CustomerID:  customerID,
		OrderNumber: generateOrderNumber(),
		TotalAmount: totalAmount,
		Currency:    strings.ToUpper(currency),
		Status:      domain.ActiveOrderStatus,
	}

	if !pointsToUse.IsPositive() {
		if err := s.repo.Save(ctx, order); err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return nil, err
		}
		return order, nil
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		discount, _, err := s.ledger.Debit(ctx, customerID, pointsToUse, nil)
		if err != nil {
			return err
		}
		order.TotalAmount = totalAmount.Sub(discount)

		if err := s.repo.Save(ctx, order); err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		return s.ledger.AttachOrder(ctx, customerID, order.ID)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created with points discount",
		zap.String("order_number", order.OrderNumber),
		zap.String("points_used", pointsToUse.String()))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, customerID *int) ([]domain.Order, error) {
	var orders []domain.Order
	var err error
	if customerID != nil {
		orders, err = s.repo.FindByCustomerID(ctx, *customerID)
	} else {
		orders, err = s.repo.List(ctx)
	}
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// UpdateStatus transitions an order. Points are credited exactly on the
// transition into Delivered from a non-Delivered state; an order that is
// already Delivered is not credited again.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error) {
	if status != domain.ActiveOrderStatus && status != domain.DeliveredOrderStatus {
		return nil, ErrUnknownStatus
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if status == domain.DeliveredOrderStatus && order.Status != domain.DeliveredOrderStatus {
		deliveredAt := time.Now()
		err = s.txManager.Begin(ctx, func(ctx context.Context) error {
			if err := s.repo.UpdateStatus(ctx, orderID, status, &deliveredAt); err != nil {
				return err
			}
			_, err := s.ledger.Credit(ctx, order.CustomerID, orderID, order.TotalAmount, order.Currency)
			return err
		})
		if err != nil {
			return nil, err
		}
		order.Status = status
		order.DeliveredAt = &deliveredAt

		zap.L().Info("order delivered, points credited",
			zap.String("order_number", order.OrderNumber),
			zap.Int("customer_id", order.CustomerID))
		return order, nil
	}

	if status != order.Status {
		if err := s.repo.UpdateStatus(ctx, orderID, status, order.DeliveredAt); err != nil {
			return nil, err
		}
		order.Status = status
	}
	return order, nil
}

func generateOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:10]
}
