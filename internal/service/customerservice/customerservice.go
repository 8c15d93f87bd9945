package customerservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"loyaltypoints/internal/domain"
)

//go:generate mockgen -source=customerservice.go -destination=mock_customerservice.go -package=customerservice

type Repo interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id int) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var ErrEmailAlreadyRegistered = errors.New("email already registered")

func (s *Service) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find customer by email", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("customer already exists", zap.String("email", email))
		return nil, ErrEmailAlreadyRegistered
	}

	customer := &domain.Customer{
		Name:  name,
		Email: email,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		zap.L().Error("can't create customer", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) GetCustomer(ctx context.Context, id int) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get customer", zap.Error(err))
		return nil, err
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to list customers", zap.Error(err))
		return nil, err
	}
	return customers, nil
}
