package service

import (
	"loyaltypoints/internal/config"
	"loyaltypoints/internal/handlers/customers"
	"loyaltypoints/internal/handlers/orders"
	"loyaltypoints/internal/handlers/points"
	"loyaltypoints/internal/handlers/rates"
	"loyaltypoints/internal/pg"
	"loyaltypoints/internal/repo"
	customerservice "loyaltypoints/internal/service/customerservice"
	ledgerservice "loyaltypoints/internal/service/ledgerservice"
	orderservice "loyaltypoints/internal/service/orderservice"
)

type Services struct {
	CustomerService customers.Service
	OrderService    orders.Service
	LedgerService   points.Service
	RateService     rates.Service
}

func New(repos *repo.Repositories, txManager pg.TXManager, cfg *config.Config) *Services {
	ledgerService := ledgerservice.New(repos.PointsRepo, repos.RateRepo, txManager, cfg.BaseCurrency, nil)
	customerService := customerservice.New(repos.CustomerRepo)
	orderService := orderservice.New(repos.OrderRepo, repos.CustomerRepo, ledgerService, txManager)

	return &Services{
		CustomerService: customerService,
		OrderService:    orderService,
		LedgerService:   ledgerService,
		RateService:     ledgerService,
	}
}
