package repo

import (
	"loyaltypoints/internal/pg"
	customerrepo "loyaltypoints/internal/repo/customer-repo"
	orderrepo "loyaltypoints/internal/repo/order-repo"
	pointsrepo "loyaltypoints/internal/repo/points-repo"
	raterepo "loyaltypoints/internal/repo/rate-repo"
	"loyaltypoints/internal/service/customerservice"
	"loyaltypoints/internal/service/ledgerservice"
	"loyaltypoints/internal/service/orderservice"
)

type Repositories struct {
	CustomerRepo customerservice.Repo
	OrderRepo    orderservice.Repo
	PointsRepo   ledgerservice.PointsRepo
	RateRepo     ledgerservice.RateRepo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		CustomerRepo: customerrepo.New(conn),
		OrderRepo:    orderrepo.New(conn),
		PointsRepo:   pointsrepo.New(conn),
		RateRepo:     raterepo.New(conn),
	}
}
