package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "loyaltypoints/docs"
	customershandlers "loyaltypoints/internal/handlers/customers"
	ordershandlers "loyaltypoints/internal/handlers/orders"
	pointshandlers "loyaltypoints/internal/handlers/points"
	rateshandlers "loyaltypoints/internal/handlers/rates"
	"loyaltypoints/internal/service"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type CustomerHandler interface {
	CreateCustomer(w http.ResponseWriter, r *http.Request)
	GetCustomer(w http.ResponseWriter, r *http.Request)
	ListCustomers(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	AddOrder(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type PointsHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type RateHandler interface {
	GetRates(w http.ResponseWriter, r *http.Request)
	UpsertRate(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	CustomerHandler CustomerHandler
	OrderHandler    OrderHandler
	PointsHandler   PointsHandler
	RateHandler     RateHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		CustomerHandler: customershandlers.New(s.CustomerService),
		OrderHandler:    ordershandlers.New(s.OrderService),
		PointsHandler:   pointshandlers.New(s.LedgerService, s.CustomerService),
		RateHandler:     rateshandlers.New(s.RateService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.CustomerHandler.CreateCustomer)
			r.Get("/", h.CustomerHandler.ListCustomers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.CustomerHandler.GetCustomer)
				r.Get("/points", h.PointsHandler.GetBalance)
				r.Get("/points/history", h.PointsHandler.GetHistory)
			})
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.OrderHandler.AddOrder)
			r.Get("/", h.OrderHandler.GetOrders)
			r.Get("/{id}", h.OrderHandler.GetOrder)
			r.Patch("/{id}/status", h.OrderHandler.UpdateStatus)
		})
		r.Route("/exchange-rates", func(r chi.Router) {
			r.Get("/", h.RateHandler.GetRates)
			r.Put("/", h.RateHandler.UpsertRate)
		})
	})

	return r
}
