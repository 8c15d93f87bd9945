package orderrepo

import (
	"context"
	"errors"
	"time"

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

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (customer_id, order_number, total_amount, currency, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, order.CustomerID, order.OrderNumber, order.TotalAmount, order.Currency, order.Status).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT id, customer_id, order_number, total_amount, currency, status, delivered_at, created_at
        FROM orders
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var order domain.Order
	err := row.Scan(&order.ID, &order.CustomerID, &order.OrderNumber, &order.TotalAmount, &order.Currency, &order.Status, &order.DeliveredAt, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindByCustomerID(ctx context.Context, customerID int) ([]domain.Order, error) {
	query := `
        SELECT id, customer_id, order_number, total_amount, currency, status, delivered_at, created_at
        FROM orders
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
        SELECT id, customer_id, order_number, total_amount, currency, status, delivered_at, created_at
        FROM orders
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID int, status string, deliveredAt *time.Time) error {
	query := `
        UPDATE orders
        SET status = $1, delivered_at = $2
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, status, deliveredAt, orderID)
	if err != nil {
		zap.L().Error("can't update order status", zap.Error(err))
		return err
	}
	return nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.CustomerID, &order.OrderNumber, &order.TotalAmount, &order.Currency, &order.Status, &order.DeliveredAt, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
