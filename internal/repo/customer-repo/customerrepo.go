package customerrepo

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

func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, customer.Name, customer.Email).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save customer", zap.Error(err))
		return nil, err
	}
	return customer, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Customer, error) {
	query := `
        SELECT id, name, email, created_at, updated_at
        FROM customers
        WHERE id = $1
    `
	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, id).
		Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find customer", zap.Error(err))
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
        SELECT id, name, email, created_at, updated_at
        FROM customers
        WHERE email = $1
    `
	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, email).
		Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find customer by email", zap.Error(err))
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `
        SELECT id, name, email, created_at, updated_at
        FROM customers
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get customers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan customer row", zap.Error(err))
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}
