package pointsrepo

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

func (r *Repository) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) (*domain.PointsTransaction, error) {
	query := `
		INSERT INTO reward_points (customer_id, order_id, points, transaction_type, expiry_date, is_expired, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.CustomerID, tx.OrderID, tx.Points, tx.Type, tx.ExpiryDate, tx.IsExpired, tx.Description).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save points transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

// FindActiveCredits returns credit transactions still counting toward the
// balance as of the given date. The expiry boundary is inclusive.
func (r *Repository) FindActiveCredits(ctx context.Context, customerID int, asOf time.Time) ([]domain.PointsTransaction, error) {
	query := `
        SELECT id, customer_id, order_id, points, transaction_type, expiry_date, is_expired, description, created_at
        FROM reward_points
        WHERE customer_id = $1 AND transaction_type = $2 AND is_expired = FALSE AND expiry_date >= $3
    `
	rows, err := r.db.Query(ctx, query, customerID, domain.CreditTransaction, asOf)
	if err != nil {
		zap.L().Error("can't get credit transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *Repository) FindDebits(ctx context.Context, customerID int) ([]domain.PointsTransaction, error) {
	query := `
        SELECT id, customer_id, order_id, points, transaction_type, expiry_date, is_expired, description, created_at
        FROM reward_points
        WHERE customer_id = $1 AND transaction_type = $2
    `
	rows, err := r.db.Query(ctx, query, customerID, domain.DebitTransaction)
	if err != nil {
		zap.L().Error("can't get debit transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *Repository) FindLatestUnattachedDebit(ctx context.Context, customerID int) (*domain.PointsTransaction, error) {
	query := `
        SELECT id, customer_id, order_id, points, transaction_type, expiry_date, is_expired, description, created_at
        FROM reward_points
        WHERE customer_id = $1 AND transaction_type = $2 AND order_id IS NULL
        ORDER BY created_at DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, customerID, domain.DebitTransaction)

	var tx domain.PointsTransaction
	err := row.Scan(&tx.ID, &tx.CustomerID, &tx.OrderID, &tx.Points, &tx.Type, &tx.ExpiryDate, &tx.IsExpired, &tx.Description, &tx.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find unattached debit", zap.Error(err))
		return nil, err
	}
	return &tx, nil
}

// AttachOrder late-binds a debit to its order. The order reference and the
// description of a transaction are rewritten exactly once.
func (r *Repository) AttachOrder(ctx context.Context, transactionID int, orderID int, description string) error {
	query := `
        UPDATE reward_points
        SET order_id = $1, description = $2
        WHERE id = $3 AND order_id IS NULL
    `
	_, err := r.db.Exec(ctx, query, orderID, description, transactionID)
	if err != nil {
		zap.L().Error("can't attach order to debit", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByCustomerID(ctx context.Context, customerID int) ([]domain.PointsTransaction, error) {
	query := `
        SELECT id, customer_id, order_id, points, transaction_type, expiry_date, is_expired, description, created_at
        FROM reward_points
        WHERE customer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		zap.L().Error("can't get points history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// LockCustomer serializes ledger writes for one customer within the current
// transaction. Released automatically at commit or rollback.
func (r *Repository) LockCustomer(ctx context.Context, customerID int) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, customerID)
	if err != nil {
		zap.L().Error("can't lock customer ledger", zap.Error(err))
		return err
	}
	return nil
}

func scanTransactions(rows pgx.Rows) ([]domain.PointsTransaction, error) {
	var transactions []domain.PointsTransaction
	for rows.Next() {
		var tx domain.PointsTransaction
		err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.OrderID, &tx.Points, &tx.Type, &tx.ExpiryDate, &tx.IsExpired, &tx.Description, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan points transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
