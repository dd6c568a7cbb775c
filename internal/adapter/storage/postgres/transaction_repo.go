package postgres

import (
	"context"
	"fmt"

	"bitcoin-wallet/internal/core/domain"
)

// TransactionRepo implements ports.TransactionRepository backed by
// PostgreSQL. The seq column preserves insertion order.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a PostgreSQL transaction repository.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append inserts a transaction at the end of the log.
func (r *TransactionRepo) Append(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, from_address, to_address, amount, fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		txn.ID, txn.FromAddress, txn.ToAddress, txn.Amount, txn.Fee, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// ListByWallet returns transactions touching the address in insertion
// order.
func (r *TransactionRepo) ListByWallet(ctx context.Context, address string) ([]domain.Transaction, error) {
	query := `
		SELECT id, from_address, to_address, amount, fee, created_at
		FROM transactions
		WHERE from_address = $1 OR to_address = $1
		ORDER BY seq`
	return r.list(ctx, query, address)
}

// ListAll returns the full log in insertion order.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT id, from_address, to_address, amount, fee, created_at
		FROM transactions ORDER BY seq`
	return r.list(ctx, query)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.FromAddress, &t.ToAddress, &t.Amount, &t.Fee, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
