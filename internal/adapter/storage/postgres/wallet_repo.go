package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository backed by PostgreSQL.
// Debits run as conditional updates so a balance can never go negative
// even under concurrent writers.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a PostgreSQL wallet repository.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet.
func (r *WalletRepo) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (address, owner_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		wallet.Address, wallet.OwnerID, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting wallet: %w", err)
	}
	return nil
}

// Get returns the wallet at address, or nil.
func (r *WalletRepo) Get(ctx context.Context, address string) (*domain.Wallet, error) {
	query := `
		SELECT address, owner_id, balance, created_at, updated_at
		FROM wallets WHERE address = $1`

	var w domain.Wallet
	err := r.pool.QueryRow(ctx, query, address).
		Scan(&w.Address, &w.OwnerID, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning wallet: %w", err)
	}
	return &w, nil
}

// ListByOwner returns all wallets owned by ownerID, oldest first.
func (r *WalletRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Wallet, error) {
	query := `
		SELECT address, owner_id, balance, created_at, updated_at
		FROM wallets WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.Address, &w.OwnerID, &w.Balance, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// Credit adds amount to the wallet's balance.
func (r *WalletRepo) Credit(ctx context.Context, address string, amount decimal.Decimal) error {
	query := `
		UPDATE wallets SET balance = balance + $1, updated_at = $2
		WHERE address = $3`

	tag, err := r.pool.Exec(ctx, query, amount, time.Now().UTC(), address)
	if err != nil {
		return fmt.Errorf("crediting wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Debit subtracts amount only when the balance covers it, failing with
// ErrInsufficientFunds otherwise.
func (r *WalletRepo) Debit(ctx context.Context, address string, amount decimal.Decimal) error {
	query := `
		UPDATE wallets SET balance = balance - $1, updated_at = $2
		WHERE address = $3 AND balance >= $1`

	tag, err := r.pool.Exec(ctx, query, amount, time.Now().UTC(), address)
	if err != nil {
		return fmt.Errorf("debiting wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		w, err := r.Get(ctx, address)
		if err != nil {
			return err
		}
		if w == nil {
			return ports.ErrNotFound
		}
		return ports.ErrInsufficientFunds
	}
	return nil
}

// Move debits the from-wallet and credits the to-wallet in one
// transaction. Rows are locked in address order so two concurrent
// moves over the same pair cannot deadlock.
func (r *WalletRepo) Move(ctx context.Context, fromAddress, toAddress string, debit, credit decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockQuery := `
		SELECT address FROM wallets WHERE address = ANY($1)
		ORDER BY address FOR UPDATE`

	rows, err := tx.Query(ctx, lockQuery, []string{fromAddress, toAddress})
	if err != nil {
		return fmt.Errorf("locking wallets: %w", err)
	}
	locked := 0
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			rows.Close()
			return fmt.Errorf("scanning locked wallet: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("locking wallets: %w", err)
	}
	if locked != 2 {
		return ports.ErrNotFound
	}

	now := time.Now().UTC()

	debitQuery := `
		UPDATE wallets SET balance = balance - $1, updated_at = $2
		WHERE address = $3 AND balance >= $1`
	tag, err := tx.Exec(ctx, debitQuery, debit, now, fromAddress)
	if err != nil {
		return fmt.Errorf("debiting wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrInsufficientFunds
	}

	creditQuery := `
		UPDATE wallets SET balance = balance + $1, updated_at = $2
		WHERE address = $3`
	if _, err := tx.Exec(ctx, creditQuery, credit, now, toAddress); err != nil {
		return fmt.Errorf("crediting wallet: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
