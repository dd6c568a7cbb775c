package ports

import (
	"context"
	"errors"

	"bitcoin-wallet/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared by all storage backends. Repositories return
// (nil, nil) for lookups that find nothing; these errors are for
// mutations that cannot be applied.
var (
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientFunds means a debit would drive a balance negative.
	// The backend guarantees the balance is untouched in that case.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// UserRepository persists users. Create assigns the sequential
// numeric id on the passed user.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// WalletRepository persists wallets keyed by address. All balance
// mutations are atomic with respect to a single call and reject any
// change that would leave a balance negative.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	Get(ctx context.Context, address string) (*domain.Wallet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Wallet, error)
	// Credit adds amount to the wallet's balance.
	Credit(ctx context.Context, address string, amount decimal.Decimal) error
	// Debit subtracts amount; fails with ErrInsufficientFunds if the
	// balance is too low, leaving it unchanged.
	Debit(ctx context.Context, address string, amount decimal.Decimal) error
	// Move debits the from-wallet and credits the to-wallet as one
	// atomic unit; both sides apply or neither does.
	Move(ctx context.Context, fromAddress, toAddress string, debit, credit decimal.Decimal) error
}

// TransactionRepository is the append-only transaction log.
type TransactionRepository interface {
	Append(ctx context.Context, txn *domain.Transaction) error
	// ListByWallet returns transactions touching the address in
	// insertion order.
	ListByWallet(ctx context.Context, address string) ([]domain.Transaction, error)
	// ListAll returns the full log in insertion order.
	ListAll(ctx context.Context) ([]domain.Transaction, error)
}
