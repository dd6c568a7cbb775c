package memory

import (
	"context"
	"sync"
	"time"

	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"

	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository with a mutex-guarded
// map keyed by address. Every mutation validates before applying, so
// a failed call leaves all balances untouched and none can go
// negative.
type WalletRepo struct {
	mu      sync.RWMutex
	wallets map[string]domain.Wallet
}

// NewWalletRepo creates an empty in-memory wallet repository.
func NewWalletRepo() *WalletRepo {
	return &WalletRepo{wallets: make(map[string]domain.Wallet)}
}

// Create stores a new wallet under its address.
func (r *WalletRepo) Create(ctx context.Context, wallet *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[wallet.Address] = *wallet
	return nil
}

// Get returns a copy of the wallet at address, or nil.
func (r *WalletRepo) Get(ctx context.Context, address string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[address]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// ListByOwner returns all wallets owned by ownerID.
func (r *WalletRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Wallet
	for _, w := range r.wallets {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

// Credit adds amount to the wallet's balance.
func (r *WalletRepo) Credit(ctx context.Context, address string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[address]
	if !ok {
		return ports.ErrNotFound
	}
	w.Balance = w.Balance.Add(amount)
	w.UpdatedAt = time.Now().UTC()
	r.wallets[address] = w
	return nil
}

// Debit subtracts amount, failing with ErrInsufficientFunds when the
// balance is too low.
func (r *WalletRepo) Debit(ctx context.Context, address string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[address]
	if !ok {
		return ports.ErrNotFound
	}
	if w.Balance.LessThan(amount) {
		return ports.ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	w.UpdatedAt = time.Now().UTC()
	r.wallets[address] = w
	return nil
}

// Move debits the from-wallet and credits the to-wallet under one
// lock acquisition; both sides apply or neither does.
func (r *WalletRepo) Move(ctx context.Context, fromAddress, toAddress string, debit, credit decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, ok := r.wallets[fromAddress]
	if !ok {
		return ports.ErrNotFound
	}
	to, ok := r.wallets[toAddress]
	if !ok {
		return ports.ErrNotFound
	}
	if from.Balance.LessThan(debit) {
		return ports.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	from.Balance = from.Balance.Sub(debit)
	from.UpdatedAt = now
	to.Balance = to.Balance.Add(credit)
	to.UpdatedAt = now
	r.wallets[fromAddress] = from
	r.wallets[toAddress] = to
	return nil
}
