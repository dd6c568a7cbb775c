package memory

import (
	"context"
	"sync"

	"bitcoin-wallet/internal/core/domain"
)

// TransactionRepo implements ports.TransactionRepository as an
// append-only slice, preserving insertion order.
type TransactionRepo struct {
	mu   sync.RWMutex
	txns []domain.Transaction
}

// NewTransactionRepo creates an empty in-memory transaction log.
func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{}
}

// Append adds a transaction to the end of the log.
func (r *TransactionRepo) Append(ctx context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns = append(r.txns, *txn)
	return nil
}

// ListByWallet returns transactions touching the address in insertion
// order.
func (r *TransactionRepo) ListByWallet(ctx context.Context, address string) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transaction
	for i := range r.txns {
		if r.txns[i].Touches(address) {
			out = append(out, r.txns[i])
		}
	}
	return out, nil
}

// ListAll returns the full log in insertion order.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, len(r.txns))
	copy(out, r.txns)
	return out, nil
}
