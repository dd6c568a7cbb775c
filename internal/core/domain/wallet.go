package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a BTC balance on behalf of its owner. The address and
// owner are immutable; only the balance changes, and it never goes
// below zero.
type Wallet struct {
	Address   string          `json:"address"`
	OwnerID   int64           `json:"owner_id"`
	Balance   decimal.Decimal `json:"balance"` // BTC
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OwnedBy reports whether the wallet belongs to the given user.
func (w *Wallet) OwnedBy(userID int64) bool {
	return w.OwnerID == userID
}
