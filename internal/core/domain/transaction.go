package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel addresses for value entering or leaving the platform.
// They are never valid wallet addresses.
const (
	DepositSource = "DEPOSIT"
	WithdrawSink  = "WITHDRAW"
)

// TransferClass classifies a movement for fee selection.
type TransferClass string

const (
	TransferClassDeposit        TransferClass = "DEPOSIT"
	TransferClassWithdraw       TransferClass = "WITHDRAW"
	TransferClassSameOwner      TransferClass = "SAME_OWNER"
	TransferClassDifferentOwner TransferClass = "DIFFERENT_OWNER"
)

// ClassifyTransfer returns the fee class for a wallet-to-wallet
// transfer based on the two owners.
func ClassifyTransfer(fromOwner, toOwner int64) TransferClass {
	if fromOwner == toOwner {
		return TransferClassSameOwner
	}
	return TransferClassDifferentOwner
}

// Transaction is an immutable ledger entry. Amount is the value moved
// exclusive of fee; both are denominated in BTC. A transaction exists
// if and only if the balance mutation it records succeeded.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Amount      decimal.Decimal `json:"amount"` // BTC, exclusive of fee
	Fee         decimal.Decimal `json:"fee"`    // BTC
	CreatedAt   time.Time       `json:"created_at"`
}

// IsDeposit reports whether value entered from outside the platform.
func (t *Transaction) IsDeposit() bool {
	return t.FromAddress == DepositSource
}

// IsWithdrawal reports whether value left the platform.
func (t *Transaction) IsWithdrawal() bool {
	return t.ToAddress == WithdrawSink
}

// Touches reports whether the transaction involves the given wallet
// address on either side.
func (t *Transaction) Touches(address string) bool {
	return t.FromAddress == address || t.ToAddress == address
}
