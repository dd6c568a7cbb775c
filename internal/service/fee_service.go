package service

import (
	"bitcoin-wallet/config"
	"bitcoin-wallet/internal/core/domain"

	"github.com/shopspring/decimal"
)

// FeeRateStrategy implements ports.FeeStrategy with four fixed rates,
// one per transfer class.
type FeeRateStrategy struct {
	deposit        decimal.Decimal
	withdraw       decimal.Decimal
	sameOwner      decimal.Decimal
	differentOwner decimal.Decimal
}

// NewFeeRateStrategy creates a fee strategy from configuration.
// Config validation has already enforced rates in [0,1) and
// different_owner > same_owner.
func NewFeeRateStrategy(cfg config.FeesConfig) *FeeRateStrategy {
	return &FeeRateStrategy{
		deposit:        decimal.NewFromFloat(cfg.Deposit),
		withdraw:       decimal.NewFromFloat(cfg.Withdraw),
		sameOwner:      decimal.NewFromFloat(cfg.SameOwner),
		differentOwner: decimal.NewFromFloat(cfg.DifferentOwner),
	}
}

// RateFor returns the fee rate for the given transfer class.
func (s *FeeRateStrategy) RateFor(class domain.TransferClass) decimal.Decimal {
	switch class {
	case domain.TransferClassDeposit:
		return s.deposit
	case domain.TransferClassWithdraw:
		return s.withdraw
	case domain.TransferClassSameOwner:
		return s.sameOwner
	case domain.TransferClassDifferentOwner:
		return s.differentOwner
	default:
		return decimal.Zero
	}
}
