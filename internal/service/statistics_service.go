package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/pkg/apperror"

	"github.com/shopspring/decimal"
)

// StatisticsServiceImpl implements ports.StatisticsService by scanning
// the full transaction log on every call. The log is the single source
// of truth, so no counters are cached.
type StatisticsServiceImpl struct {
	txRepo      ports.TransactionRepository
	converter   ports.CurrencyConverter
	adminAPIKey string
}

// NewStatisticsService creates a new StatisticsServiceImpl.
func NewStatisticsService(txRepo ports.TransactionRepository, converter ports.CurrencyConverter, adminAPIKey string) *StatisticsServiceImpl {
	return &StatisticsServiceImpl{
		txRepo:      txRepo,
		converter:   converter,
		adminAPIKey: adminAPIKey,
	}
}

// Compute aggregates platform profit and transaction count. The admin
// key check runs before any aggregation; regular user keys never pass.
func (s *StatisticsServiceImpl) Compute(ctx context.Context, adminAPIKey string) (*domain.Statistics, error) {
	if subtle.ConstantTimeCompare([]byte(adminAPIKey), []byte(s.adminAPIKey)) != 1 {
		return nil, apperror.ErrAdminOnly()
	}

	txns, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}

	profitBTC := decimal.Zero
	for i := range txns {
		profitBTC = profitBTC.Add(txns[i].Fee)
	}

	return &domain.Statistics{
		ProfitBTC:         profitBTC,
		ProfitUSD:         s.converter.ToUSD(profitBTC),
		TotalTransactions: int64(len(txns)),
	}, nil
}
