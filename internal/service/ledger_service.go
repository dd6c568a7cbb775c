package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService. Every mutating
// operation holds the affected wallet locks from validation through
// the transaction append, so balances and the log always agree.
type LedgerServiceImpl struct {
	authSvc    ports.AuthService
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	fees       ports.FeeStrategy
	converter  ports.CurrencyConverter
	keyGen     ports.KeyGenerator
	locks      *addressLocks
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	authSvc ports.AuthService,
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	fees ports.FeeStrategy,
	converter ports.CurrencyConverter,
	keyGen ports.KeyGenerator,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		authSvc:    authSvc,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		fees:       fees,
		converter:  converter,
		keyGen:     keyGen,
		locks:      newAddressLocks(),
		log:        log,
	}
}

// CreateWallet creates an empty wallet owned by ownerID.
func (s *LedgerServiceImpl) CreateWallet(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	address, err := s.keyGen.NewAddress()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate address: %w", err))
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		Address:   address,
		OwnerID:   ownerID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("address", address).
		Int64("owner_id", ownerID).
		Msg("wallet created")

	return wallet, nil
}

// GetWallet returns the wallet's balance in both units, owner-gated.
func (s *LedgerServiceImpl) GetWallet(ctx context.Context, callerID int64, address string) (*ports.WalletBalance, error) {
	wallet, err := s.authSvc.AuthorizeWalletAccess(ctx, callerID, address)
	if err != nil {
		return nil, err
	}
	return &ports.WalletBalance{
		Address:    wallet.Address,
		BalanceBTC: wallet.Balance,
		BalanceUSD: s.converter.ToUSD(wallet.Balance),
	}, nil
}

// ListWallets returns all wallets owned by ownerID.
func (s *LedgerServiceImpl) ListWallets(ctx context.Context, ownerID int64) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// Deposit credits the wallet with the full BTC equivalent of
// amountUSD. The deposit fee accrues to statistics only; it does not
// reduce the credited amount.
func (s *LedgerServiceImpl) Deposit(ctx context.Context, callerID int64, address string, amountUSD decimal.Decimal) (*ports.OperationResult, error) {
	if amountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidAmount()
	}
	if _, err := s.authSvc.AuthorizeWalletAccess(ctx, callerID, address); err != nil {
		return nil, err
	}

	amountBTC := s.converter.ToBTC(amountUSD)
	fee := amountBTC.Mul(s.fees.RateFor(domain.TransferClassDeposit))

	unlock := s.locks.Lock(address)
	defer unlock()

	if err := s.walletRepo.Credit(ctx, address, amountBTC); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit wallet: %w", err))
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		FromAddress: domain.DepositSource,
		ToAddress:   address,
		Amount:      amountBTC,
		Fee:         fee,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.txRepo.Append(ctx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	s.log.Info().
		Str("address", address).
		Str("amount_btc", amountBTC.String()).
		Str("fee_btc", fee.String()).
		Msg("deposit applied")

	return &ports.OperationResult{Applied: true, Transaction: txn}, nil
}

// Withdraw debits the BTC equivalent of amountUSD. Insufficient funds
// is a silent no-op: nothing is debited, nothing is logged.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, callerID int64, address string, amountUSD decimal.Decimal) (*ports.OperationResult, error) {
	if amountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidAmount()
	}
	if _, err := s.authSvc.AuthorizeWalletAccess(ctx, callerID, address); err != nil {
		return nil, err
	}

	amountBTC := s.converter.ToBTC(amountUSD)
	fee := amountBTC.Mul(s.fees.RateFor(domain.TransferClassWithdraw))

	unlock := s.locks.Lock(address)
	defer unlock()

	if err := s.walletRepo.Debit(ctx, address, amountBTC); err != nil {
		if errors.Is(err, ports.ErrInsufficientFunds) {
			s.log.Debug().Str("address", address).Msg("withdraw rejected: insufficient funds")
			return &ports.OperationResult{Applied: false, Reason: ports.RejectInsufficientFunds}, nil
		}
		return nil, apperror.InternalError(fmt.Errorf("debit wallet: %w", err))
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		FromAddress: address,
		ToAddress:   domain.WithdrawSink,
		Amount:      amountBTC,
		Fee:         fee,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.txRepo.Append(ctx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	s.log.Info().
		Str("address", address).
		Str("amount_btc", amountBTC.String()).
		Str("fee_btc", fee.String()).
		Msg("withdraw applied")

	return &ports.OperationResult{Applied: true, Transaction: txn}, nil
}

// Transfer moves amountBTC from one wallet to another. The fee comes
// out of the moved amount: the sender loses exactly amountBTC and the
// receiver gains amountBTC minus the fee. Self-transfers and
// insufficient funds are silent no-ops with no fee accrual.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, callerID int64, fromAddress, toAddress string, amountBTC decimal.Decimal) (*ports.OperationResult, error) {
	if amountBTC.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidAmount()
	}

	fromWallet, err := s.authSvc.AuthorizeWalletAccess(ctx, callerID, fromAddress)
	if err != nil {
		return nil, err
	}

	if fromAddress == toAddress {
		s.log.Debug().Str("address", fromAddress).Msg("transfer rejected: self transfer")
		return &ports.OperationResult{Applied: false, Reason: ports.RejectSelfTransfer}, nil
	}

	toWallet, err := s.walletRepo.Get(ctx, toAddress)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get destination wallet: %w", err))
	}
	if toWallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	class := domain.ClassifyTransfer(fromWallet.OwnerID, toWallet.OwnerID)
	fee := amountBTC.Mul(s.fees.RateFor(class))

	unlock := s.locks.Lock(fromAddress, toAddress)
	defer unlock()

	if err := s.walletRepo.Move(ctx, fromAddress, toAddress, amountBTC, amountBTC.Sub(fee)); err != nil {
		if errors.Is(err, ports.ErrInsufficientFunds) {
			s.log.Debug().
				Str("from", fromAddress).
				Str("to", toAddress).
				Msg("transfer rejected: insufficient funds")
			return &ports.OperationResult{Applied: false, Reason: ports.RejectInsufficientFunds}, nil
		}
		return nil, apperror.InternalError(fmt.Errorf("move funds: %w", err))
	}

	txn := &domain.Transaction{
		ID:          uuid.New(),
		FromAddress: fromAddress,
		ToAddress:   toAddress,
		Amount:      amountBTC,
		Fee:         fee,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.txRepo.Append(ctx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	s.log.Info().
		Str("from", fromAddress).
		Str("to", toAddress).
		Str("amount_btc", amountBTC.String()).
		Str("fee_btc", fee.String()).
		Str("class", string(class)).
		Msg("transfer applied")

	return &ports.OperationResult{Applied: true, Transaction: txn}, nil
}

// WalletTransactions returns the owner-gated transaction history of a
// wallet in insertion order.
func (s *LedgerServiceImpl) WalletTransactions(ctx context.Context, callerID int64, address string) ([]domain.Transaction, error) {
	if _, err := s.authSvc.AuthorizeWalletAccess(ctx, callerID, address); err != nil {
		return nil, err
	}

	unlock := s.locks.RLock(address)
	defer unlock()

	txns, err := s.txRepo.ListByWallet(ctx, address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}
