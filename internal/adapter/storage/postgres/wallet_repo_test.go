package postgres

import (
	"context"
	"testing"
	"time"

	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletColumns() []string {
	return []string{"address", "owner_id", "balance", "created_at", "updated_at"}
}

func newTestWallet(address string, ownerID int64) *domain.Wallet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Wallet{
		Address:   address,
		OwnerID:   ownerID,
		Balance:   decimal.NewFromInt(5),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("addr1", 1)

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.Address, w.OwnerID, w.Balance, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("addr1", 1)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE address").
		WithArgs(w.Address).
		WillReturnRows(pgxmock.NewRows(walletColumns()).
			AddRow(w.Address, w.OwnerID, w.Balance, w.CreatedAt, w.UpdatedAt))

	result, err := repo.Get(context.Background(), w.Address)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.Address, result.Address)
	assert.True(t, result.Balance.Equal(w.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE address").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	result, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	amount := decimal.NewFromInt(3)

	mock.ExpectExec("UPDATE wallets SET balance = balance -").
		WithArgs(amount, pgxmock.AnyArg(), "addr1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Debit(context.Background(), "addr1", amount)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_InsufficientFunds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet("addr1", 1)
	amount := decimal.NewFromInt(100)

	// Conditional update touches nothing, wallet exists.
	mock.ExpectExec("UPDATE wallets SET balance = balance -").
		WithArgs(amount, pgxmock.AnyArg(), "addr1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE address").
		WithArgs("addr1").
		WillReturnRows(pgxmock.NewRows(walletColumns()).
			AddRow(w.Address, w.OwnerID, w.Balance, w.CreatedAt, w.UpdatedAt))

	err = repo.Debit(context.Background(), "addr1", amount)
	assert.ErrorIs(t, err, ports.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Debit_UnknownWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	amount := decimal.NewFromInt(1)

	mock.ExpectExec("UPDATE wallets SET balance = balance -").
		WithArgs(amount, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE address").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	err = repo.Debit(context.Background(), "missing", amount)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Move_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	debit := decimal.NewFromInt(10)
	credit := decimal.RequireFromString("9.95")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT address FROM wallets WHERE address = ANY.+FOR UPDATE").
		WithArgs([]string{"addr1", "addr2"}).
		WillReturnRows(pgxmock.NewRows([]string{"address"}).AddRow("addr1").AddRow("addr2"))
	mock.ExpectExec("UPDATE wallets SET balance = balance -").
		WithArgs(debit, pgxmock.AnyArg(), "addr1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE wallets SET balance = balance \+`).
		WithArgs(credit, pgxmock.AnyArg(), "addr2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = repo.Move(context.Background(), "addr1", "addr2", debit, credit)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Move_InsufficientFundsRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	debit := decimal.NewFromInt(10)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT address FROM wallets WHERE address = ANY.+FOR UPDATE").
		WithArgs([]string{"addr1", "addr2"}).
		WillReturnRows(pgxmock.NewRows([]string{"address"}).AddRow("addr1").AddRow("addr2"))
	mock.ExpectExec("UPDATE wallets SET balance = balance -").
		WithArgs(debit, pgxmock.AnyArg(), "addr1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.Move(context.Background(), "addr1", "addr2", debit, debit)
	assert.ErrorIs(t, err, ports.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Move_MissingWalletRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	debit := decimal.NewFromInt(1)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT address FROM wallets WHERE address = ANY.+FOR UPDATE").
		WithArgs([]string{"addr1", "missing"}).
		WillReturnRows(pgxmock.NewRows([]string{"address"}).AddRow("addr1"))
	mock.ExpectRollback()

	err = repo.Move(context.Background(), "addr1", "missing", debit, debit)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
