package ports

import (
	"context"
	"time"

	"bitcoin-wallet/internal/core/domain"

	"github.com/shopspring/decimal"
)

// FeeStrategy returns the fee rate for a transfer class. Rates are
// fractional multipliers in [0, 1); there is no error path.
type FeeStrategy interface {
	RateFor(class domain.TransferClass) decimal.Decimal
}

// CurrencyConverter converts between the fiat pricing unit (USD) and
// the balance unit (BTC) at a fixed rate.
type CurrencyConverter interface {
	ToBTC(amountUSD decimal.Decimal) decimal.Decimal
	ToUSD(amountBTC decimal.Decimal) decimal.Decimal
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// KeyGenerator produces wallet addresses and API keys guaranteed
// unique within the process.
type KeyGenerator interface {
	NewAddress() (string, error)
	NewAPIKey() (string, error)
}

// TokenService handles JWT session tokens for the dashboard routes.
type TokenService interface {
	Generate(userID int64, apiKey string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID int64
	APIKey string
}

// --- Service ports (business logic) ---

// AuthService resolves credentials to users and owns registration.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	// Resolve maps an API key to its user, failing with a 403-mapped
	// error for unknown keys.
	Resolve(ctx context.Context, apiKey string) (*domain.User, error)
	// AuthorizeWalletAccess returns the wallet at address if it exists
	// (404 otherwise) and is owned by userID (403 otherwise).
	AuthorizeWalletAccess(ctx context.Context, userID int64, address string) (*domain.Wallet, error)
	// Profile returns the user behind an authenticated session.
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Username string
	Password string
}

// RegisterResponse holds the registration result. The API key is
// shown only here.
type RegisterResponse struct {
	UserID int64
	APIKey string
}

// LoginResponse holds the login result: the user's API key plus a
// short-lived session token for dashboard routes.
type LoginResponse struct {
	UserID    int64
	APIKey    string
	Token     string
	ExpiresAt time.Time
}

// RejectReason explains why a ledger operation was a no-op. Business
// rejections are not errors: the call succeeds with Applied=false.
type RejectReason string

const (
	RejectInsufficientFunds RejectReason = "INSUFFICIENT_FUNDS"
	RejectSelfTransfer      RejectReason = "SELF_TRANSFER"
)

// OperationResult is the outcome of a mutating ledger operation.
// When Applied is false no balance changed and nothing was logged;
// Reason says why. Transaction is set only when Applied is true.
type OperationResult struct {
	Applied     bool
	Reason      RejectReason
	Transaction *domain.Transaction
}

// WalletBalance is an owner-gated balance read with its USD valuation.
type WalletBalance struct {
	Address    string
	BalanceBTC decimal.Decimal
	BalanceUSD decimal.Decimal
}

// LedgerService is the transactional core. Callers are identified by
// their resolved user id (the HTTP layer resolves API keys first).
// Every mutating operation follows validate -> fee -> mutate -> append
// with no partial effects on failure.
type LedgerService interface {
	CreateWallet(ctx context.Context, ownerID int64) (*domain.Wallet, error)
	GetWallet(ctx context.Context, callerID int64, address string) (*WalletBalance, error)
	ListWallets(ctx context.Context, ownerID int64) ([]domain.Wallet, error)
	Deposit(ctx context.Context, callerID int64, address string, amountUSD decimal.Decimal) (*OperationResult, error)
	Withdraw(ctx context.Context, callerID int64, address string, amountUSD decimal.Decimal) (*OperationResult, error)
	Transfer(ctx context.Context, callerID int64, fromAddress, toAddress string, amountBTC decimal.Decimal) (*OperationResult, error)
	WalletTransactions(ctx context.Context, callerID int64, address string) ([]domain.Transaction, error)
}

// StatisticsService aggregates platform-wide totals. Compute requires
// the distinguished administrator key and performs no aggregation
// when it does not match.
type StatisticsService interface {
	Compute(ctx context.Context, adminAPIKey string) (*domain.Statistics, error)
}
