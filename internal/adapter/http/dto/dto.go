package dto

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
// The API key is returned only here.
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	APIKey string `json:"api_key"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	UserID int64  `json:"user_id"`
	APIKey string `json:"api_key"`
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ProfileResponse is the response for the dashboard profile route.
type ProfileResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// AmountRequest is the request body for deposits and withdrawals.
// The amount is in USD.
type AmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// TransferRequest is the request body for wallet-to-wallet transfers.
// The amount is in BTC.
type TransferRequest struct {
	FromAddress string  `json:"from_address" binding:"required"`
	ToAddress   string  `json:"to_address" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

// WalletResponse is the response body for wallet creation and listing.
type WalletResponse struct {
	Address   string `json:"address"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

// BalanceResponse is the response for a wallet balance query.
type BalanceResponse struct {
	Address    string `json:"address"`
	BalanceBTC string `json:"balance_btc"`
	BalanceUSD string `json:"balance_usd"`
}

// TransactionResponse is the response body for one logged transaction.
type TransactionResponse struct {
	ID          string `json:"id"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Amount      string `json:"amount"`
	Fee         string `json:"fee"`
	CreatedAt   string `json:"created_at"`
}

// OperationResponse is the response body for mutating ledger
// operations. Rejected operations come back with Applied=false and a
// reason instead of an error status.
type OperationResponse struct {
	Applied     bool                 `json:"applied"`
	Reason      string               `json:"reason,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// TransactionListResponse wraps a wallet's transaction history.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Total int                   `json:"total"`
}

// StatisticsResponse is the response for platform statistics.
type StatisticsResponse struct {
	ProfitBTC         string `json:"profit_btc"`
	ProfitUSD         string `json:"profit_usd"`
	TotalTransactions int64  `json:"total_transactions"`
}
