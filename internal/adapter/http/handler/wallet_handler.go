package handler

import (
	"time"

	"bitcoin-wallet/internal/adapter/http/dto"
	"bitcoin-wallet/internal/adapter/http/middleware"
	"bitcoin-wallet/internal/core/domain"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/pkg/apperror"
	"bitcoin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	wallet, err := h.ledgerSvc.CreateWallet(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toWalletDTO(wallet))
}

// Get handles GET /api/v1/wallets/:address.
func (h *WalletHandler) Get(c *gin.Context) {
	balance, err := h.ledgerSvc.GetWallet(c.Request.Context(), middleware.UserID(c), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{
		Address:    balance.Address,
		BalanceBTC: balance.BalanceBTC.String(),
		BalanceUSD: balance.BalanceUSD.String(),
	})
}

// Deposit handles POST /api/v1/wallets/:address/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.ledgerSvc.Deposit(c.Request.Context(),
		middleware.UserID(c), c.Param("address"), decimal.NewFromFloat(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOperationDTO(result))
}

// Withdraw handles POST /api/v1/wallets/:address/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.ledgerSvc.Withdraw(c.Request.Context(),
		middleware.UserID(c), c.Param("address"), decimal.NewFromFloat(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOperationDTO(result))
}

// Transactions handles GET /api/v1/wallets/:address/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	txns, err := h.ledgerSvc.WalletTransactions(c.Request.Context(),
		middleware.UserID(c), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionDTO(&txns[i]))
	}
	response.OK(c, dto.TransactionListResponse{Items: items, Total: len(items)})
}

// ListOwn handles GET /api/v1/dashboard/wallets (JWT-authenticated).
func (h *WalletHandler) ListOwn(c *gin.Context) {
	wallets, err := h.ledgerSvc.ListWallets(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, toWalletDTO(&wallets[i]))
	}
	response.OK(c, items)
}

func toWalletDTO(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		Address:   w.Address,
		Balance:   w.Balance.String(),
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTransactionDTO(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          t.ID.String(),
		FromAddress: t.FromAddress,
		ToAddress:   t.ToAddress,
		Amount:      t.Amount.String(),
		Fee:         t.Fee.String(),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toOperationDTO(r *ports.OperationResult) dto.OperationResponse {
	out := dto.OperationResponse{
		Applied: r.Applied,
		Reason:  string(r.Reason),
	}
	if r.Transaction != nil {
		txn := toTransactionDTO(r.Transaction)
		out.Transaction = &txn
	}
	return out
}
