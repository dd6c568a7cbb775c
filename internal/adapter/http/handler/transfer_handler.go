package handler

import (
	"bitcoin-wallet/internal/adapter/http/dto"
	"bitcoin-wallet/internal/adapter/http/middleware"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/pkg/apperror"
	"bitcoin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransferHandler handles wallet-to-wallet transfers.
type TransferHandler struct {
	ledgerSvc ports.LedgerService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(ledgerSvc ports.LedgerService) *TransferHandler {
	return &TransferHandler{ledgerSvc: ledgerSvc}
}

// Transfer handles POST /api/v1/transfers.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.ledgerSvc.Transfer(c.Request.Context(),
		middleware.UserID(c), req.FromAddress, req.ToAddress, decimal.NewFromFloat(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toOperationDTO(result))
}
