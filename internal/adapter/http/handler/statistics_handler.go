package handler

import (
	"bitcoin-wallet/internal/adapter/http/dto"
	"bitcoin-wallet/internal/adapter/http/middleware"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler handles the administrator statistics endpoint.
type StatisticsHandler struct {
	statsSvc ports.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statsSvc ports.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsSvc: statsSvc}
}

// Get handles GET /api/v1/statistics. The caller's API key is checked
// against the administrator key by the service, so this route sits
// outside the user auth group.
func (h *StatisticsHandler) Get(c *gin.Context) {
	stats, err := h.statsSvc.Compute(c.Request.Context(), c.GetHeader(middleware.HeaderAPIKey))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatisticsResponse{
		ProfitBTC:         stats.ProfitBTC.String(),
		ProfitUSD:         stats.ProfitUSD.String(),
		TotalTransactions: stats.TotalTransactions,
	})
}
