package handler

import (
	"subscription-billing/internal/adapter/http/dto"
	"subscription-billing/internal/core/ports"
	"subscription-billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves billing statistics.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/dashboard/stats?period=day|week|month|all.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")

	stats, err := h.reportingSvc.GetBillingStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToStatsResponse(period, stats))
}
