package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// DashboardHandler handles overview HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetOverview returns the headline figures
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	response.OK(c, "Dashboard retrieved successfully", h.dashboardService.GetOverview())
}

// SalesSummary returns per-day revenue for the last n days
func (h *DashboardHandler) SalesSummary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	response.OK(c, "Sales summary retrieved successfully", h.dashboardService.SalesSummary(days))
}

// TopProducts ranks products by revenue over the last n days
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	response.OK(c, "Top products retrieved successfully", h.dashboardService.TopProducts(days, limit))
}
