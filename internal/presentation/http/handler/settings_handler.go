package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// SettingsHandler handles store profile HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the store profile
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, "Settings retrieved successfully", h.settingsService.GetSettings())
}

// UpdateSettings merges a partial profile update
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		StoreName   *string `json:"store_name"`
		Address     *string `json:"address"`
		Phone       *string `json:"phone"`
		ReceiptNote *string `json:"receipt_note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings := h.settingsService.UpdateSettings(&service.UpdateSettingsInput{
		StoreName:   req.StoreName,
		Address:     req.Address,
		Phone:       req.Phone,
		ReceiptNote: req.ReceiptNote,
	})
	response.OK(c, "Settings updated successfully", settings)
}
