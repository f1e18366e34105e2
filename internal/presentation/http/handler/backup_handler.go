package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/application/service"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
)

// maxBackupSize bounds import payloads (8 MiB)
const maxBackupSize = 8 << 20

// BackupHandler handles export/import/wipe HTTP requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export returns the full dataset as a backup document
func (h *BackupHandler) Export(c *gin.Context) {
	backup := h.backupService.Export()
	c.Header("Content-Disposition", `attachment; filename="bigasan-backup.json"`)
	c.JSON(200, backup)
}

// Import restores the dataset from an uploaded backup document
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
	if err != nil {
		response.BadRequest(c, "Could not read request body")
		return
	}

	if err := h.backupService.Import(c.Request.Context(), raw); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup imported successfully", nil)
}

// Clear wipes every collection. The confirm flag guards against accidental
// calls.
func (h *BackupHandler) Clear(c *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		response.BadRequest(c, "Set confirm to true to clear all data")
		return
	}

	if err := h.backupService.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "All data cleared", nil)
}
