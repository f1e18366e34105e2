package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/joshuadev/bigasan-pos/internal/presentation/http/dto/response"
	"github.com/joshuadev/bigasan-pos/internal/sync"
)

// SyncHandler exposes the cloud sync state
type SyncHandler struct {
	syncer *sync.Syncer
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncer *sync.Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// Status returns the current connectivity state
func (h *SyncHandler) Status(c *gin.Context) {
	response.OK(c, "Sync status retrieved successfully", gin.H{
		"status": h.syncer.Status(),
		"online": h.syncer.Online(),
	})
}

// PushAll mirrors the full local dataset to the remote
func (h *SyncHandler) PushAll(c *gin.Context) {
	if err := h.syncer.PushAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dataset pushed successfully", nil)
}
