package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/service/status"
)

// StatusService is the slice of the status service the HTTP layer depends
// on.
type StatusService interface {
	PendingEstimates(ctx context.Context) ([]status.PendingBatch, error)
}

// StatusHandler exposes workflow status over HTTP.
type StatusHandler struct {
	svc    StatusService
	logger *zap.Logger
}

// NewStatusHandler constructs the HTTP handler adapter.
func NewStatusHandler(svc StatusService, logger *zap.Logger) *StatusHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusHandler{svc: svc, logger: logger}
}

// PendingEstimates lists MR batches ready for estimation.
func (h *StatusHandler) PendingEstimates(c *gin.Context) {
	pending, err := h.svc.PendingEstimates(c.Request.Context())
	if err != nil {
		h.logger.Error("pending estimates lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute pending batches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending})
}
