package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
	"github.com/tcworkshop/estimator/internal/service/estimate"
)

// EstimateService is the slice of the estimate service the HTTP layer
// depends on.
type EstimateService interface {
	Preview(ctx context.Context, mrNo string) (models.EstimateBatch, error)
	ComputeAndSave(ctx context.Context, mrNo string) (models.EstimateBatch, error)
}

// EstimateHandler exposes estimate computation over HTTP.
type EstimateHandler struct {
	svc    EstimateService
	logger *zap.Logger
}

// NewEstimateHandler constructs the HTTP handler adapter.
func NewEstimateHandler(svc EstimateService, logger *zap.Logger) *EstimateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateHandler{svc: svc, logger: logger}
}

// Preview computes an MR batch without writing the estimate sheet.
func (h *EstimateHandler) Preview(c *gin.Context) {
	mrNo := c.Param("mrNo")

	batch, err := h.svc.Preview(c.Request.Context(), mrNo)
	if err != nil {
		h.respondError(c, mrNo, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// Compute prices an MR batch and saves the estimate sheet.
func (h *EstimateHandler) Compute(c *gin.Context) {
	mrNo := c.Param("mrNo")

	batch, err := h.svc.ComputeAndSave(c.Request.Context(), mrNo)
	if err != nil {
		h.respondError(c, mrNo, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

func (h *EstimateHandler) respondError(c *gin.Context, mrNo string, err error) {
	if errors.Is(err, estimate.ErrBatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "MR number not found"})
		return
	}

	h.logger.Error("estimate request failed", zap.String("mrNo", mrNo), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "estimate computation failed"})
}
