package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
	"github.com/tcworkshop/estimator/internal/service/intake"
)

// IntakeService is the slice of the intake service the HTTP layer depends
// on.
type IntakeService interface {
	NextLotNumber(ctx context.Context, division string) (string, error)
	CreateLot(ctx context.Context, lot models.Lot) error
	FindBySerial(ctx context.Context, serialNo string) (models.TransformerRecord, error)
	SavePhysical(ctx context.Context, serialNo string, form models.PhysicalInspection) error
	SaveInternal(ctx context.Context, serialNo string, form models.InternalInspection) error
	SaveTesting(ctx context.Context, serialNo string, form models.TestingReport) error
}

// IntakeHandler exposes lot registration and inspection capture over HTTP.
type IntakeHandler struct {
	svc    IntakeService
	logger *zap.Logger
}

// NewIntakeHandler constructs the HTTP handler adapter.
func NewIntakeHandler(svc IntakeService, logger *zap.Logger) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{svc: svc, logger: logger}
}

// NextLotNumber suggests the next lot number for a division.
func (h *IntakeHandler) NextLotNumber(c *gin.Context) {
	division := c.Query("division")
	if division == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "division query parameter is required"})
		return
	}

	lotNo, err := h.svc.NextLotNumber(c.Request.Context(), division)
	if err != nil {
		h.logger.Error("next lot number failed", zap.String("division", division), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to derive next lot number"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"division": division, "lotNo": lotNo})
}

// CreateLot registers a delivery of transformers.
func (h *IntakeHandler) CreateLot(c *gin.Context) {
	var lot models.Lot
	if err := c.ShouldBindJSON(&lot); err != nil {
		h.logger.Warn("invalid lot payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.CreateLot(c.Request.Context(), lot); err != nil {
		h.logger.Error("lot registration failed", zap.String("lotNo", lot.LotNo), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to register lot"})
		return
	}

	c.Status(http.StatusCreated)
}

// Lookup returns the identity row for a serial number, for form pre-fill.
func (h *IntakeHandler) Lookup(c *gin.Context) {
	serialNo := c.Param("serialNo")

	rec, err := h.svc.FindBySerial(c.Request.Context(), serialNo)
	if err != nil {
		h.respondSaveError(c, serialNo, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// SavePhysical records a physical inspection form.
func (h *IntakeHandler) SavePhysical(c *gin.Context) {
	var form models.PhysicalInspection
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Warn("invalid physical inspection payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	serialNo := c.Param("serialNo")
	if err := h.svc.SavePhysical(c.Request.Context(), serialNo, form); err != nil {
		h.respondSaveError(c, serialNo, err)
		return
	}

	c.Status(http.StatusOK)
}

// SaveInternal records an internal inspection form.
func (h *IntakeHandler) SaveInternal(c *gin.Context) {
	var form models.InternalInspection
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Warn("invalid internal inspection payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	serialNo := c.Param("serialNo")
	if err := h.svc.SaveInternal(c.Request.Context(), serialNo, form); err != nil {
		h.respondSaveError(c, serialNo, err)
		return
	}

	c.Status(http.StatusOK)
}

// SaveTesting records a testing report form.
func (h *IntakeHandler) SaveTesting(c *gin.Context) {
	var form models.TestingReport
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Warn("invalid testing report payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	serialNo := c.Param("serialNo")
	if err := h.svc.SaveTesting(c.Request.Context(), serialNo, form); err != nil {
		h.respondSaveError(c, serialNo, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *IntakeHandler) respondSaveError(c *gin.Context, serialNo string, err error) {
	if errors.Is(err, intake.ErrTransformerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "serial number not found"})
		return
	}

	h.logger.Error("intake request failed", zap.String("serialNo", serialNo), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save inspection"})
}
