package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(
	estimateHandler *handlers.EstimateHandler,
	intakeHandler *handlers.IntakeHandler,
	statusHandler *handlers.StatusHandler,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/estimates/:mrNo/preview", estimateHandler.Preview)
	r.POST("/estimates/:mrNo", estimateHandler.Compute)

	r.GET("/lots/next-number", intakeHandler.NextLotNumber)
	r.POST("/lots", intakeHandler.CreateLot)
	r.GET("/transformers/:serialNo", intakeHandler.Lookup)
	r.POST("/transformers/:serialNo/physical", intakeHandler.SavePhysical)
	r.POST("/transformers/:serialNo/internal", intakeHandler.SaveInternal)
	r.POST("/transformers/:serialNo/testing", intakeHandler.SaveTesting)

	r.GET("/status/pending-estimates", statusHandler.PendingEstimates)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
