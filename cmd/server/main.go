package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/config"
	"github.com/tcworkshop/estimator/internal/repository/mongodb"
	"github.com/tcworkshop/estimator/internal/repository/sheets"
	"github.com/tcworkshop/estimator/internal/scheduler"
	"github.com/tcworkshop/estimator/internal/server/handlers"
	"github.com/tcworkshop/estimator/internal/server/router"
	estimatesvc "github.com/tcworkshop/estimator/internal/service/estimate"
	intakesvc "github.com/tcworkshop/estimator/internal/service/intake"
	statussvc "github.com/tcworkshop/estimator/internal/service/status"
	"github.com/tcworkshop/estimator/pkg/clients/notify"
	"github.com/tcworkshop/estimator/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	// The audit trail is optional; without a MongoDB target the engine
	// still reads and writes the spreadsheet normally.
	var auditRepo mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		auditRepo = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, estimate audit trail disabled")
	}

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Notify.WebhookURL, baseLogger.Named("clients.notify"))
		baseLogger.Info("digest webhook enabled")
	} else {
		baseLogger.Warn("notify webhook url missing, digests disabled")
	}

	policy := estimatesvc.Policy{
		Discount:         cfg.Estimate.Discount,
		SurchargePercent: cfg.Estimate.SurchargePercent,
	}
	estimateSvc := estimatesvc.NewService(
		sheetsRepo, auditRepo, notifier,
		cfg.Sheets.MasterSheet, cfg.Sheets.RatesSheet, cfg.Sheets.EstimateSheet,
		policy, cfg.Estimate.MaxSlots,
		baseLogger.Named("svc.estimate"),
	)
	intakeSvc := intakesvc.NewService(sheetsRepo, cfg.Sheets.MasterSheet, baseLogger.Named("svc.intake"))
	statusSvc := statussvc.NewService(sheetsRepo, cfg.Sheets.MasterSheet, baseLogger.Named("svc.status"))

	estimateHandler := handlers.NewEstimateHandler(estimateSvc, baseLogger.Named("handlers.estimate"))
	intakeHandler := handlers.NewIntakeHandler(intakeSvc, baseLogger.Named("handlers.intake"))
	statusHandler := handlers.NewStatusHandler(statusSvc, baseLogger.Named("handlers.status"))
	engine := router.New(estimateHandler, intakeHandler, statusHandler, baseLogger.Named("router"))

	if notifier != nil {
		sched := scheduler.NewScheduler(*cfg, statusSvc, notifier, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
