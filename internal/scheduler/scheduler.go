package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/config"
	"github.com/tcworkshop/estimator/internal/service/status"
	"github.com/tcworkshop/estimator/pkg/clients/notify"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	statusSvc *status.Service
	notifier  notify.Client
	cfg       config.Config
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured workshop timezone so the digest lands at end of the local
// working day; an unknown timezone falls back to the process local zone.
func NewScheduler(cfg config.Config, statusSvc *status.Service, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		logger.Warn("unknown digest timezone, using local",
			zap.String("timezone", cfg.Digest.Timezone),
			zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		statusSvc: statusSvc,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the daily pending-estimates digest and starts the cron.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Digest.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Digest.CronSchedule, s.sendPendingDigest)
	if err != nil {
		s.logger.Error("failed to schedule pending-estimates digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendPendingDigest() {
	s.logger.Info("generating pending-estimates digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pending, err := s.statusSvc.PendingEstimates(ctx)
	if err != nil {
		s.logger.Error("failed to compute pending-estimates digest", zap.Error(err))
		return
	}

	if err := s.notifier.SendDigest(ctx, status.DigestText(pending)); err != nil {
		s.logger.Error("failed to send pending-estimates digest", zap.Error(err))
		return
	}
	s.logger.Info("pending-estimates digest sent", zap.Int("batches", len(pending)))
}
