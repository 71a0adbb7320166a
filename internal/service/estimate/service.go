package estimate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
	"github.com/tcworkshop/estimator/internal/repository/mongodb"
	"github.com/tcworkshop/estimator/internal/repository/sheets"
	"github.com/tcworkshop/estimator/pkg/clients/notify"
)

// ErrBatchNotFound is returned when no master-sheet row carries the
// requested MR number.
var ErrBatchNotFound = errors.New("no transformers found for MR number")

// Service orchestrates a full estimate run: it reads the master sheet and
// rate sheet, prices each transformer in an MR batch, and writes the
// estimate rectangle back in a single bulk update.
type Service struct {
	repo     sheets.Repository
	audits   mongodb.Repository
	notifier notify.Client

	masterSheet   string
	ratesSheet    string
	estimateSheet string

	policy   Policy
	maxSlots int

	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the estimate service. The audit repository and notifier
// are optional; pass nil to disable them.
func NewService(
	repo sheets.Repository,
	audits mongodb.Repository,
	notifier notify.Client,
	masterSheet, ratesSheet, estimateSheet string,
	policy Policy,
	maxSlots int,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxSlots <= 0 {
		maxSlots = 4
	}
	return &Service{
		repo:          repo,
		audits:        audits,
		notifier:      notifier,
		masterSheet:   masterSheet,
		ratesSheet:    ratesSheet,
		estimateSheet: estimateSheet,
		policy:        policy,
		maxSlots:      maxSlots,
		logger:        logger,
		now:           time.Now,
	}
}

// Preview prices an MR batch without touching the estimate sheet.
func (s *Service) Preview(ctx context.Context, mrNo string) (models.EstimateBatch, error) {
	records, err := s.loadBatch(ctx, mrNo)
	if err != nil {
		return models.EstimateBatch{}, err
	}

	book, err := s.loadRates(ctx)
	if err != nil {
		return models.EstimateBatch{}, err
	}

	engine := NewEngine(book, s.policy, s.logger)
	return engine.ComputeBatch(mrNo, records), nil
}

// ComputeAndSave prices an MR batch and overwrites the estimate sheet's
// output rectangle with the result. Recomputing an unchanged batch writes
// the same rectangle again.
func (s *Service) ComputeAndSave(ctx context.Context, mrNo string) (models.EstimateBatch, error) {
	batch, err := s.Preview(ctx, mrNo)
	if err != nil {
		return models.EstimateBatch{}, err
	}

	grid := BuildGrid(batch)
	if err := s.repo.OverwriteRange(ctx, grid.Range(s.estimateSheet), grid.Values()); err != nil {
		return models.EstimateBatch{}, fmt.Errorf("writing estimate grid for MR %s: %w", mrNo, err)
	}

	// Formatting is cosmetic and per cell; a failed bold request never
	// rolls back the value write or skips the remaining targets.
	for _, target := range grid.BoldTargets() {
		if err := s.repo.SetBold(ctx, s.estimateSheet, target[0], target[1]); err != nil {
			s.logger.Warn("subtotal bold formatting failed",
				zap.String("mrNo", mrNo),
				zap.Int("row", target[0]),
				zap.Int("col", target[1]),
				zap.Error(err))
		}
	}

	s.recordAudit(ctx, batch)
	s.sendSavedDigest(ctx, batch)
	s.logger.Info("estimate saved",
		zap.String("mrNo", mrNo),
		zap.Int("slots", len(batch.Slots)))

	return batch, nil
}

// sendSavedDigest posts a short estimate-saved notice. Delivery is best
// effort; a failed webhook never fails the save.
func (s *Service) sendSavedDigest(ctx context.Context, batch models.EstimateBatch) {
	if s.notifier == nil {
		return
	}

	var total float64
	for _, slot := range batch.Slots {
		total = round2(total + slot.GrandTotal)
	}
	text := fmt.Sprintf("Estimate saved for MR %s: %d slot(s), grand total %.2f",
		batch.MRNo, len(batch.Slots), total)

	if err := s.notifier.SendDigest(ctx, text); err != nil {
		s.logger.Warn("estimate-saved digest not delivered",
			zap.String("mrNo", batch.MRNo),
			zap.Error(err))
	}
}

func (s *Service) recordAudit(ctx context.Context, batch models.EstimateBatch) {
	if s.audits == nil {
		return
	}

	audit := models.EstimateAudit{
		MRNo:       batch.MRNo,
		ComputedAt: s.now().UTC(),
	}
	for _, slot := range batch.Slots {
		audit.JobNos = append(audit.JobNos, slot.Record.JobNo)
		audit.GrandTotals = append(audit.GrandTotals, slot.GrandTotal)
		audit.BatchTotal = round2(audit.BatchTotal + slot.GrandTotal)
	}

	if err := s.audits.SaveEstimateAudit(ctx, audit); err != nil {
		s.logger.Warn("estimate audit not persisted",
			zap.String("mrNo", batch.MRNo),
			zap.Error(err))
	}
}

// loadBatch reads the full master sheet and keeps the rows whose MR number
// matches, capped at the slot limit of the output rectangle.
func (s *Service) loadBatch(ctx context.Context, mrNo string) ([]models.TransformerRecord, error) {
	rows, err := s.repo.ReadRange(ctx, s.masterSheet+"!A:BJ")
	if err != nil {
		return nil, fmt.Errorf("reading master sheet: %w", err)
	}

	var records []models.TransformerRecord
	for i, raw := range rows {
		if i < models.MasterHeaderRows {
			continue
		}
		rec := models.NewTransformerRecord(stringCells(raw))
		if rec.MRNo != mrNo {
			continue
		}
		if len(records) == s.maxSlots {
			s.logger.Warn("MR batch exceeds estimate sheet capacity, extra rows skipped",
				zap.String("mrNo", mrNo),
				zap.Int("maxSlots", s.maxSlots))
			break
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, mrNo)
	}
	return records, nil
}

func (s *Service) loadRates(ctx context.Context) (*RateBook, error) {
	rows, err := s.repo.ReadRange(ctx, s.ratesSheet+"!A1:H60")
	if err != nil {
		return nil, fmt.Errorf("reading rate sheet: %w", err)
	}

	text := make([][]string, len(rows))
	for i, raw := range rows {
		text[i] = stringCells(raw)
	}
	return NewRateBook(text, s.logger), nil
}

func stringCells(raw []interface{}) []string {
	cells := make([]string, len(raw))
	for i, v := range raw {
		cells[i] = fmt.Sprint(v)
	}
	return cells
}
