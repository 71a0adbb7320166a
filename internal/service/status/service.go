package status

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
	"github.com/tcworkshop/estimator/internal/repository/sheets"
)

// PendingBatch is one MR batch whose internal inspection is done for every
// unit, making it ready for estimation.
type PendingBatch struct {
	MRNo     string `json:"mrNo"`
	Division string `json:"division"`
	Units    int    `json:"units"`
}

// Service derives workflow status from the master sheet. A batch is
// considered estimate-ready once each of its rows carries an internal
// inspection date.
type Service struct {
	repo        sheets.Repository
	masterSheet string
	logger      *zap.Logger
}

func NewService(repo sheets.Repository, masterSheet string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, masterSheet: masterSheet, logger: logger}
}

// PendingEstimates lists the MR batches ready for estimation, ordered by
// MR number.
func (s *Service) PendingEstimates(ctx context.Context) ([]PendingBatch, error) {
	rows, err := s.repo.ReadRange(ctx, s.masterSheet+"!A:AU")
	if err != nil {
		return nil, fmt.Errorf("reading master sheet: %w", err)
	}

	type tally struct {
		division  string
		units     int
		inspected int
	}
	batches := make(map[string]*tally)

	for i, raw := range rows {
		if i < models.MasterHeaderRows {
			continue
		}
		mrNo := cell(raw, models.ColMRNo)
		if mrNo == "" {
			continue
		}
		t := batches[mrNo]
		if t == nil {
			t = &tally{division: cell(raw, models.ColDivision)}
			batches[mrNo] = t
		}
		t.units++
		if cell(raw, models.ColInternalDate) != "" {
			t.inspected++
		}
	}

	var pending []PendingBatch
	for mrNo, t := range batches {
		if t.units > 0 && t.inspected == t.units {
			pending = append(pending, PendingBatch{MRNo: mrNo, Division: t.division, Units: t.units})
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].MRNo < pending[j].MRNo })

	s.logger.Debug("pending estimate batches computed", zap.Int("count", len(pending)))
	return pending, nil
}

// DigestText renders the pending list as a short chat message.
func DigestText(pending []PendingBatch) string {
	if len(pending) == 0 {
		return "No MR batches awaiting estimates."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d MR batch(es) awaiting estimates:\n", len(pending))
	for _, p := range pending {
		fmt.Fprintf(&b, "- MR %s (%s, %d unit(s))\n", p.MRNo, p.Division, p.Units)
	}
	return strings.TrimRight(b.String(), "\n")
}

func cell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
