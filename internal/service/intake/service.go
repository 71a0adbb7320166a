package intake

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
	"github.com/tcworkshop/estimator/internal/repository/sheets"
)

// ErrTransformerNotFound is returned when no master-sheet row carries the
// requested serial number.
var ErrTransformerNotFound = errors.New("no transformer found for serial number")

// Master-sheet block ranges written by each inspection form.
const (
	physicalBlock = "J%d:AD%d"
	internalBlock = "AE%d:AU%d"
	testingBlock  = "AV%d:BJ%d"
)

// Service manages lot registration and the three inspection write-backs.
// Every write lands in the master sheet; the estimate engine reads the
// same rows later.
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

// NextLotNumber derives the next lot number for a division: the division's
// initial followed by one more than the highest sequence already recorded.
// A division with no lots yet starts at 1.
func (s *Service) NextLotNumber(ctx context.Context, division string) (string, error) {
	division = strings.TrimSpace(division)
	if division == "" {
		return "", errors.New("division is required")
	}
	prefix := strings.ToUpper(string([]rune(division)[0]))

	rows, err := s.repo.ReadRange(ctx, s.masterSheet+"!A:D")
	if err != nil {
		return "", fmt.Errorf("reading master sheet: %w", err)
	}

	seq := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `(\d+)`)
	max := 0
	for i, row := range rows {
		if i < models.MasterHeaderRows {
			continue
		}
		if cellAt(row, models.ColDivision) != division {
			continue
		}
		m := seq.FindStringSubmatch(cellAt(row, models.ColLotNo))
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%d", prefix, max+1), nil
}

// CreateLot appends one identity row per unit, each repeating the shared
// lot header so every transformer row is self-describing.
func (s *Service) CreateLot(ctx context.Context, lot models.Lot) error {
	rows := make([][]interface{}, 0, len(lot.Units))
	for _, unit := range lot.Units {
		rows = append(rows, []interface{}{
			lot.Division, lot.TruckNo, lot.MRNo, lot.LotNo, lot.Date,
			unit.SerialNo, unit.Make, unit.Capacity, unit.JobNo,
		})
	}

	if err := s.repo.AppendRows(ctx, s.masterSheet+"!A:I", rows); err != nil {
		return fmt.Errorf("registering lot %s: %w", lot.LotNo, err)
	}

	s.logger.Info("lot registered",
		zap.String("lotNo", lot.LotNo),
		zap.String("mrNo", lot.MRNo),
		zap.Int("units", len(lot.Units)))
	return nil
}

// SavePhysical writes a physical inspection block into the row keyed by
// the transformer's serial number.
func (s *Service) SavePhysical(ctx context.Context, serialNo string, form models.PhysicalInspection) error {
	return s.saveBlock(ctx, serialNo, physicalBlock, form.Row())
}

// SaveInternal writes an internal inspection block.
func (s *Service) SaveInternal(ctx context.Context, serialNo string, form models.InternalInspection) error {
	return s.saveBlock(ctx, serialNo, internalBlock, form.Row())
}

// SaveTesting writes a testing report block.
func (s *Service) SaveTesting(ctx context.Context, serialNo string, form models.TestingReport) error {
	return s.saveBlock(ctx, serialNo, testingBlock, form.Row())
}

// FindBySerial returns the identity of the master-sheet row keyed by a
// serial number, for form pre-fill.
func (s *Service) FindBySerial(ctx context.Context, serialNo string) (models.TransformerRecord, error) {
	_, row, err := s.locate(ctx, serialNo)
	if err != nil {
		return models.TransformerRecord{}, err
	}
	return models.NewTransformerRecord(row), nil
}

func (s *Service) saveBlock(ctx context.Context, serialNo, blockFormat string, values []interface{}) error {
	rowIdx, _, err := s.locate(ctx, serialNo)
	if err != nil {
		return err
	}

	target := fmt.Sprintf("%s!%s", s.masterSheet, fmt.Sprintf(blockFormat, rowIdx, rowIdx))
	if err := s.repo.OverwriteRange(ctx, target, [][]interface{}{values}); err != nil {
		return fmt.Errorf("writing inspection block for serial %s: %w", serialNo, err)
	}

	s.logger.Info("inspection block saved",
		zap.String("serialNo", serialNo),
		zap.String("range", target))
	return nil
}

// locate returns the 1-based sheet row index and raw cells of the row
// whose serial column matches.
func (s *Service) locate(ctx context.Context, serialNo string) (int, []string, error) {
	serialNo = strings.TrimSpace(serialNo)
	if serialNo == "" {
		return 0, nil, errors.New("serial number is required")
	}

	rows, err := s.repo.ReadRange(ctx, s.masterSheet+"!A:I")
	if err != nil {
		return 0, nil, fmt.Errorf("reading master sheet: %w", err)
	}

	for i, raw := range rows {
		if i < models.MasterHeaderRows {
			continue
		}
		cells := make([]string, len(raw))
		for j, v := range raw {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		if stringCell(cells, models.ColTCNo) == serialNo {
			return i + 1, cells, nil
		}
	}

	return 0, nil, fmt.Errorf("%w: %s", ErrTransformerNotFound, serialNo)
}

func cellAt(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func stringCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
