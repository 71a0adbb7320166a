package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockSheetRepository struct {
	mock.Mock
}

func (m *MockSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	args := m.Called(ctx, sheetRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]interface{}), args.Error(1)
}

func (m *MockSheetRepository) OverwriteRange(ctx context.Context, sheetRange string, values [][]interface{}) error {
	args := m.Called(ctx, sheetRange, values)
	return args.Error(0)
}

func (m *MockSheetRepository) AppendRows(ctx context.Context, sheetRange string, values [][]interface{}) error {
	args := m.Called(ctx, sheetRange, values)
	return args.Error(0)
}

func (m *MockSheetRepository) SetBold(ctx context.Context, sheetName string, row, col int) error {
	args := m.Called(ctx, sheetName, row, col)
	return args.Error(0)
}

// statusRow builds a master-sheet row wide enough to include the internal
// inspection date column.
func statusRow(division, mrNo, internalDate string) []interface{} {
	row := make([]interface{}, 47)
	for i := range row {
		row[i] = ""
	}
	row[0] = division
	row[2] = mrNo
	row[30] = internalDate
	return row
}

func TestPendingEstimates(t *testing.T) {
	repo := new(MockSheetRepository)
	repo.On("ReadRange", mock.Anything, "MASTER!A:AU").Return([][]interface{}{
		{"header"},
		{"header"},
		statusRow("NORTH", "MR-1", "05-08-2026"),
		statusRow("NORTH", "MR-1", "05-08-2026"),
		statusRow("SOUTH", "MR-2", ""),
		statusRow("SOUTH", "MR-3", "06-08-2026"),
	}, nil)

	svc := NewService(repo, "MASTER", zap.NewNop())

	pending, err := svc.PendingEstimates(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []PendingBatch{
		{MRNo: "MR-1", Division: "NORTH", Units: 2},
		{MRNo: "MR-3", Division: "SOUTH", Units: 1},
	}, pending)
}

func TestPendingEstimatesPartialBatchExcluded(t *testing.T) {
	repo := new(MockSheetRepository)
	repo.On("ReadRange", mock.Anything, "MASTER!A:AU").Return([][]interface{}{
		{"header"},
		{"header"},
		statusRow("NORTH", "MR-1", "05-08-2026"),
		statusRow("NORTH", "MR-1", ""),
	}, nil)

	svc := NewService(repo, "MASTER", zap.NewNop())

	pending, err := svc.PendingEstimates(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDigestText(t *testing.T) {
	assert.Equal(t, "No MR batches awaiting estimates.", DigestText(nil))

	text := DigestText([]PendingBatch{{MRNo: "MR-1", Division: "NORTH", Units: 2}})
	assert.Contains(t, text, "1 MR batch(es) awaiting estimates:")
	assert.Contains(t, text, "MR MR-1 (NORTH, 2 unit(s))")
}
