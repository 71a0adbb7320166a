package estimate

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// round2 rounds to two decimal places, half away from zero. This is the
// pinned rounding contract of the whole engine; see the dedicated test.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseAmount converts a cell's text to a number. Empty or non-numeric
// text reports false; callers substitute zero and carry on.
func parseAmount(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// Rate-sheet columns, 1-based. Column B carries static unit prices;
// columns C..G are the capacity tier columns.
const (
	rateColStatic    = 2
	rateColTierSmall = 3 // 5, 10, 16 KVA
	rateColTier25    = 4
	rateColTierMid   = 5 // 50, 63, 75 KVA
	rateColTier100   = 6
	rateColTierLarge = 7 // 160, 200 KVA
)

// capacityColumn maps every known capacity class to its rate-sheet tier
// column. Smaller capacities share columns; the mapping is total over the
// enumeration and anything outside it resolves to no column at all.
var capacityColumn = map[string]int{
	"5 KVA":   rateColTierSmall,
	"10 KVA":  rateColTierSmall,
	"16 KVA":  rateColTierSmall,
	"25 KVA":  rateColTier25,
	"50 KVA":  rateColTierMid,
	"63 KVA":  rateColTierMid,
	"75 KVA":  rateColTierMid,
	"100 KVA": rateColTier100,
	"160 KVA": rateColTierLarge,
	"200 KVA": rateColTierLarge,
}

// NormalizeCapacity collapses spacing and case so "25kva" and "25 KVA"
// resolve to the same tier.
func NormalizeCapacity(capacity string) string {
	normalized := strings.ToUpper(strings.Join(strings.Fields(capacity), " "))
	if normalized == "" {
		return ""
	}
	// Operators sometimes omit the space before the unit.
	if !strings.Contains(normalized, " ") && strings.HasSuffix(normalized, "KVA") {
		normalized = strings.TrimSuffix(normalized, "KVA") + " KVA"
	}
	return normalized
}

// TierColumn resolves the rate-sheet column for a capacity class. The
// second return is false for capacities outside the known enumeration;
// dependent rates then default to zero instead of failing the run.
func TierColumn(capacity string) (int, bool) {
	col, ok := capacityColumn[NormalizeCapacity(capacity)]
	return col, ok
}

// cellRef addresses one fixed rate-sheet cell, 1-based.
type cellRef struct {
	row, col int
}

// Named coil-work rate cells. The coordinates are workshop rate-card
// positions inherited from the previous tool.
var (
	cellHTRewindDPC  = cellRef{row: 33, col: 3} // C33: aluminium DPC rewinding
	cellHTRewindStd  = cellRef{row: 31, col: 3} // C31: standard rewinding
	cellConductorAL  = cellRef{row: 34, col: 3} // C34: aluminium conductor
	cellConductorStd = cellRef{row: 34, col: 6} // F34: copper/standard conductor
	cellOilPerLitre  = cellRef{row: 26, col: 2} // B26: transformer oil, per litre
)

// RateBook is an immutable snapshot of the rate sheet, read once per run.
type RateBook struct {
	rows   [][]string
	logger *zap.Logger
}

// NewRateBook wraps raw rate-sheet rows. A nil logger is replaced with a
// no-op one.
func NewRateBook(rows [][]string, logger *zap.Logger) *RateBook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateBook{rows: rows, logger: logger}
}

// cellText returns the cell text at 1-based coordinates, empty when the
// snapshot is shorter than the requested position.
func (b *RateBook) cellText(row, col int) string {
	if row < 1 || col < 1 || row > len(b.rows) {
		return ""
	}
	line := b.rows[row-1]
	if col > len(line) {
		return ""
	}
	return line[col-1]
}

// At reads a named cell as an amount. Non-numeric text resolves to zero
// with a debug trace, never an error.
func (b *RateBook) At(ref cellRef) (float64, bool) {
	text := b.cellText(ref.row, ref.col)
	amount, ok := parseAmount(text)
	if !ok {
		b.logger.Debug("rate cell not numeric, defaulting to zero",
			zap.Int("row", ref.row), zap.Int("col", ref.col), zap.String("text", text))
	}
	return amount, ok
}

// Tiered reads the capacity-tiered rate for a line item whose rate lives
// on the given rate-sheet row.
func (b *RateBook) Tiered(row int, capacity string) (float64, bool) {
	col, ok := TierColumn(capacity)
	if !ok {
		b.logger.Debug("capacity class outside tier table, rate defaults to zero",
			zap.Int("row", row), zap.String("capacity", capacity))
		return 0, false
	}
	return b.At(cellRef{row: row, col: col})
}
