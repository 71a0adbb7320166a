package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNormalizeCapacity(t *testing.T) {
	cases := map[string]string{
		"25 KVA":    "25 KVA",
		"25kva":     "25 KVA",
		"  100 kVa": "100 KVA",
		"63  KVA":   "63 KVA",
		"":          "",
	}
	for input, want := range cases {
		assert.Equalf(t, want, NormalizeCapacity(input), "input %q", input)
	}
}

func TestTierColumnCoversKnownCapacities(t *testing.T) {
	for capacity := range capacityColumn {
		_, ok := TierColumn(capacity)
		assert.Truef(t, ok, "capacity %q has no tier column", capacity)
	}

	_, ok := TierColumn("315 KVA")
	assert.False(t, ok)
	_, ok = TierColumn("")
	assert.False(t, ok)
}

func TestParseAmount(t *testing.T) {
	for input, want := range map[string]float64{
		"150":      150,
		" 210.5 ":  210.5,
		"1,250.75": 1250.75,
	} {
		got, ok := parseAmount(input)
		assert.Truef(t, ok, "input %q", input)
		assert.InDelta(t, want, got, 0.0001)
	}

	for _, input := range []string{"", "  ", "Reqd", "n/a"} {
		_, ok := parseAmount(input)
		assert.Falsef(t, ok, "input %q parsed as a number", input)
	}
}

func TestRateBookAt(t *testing.T) {
	book := NewRateBook([][]string{
		{"LABEL", "90"},
		{"", "", "x"},
	}, zap.NewNop())

	rate, ok := book.At(cellRef{row: 1, col: 2})
	assert.True(t, ok)
	assert.InDelta(t, 90.0, rate, 0.0001)

	// Non-numeric and out-of-bounds cells resolve to no rate.
	_, ok = book.At(cellRef{row: 2, col: 3})
	assert.False(t, ok)
	_, ok = book.At(cellRef{row: 50, col: 2})
	assert.False(t, ok)
	_, ok = book.At(cellRef{row: 1, col: 9})
	assert.False(t, ok)
}

func TestRateBookTiered(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = make([]string, 8)
	}
	rows[8][rateColTier25-1] = "150"

	book := NewRateBook(rows, zap.NewNop())

	rate, ok := book.Tiered(9, "25 KVA")
	assert.True(t, ok)
	assert.InDelta(t, 150.0, rate, 0.0001)

	_, ok = book.Tiered(9, "315 KVA")
	assert.False(t, ok)

	// Known tier but empty cell.
	_, ok = book.Tiered(9, "100 KVA")
	assert.False(t, ok)
}
