package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tcworkshop/estimator/internal/domain/models"
)

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{
		1:  "A",
		6:  "F",
		26: "Z",
		27: "AA",
		31: "AE",
		62: "BJ",
	}
	for col, want := range cases {
		assert.Equalf(t, want, columnLetter(col), "column %d", col)
	}
}

func TestGridRangeSpansAllSlots(t *testing.T) {
	one := NewOutputGridBuilder(1)
	assert.Equal(t, "ESTIMATE!F1:J49", one.Range("ESTIMATE"))

	four := NewOutputGridBuilder(4)
	assert.Equal(t, "ESTIMATE!F1:Y49", four.Range("ESTIMATE"))
}

func TestGridDimensions(t *testing.T) {
	grid := NewOutputGridBuilder(3)
	values := grid.Values()

	assert.Len(t, values, gridRows)
	for _, row := range values {
		assert.Len(t, row, 3*slotWidth)
	}
}

func TestGridCellPlacement(t *testing.T) {
	grid := NewOutputGridBuilder(2)
	grid.SetRate(1, rowHTBushings, 150.0, true)
	grid.SetQuantity(1, rowHTBushings, "2")
	grid.SetAmount(1, rowHTBushings, 300.0)

	row := grid.Values()[rowHTBushings-1]
	assert.Equal(t, 150.0, row[slotWidth+offRate])
	assert.Equal(t, "2", row[slotWidth+offQty])
	assert.Equal(t, 300.0, row[slotWidth+offAmount])

	// First slot untouched.
	assert.Equal(t, "", grid.Values()[rowHTBushings-1][offRate])
}

func TestGridUnresolvedRateStaysBlank(t *testing.T) {
	grid := NewOutputGridBuilder(1)
	grid.SetRate(0, rowHTBushings, 0, false)
	assert.Equal(t, "", grid.Values()[rowHTBushings-1][offRate])
}

func TestGridBoldTargets(t *testing.T) {
	grid := NewOutputGridBuilder(2)
	targets := grid.BoldTargets()

	assert.Equal(t, [][2]int{
		{rowFittingsTotal, 8},
		{rowConsumablesTotal, 8},
		{rowFittingsTotal, 13},
		{rowConsumablesTotal, 13},
	}, targets)
}

func TestBuildGridLaysOutBatch(t *testing.T) {
	batch := models.EstimateBatch{
		MRNo: "MR-9",
		Slots: []models.SlotEstimate{
			{
				Record: models.TransformerRecord{
					JobNo:    "J-41",
					Make:     "ABC",
					SerialNo: "TC-100",
					Capacity: "25 KVA",
					SealMark: "B",
				},
				Lines: []models.EstimateLine{
					{Row: rowHTBushings, Quantity: "2", Rate: 150, HasRate: true, Amount: 300},
				},
				HTPhaseMarks: [3]string{"R", "-", "-"},
				LTPhaseMarks: [3]string{"Reqd", "NR", "NR"},
				GrandTotal:   312.00,
			},
		},
	}

	grid := BuildGrid(batch)
	values := grid.Values()

	assert.Equal(t, "REPAIR ESTIMATE", values[rowTitle-1][offRate])
	assert.Equal(t, "J-41", values[rowJobNo-1][offRate])
	assert.Equal(t, "TC-100", values[rowSerialNo-1][offRate])
	assert.Equal(t, "Bolted", values[rowSeal-1][offRate])

	assert.Equal(t, 150.0, values[rowHTBushings-1][offRate])
	assert.Equal(t, "2", values[rowHTBushings-1][offQty])
	assert.Equal(t, 300.0, values[rowHTBushings-1][offAmount])

	assert.Equal(t, "HT COILS", values[rowCoilHeader-1][offHTLabel])
	assert.Equal(t, "R", values[rowHTRewind-1][offHTLabel])
	assert.Equal(t, "Reqd", values[rowHTRewind-1][offLTLabel])

	assert.Equal(t, 312.0, values[rowGrandTotal-1][offAmount])
}
