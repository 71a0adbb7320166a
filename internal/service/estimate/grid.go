package estimate

import (
	"fmt"

	"github.com/tcworkshop/estimator/internal/domain/models"
)

// Estimate-sheet row positions, 1-based. These are template constants:
// every line item, subtotal and total has one fixed row, and the line
// labels are pre-printed in column A of the sheet itself. The engine only
// writes the per-transformer column blocks.
const (
	rowTitle    = 1
	rowJobNo    = 2
	rowMake     = 3
	rowSerialNo = 4
	rowRating   = 5
	rowSeal     = 6
	rowWinding  = 7

	rowHTBushings    = 9
	rowLTBushings    = 10
	rowHTConnectors  = 11
	rowLTConnectors  = 12
	rowHTMetalParts  = 13
	rowLTMetalParts  = 14
	rowGaugeGlass    = 15
	rowFittingsTotal = 16

	rowRodGasket        = 17
	rowTopGasket        = 18
	rowBoltNutSet       = 19
	rowNamePlate        = 20
	rowBreather         = 21
	rowOutsidePaint     = 22
	rowWasherRings      = 23
	rowConservator      = 24
	rowRadiators        = 25
	rowTransformerOil   = 26
	rowLabourCharge     = 27
	rowSealingKit       = 28
	rowConsumablesTotal = 29
	rowWorksTotal       = 30

	rowCoilHeader      = 31
	rowHTRewind        = 33
	rowLTRewind        = 34
	rowCoilBrazing     = 35
	rowInsulationPaper = 36
	rowInsideVarnish   = 37
	rowHTConductor     = 38
	rowLTConductor     = 39
	rowCoilFormer      = 40
	rowInterlayerKit   = 41
	rowOvenDrying      = 42
	rowTestingCharges  = 43
	rowCoilWorksTotal  = 44

	rowTotal      = 45
	rowDiscount   = 46
	rowNet        = 47
	rowSurcharge  = 48
	rowGrandTotal = 49

	gridRows = 49
)

// Band boundaries summed into the three subtotal rows.
const (
	fittingsBandStart    = rowHTBushings
	fittingsBandEnd      = rowGaugeGlass
	consumablesBandStart = rowRodGasket
	consumablesBandEnd   = rowSealingKit
	coilBandStart        = rowHTRewind
	coilBandEnd          = rowTestingCharges
)

// Slot geometry: five columns per transformer, starting at sheet column F.
const (
	gridBaseColumn = 6 // column F, 1-based
	slotWidth      = 5

	offRate    = 0
	offQty     = 1
	offAmount  = 2
	offHTLabel = 3
	offLTLabel = 4
)

// boldCells lists the per-slot cells marked with the emphasis attribute
// after a save: both band subtotal amounts.
var boldCells = []struct{ row, off int }{
	{rowFittingsTotal, offAmount},
	{rowConsumablesTotal, offAmount},
}

// OutputGridBuilder assembles the complete estimate rectangle in memory.
// It is constructed once per run, filled left to right, and handed to the
// store as a single bulk overwrite; no cell is written incrementally.
type OutputGridBuilder struct {
	slots int
	cells [][]interface{}
}

// NewOutputGridBuilder allocates an empty grid for the given number of
// transformer slots. Every cell starts as the empty string so a bulk
// write clears stale values from previous estimates.
func NewOutputGridBuilder(slots int) *OutputGridBuilder {
	cells := make([][]interface{}, gridRows)
	for i := range cells {
		row := make([]interface{}, slots*slotWidth)
		for j := range row {
			row[j] = ""
		}
		cells[i] = row
	}
	return &OutputGridBuilder{slots: slots, cells: cells}
}

func (g *OutputGridBuilder) set(slot, row, off int, value interface{}) {
	if slot < 0 || slot >= g.slots || row < 1 || row > gridRows {
		return
	}
	g.cells[row-1][slot*slotWidth+off] = value
}

// SetHeader writes an identity value into the slot's first column.
func (g *OutputGridBuilder) SetHeader(slot, row int, value string) {
	g.set(slot, row, offRate, value)
}

// SetRate writes a resolved unit rate; unresolved rates stay blank.
func (g *OutputGridBuilder) SetRate(slot, row int, rate float64, resolved bool) {
	if !resolved {
		return
	}
	g.set(slot, row, offRate, round2(rate))
}

// SetQuantity writes a quantity cell, numeric or categorical.
func (g *OutputGridBuilder) SetQuantity(slot, row int, quantity string) {
	g.set(slot, row, offQty, quantity)
}

// SetAmount writes an extended amount cell.
func (g *OutputGridBuilder) SetAmount(slot, row int, amount float64) {
	g.set(slot, row, offAmount, round2(amount))
}

// SetPhaseMarks writes the per-phase coil condition labels for one slot,
// phases A..C on consecutive rows below the coil header.
func (g *OutputGridBuilder) SetPhaseMarks(slot int, ht, lt [3]string) {
	g.set(slot, rowCoilHeader, offHTLabel, "HT COILS")
	g.set(slot, rowCoilHeader, offLTLabel, "LT COILS")
	for i := 0; i < 3; i++ {
		g.set(slot, rowHTRewind+i, offHTLabel, ht[i])
		g.set(slot, rowHTRewind+i, offLTLabel, lt[i])
	}
}

// Values returns the assembled rectangle, rows 1..gridRows.
func (g *OutputGridBuilder) Values() [][]interface{} {
	return g.cells
}

// Range returns the A1-notation target rectangle for the bulk write.
func (g *OutputGridBuilder) Range(sheetName string) string {
	first := columnLetter(gridBaseColumn)
	last := columnLetter(gridBaseColumn + g.slots*slotWidth - 1)
	return fmt.Sprintf("%s!%s1:%s%d", sheetName, first, last, gridRows)
}

// BoldTargets returns the 1-based sheet coordinates of the cells that get
// the emphasis attribute after a successful save.
func (g *OutputGridBuilder) BoldTargets() [][2]int {
	targets := make([][2]int, 0, g.slots*len(boldCells))
	for slot := 0; slot < g.slots; slot++ {
		for _, cell := range boldCells {
			targets = append(targets, [2]int{cell.row, gridBaseColumn + slot*slotWidth + cell.off})
		}
	}
	return targets
}

// BuildGrid lays a computed batch out into the fixed output rectangle.
func BuildGrid(batch models.EstimateBatch) *OutputGridBuilder {
	grid := NewOutputGridBuilder(len(batch.Slots))

	for slot, est := range batch.Slots {
		grid.SetHeader(slot, rowTitle, "REPAIR ESTIMATE")
		grid.SetHeader(slot, rowJobNo, est.Record.JobNo)
		grid.SetHeader(slot, rowMake, est.Record.Make)
		grid.SetHeader(slot, rowSerialNo, est.Record.SerialNo)
		grid.SetHeader(slot, rowRating, est.Record.Capacity)
		grid.SetHeader(slot, rowSeal, string(est.Record.Seal()))
		grid.SetHeader(slot, rowWinding, string(est.Record.Winding()))

		for _, line := range est.Lines {
			grid.SetRate(slot, line.Row, line.Rate, line.HasRate)
			grid.SetQuantity(slot, line.Row, line.Quantity)
			grid.SetAmount(slot, line.Row, line.Amount)
		}

		grid.SetPhaseMarks(slot, est.HTPhaseMarks, est.LTPhaseMarks)

		grid.SetAmount(slot, rowFittingsTotal, est.FittingsSubtotal)
		grid.SetAmount(slot, rowConsumablesTotal, est.ConsumablesSubtotal)
		grid.SetAmount(slot, rowWorksTotal, est.WorksTotal)
		grid.SetAmount(slot, rowCoilWorksTotal, est.CoilWorksTotal)
		grid.SetAmount(slot, rowTotal, est.Total)
		grid.SetAmount(slot, rowDiscount, est.Discount)
		grid.SetAmount(slot, rowNet, est.Net)
		grid.SetAmount(slot, rowSurcharge, est.Surcharge)
		grid.SetAmount(slot, rowGrandTotal, est.GrandTotal)
	}

	return grid
}

// columnLetter converts a 1-based column index to its A1-notation letters.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
