package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogRowsAreUniqueAndInBand(t *testing.T) {
	seen := make(map[int]bool)
	for _, item := range catalog {
		assert.Falsef(t, seen[item.row], "row %d assigned twice", item.row)
		seen[item.row] = true

		inFittings := item.row >= fittingsBandStart && item.row <= fittingsBandEnd
		inConsumables := item.row >= consumablesBandStart && item.row <= consumablesBandEnd
		inCoil := item.row >= coilBandStart && item.row <= coilBandEnd
		assert.Truef(t, inFittings || inConsumables || inCoil,
			"row %d (%s) lies outside every subtotal band", item.row, item.label)
	}
}

func TestCatalogCoversEveryBandRow(t *testing.T) {
	rows := make(map[int]bool)
	for _, item := range catalog {
		rows[item.row] = true
	}

	for r := fittingsBandStart; r <= fittingsBandEnd; r++ {
		assert.Truef(t, rows[r], "fittings row %d has no catalog entry", r)
	}
	for r := consumablesBandStart; r <= consumablesBandEnd; r++ {
		assert.Truef(t, rows[r], "consumables row %d has no catalog entry", r)
	}
	for r := coilBandStart; r <= coilBandEnd; r++ {
		assert.Truef(t, rows[r], "coil works row %d has no catalog entry", r)
	}
}

func TestCatalogChainRowsCarryFactors(t *testing.T) {
	for _, item := range catalog {
		if item.kind == amountChain {
			assert.NotNilf(t, item.chainCount, "row %d missing chain count", item.row)
			assert.NotNilf(t, item.chainFactor, "row %d missing chain factor", item.row)
		}
	}
}
