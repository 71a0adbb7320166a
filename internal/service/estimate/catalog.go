package estimate

import (
	"strconv"
	"strings"

	"github.com/tcworkshop/estimator/internal/domain/models"
)

// slotContext carries one transformer's extracted facts plus the derived
// coil factors shared by several catalog rows. Factors are resolved once
// per slot so a bad source cell zeroes every row in its dependency chain
// instead of leaving a stale value in any of them.
type slotContext struct {
	rec  models.TransformerRecord
	book *RateBook

	htReplaced int
	ltReplaced int

	coilsPerPhase factor
	wtPerHTCoil   factor
	wtPerLTCoil   factor
}

// factor is a numeric multiplier that may have failed to resolve.
type factor struct {
	value float64
	ok    bool
}

func newSlotContext(rec models.TransformerRecord, book *RateBook) *slotContext {
	sc := &slotContext{rec: rec, book: book}

	for _, phase := range rec.HTCoilPhases() {
		if models.IsReplaceMarker(phase) {
			sc.htReplaced++
		}
	}
	for _, phase := range rec.LTCoilPhases() {
		if models.IsRequired(phase) {
			sc.ltReplaced++
		}
	}

	sc.coilsPerPhase = newFactor(rec.CoilsPerPhase)
	sc.wtPerHTCoil = newFactor(rec.WtHTCoils)
	sc.wtPerLTCoil = newFactor(rec.WtLTCoils)

	return sc
}

func newFactor(text string) factor {
	value, ok := parseAmount(text)
	return factor{value: value, ok: ok}
}

// requirementToken normalizes a form cell to the canonical Reqd/NR pair.
func requirementToken(value string) string {
	if models.IsRequired(value) {
		return models.MarkerRequired
	}
	return models.MarkerNotRequired
}

// branch is one material/construction conditional rate lookup: an
// independent predicate with its own true/false cell targets. There is no
// shared mode variable; each branching row carries its own branch value.
type branch struct {
	name      string
	predicate func(rec models.TransformerRecord) bool
	whenTrue  cellRef
	whenFalse cellRef
}

func (b branch) resolve(sc *slotContext) (float64, bool) {
	if b.predicate(sc.rec) {
		return sc.book.At(b.whenTrue)
	}
	return sc.book.At(b.whenFalse)
}

func isAluminiumDPC(rec models.TransformerRecord) bool {
	return rec.Winding() == models.WindingAluminium && rec.Construction() == models.ConstructionDPC
}

func isAluminium(rec models.TransformerRecord) bool {
	return rec.Winding() == models.WindingAluminium
}

// The rewinding branch and the HT conductor branch both test AL+DPC; the
// LT conductor branch tests AL alone. The HT and LT conductor branches
// share the same standard-rate fallback cell, a rate-card quirk kept from
// the workshop's card (the former and interlayer rows fall back to zero
// instead).
var (
	htRewindBranch = branch{
		name:      "ht-rewind",
		predicate: isAluminiumDPC,
		whenTrue:  cellHTRewindDPC,
		whenFalse: cellHTRewindStd,
	}
	htConductorBranch = branch{
		name:      "ht-conductor",
		predicate: isAluminiumDPC,
		whenTrue:  cellConductorAL,
		whenFalse: cellConductorStd,
	}
	ltConductorBranch = branch{
		name:      "lt-conductor",
		predicate: isAluminium,
		whenTrue:  cellConductorAL,
		whenFalse: cellConductorStd,
	}
)

// amountKind selects how a line's extended amount is computed.
type amountKind int

const (
	// amountMultiply: amount = rate x numeric quantity.
	amountMultiply amountKind = iota
	// amountGated: amount = rate when the quantity cell reads Reqd, else 0.
	// Applied as a second pass over the gated row set.
	amountGated
	// amountChain: amount = rate x replaced-coil count x resolved factor;
	// an unresolved factor zeroes the row.
	amountChain
)

// lineItem is one fixed catalog entry: its output row, how its quantity
// is derived, where its rate comes from, and how the amount is formed.
// The rule assignment is catalog data, not computed.
type lineItem struct {
	row      int
	label    string
	quantity func(sc *slotContext) string
	rate     func(sc *slotContext) (float64, bool)
	kind     amountKind

	// amountChain only: the count and multiplier feeding the product.
	chainCount  func(sc *slotContext) int
	chainFactor func(sc *slotContext) factor
}

func tieredRate(row int) func(sc *slotContext) (float64, bool) {
	return func(sc *slotContext) (float64, bool) {
		return sc.book.Tiered(row, sc.rec.Capacity)
	}
}

func directQuantity(pick func(rec models.TransformerRecord) string) func(sc *slotContext) string {
	return func(sc *slotContext) string {
		return pick(sc.rec)
	}
}

func requirementQuantity(pick func(rec models.TransformerRecord) string) func(sc *slotContext) string {
	return func(sc *slotContext) string {
		return requirementToken(pick(sc.rec))
	}
}

func staticQuantity(literal string) func(sc *slotContext) string {
	return func(sc *slotContext) string {
		return literal
	}
}

// sealedTankMarker maps the B/S seal cell to Reqd for sealed tanks.
func sealedTankMarker(sc *slotContext) string {
	if strings.EqualFold(strings.TrimSpace(sc.rec.SealMark), "S") {
		return models.MarkerRequired
	}
	return models.MarkerNotRequired
}

// catalog is the full fixed rate-sheet catalog in output-row order.
var catalog = []lineItem{
	{
		row:      rowHTBushings,
		label:    "HT BUSHINGS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.HTBushing }),
		rate:     tieredRate(rowHTBushings),
	},
	{
		row:      rowLTBushings,
		label:    "LT BUSHINGS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.LTBushing }),
		rate:     tieredRate(rowLTBushings),
	},
	{
		row:      rowHTConnectors,
		label:    "HT CONNECTORS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.HTConnector }),
		rate:     tieredRate(rowHTConnectors),
	},
	{
		row:      rowLTConnectors,
		label:    "LT CONNECTORS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.LTConnector }),
		rate:     tieredRate(rowLTConnectors),
	},
	{
		row:      rowHTMetalParts,
		label:    "HT METAL PARTS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.HTMetalPart }),
		rate:     tieredRate(rowHTMetalParts),
	},
	{
		row:      rowLTMetalParts,
		label:    "LT METAL PARTS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.LTMetalPart }),
		rate:     tieredRate(rowLTMetalParts),
	},
	{
		row:      rowGaugeGlass,
		label:    "GAUGE GLASS",
		quantity: requirementQuantity(func(r models.TransformerRecord) string { return r.GaugeGlass }),
		rate:     tieredRate(rowGaugeGlass),
		kind:     amountGated,
	},

	{
		row:      rowRodGasket,
		label:    "ROD GASKETS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.RodGasket }),
		rate:     tieredRate(rowRodGasket),
	},
	{
		row:      rowTopGasket,
		label:    "TOP GASKETS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.TopGasket }),
		rate:     tieredRate(rowTopGasket),
	},
	{
		row:   rowBoltNutSet,
		label: "BOLT & NUT SET",
		// Sealed tanks are cut open, so reassembly consumes a fresh bolt
		// and nut set along with the sealing kit.
		quantity: sealedTankMarker,
		rate:     tieredRate(rowBoltNutSet),
		kind:     amountGated,
	},
	{
		row:      rowNamePlate,
		label:    "NAME PLATE",
		quantity: requirementQuantity(func(r models.TransformerRecord) string { return r.NamePlate }),
		rate:     tieredRate(rowNamePlate),
		kind:     amountGated,
	},
	{
		row:      rowBreather,
		label:    "BREATHER",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.Breather }),
		rate:     tieredRate(rowBreather),
	},
	{
		row:      rowOutsidePaint,
		label:    "OUTSIDE PAINT",
		quantity: requirementQuantity(func(r models.TransformerRecord) string { return r.OutsidePaint }),
		rate:     tieredRate(rowOutsidePaint),
		kind:     amountGated,
	},
	{
		row:      rowWasherRings,
		label:    "WASHER RINGS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.WasherRings }),
		rate:     tieredRate(rowWasherRings),
	},
	{
		row:      rowConservator,
		label:    "CONSERVATOR TANK (KG)",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.Conservator }),
		rate:     tieredRate(rowConservator),
	},
	{
		row:      rowRadiators,
		label:    "RADIATORS",
		quantity: directQuantity(func(r models.TransformerRecord) string { return r.Radiators }),
		rate:     tieredRate(rowRadiators),
	},
	{
		row:   rowTransformerOil,
		label: "TRANSFORMER OIL (LTR)",
		// Oil is topped up to the name-plate volume only when the tank
		// arrived empty.
		quantity: func(sc *slotContext) string {
			if strings.EqualFold(strings.TrimSpace(sc.rec.OilPosition), "Empty") {
				return sc.rec.OilAsPerNP
			}
			return "0"
		},
		rate: func(sc *slotContext) (float64, bool) {
			return sc.book.At(cellOilPerLitre)
		},
	},
	{
		row:      rowLabourCharge,
		label:    "LABOUR CHARGE",
		quantity: staticQuantity(models.MarkerRequired),
		rate:     tieredRate(rowLabourCharge),
		kind:     amountGated,
	},
	{
		row:      rowSealingKit,
		label:    "SEALING KIT",
		quantity: sealedTankMarker,
		rate:     tieredRate(rowSealingKit),
		kind:     amountGated,
	},

	{
		row:   rowHTRewind,
		label: "HT COIL REWINDING",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.htReplaced)
		},
		rate:        func(sc *slotContext) (float64, bool) { return htRewindBranch.resolve(sc) },
		kind:        amountChain,
		chainCount:  func(sc *slotContext) int { return sc.htReplaced },
		chainFactor: func(sc *slotContext) factor { return sc.coilsPerPhase },
	},
	{
		row:   rowLTRewind,
		label: "LT COIL REWINDING",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.ltReplaced)
		},
		rate: tieredRate(rowLTRewind),
	},
	{
		row:   rowCoilBrazing,
		label: "COIL BRAZING",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.htReplaced + sc.ltReplaced)
		},
		rate: tieredRate(rowCoilBrazing),
	},
	{
		row:      rowInsulationPaper,
		label:    "INSULATION PAPER SET",
		quantity: requirementQuantity(func(r models.TransformerRecord) string { return r.InsulatingMaterial }),
		rate:     tieredRate(rowInsulationPaper),
		kind:     amountGated,
	},
	{
		row:      rowInsideVarnish,
		label:    "INSIDE VARNISH",
		quantity: requirementQuantity(func(r models.TransformerRecord) string { return r.InsidePaint }),
		rate:     tieredRate(rowInsideVarnish),
		kind:     amountGated,
	},
	{
		row:   rowHTConductor,
		label: "HT CONDUCTOR MATERIAL",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.htReplaced)
		},
		rate:        func(sc *slotContext) (float64, bool) { return htConductorBranch.resolve(sc) },
		kind:        amountChain,
		chainCount:  func(sc *slotContext) int { return sc.htReplaced },
		chainFactor: func(sc *slotContext) factor { return sc.wtPerHTCoil },
	},
	{
		row:   rowLTConductor,
		label: "LT CONDUCTOR MATERIAL",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.ltReplaced)
		},
		rate:        func(sc *slotContext) (float64, bool) { return ltConductorBranch.resolve(sc) },
		kind:        amountChain,
		chainCount:  func(sc *slotContext) int { return sc.ltReplaced },
		chainFactor: func(sc *slotContext) factor { return sc.wtPerLTCoil },
	},
	{
		row:   rowCoilFormer,
		label: "COIL FORMER SET",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.htReplaced)
		},
		rate: tieredRate(rowCoilFormer),
	},
	{
		row:   rowInterlayerKit,
		label: "INTERLAYER INSULATION KIT",
		quantity: func(sc *slotContext) string {
			return strconv.Itoa(sc.ltReplaced)
		},
		rate: tieredRate(rowInterlayerKit),
	},
	{
		row:      rowOvenDrying,
		label:    "OVEN DRYING",
		quantity: staticQuantity(models.MarkerRequired),
		rate:     tieredRate(rowOvenDrying),
		kind:     amountGated,
	},
	{
		row:      rowTestingCharges,
		label:    "TESTING CHARGES",
		quantity: requirementQuantity(func(r models.TransformerRecord) string { return r.TestingCharges }),
		rate:     tieredRate(rowTestingCharges),
		kind:     amountGated,
	},
}

// gatedRows is the fixed row set the Reqd gate sweeps after per-item
// extraction; derived from the catalog so the two never drift apart.
var gatedRows = func() map[int]bool {
	rows := make(map[int]bool)
	for _, item := range catalog {
		if item.kind == amountGated {
			rows[item.row] = true
		}
	}
	return rows
}()
