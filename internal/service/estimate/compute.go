package estimate

import (
	"go.uber.org/zap"

	"github.com/tcworkshop/estimator/internal/domain/models"
)

// Policy holds the batch-level pricing adjustments applied after the line
// items are priced.
type Policy struct {
	// Discount is a flat per-transformer deduction in currency units.
	Discount float64
	// SurchargePercent is applied to the net amount, e.g. 4 for 4%.
	SurchargePercent float64
}

// Engine prices transformer records against a rate book snapshot. It holds
// no mutable state, so pricing the same record twice yields the same
// estimate.
type Engine struct {
	book   *RateBook
	policy Policy
	logger *zap.Logger
}

// NewEngine builds a pricing engine over one rate book snapshot.
func NewEngine(book *RateBook, policy Policy, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{book: book, policy: policy, logger: logger}
}

// ComputeSlot prices one transformer record. Every catalog row always
// produces a line; missing or malformed inputs zero the affected amounts
// rather than failing the slot.
func (e *Engine) ComputeSlot(rec models.TransformerRecord) models.SlotEstimate {
	sc := newSlotContext(rec, e.book)

	lines := make([]models.EstimateLine, 0, len(catalog))
	for _, item := range catalog {
		lines = append(lines, e.priceLine(sc, item))
	}

	// The requirement gate sweeps the gated rows once more after pricing:
	// anything not explicitly marked Reqd carries a zero amount, whatever
	// its rate lookup produced.
	for i := range lines {
		if gatedRows[lines[i].Row] && !models.IsRequired(lines[i].Quantity) {
			lines[i].Amount = 0
		}
	}

	est := models.SlotEstimate{
		Record:       rec,
		Lines:        lines,
		HTPhaseMarks: rec.HTCoilPhases(),
		LTPhaseMarks: rec.LTCoilPhases(),
	}

	est.FittingsSubtotal = bandTotal(lines, fittingsBandStart, fittingsBandEnd)
	est.ConsumablesSubtotal = bandTotal(lines, consumablesBandStart, consumablesBandEnd)
	est.CoilWorksTotal = bandTotal(lines, coilBandStart, coilBandEnd)

	est.WorksTotal = round2(est.FittingsSubtotal + est.ConsumablesSubtotal)
	est.Total = round2(est.WorksTotal + est.CoilWorksTotal)
	est.Discount = round2(e.policy.Discount)
	est.Net = round2(est.Total - est.Discount)
	est.Surcharge = round2(est.Net * e.policy.SurchargePercent / 100)
	est.GrandTotal = round2(est.Net + est.Surcharge)

	return est
}

// ComputeBatch prices every record sharing one MR number.
func (e *Engine) ComputeBatch(mrNo string, records []models.TransformerRecord) models.EstimateBatch {
	batch := models.EstimateBatch{MRNo: mrNo, Slots: make([]models.SlotEstimate, 0, len(records))}
	for _, rec := range records {
		est := e.ComputeSlot(rec)
		e.logger.Debug("slot priced",
			zap.String("mrNo", mrNo),
			zap.String("jobNo", rec.JobNo),
			zap.Float64("grandTotal", est.GrandTotal))
		batch.Slots = append(batch.Slots, est)
	}
	return batch
}

func (e *Engine) priceLine(sc *slotContext, item lineItem) models.EstimateLine {
	line := models.EstimateLine{
		Row:      item.row,
		Label:    item.label,
		Quantity: item.quantity(sc),
	}
	line.Rate, line.HasRate = item.rate(sc)

	if !line.HasRate {
		return line
	}

	switch item.kind {
	case amountGated:
		if models.IsRequired(line.Quantity) {
			line.Amount = round2(line.Rate)
		}
	case amountChain:
		f := item.chainFactor(sc)
		if f.ok {
			line.Amount = round2(line.Rate * float64(item.chainCount(sc)) * f.value)
		}
	default:
		if qty, ok := parseAmount(line.Quantity); ok {
			line.Amount = round2(line.Rate * qty)
		}
	}

	return line
}

// bandTotal sums the rounded amounts of every line whose output row falls
// inside [start, end].
func bandTotal(lines []models.EstimateLine, start, end int) float64 {
	var total float64
	for _, line := range lines {
		if line.Row >= start && line.Row <= end {
			total += line.Amount
		}
	}
	return round2(total)
}
