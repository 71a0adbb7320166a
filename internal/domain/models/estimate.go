package models

import "time"

// EstimateLine is one computed rate-sheet line for a single transformer
// slot. Quantity stays a string because several catalog rows carry
// categorical tokens (Reqd/NR) instead of numbers.
type EstimateLine struct {
	Row      int     `json:"row"`
	Label    string  `json:"label"`
	Quantity string  `json:"quantity"`
	Rate     float64 `json:"rate"`
	HasRate  bool    `json:"hasRate"`
	Amount   float64 `json:"amount"`
}

// SlotEstimate is the full computed column block for one transformer.
type SlotEstimate struct {
	Record TransformerRecord `json:"record"`
	Lines  []EstimateLine    `json:"lines"`

	HTPhaseMarks [3]string `json:"htPhaseMarks"`
	LTPhaseMarks [3]string `json:"ltPhaseMarks"`

	FittingsSubtotal    float64 `json:"fittingsSubtotal"`
	ConsumablesSubtotal float64 `json:"consumablesSubtotal"`
	WorksTotal          float64 `json:"worksTotal"`
	CoilWorksTotal      float64 `json:"coilWorksTotal"`
	Total               float64 `json:"total"`
	Discount            float64 `json:"discount"`
	Net                 float64 `json:"net"`
	Surcharge           float64 `json:"surcharge"`
	GrandTotal          float64 `json:"grandTotal"`
}

// EstimateBatch groups the computed slots of one MR batch.
type EstimateBatch struct {
	MRNo  string         `json:"mrNo"`
	Slots []SlotEstimate `json:"slots"`
}

// EstimateAudit is the persisted trace of one compute-and-save run.
type EstimateAudit struct {
	MRNo        string    `bson:"mr_no" json:"mr_no"`
	JobNos      []string  `bson:"job_nos" json:"job_nos"`
	GrandTotals []float64 `bson:"grand_totals" json:"grand_totals"`
	BatchTotal  float64   `bson:"batch_total" json:"batch_total"`
	ComputedAt  time.Time `bson:"computed_at" json:"computed_at"`
}
