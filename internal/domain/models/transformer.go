package models

import "strings"

// Legacy master-sheet column offsets (0-based). The desktop tool this
// service replaced addressed every field by raw position inside one wide
// row; the table below is the single place that knows those positions.
const (
	ColDivision = 0
	ColTruckNo  = 1
	ColMRNo     = 2
	ColLotNo    = 3
	ColLotDate  = 4
	ColTCNo     = 5
	ColMake     = 6
	ColCapacity = 7
	ColJobNo    = 8

	// Physical inspection block, sheet columns J..AD.
	ColPhysicalDate  = 9
	ColHTBushing     = 10
	ColHTMetalPart   = 11
	ColHTConnector   = 12
	ColLTBushing     = 13
	ColLTMetalPart   = 14
	ColLTConnector   = 15
	ColGaugeGlass    = 16
	ColOilAsPerNP    = 17
	ColOilPosition   = 18
	ColOutsidePaint  = 19
	ColBoltNuts      = 20
	ColRodGasket     = 21
	ColTopGasket     = 22
	ColNamePlate     = 23
	ColBreather      = 24
	ColLabourCharge  = 25
	ColSealMark      = 26
	ColConservator   = 27
	ColRadiators     = 28
	ColPhysicalNotes = 29

	// Internal inspection block, sheet columns AE..AU.
	ColInternalDate       = 30
	ColHTCoilA            = 31
	ColHTCoilB            = 32
	ColHTCoilC            = 33
	ColLTCoilA            = 34
	ColLTCoilB            = 35
	ColLTCoilC            = 36
	ColCoilsPerPhase      = 37
	ColWindingMaterial    = 38
	ColWtHTCoils          = 39
	ColWtLTCoils          = 40
	ColWasherRings        = 41
	ColInsidePaint        = 42
	ColInsulatingMaterial = 43
	ColTestingCharges     = 44
	ColCoilConstruction   = 45
	ColInternalNotes      = 46

	// Testing block, sheet columns AV..BJ.
	ColTestingDate = 47
	ColTestingEnd  = 61

	// MasterHeaderRows is the number of header rows preceding data.
	MasterHeaderRows = 2
)

// TransformerRecord is one master-sheet row with every field the estimate
// engine consumes, addressed by name instead of raw offset.
type TransformerRecord struct {
	Division string `json:"division"`
	TruckNo  string `json:"truckNo"`
	MRNo     string `json:"mrNo"`
	LotNo    string `json:"lotNo"`
	LotDate  string `json:"lotDate"`
	SerialNo string `json:"serialNo"`
	Make     string `json:"make"`
	Capacity string `json:"capacity"`
	JobNo    string `json:"jobNo"`

	// Physical inspection.
	HTBushing    string `json:"htBushing"`
	HTMetalPart  string `json:"htMetalPart"`
	HTConnector  string `json:"htConnector"`
	LTBushing    string `json:"ltBushing"`
	LTMetalPart  string `json:"ltMetalPart"`
	LTConnector  string `json:"ltConnector"`
	GaugeGlass   string `json:"gaugeGlass"`
	OilAsPerNP   string `json:"oilAsPerNP"`
	OilPosition  string `json:"oilPosition"`
	OutsidePaint string `json:"outsidePaint"`
	BoltNuts     string `json:"boltNuts"`
	RodGasket    string `json:"rodGasket"`
	TopGasket    string `json:"topGasket"`
	NamePlate    string `json:"namePlate"`
	Breather     string `json:"breather"`
	LabourCharge string `json:"labourCharge"`
	SealMark     string `json:"sealMark"`
	Conservator  string `json:"conservator"`
	Radiators    string `json:"radiators"`

	// Internal inspection.
	HTCoilA            string `json:"htCoilA"`
	HTCoilB            string `json:"htCoilB"`
	HTCoilC            string `json:"htCoilC"`
	LTCoilA            string `json:"ltCoilA"`
	LTCoilB            string `json:"ltCoilB"`
	LTCoilC            string `json:"ltCoilC"`
	CoilsPerPhase      string `json:"coilsPerPhase"`
	WindingMark        string `json:"windingMark"`
	WtHTCoils          string `json:"wtHTCoils"`
	WtLTCoils          string `json:"wtLTCoils"`
	WasherRings        string `json:"washerRings"`
	InsidePaint        string `json:"insidePaint"`
	InsulatingMaterial string `json:"insulatingMaterial"`
	TestingCharges     string `json:"testingCharges"`
	ConstructionMark   string `json:"constructionMark"`
}

// NewTransformerRecord maps a raw master-sheet row into a named record.
// Offsets past the end of the row resolve to the empty string; a half
// filled record is a normal state, never an error.
func NewTransformerRecord(row []string) TransformerRecord {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	return TransformerRecord{
		Division: cell(ColDivision),
		TruckNo:  cell(ColTruckNo),
		MRNo:     cell(ColMRNo),
		LotNo:    cell(ColLotNo),
		LotDate:  cell(ColLotDate),
		SerialNo: cell(ColTCNo),
		Make:     cell(ColMake),
		Capacity: cell(ColCapacity),
		JobNo:    cell(ColJobNo),

		HTBushing:    cell(ColHTBushing),
		HTMetalPart:  cell(ColHTMetalPart),
		HTConnector:  cell(ColHTConnector),
		LTBushing:    cell(ColLTBushing),
		LTMetalPart:  cell(ColLTMetalPart),
		LTConnector:  cell(ColLTConnector),
		GaugeGlass:   cell(ColGaugeGlass),
		OilAsPerNP:   cell(ColOilAsPerNP),
		OilPosition:  cell(ColOilPosition),
		OutsidePaint: cell(ColOutsidePaint),
		BoltNuts:     cell(ColBoltNuts),
		RodGasket:    cell(ColRodGasket),
		TopGasket:    cell(ColTopGasket),
		NamePlate:    cell(ColNamePlate),
		Breather:     cell(ColBreather),
		LabourCharge: cell(ColLabourCharge),
		SealMark:     cell(ColSealMark),
		Conservator:  cell(ColConservator),
		Radiators:    cell(ColRadiators),

		HTCoilA:            cell(ColHTCoilA),
		HTCoilB:            cell(ColHTCoilB),
		HTCoilC:            cell(ColHTCoilC),
		LTCoilA:            cell(ColLTCoilA),
		LTCoilB:            cell(ColLTCoilB),
		LTCoilC:            cell(ColLTCoilC),
		CoilsPerPhase:      cell(ColCoilsPerPhase),
		WindingMark:        cell(ColWindingMaterial),
		WtHTCoils:          cell(ColWtHTCoils),
		WtLTCoils:          cell(ColWtLTCoils),
		WasherRings:        cell(ColWasherRings),
		InsidePaint:        cell(ColInsidePaint),
		InsulatingMaterial: cell(ColInsulatingMaterial),
		TestingCharges:     cell(ColTestingCharges),
		ConstructionMark:   cell(ColCoilConstruction),
	}
}

// Winding returns the parsed winding material.
func (r TransformerRecord) Winding() WindingMaterial {
	return ParseWinding(r.WindingMark)
}

// Construction returns the parsed coil construction type.
func (r TransformerRecord) Construction() ConstructionType {
	return ParseConstruction(r.ConstructionMark)
}

// Seal returns the parsed tank seal type.
func (r TransformerRecord) Seal() SealType {
	return ParseSeal(r.SealMark)
}

// HTCoilPhases returns the three HT coil phase cells in A, B, C order.
func (r TransformerRecord) HTCoilPhases() [3]string {
	return [3]string{r.HTCoilA, r.HTCoilB, r.HTCoilC}
}

// LTCoilPhases returns the three LT coil phase cells in A, B, C order.
func (r TransformerRecord) LTCoilPhases() [3]string {
	return [3]string{r.LTCoilA, r.LTCoilB, r.LTCoilC}
}
