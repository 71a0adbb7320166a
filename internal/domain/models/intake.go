package models

// UnitIdentity is the per-transformer identity captured when a lot is
// registered (sheet columns F..I).
type UnitIdentity struct {
	SerialNo string `json:"serialNo" binding:"required"`
	Make     string `json:"make"`
	Capacity string `json:"capacity"`
	JobNo    string `json:"jobNo" binding:"required"`
}

// Lot is one delivery of transformers sharing a manifest (MR) number.
type Lot struct {
	Division string         `json:"division" binding:"required"`
	TruckNo  string         `json:"truckNo"`
	MRNo     string         `json:"mrNo" binding:"required"`
	LotNo    string         `json:"lotNo" binding:"required"`
	Date     string         `json:"date"`
	Units    []UnitIdentity `json:"units" binding:"required,min=1"`
}

// PhysicalInspection carries the physical form fields in the fixed order
// of master-sheet columns J..AD.
type PhysicalInspection struct {
	Date         string `json:"date"`
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
	Remarks      string `json:"remarks"`
}

// Row returns the block in sheet column order.
func (p PhysicalInspection) Row() []interface{} {
	return []interface{}{
		p.Date,
		p.HTBushing, p.HTMetalPart, p.HTConnector,
		p.LTBushing, p.LTMetalPart, p.LTConnector,
		p.GaugeGlass, p.OilAsPerNP, p.OilPosition, p.OutsidePaint,
		p.BoltNuts, p.RodGasket, p.TopGasket, p.NamePlate,
		p.Breather, p.LabourCharge, p.SealMark, p.Conservator,
		p.Radiators, p.Remarks,
	}
}

// InternalInspection carries the internal form fields in the fixed order
// of master-sheet columns AE..AU.
type InternalInspection struct {
	Date               string `json:"date"`
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
	Remarks            string `json:"remarks"`
}

// Row returns the block in sheet column order.
func (i InternalInspection) Row() []interface{} {
	return []interface{}{
		i.Date,
		i.HTCoilA, i.HTCoilB, i.HTCoilC,
		i.LTCoilA, i.LTCoilB, i.LTCoilC,
		i.CoilsPerPhase, i.WindingMark,
		i.WtHTCoils, i.WtLTCoils, i.WasherRings,
		i.InsidePaint, i.InsulatingMaterial, i.TestingCharges,
		i.ConstructionMark, i.Remarks,
	}
}

// TestingReport carries the testing form fields in the fixed order of
// master-sheet columns AV..BJ.
type TestingReport struct {
	Date          string `json:"date"`
	HVToE         string `json:"hvToE"`
	LVToE         string `json:"lvToE"`
	HVToLV        string `json:"hvToLV"`
	NoLoadVolts   string `json:"noLoadVolts"`
	NoLoadAmps    string `json:"noLoadAmps"`
	NoLoadWatts   string `json:"noLoadWatts"`
	FullLoadVolts string `json:"fullLoadVolts"`
	FullLoadAmps  string `json:"fullLoadAmps"`
	FullLoadWatts string `json:"fullLoadWatts"`
	InducedOV     string `json:"inducedOV"`
	HVTest        string `json:"hvTest"`
	OilTest       string `json:"oilTest"`
	NoLoadRatio   string `json:"noLoadRatio"`
	Remarks       string `json:"remarks"`
}

// Row returns the block in sheet column order.
func (t TestingReport) Row() []interface{} {
	return []interface{}{
		t.Date,
		t.HVToE, t.LVToE, t.HVToLV,
		t.NoLoadVolts, t.NoLoadAmps, t.NoLoadWatts,
		t.FullLoadVolts, t.FullLoadAmps, t.FullLoadWatts,
		t.InducedOV, t.HVTest, t.OilTest, t.NoLoadRatio,
		t.Remarks,
	}
}
