package models

import "strings"

// The master sheet stores categorical facts as short string markers typed
// by the inspection operator. Parsers below are lenient: they trim, ignore
// case and fall back to the documented default category, mirroring the
// behaviour the workshop relies on for half-filled records.

// WindingMaterial identifies the coil conductor material.
type WindingMaterial string

const (
	WindingCopper    WindingMaterial = "CU"
	WindingAluminium WindingMaterial = "AL"
)

// ParseWinding maps the CU/ALU cell to a winding material. Anything that is
// not recognisably aluminium is treated as copper.
func ParseWinding(value string) WindingMaterial {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "AL", "ALU", "ALUMINIUM":
		return WindingAluminium
	default:
		return WindingCopper
	}
}

// ConstructionType identifies the coil insulation treatment.
type ConstructionType string

const (
	ConstructionSE  ConstructionType = "SE"
	ConstructionDPC ConstructionType = "DPC"
)

// ParseConstruction maps the SE/DPC cell; default is SE.
func ParseConstruction(value string) ConstructionType {
	if strings.EqualFold(strings.TrimSpace(value), "DPC") {
		return ConstructionDPC
	}
	return ConstructionSE
}

// SealType distinguishes bolted from sealed tanks. The physical form
// records a single letter in the B/S column.
type SealType string

const (
	SealBolted SealType = "Bolted"
	SealSealed SealType = "Sealed"
)

// ParseSeal maps the B/S cell; "B" means bolted, everything else sealed.
func ParseSeal(value string) SealType {
	if strings.EqualFold(strings.TrimSpace(value), "B") {
		return SealBolted
	}
	return SealSealed
}

const (
	// MarkerRequired is the literal the forms write for a required line.
	MarkerRequired = "Reqd"
	// MarkerNotRequired is its counterpart.
	MarkerNotRequired = "NR"
	// MarkerReplace flags a coil phase that needs rewinding.
	MarkerReplace = "R"
)

// IsRequired reports whether a quantity cell carries the Reqd flag.
// The comparison ignores case and surrounding whitespace.
func IsRequired(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), MarkerRequired)
}

// IsReplaceMarker reports whether a coil phase cell carries the R marker.
func IsReplaceMarker(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), MarkerReplace)
}
