package domain

// CRS identifies the coordinate reference system a geometry's coordinates
// are expressed in. Spatial operations across collections are only meaningful
// when both sides carry the same CRS, so the tag is explicit everywhere and
// an unset tag is an error, never a silent default.
type CRS string

const (
	// CRSUnknown marks a collection whose reference system could not be
	// determined. Harmonization skips such collections.
	CRSUnknown CRS = ""

	// CRSETRS89UTM33 (EPSG:25833) is the meters-based projected system used
	// for all Berlin geodata. Every harmonized geometry ends up here.
	CRSETRS89UTM33 CRS = "EPSG:25833"

	// CRSWGS84 (EPSG:4326) is the geographic lat/lon system used by
	// OpenStreetMap and most web services.
	CRSWGS84 CRS = "EPSG:4326"
)

// TargetCRS is the single projected CRS every dataset is harmonized into.
const TargetCRS = CRSETRS89UTM33

// IsKnown reports whether the CRS is one of the supported reference systems.
func (c CRS) IsKnown() bool {
	return c == CRSETRS89UTM33 || c == CRSWGS84
}

func (c CRS) String() string {
	if c == CRSUnknown {
		return "unknown"
	}
	return string(c)
}
