package godocument

// Point-unit conversion helpers. The document model measures everything
// in typographic points: 1 inch = 72 pt, 1 twip = 1/20 pt,
// 1 EMU = 1/12700 pt.

const (
	pointsPerInch       = 72.0
	pointsPerCentimeter = 72.0 / 2.54
	pointsPerMillimeter = 72.0 / 25.4
	twipsPerPoint       = 20.0
	emuPerPoint         = 12700.0
)

// Inch converts inches to points.
func Inch(n float64) float64 {
	return n * pointsPerInch
}

// Centimeter converts centimeters to points.
func Centimeter(n float64) float64 {
	return n * pointsPerCentimeter
}

// Millimeter converts millimeters to points.
func Millimeter(n float64) float64 {
	return n * pointsPerMillimeter
}

// Twip converts twentieths of a point to points. Word file formats store
// most page and indent measurements in twips.
func Twip(n float64) float64 {
	return n / twipsPerPoint
}

// EMU converts English Metric Units to points. Drawing extents in Office
// formats are stored in EMU (914400 per inch).
func EMU(n int64) float64 {
	return float64(n) / emuPerPoint
}

// PointToInch converts points to inches.
func PointToInch(pt float64) float64 {
	return pt / pointsPerInch
}

// PointToTwip converts points to twips.
func PointToTwip(pt float64) float64 {
	return pt * twipsPerPoint
}

// PointToEMU converts points to EMU.
func PointToEMU(pt float64) int64 {
	return int64(pt * emuPerPoint)
}
