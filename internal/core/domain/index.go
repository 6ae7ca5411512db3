package domain

import "math"

// SpatialRow is one geolocated sample in the flat spatial index. Rows are
// never mutated after creation; duplicates across files are expected since
// the index holds one row per sample point, not per file.
type SpatialRow struct {
	Mission     string
	Filename    string
	RecordIndex int
	Lat         float64
	Lon         float64
}

// IndexHeader is the column order of the persisted spatial index CSV.
var IndexHeader = []string{"mission", "filename", "record_index", "lat", "lon"}

// RoundCoord rounds a coordinate to 4 decimal places (~11 m of ground
// resolution), the precision/size tradeoff the index stores.
func RoundCoord(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Valid reports whether the row holds physically meaningful coordinates.
// Longitudes up to 360 are accepted since missions mix 0-360 and +/-180
// conventions; reconciliation happens at region-filter time.
func (r SpatialRow) Valid() bool {
	return r.Lat >= -90 && r.Lat <= 90 && r.Lon >= -180 && r.Lon <= 360
}
