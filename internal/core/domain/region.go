package domain

// Region is a named bounding box plus rendering parameters. Regions are
// static configuration, not derived data.
type Region struct {
	Name        string  `yaml:"name"`
	LatMin      float64 `yaml:"lat_min"`
	LatMax      float64 `yaml:"lat_max"`
	LonMin      float64 `yaml:"lon_min"`
	LonMax      float64 `yaml:"lon_max"`
	Downsample  int     `yaml:"downsample"`
	MeshRes     int     `yaml:"mesh_res"`
	Description string  `yaml:"description"`
}

// Contains reports whether a coordinate falls inside the region. The
// longitude check is doubled by +360 so that rows stored in either the
// 0-360 or the +/-180 convention match without normalizing stored data.
func (r Region) Contains(lat, lon float64) bool {
	if lat < r.LatMin || lat > r.LatMax {
		return false
	}
	if lon >= r.LonMin && lon <= r.LonMax {
		return true
	}
	return lon >= r.LonMin+360 && lon <= r.LonMax+360
}

// Filter selects the index rows inside the region, then decimates by the
// region's downsample stride. Stride decimation trades spatial fidelity for
// render performance; it is not area-weighted.
func (r Region) Filter(rows []SpatialRow) []SpatialRow {
	var boxed []SpatialRow
	for _, row := range rows {
		if r.Contains(row.Lat, row.Lon) {
			boxed = append(boxed, row)
		}
	}
	stride := r.Downsample
	if stride <= 1 {
		return boxed
	}
	var out []SpatialRow
	for i := 0; i < len(boxed); i += stride {
		out = append(out, boxed[i])
	}
	return out
}

// BuiltinRegions returns the stock lunar regions. Config may append more.
func BuiltinRegions() []Region {
	return []Region{
		{
			Name:   "Global Overview",
			LatMin: -90, LatMax: 90, LonMin: -180, LonMax: 360,
			Downsample: 100, MeshRes: 48,
			Description: "The entire lunar surface.",
		},
		{
			Name:   "Lunar South Pole",
			LatMin: -90, LatMax: -65, LonMin: -180, LonMax: 360,
			Downsample: 10, MeshRes: 64,
			Description: "Artemis target area. Investigating hydrogen signatures for water ice.",
		},
		{
			Name:   "Procellarum KREEP Terrane",
			LatMin: 0, LatMax: 50, LonMin: -75, LonMax: -10,
			Downsample: 10, MeshRes: 64,
			Description: "High radioactivity region enriched in Potassium, Rare Earth Elements, and Phosphorus.",
		},
		{
			Name:   "Mare Tranquillitatis",
			LatMin: 0, LatMax: 25, LonMin: 20, LonMax: 45,
			Downsample: 10, MeshRes: 64,
			Description: "Apollo 11 landing site.",
		},
	}
}

// RegionByName finds a region in a list, by exact name.
func RegionByName(regions []Region, name string) (Region, bool) {
	for _, r := range regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}
