package domain

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Mission describes one supported PDS archive: where its directory listing
// lives, how label/data pairs are named, and where downloads land locally.
type Mission struct {
	Code      string
	Label     string
	BaseURL   string
	Folder    string
	DateRange string
	// RadiusKm is the mean body radius, used to project index rows onto a
	// sphere for the globe view.
	RadiusKm float64
}

var (
	lpPattern   = regexp.MustCompile(`(?i)(\d{4})_(\d{3})_grs`)
	dawnPattern = regexp.MustCompile(`(\d{6})-(\d{6})`)
	mslPattern  = regexp.MustCompile(`(?i)sol(\d{5})`)
)

// mslLandingDate stands in for every MSL record date. Sol-to-calendar
// conversion is not computed, so date filtering is approximate for MSL.
var mslLandingDate = time.Date(2012, 8, 6, 0, 0, 0, 0, time.UTC)

var missions = []Mission{
	{
		Code:      "LP",
		Label:     "Lunar Prospector GRS",
		BaseURL:   "https://pds-geosciences.wustl.edu/lunar/lp-l-grs-3-rdr-v1/lp_2xxx/grs/",
		Folder:    "Moon",
		DateRange: "1998-01-16 to 1999-07-28",
		RadiusKm:  1737.4,
	},
	{
		Code:      "DAWN",
		Label:     "DAWN GRaND Ceres",
		BaseURL:   "https://sbnarchive.psi.edu/pds4/dawn/grand/dawn-grand-ceres_1.0/data_calibrated/",
		Folder:    "Ceres",
		DateRange: "2015-03-12 to 2018-11-01",
		RadiusKm:  469.7,
	},
	{
		Code:      "MSL",
		Label:     "Mars Curiosity (DAN/GRS)",
		BaseURL:   "https://pds-geosciences.wustl.edu/msl/msl-m-dan-2-edr-v1/data/",
		Folder:    "Mars",
		DateRange: "2012-08-06 to present",
		RadiusKm:  3389.5,
	},
}

// Missions returns the supported missions in menu order.
func Missions() []Mission {
	out := make([]Mission, len(missions))
	copy(out, missions)
	return out
}

// MissionByChoice resolves a 1-based menu choice ("1".."3").
func MissionByChoice(choice string) (Mission, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > len(missions) {
		return Mission{}, false
	}
	return missions[n-1], true
}

// MissionByFolder resolves a mission from its local folder name ("Moon",
// "Ceres", "Mars").
func MissionByFolder(folder string) (Mission, bool) {
	for _, m := range missions {
		if strings.EqualFold(m.Folder, folder) {
			return m, true
		}
	}
	return Mission{}, false
}

// MatchRecords pairs label and data files out of a raw directory listing
// according to the mission's naming convention. Entries that have no
// recognizable pattern or no partner file are skipped, which is the policy
// for archive listings that mix products we do not handle.
func (m Mission) MatchRecords(hrefs []string) []Record {
	switch m.Code {
	case "LP":
		return matchLP(hrefs)
	case "DAWN":
		return matchDawn(hrefs)
	case "MSL":
		return matchMSL(hrefs)
	}
	return nil
}

func stemOf(href string) string {
	base := path.Base(href)
	return strings.TrimSuffix(base, path.Ext(base))
}

func indexByStem(hrefs []string, ext string) map[string]string {
	out := make(map[string]string)
	for _, h := range hrefs {
		if strings.HasSuffix(strings.ToLower(h), ext) {
			out[strings.ToLower(stemOf(h))] = h
		}
	}
	return out
}

func matchLP(hrefs []string) []Record {
	dats := indexByStem(hrefs, ".dat")
	var recs []Record
	for _, h := range hrefs {
		if !strings.HasSuffix(strings.ToLower(h), ".xml") {
			continue
		}
		stem := stemOf(h)
		gr := lpPattern.FindStringSubmatch(stem)
		if gr == nil {
			continue
		}
		dat, ok := dats[strings.ToLower(stem)]
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(gr[1])
		doy, _ := strconv.Atoi(gr[2])
		if doy < 1 || doy > 366 {
			continue
		}
		d := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, doy-1)
		recs = append(recs, Record{
			Key:       stem,
			DateStart: d,
			DateEnd:   d,
			Files:     []string{h, dat},
		})
	}
	return recs
}

func matchDawn(hrefs []string) []Record {
	tabs := indexByStem(hrefs, ".tab")
	var recs []Record
	for _, h := range hrefs {
		if !strings.HasSuffix(strings.ToLower(h), ".xml") {
			continue
		}
		stem := stemOf(h)
		gr := dawnPattern.FindStringSubmatch(stem)
		if gr == nil {
			continue
		}
		tab, ok := tabs[strings.ToLower(stem)]
		if !ok {
			continue
		}
		d0, err0 := time.Parse("060102", gr[1])
		d1, err1 := time.Parse("060102", gr[2])
		if err0 != nil || err1 != nil || d1.Before(d0) {
			continue
		}
		recs = append(recs, Record{
			Key:       stem,
			DateStart: d0,
			DateEnd:   d1,
			Files:     []string{h, tab},
		})
	}
	return recs
}

func matchMSL(hrefs []string) []Record {
	xmls := indexByStem(hrefs, ".xml")
	var recs []Record
	for _, h := range hrefs {
		lower := strings.ToLower(h)
		if !strings.HasSuffix(lower, ".dat") && !strings.HasSuffix(lower, ".tab") {
			continue
		}
		stem := stemOf(h)
		if mslPattern.FindStringSubmatch(stem) == nil {
			continue
		}
		label, ok := xmls[strings.ToLower(stem)]
		if !ok {
			continue
		}
		recs = append(recs, Record{
			Key:       stem,
			DateStart: mslLandingDate,
			DateEnd:   mslLandingDate,
			Files:     []string{label, h},
		})
	}
	return recs
}
