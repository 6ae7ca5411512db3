package domain

import (
	"strings"
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestMatchLPRecords(t *testing.T) {
	m, _ := MissionByFolder("Moon")

	recs := m.MatchRecords([]string{
		"1998_016_grs.xml",
		"1998_016_grs.dat",
		"1998_016_grs.lbl",
	})

	if len(recs) != 1 {
		t.Fatalf("MatchRecords() returned %d records, expected 1", len(recs))
	}
	r := recs[0]
	if !r.DateStart.Equal(date(1998, 1, 16)) || !r.DateEnd.Equal(date(1998, 1, 16)) {
		t.Errorf("dates = %v..%v, expected 1998-01-16", r.DateStart, r.DateEnd)
	}
	if len(r.Files) != 2 || !strings.HasSuffix(r.Files[0], ".xml") || !strings.HasSuffix(r.Files[1], ".dat") {
		t.Errorf("files = %v, expected [.xml .dat]", r.Files)
	}
}

func TestMatchLPRecordsSkipsUnpaired(t *testing.T) {
	m, _ := MissionByFolder("Moon")

	tests := []struct {
		name  string
		hrefs []string
	}{
		{"no data partner", []string{"1998_016_grs.xml"}},
		{"no pattern in stem", []string{"readme.xml", "readme.dat"}},
		{"day of year out of range", []string{"1998_400_grs.xml", "1998_400_grs.dat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if recs := m.MatchRecords(tt.hrefs); len(recs) != 0 {
				t.Errorf("MatchRecords(%v) = %v, expected none", tt.hrefs, recs)
			}
		})
	}
}

func TestMatchDawnRecords(t *testing.T) {
	m, _ := MissionByFolder("Ceres")

	recs := m.MatchRecords([]string{
		"dawn_150312-150401.xml",
		"dawn_150312-150401.tab",
		"random.txt",
	})

	if len(recs) != 1 {
		t.Fatalf("MatchRecords() returned %d records, expected 1", len(recs))
	}
	r := recs[0]
	if r.Key != "dawn_150312-150401" {
		t.Errorf("key = %q", r.Key)
	}
	if !r.DateStart.Equal(date(2015, 3, 12)) {
		t.Errorf("DateStart = %v, expected 2015-03-12", r.DateStart)
	}
	if !r.DateEnd.Equal(date(2015, 4, 1)) {
		t.Errorf("DateEnd = %v, expected 2015-04-01", r.DateEnd)
	}
	if len(r.Files) != 2 {
		t.Errorf("files = %v, expected label and data", r.Files)
	}
}

func TestMatchMSLRecords(t *testing.T) {
	m, _ := MissionByFolder("Mars")

	recs := m.MatchRecords([]string{
		"sol00001.dat",
		"sol00001.xml",
		"junk.txt",
	})

	if len(recs) != 1 {
		t.Fatalf("MatchRecords() returned %d records, expected 1", len(recs))
	}
	r := recs[0]
	if !strings.HasSuffix(r.Files[0], ".xml") || !strings.HasSuffix(r.Files[1], ".dat") {
		t.Errorf("files = %v, expected label first", r.Files)
	}
	// MSL dates are the fixed landing-date placeholder.
	if !r.DateStart.Equal(date(2012, 8, 6)) || !r.DateEnd.Equal(date(2012, 8, 6)) {
		t.Errorf("dates = %v..%v, expected 2012-08-06", r.DateStart, r.DateEnd)
	}
}

func TestMissionByChoice(t *testing.T) {
	tests := []struct {
		choice string
		code   string
		ok     bool
	}{
		{"1", "LP", true},
		{"2", "DAWN", true},
		{"3", "MSL", true},
		{" 2 ", "DAWN", true},
		{"0", "", false},
		{"4", "", false},
		{"x", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		m, ok := MissionByChoice(tt.choice)
		if ok != tt.ok {
			t.Errorf("MissionByChoice(%q) ok = %v, expected %v", tt.choice, ok, tt.ok)
			continue
		}
		if ok && m.Code != tt.code {
			t.Errorf("MissionByChoice(%q) = %s, expected %s", tt.choice, m.Code, tt.code)
		}
	}
}
