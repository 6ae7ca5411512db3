// Package pds reads PDS4 observational products: an XML label describing a
// fixed-width table plus the sibling data file it points at. Only the table
// subset the supported missions use is handled, not the full PDS4 schema.
package pds

import (
	"encoding/xml"
	"fmt"
	"os"
)

// label mirrors the slice of Product_Observational we care about. Namespace
// prefixes are ignored; element local names are stable across missions.
type label struct {
	XMLName  xml.Name
	FileArea fileArea `xml:"File_Area_Observational"`
}

type fileArea struct {
	File      fileRef `xml:"File"`
	TableChar *table  `xml:"Table_Character"`
	TableBin  *table  `xml:"Table_Binary"`
}

type fileRef struct {
	FileName string `xml:"file_name"`
}

type table struct {
	Offset  int64      `xml:"offset"`
	Records int        `xml:"records"`
	RecChar *recordDef `xml:"Record_Character"`
	RecBin  *recordDef `xml:"Record_Binary"`
}

type recordDef struct {
	Length     int        `xml:"record_length"`
	FieldsChar []fieldDef `xml:"Field_Character"`
	FieldsBin  []fieldDef `xml:"Field_Binary"`
	GroupsChar []groupDef `xml:"Group_Field_Character"`
	GroupsBin  []groupDef `xml:"Group_Field_Binary"`
}

type fieldDef struct {
	Name     string `xml:"name"`
	Location int    `xml:"field_location"`
	Length   int    `xml:"field_length"`
	DataType string `xml:"data_type"`
}

type groupDef struct {
	Name        string     `xml:"name"`
	Repetitions int        `xml:"repetitions"`
	Location    int        `xml:"group_location"`
	Length      int        `xml:"group_length"`
	FieldsChar  []fieldDef `xml:"Field_Character"`
	FieldsBin   []fieldDef `xml:"Field_Binary"`
}

func (r *recordDef) fields() []fieldDef {
	if len(r.FieldsChar) > 0 {
		return r.FieldsChar
	}
	return r.FieldsBin
}

func (r *recordDef) groups() []groupDef {
	if len(r.GroupsChar) > 0 {
		return r.GroupsChar
	}
	return r.GroupsBin
}

func (g *groupDef) fields() []fieldDef {
	if len(g.FieldsChar) > 0 {
		return g.FieldsChar
	}
	return g.FieldsBin
}

func (t *table) record() *recordDef {
	if t.RecChar != nil {
		return t.RecChar
	}
	return t.RecBin
}

func readLabel(path string) (*label, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label: %w", err)
	}
	var lbl label
	if err := xml.Unmarshal(raw, &lbl); err != nil {
		return nil, fmt.Errorf("failed to parse label %s: %w", path, err)
	}
	return &lbl, nil
}
