package pds

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeField extracts one scalar from a record slice. Character fields that
// are blank decode to NaN rather than an error; corrupted samples are
// filtered downstream.
func decodeField(rec []byte, f fieldDef) (float64, error) {
	start := f.Location - 1
	if start < 0 || start+f.Length > len(rec) {
		return 0, fmt.Errorf("field %s at %d+%d overruns record of %d bytes",
			f.Name, f.Location, f.Length, len(rec))
	}
	raw := rec[start : start+f.Length]

	if strings.HasPrefix(f.DataType, "ASCII") {
		s := strings.TrimSpace(string(raw))
		if s == "" {
			return math.NaN(), nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), nil
		}
		return v, nil
	}

	switch f.DataType {
	case "IEEE754MSBDouble":
		return math.Float64frombits(binary.BigEndian.Uint64(raw)), nil
	case "IEEE754MSBSingle":
		return float64(math.Float32frombits(binary.BigEndian.Uint32(raw))), nil
	case "IEEE754LSBDouble":
		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	case "IEEE754LSBSingle":
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case "SignedMSB8":
		return float64(int64(binary.BigEndian.Uint64(raw))), nil
	case "SignedMSB4":
		return float64(int32(binary.BigEndian.Uint32(raw))), nil
	case "SignedMSB2":
		return float64(int16(binary.BigEndian.Uint16(raw))), nil
	case "UnsignedMSB8":
		return float64(binary.BigEndian.Uint64(raw)), nil
	case "UnsignedMSB4":
		return float64(binary.BigEndian.Uint32(raw)), nil
	case "UnsignedMSB2":
		return float64(binary.BigEndian.Uint16(raw)), nil
	case "SignedLSB4":
		return float64(int32(binary.LittleEndian.Uint32(raw))), nil
	case "SignedLSB2":
		return float64(int16(binary.LittleEndian.Uint16(raw))), nil
	case "UnsignedLSB4":
		return float64(binary.LittleEndian.Uint32(raw)), nil
	case "UnsignedLSB2":
		return float64(binary.LittleEndian.Uint16(raw)), nil
	case "SignedByte":
		return float64(int8(raw[0])), nil
	case "UnsignedByte":
		return float64(raw[0]), nil
	}
	return 0, fmt.Errorf("unsupported data type %q for field %s", f.DataType, f.Name)
}

// decodeGroup extracts a repeating group (one spectrum) from a record. The
// per-repetition stride is the group length divided by its repetitions.
func decodeGroup(rec []byte, g groupDef) ([]float64, error) {
	fields := g.fields()
	if len(fields) == 0 || g.Repetitions <= 0 {
		return nil, fmt.Errorf("group %s has no usable fields", g.Name)
	}
	stride := g.Length / g.Repetitions
	if stride <= 0 {
		stride = fields[0].Length
	}

	base := g.Location - 1
	out := make([]float64, 0, g.Repetitions)
	for i := 0; i < g.Repetitions; i++ {
		f := fields[0]
		shifted := fieldDef{
			Name:     f.Name,
			Location: base + i*stride + f.Location,
			Length:   f.Length,
			DataType: f.DataType,
		}
		v, err := decodeField(rec, shifted)
		if err != nil {
			return nil, fmt.Errorf("group %s repetition %d: %w", g.Name, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
