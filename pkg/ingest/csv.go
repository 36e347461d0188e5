package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// header index for one CSV file, keyed by lowercased column name.
type header map[string]int

func readHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) str(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) float(row []string, name string, def float64) (float64, error) {
	s := h.str(row, name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}

// LoadComponentsCSV reads component records from a headered CSV file.
// Recognized columns: id, tag, type, x, y, width, height, rotation,
// material, rating, size. Column order is free; missing optional columns
// take their defaults.
func LoadComponentsCSV(path string) ([]ComponentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open components csv: %w", err)
	}
	defer f.Close()
	return ReadComponents(f)
}

// ReadComponents reads component records from headered CSV data.
func ReadComponents(r io.Reader) ([]ComponentRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read components header: %w", err)
	}
	h := readHeader(head)
	if _, ok := h["id"]; !ok {
		return nil, fmt.Errorf("components csv: missing id column")
	}

	var out []ComponentRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("components csv line %d: %w", line, err)
		}

		rec := ComponentRecord{
			ID:       h.str(row, "id"),
			Tag:      h.str(row, "tag"),
			Type:     h.str(row, "type"),
			Material: h.str(row, "material"),
			Rating:   h.str(row, "rating"),
			Size:     h.str(row, "size"),
		}
		for _, col := range []struct {
			name string
			dst  *float64
			def  float64
		}{
			{"x", &rec.X, 0},
			{"y", &rec.Y, 0},
			{"width", &rec.Width, 40},
			{"height", &rec.Height, 40},
			{"rotation", &rec.Rotation, 0},
		} {
			v, err := h.float(row, col.name, col.def)
			if err != nil {
				return nil, fmt.Errorf("components csv line %d: %w", line, err)
			}
			*col.dst = v
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadPipesCSV reads pipe records from a headered CSV file. Recognized
// columns: pipe_no, label, line_type, from_component, from_port,
// to_component, to_port, polyline.
func LoadPipesCSV(path string) ([]PipeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pipes csv: %w", err)
	}
	defer f.Close()
	return ReadPipes(f)
}

// ReadPipes reads pipe records from headered CSV data.
func ReadPipes(r io.Reader) ([]PipeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read pipes header: %w", err)
	}
	h := readHeader(head)
	if _, ok := h["pipe_no"]; !ok {
		return nil, fmt.Errorf("pipes csv: missing pipe_no column")
	}

	var out []PipeRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pipes csv line %d: %w", line, err)
		}

		out = append(out, PipeRecord{
			PipeNo:        h.str(row, "pipe_no"),
			Label:         h.str(row, "label"),
			LineType:      h.str(row, "line_type"),
			FromComponent: h.str(row, "from_component"),
			FromPort:      h.str(row, "from_port"),
			ToComponent:   h.str(row, "to_component"),
			ToPort:        h.str(row, "to_port"),
			Polyline:      h.str(row, "polyline"),
		})
	}
	return out, nil
}
