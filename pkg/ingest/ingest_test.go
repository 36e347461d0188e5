package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/pnid-engine/pkg/config"
	"github.com/dd0wney/pnid-engine/pkg/model"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadComponentsCSV(t *testing.T) {
	path := writeFixture(t, "components.csv", strings.Join([]string{
		"id,tag,type,x,y,width,height,rotation,material,rating,size",
		"P-101,P-101,pump,100,200,60,60,0,CS,150#,4\"",
		"FT-101,FT-101,instrument,300,150,,,90,,,",
	}, "\n"))

	recs, err := LoadComponentsCSV(path)
	if err != nil {
		t.Fatalf("LoadComponentsCSV: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ID != "P-101" || recs[0].Width != 60 || recs[0].Material != "CS" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].Width != 40 || recs[1].Height != 40 {
		t.Errorf("empty width/height should default to 40, got %+v", recs[1])
	}
	if recs[1].Rotation != 90 {
		t.Errorf("rotation = %v, want 90", recs[1].Rotation)
	}
}

func TestLoadComponentsCSVColumnOrderFree(t *testing.T) {
	path := writeFixture(t, "components.csv", strings.Join([]string{
		"x,id,tag",
		"50,V-100,V-100",
	}, "\n"))

	recs, err := LoadComponentsCSV(path)
	if err != nil {
		t.Fatalf("LoadComponentsCSV: %v", err)
	}
	if recs[0].ID != "V-100" || recs[0].X != 50 {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestLoadComponentsCSVMissingIDColumn(t *testing.T) {
	path := writeFixture(t, "components.csv", "tag,x\nP-101,10\n")
	if _, err := LoadComponentsCSV(path); err == nil {
		t.Error("expected error for missing id column")
	}
}

func TestLoadComponentsCSVBadFloat(t *testing.T) {
	path := writeFixture(t, "components.csv", "id,x\nP-101,abc\n")
	if _, err := LoadComponentsCSV(path); err == nil {
		t.Error("expected error for unparseable x")
	}
}

func TestLoadPipesCSV(t *testing.T) {
	path := writeFixture(t, "pipes.csv", strings.Join([]string{
		"pipe_no,label,line_type,from_component,from_port,to_component,to_port,polyline",
		`PIPE-1,4"-PG-001-CS,process_line,P-101,outlet,V-201,inlet,`,
		`SIG-1,,instrument_signal,FT-101,signal,FIC-101,signal,"(10, 20), (30, 20)"`,
	}, "\n"))

	recs, err := LoadPipesCSV(path)
	if err != nil {
		t.Fatalf("LoadPipesCSV: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].FromComponent != "P-101" || recs[0].ToPort != "inlet" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].Polyline != "(10, 20), (30, 20)" {
		t.Errorf("polyline = %q", recs[1].Polyline)
	}
}

func TestParsePolyline(t *testing.T) {
	tests := []struct {
		in   string
		want []model.Point
	}{
		{"(10, 20), (30, 40)", []model.Point{{X: 10, Y: 20}, {X: 30, Y: 40}}},
		{"(1.5,-2.5)", []model.Point{{X: 1.5, Y: -2.5}}},
		{"", nil},
		{"not a polyline", nil},
	}
	for _, tt := range tests {
		got := ParsePolyline(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParsePolyline(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParsePolyline(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBuildModel(t *testing.T) {
	comps := []ComponentRecord{
		{ID: "P-101", Tag: "P-101", Type: "pump", X: 100, Y: 200, Width: 60, Height: 60},
		{ID: "FT-101", Tag: "FT-101", Type: "instrument", X: 300, Y: 150, Width: 40, Height: 40},
	}
	pipes := []PipeRecord{
		{PipeNo: "PIPE-1", LineType: "process_line", FromComponent: "P-101", FromPort: "outlet", ToComponent: "FT-101", ToPort: "inlet"},
		{PipeNo: "SIG-1", LineType: "instrument_signal", FromComponent: "FT-101", ToComponent: "GHOST"},
	}

	cfg := config.Default()
	cfg.SymbolScale = 2.0

	m, err := BuildModel(comps, pipes, cfg)
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}

	p101 := m.Components["P-101"]
	if p101 == nil {
		t.Fatal("P-101 missing from model")
	}
	if p101.Width != 120 || p101.Height != 120 {
		t.Errorf("footprint = %vx%v, want symbol scale applied", p101.Width, p101.Height)
	}
	ft := m.Components["FT-101"]
	if !ft.IsInstrument || ft.TagInfo == nil {
		t.Errorf("FT-101 should parse as instrument, got %+v", ft)
	}

	if len(m.Pipes) != 2 {
		t.Fatalf("got %d pipes, want 2", len(m.Pipes))
	}
	if m.Pipes[0].LineType != model.LineProcess {
		t.Errorf("line type = %q, want process", m.Pipes[0].LineType)
	}
	if m.Pipes[0].From == nil || m.Pipes[0].To == nil {
		t.Error("PIPE-1 endpoints should resolve")
	}
	if m.Pipes[1].To != nil {
		t.Error("unknown to_component should leave To nil")
	}
}

func TestBuildModelDuplicateID(t *testing.T) {
	comps := []ComponentRecord{
		{ID: "P-101"},
		{ID: "P-101"},
	}
	if _, err := BuildModel(comps, nil, config.Default()); err == nil {
		t.Error("expected error for duplicate component id")
	}
}

func TestBuildModelInvalidRecord(t *testing.T) {
	comps := []ComponentRecord{{ID: ""}}
	if _, err := BuildModel(comps, nil, config.Default()); err == nil {
		t.Error("expected error for missing id")
	}
	pipes := []PipeRecord{{PipeNo: ""}}
	if _, err := BuildModel(nil, pipes, config.Default()); err == nil {
		t.Error("expected error for missing pipe_no")
	}
}

func TestBuildModelPolylineAttached(t *testing.T) {
	pipes := []PipeRecord{
		{PipeNo: "SIG-1", Polyline: "(10, 20), (30, 20)"},
	}
	m, err := BuildModel(nil, pipes, config.Default())
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if len(m.Pipes[0].Points) != 2 {
		t.Errorf("points = %v, want 2 literal points", m.Pipes[0].Points)
	}
	if m.Pipes[0].NeedsRouting() {
		t.Error("pipe with literal polyline should not need routing")
	}
}
