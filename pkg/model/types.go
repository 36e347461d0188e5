// Package model defines the P&ID entity set the analysis engine operates
// on: components with typed port tables and pipes with routed polylines.
package model

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Point is a world coordinate on the drawing plane.
type Point struct {
	X float64
	Y float64
}

// LineType categorizes what a pipe carries.
type LineType string

const (
	LineProcess         LineType = "process"
	LineInstrumentation LineType = "instrumentation"
	LineElectrical      LineType = "electrical"
	LinePneumatic       LineType = "pneumatic"
	LineHydraulic       LineType = "hydraulic"
)

// NormalizeLineType maps the ingestion layer's spellings onto the canonical
// line types. Unrecognized values pass through unchanged so a new line
// class degrades to "never a signal line" rather than an error.
func NormalizeLineType(s string) LineType {
	switch s {
	case "process_line", "process", "":
		return LineProcess
	case "instrument_signal", "instrumentation":
		return LineInstrumentation
	case "electrical":
		return LineElectrical
	case "pneumatic":
		return LinePneumatic
	case "hydraulic":
		return LineHydraulic
	default:
		return LineType(s)
	}
}

// Model is the full component/pipe set for one drawing. Components are
// keyed by ID; pipes keep their input order, which the router depends on
// for deterministic occupancy growth.
type Model struct {
	Components map[string]*Component
	Pipes      []*Pipe
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Components: make(map[string]*Component)}
}

// AddComponent indexes the component by ID. The last write wins for a
// duplicate ID; ID uniqueness is the ingestion layer's contract.
func (m *Model) AddComponent(c *Component) {
	m.Components[c.ID] = c
}

// AddPipe appends a pipe, preserving input order.
func (m *Model) AddPipe(p *Pipe) {
	m.Pipes = append(m.Pipes, p)
}

// ComponentIDs returns all component IDs in sorted order. Every pass that
// walks the component map goes through this so repeated runs on the same
// input produce identical output.
func (m *Model) ComponentIDs() []string {
	ids := maps.Keys(m.Components)
	sort.Strings(ids)
	return ids
}

// Instruments returns the instrument components in ID order.
func (m *Model) Instruments() []*Component {
	var out []*Component
	for _, id := range m.ComponentIDs() {
		if c := m.Components[id]; c.IsInstrument {
			out = append(out, c)
		}
	}
	return out
}
