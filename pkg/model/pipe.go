package model

import (
	"regexp"
	"strconv"
)

// PipeSpec is the parsed pipe specification from a label like 2"-PG-101-CS.
type PipeSpec struct {
	Size     int    // nominal size in inches
	Service  string // service code, e.g. PG
	Number   string // line number, leading zeros preserved
	Material string // material code, e.g. CS
}

// DefaultPipeSpec is assumed when a label is absent or unparseable.
var DefaultPipeSpec = PipeSpec{Size: 2, Service: "PG", Number: "001", Material: "CS"}

var pipeSpecPattern = regexp.MustCompile(`^(\d+)"?-([A-Z]+)-(\d+)-([A-Z]+)$`)

// ParsePipeSpec parses a pipe-spec label. Labels that do not match the
// grammar yield DefaultPipeSpec; a missing spec is not an error.
func ParsePipeSpec(label string) PipeSpec {
	m := pipeSpecPattern.FindStringSubmatch(label)
	if m == nil {
		return DefaultPipeSpec
	}
	size, _ := strconv.Atoi(m[1])
	return PipeSpec{Size: size, Service: m[2], Number: m[3], Material: m[4]}
}

// Pipe is a process line or signal connection between two components.
// From/To are weak references: either may be nil when the referenced
// component is unknown, and the pipe then degrades to its literal points.
type Pipe struct {
	ID       string
	Label    string
	LineType LineType

	FromID   string
	ToID     string
	From     *Component // nil when FromID is unresolved
	To       *Component // nil when ToID is unresolved
	FromPort string
	ToPort   string

	// Points is the routed or literal polyline in world coordinates.
	// Fewer than two points renders nothing.
	Points []Point

	Spec       PipeSpec
	WithArrow  bool
	Insulation bool
	HeatTraced bool
}

// NewPipe builds a pipe from record fields, parsing the spec label and
// defaulting the port names.
func NewPipe(id, label, lineType, fromID, fromPort, toID, toPort string) *Pipe {
	p := &Pipe{
		ID:       id,
		Label:    label,
		LineType: NormalizeLineType(lineType),
		FromID:   fromID,
		ToID:     toID,
		FromPort: fromPort,
		ToPort:   toPort,
	}
	if p.FromPort == "" {
		p.FromPort = "default"
	}
	if p.ToPort == "" {
		p.ToPort = "default"
	}
	p.Spec = ParsePipeSpec(label)
	p.WithArrow = p.LineType == LineProcess
	return p
}

// Resolve binds the weak component references against the model. Unknown
// IDs stay nil.
func (p *Pipe) Resolve(m *Model) {
	p.From = m.Components[p.FromID]
	p.To = m.Components[p.ToID]
}

// Endpoints returns the world coordinates of both attachment points. It
// reports false unless both component references resolved.
func (p *Pipe) Endpoints() (start, end Point, ok bool) {
	if p.From == nil || p.To == nil {
		return Point{}, Point{}, false
	}
	return p.From.PortCoords(p.FromPort), p.To.PortCoords(p.ToPort), true
}

// NeedsRouting reports whether the pipe has resolved endpoints but no
// usable polyline yet.
func (p *Pipe) NeedsRouting() bool {
	if len(p.Points) >= 2 {
		return false
	}
	return p.From != nil && p.To != nil
}
