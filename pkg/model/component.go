package model

import (
	"math"
	"strings"

	"github.com/dd0wney/pnid-engine/pkg/tags"
)

// ComponentClass is the closed set of port-table variants. Every raw
// component type string maps to exactly one class; unrecognized types get
// the generic table.
type ComponentClass int

const (
	ClassGeneric ComponentClass = iota
	ClassInstrument
	ClassPump
	ClassValve
	ClassVessel
	ClassFilter
)

func (c ComponentClass) String() string {
	switch c {
	case ClassInstrument:
		return "instrument"
	case ClassPump:
		return "pump"
	case ClassValve:
		return "valve"
	case ClassVessel:
		return "vessel"
	case ClassFilter:
		return "filter"
	default:
		return "generic"
	}
}

// Classify maps a raw component type string to its port-table class.
// Instruments are recognized by tag, not type, so that takes precedence.
func Classify(componentType string, isInstrument bool) ComponentClass {
	switch {
	case isInstrument:
		return ClassInstrument
	case strings.Contains(componentType, "pump"):
		return ClassPump
	case strings.Contains(componentType, "valve"):
		return ClassValve
	case strings.Contains(componentType, "vessel"), strings.Contains(componentType, "tank"):
		return ClassVessel
	case strings.Contains(componentType, "filter"):
		return ClassFilter
	default:
		return ClassGeneric
	}
}

// PortOffset is a port position relative to the component origin.
type PortOffset struct {
	DX float64
	DY float64
}

// Component is a piece of equipment or an instrument on the drawing.
// TagInfo is populated once at construction and never mutated afterwards.
type Component struct {
	ID       string
	Tag      string
	Type     string // normalized: lowercase, underscores
	Class    ComponentClass
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64 // degrees, clockwise

	Material string
	Rating   string
	Size     string

	IsInstrument bool
	TagInfo      *tags.TagInfo // nil unless the tag parses under the loop grammar

	ports map[string]PortOffset
}

// NewComponent builds a component, deriving the instrument flag, parsed
// tag info, class, and port table from the raw record fields.
func NewComponent(id, tag, componentType string, x, y, width, height, rotation float64) *Component {
	c := &Component{
		ID:       strings.TrimSpace(id),
		Tag:      tag,
		Type:     normalizeType(componentType),
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}
	if c.Tag == "" {
		c.Tag = c.ID
	}

	c.IsInstrument = tags.IsInstrumentTag(c.Tag)
	if c.IsInstrument {
		if info, ok := tags.Parse(c.Tag); ok {
			c.TagInfo = info
		}
	}

	c.Class = Classify(c.Type, c.IsInstrument)
	c.ports = portTable(c.Class, c.Width, c.Height)
	return c
}

func normalizeType(s string) string {
	if s == "" {
		s = "valve"
	}
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// portTable returns the named attachment points for a component class.
// Every table includes a "default" entry, so port lookups are total.
func portTable(class ComponentClass, w, h float64) map[string]PortOffset {
	switch class {
	case ClassInstrument:
		return map[string]PortOffset{
			"center":  {w / 2, h / 2},
			"top":     {w / 2, 0},
			"bottom":  {w / 2, h},
			"left":    {0, h / 2},
			"right":   {w, h / 2},
			"default": {w / 2, h / 2},
		}
	case ClassPump:
		return map[string]PortOffset{
			"suction":    {0, h * 0.6},
			"discharge":  {w * 0.5, 0},
			"drain":      {w * 0.2, h},
			"vent":       {w * 0.8, 0},
			"seal_flush": {w, h * 0.3},
			"default":    {0, h * 0.6},
		}
	case ClassValve:
		return map[string]PortOffset{
			"inlet":      {0, h / 2},
			"outlet":     {w, h / 2},
			"stem":       {w / 2, 0},
			"body_drain": {w / 2, h},
			"default":    {0, h / 2},
		}
	case ClassVessel:
		return map[string]PortOffset{
			"top":            {w / 2, 0},
			"bottom":         {w / 2, h},
			"inlet":          {0, h * 0.3},
			"outlet":         {w, h * 0.7},
			"drain":          {w * 0.3, h},
			"vent":           {w * 0.7, 0},
			"level_tap_high": {0, h * 0.2},
			"level_tap_low":  {0, h * 0.8},
			"default":        {w / 2, h / 2},
		}
	case ClassFilter:
		return map[string]PortOffset{
			"inlet":   {w / 2, 0},
			"outlet":  {w / 2, h},
			"drain":   {w * 0.2, h * 0.9},
			"vent":    {w * 0.8, h * 0.1},
			"dp_high": {0, h * 0.3},
			"dp_low":  {0, h * 0.7},
			"default": {w / 2, 0},
		}
	default:
		return map[string]PortOffset{
			"inlet":   {0, h / 2},
			"outlet":  {w, h / 2},
			"top":     {w / 2, 0},
			"bottom":  {w / 2, h},
			"default": {w / 2, h / 2},
		}
	}
}

// PortCoords returns the absolute world position of a named port. An
// unknown port name falls back to "default"; lookups never fail. Rotation
// is applied around the footprint center.
func (c *Component) PortCoords(name string) Point {
	port, ok := c.ports[name]
	if !ok {
		port = c.ports["default"]
	}

	if c.Rotation != 0 {
		cx, cy := c.Width/2, c.Height/2
		dx, dy := port.DX-cx, port.DY-cy

		angle := c.Rotation * math.Pi / 180
		sin, cos := math.Sin(angle), math.Cos(angle)

		return Point{
			X: c.X + dx*cos - dy*sin + cx,
			Y: c.Y + dx*sin + dy*cos + cy,
		}
	}

	return Point{X: c.X + port.DX, Y: c.Y + port.DY}
}

// PortNames returns the ports defined for this component.
func (c *Component) PortNames() []string {
	names := make([]string, 0, len(c.ports))
	for name := range c.ports {
		names = append(names, name)
	}
	return names
}

// HasPort reports whether the component defines the named port explicitly.
func (c *Component) HasPort(name string) bool {
	_, ok := c.ports[name]
	return ok
}
