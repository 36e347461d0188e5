// Package tags parses ISA-style instrument tags (measured variable +
// function modifiers + loop number) and classifies the instrument's role
// in a control loop.
package tags

import (
	"regexp"
)

var (
	// instrumentPattern decomposes a tag into variable / modifiers / number.
	// The hyphen before the loop number is optional: FIC-101 and FIC101
	// are the same instrument.
	instrumentPattern = regexp.MustCompile(`^([A-Z])([A-Z]*)-?(\d+)$`)

	// isaTagPattern is the broader heuristic used to decide whether a
	// component is an instrument at all. It tolerates a trailing suffix
	// letter (PT-101A) that the loop grammar does not.
	isaTagPattern = regexp.MustCompile(`^[A-Z]{2,4}-?\d{3,4}[A-Z]?$`)
)

// TagInfo is the decomposed form of an instrument tag. The role flags are
// independent booleans derived from modifier-letter membership; a tag can
// in principle carry more than one.
type TagInfo struct {
	Variable  string // measured variable letter, e.g. "F"
	Modifiers string // function modifier letters, e.g. "IC"
	Number    string // loop number digits, leading zeros preserved

	IsController  bool
	IsTransmitter bool
	IsValve       bool
	IsIndicator   bool
	IsAlarm       bool
}

// Prefix returns the full letter prefix (variable + modifiers), e.g. "FIC".
func (ti *TagInfo) Prefix() string {
	return ti.Variable + ti.Modifiers
}

// Parse decomposes an instrument tag. It returns false for tags that do
// not match the loop grammar; callers treat such components as having no
// inferable control role, even when the broader instrument heuristic
// matched the tag (a suffix letter defeats the loop grammar).
func Parse(tag string) (*TagInfo, bool) {
	m := instrumentPattern.FindStringSubmatch(tag)
	if m == nil {
		return nil, false
	}

	info := &TagInfo{
		Variable:  m[1],
		Modifiers: m[2],
		Number:    m[3],
	}

	for _, r := range info.Modifiers {
		switch r {
		case 'C':
			info.IsController = true
		case 'T':
			info.IsTransmitter = true
		case 'V':
			info.IsValve = true
		case 'I':
			info.IsIndicator = true
		case 'A', 'H', 'L':
			info.IsAlarm = true
		}
	}

	return info, true
}

// IsInstrumentTag reports whether the tag looks like an ISA instrument tag.
func IsInstrumentTag(tag string) bool {
	if tag == "" {
		return false
	}
	return isaTagPattern.MatchString(tag)
}
