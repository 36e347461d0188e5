// Package rules validates a P&ID model against a fixed battery of
// engineering checks. Findings are data, not control flow: every rule
// always runs to completion, and a malformed diagram degrades to a report
// rather than an error.
package rules

import (
	"time"

	"github.com/dd0wney/pnid-engine/pkg/control"
	"github.com/dd0wney/pnid-engine/pkg/model"
)

// Severity indicates whether a finding blocks validity.
type Severity int

const (
	// SeverityWarning findings are advisory.
	SeverityWarning Severity = iota
	// SeverityError findings make the report invalid.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	default:
		return "Warning"
	}
}

// Finding is a single rule result.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
}

// Context is the read-only input a rule checks against. Loops are
// injected by the caller; rules never re-run loop inference themselves.
type Context struct {
	Model *model.Model
	Loops []control.ControlLoop
}

// Rule is one validation check.
type Rule interface {
	// Name returns a human-readable name for the rule.
	Name() string
	// Check inspects the context and returns findings (empty if clean).
	Check(ctx *Context) []Finding
}

// Report is the aggregated outcome of a validation pass.
type Report struct {
	RunID     string
	CheckedAt time.Time
	Errors    []string
	Warnings  []string
	Valid     bool
}
