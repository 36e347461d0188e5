package rules

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/pnid-engine/pkg/control"
	"github.com/dd0wney/pnid-engine/pkg/model"
)

// Validator runs a set of rules and aggregates their findings.
type Validator struct {
	rules []Rule
}

// NewValidator creates a validator with the standard rule battery.
func NewValidator() *Validator {
	return &Validator{rules: DefaultRules()}
}

// NewEmptyValidator creates a validator with no rules.
func NewEmptyValidator() *Validator {
	return &Validator{}
}

// AddRule appends a rule to the battery.
func (v *Validator) AddRule(rule Rule) {
	v.rules = append(v.rules, rule)
}

// Rules returns the configured battery.
func (v *Validator) Rules() []Rule {
	return v.rules
}

// DefaultRules is the standard five-check battery, in a fixed order so
// report output is reproducible.
func DefaultRules() []Rule {
	return []Rule{
		&TagFormatRule{},
		&FlowDirectionRule{},
		&LineSizingRule{},
		&LoopCompletenessRule{},
		&SafetySystemsRule{},
	}
}

// Validate runs every rule against the model and the injected loop list.
// All rules run to completion; findings accumulate in rule order.
func (v *Validator) Validate(m *model.Model, loops []control.ControlLoop) *Report {
	ctx := &Context{Model: m, Loops: loops}

	report := &Report{
		RunID:     uuid.NewString(),
		CheckedAt: time.Now(),
		Errors:    make([]string, 0),
		Warnings:  make([]string, 0),
	}

	for _, rule := range v.rules {
		for _, finding := range rule.Check(ctx) {
			if finding.Severity == SeverityError {
				report.Errors = append(report.Errors, finding.Message)
			} else {
				report.Warnings = append(report.Warnings, finding.Message)
			}
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
