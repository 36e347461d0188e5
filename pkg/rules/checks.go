package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dd0wney/pnid-engine/pkg/model"
	"github.com/dd0wney/pnid-engine/pkg/tags"
)

// strictTagPattern is the validator's format check, stricter than the
// instrument heuristic only in that it is the gate for errors rather than
// classification.
var strictTagPattern = regexp.MustCompile(`^[A-Z]{2,4}-?\d{3,4}[A-Z]?$`)

// dupKeyPattern is the duplicate-detection fallback for tags the loop
// grammar rejects (suffix letters); it keys prefix+number+suffix.
var dupKeyPattern = regexp.MustCompile(`^([A-Z]+)-?(\d+)([A-Z]?)$`)

// TagFormatRule checks instrument tag format, duplicates, and prefix
// membership in the ISA whitelist.
type TagFormatRule struct{}

func (r *TagFormatRule) Name() string { return "instrument-tag-format" }

func (r *TagFormatRule) Check(ctx *Context) []Finding {
	var findings []Finding
	seen := make(map[string]string) // fully-qualified tag -> component ID

	for _, comp := range ctx.Model.Instruments() {
		tag := comp.Tag

		if !strictTagPattern.MatchString(tag) {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Invalid instrument tag format: %s", tag),
			})
		}

		var prefix, number, suffix string
		if info := comp.TagInfo; info != nil {
			prefix, number = info.Prefix(), info.Number
		} else if m := dupKeyPattern.FindStringSubmatch(tag); m != nil {
			prefix, number, suffix = m[1], m[2], m[3]
		} else {
			// Nothing to key on.
			continue
		}

		fullTag := prefix + "-" + number + suffix
		if _, dup := seen[fullTag]; dup {
			// Attributed to the later instance; the reference entry is
			// then overwritten, so a third duplicate errors as well.
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Duplicate instrument tag: %s", tag),
			})
		}
		seen[fullTag] = comp.ID

		if !tags.IsKnownPrefix(prefix) {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Non-standard instrument prefix: %s in %s", prefix, tag),
			})
		}
	}

	return findings
}

// vesselInletPorts are the inlet-class ports a process line may land on.
var vesselInletPorts = map[string]struct{}{
	"top":         {},
	"inlet":       {},
	"side_top":    {},
	"side_bottom": {},
}

// FlowDirectionRule checks pump discharge orientation and vessel inlet
// port usage on process lines.
type FlowDirectionRule struct{}

func (r *FlowDirectionRule) Name() string { return "flow-direction" }

func (r *FlowDirectionRule) Check(ctx *Context) []Finding {
	var findings []Finding

	for _, pipe := range ctx.Model.Pipes {
		if pipe.LineType != model.LineProcess || pipe.From == nil || pipe.To == nil {
			continue
		}

		if pipe.From.Class == model.ClassPump && pipe.FromPort != "discharge" {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Pump %s should connect from discharge port", pipe.From.Tag),
			})
		}

		if pipe.To.Class == model.ClassVessel {
			if _, ok := vesselInletPorts[pipe.ToPort]; !ok {
				findings = append(findings, Finding{
					Rule:     r.Name(),
					Severity: SeverityWarning,
					Message: fmt.Sprintf("Vessel %s inlet (%s) should be a standard inlet port (top, side, or designated inlet)",
						pipe.To.Tag, pipe.ToPort),
				})
			}
		}
	}

	return findings
}

// lineSizePattern extracts size, service code, and line number from a
// pipe label; material and anything after is ignored for grouping.
var lineSizePattern = regexp.MustCompile(`^(\d+)"?-([A-Z]+)-(\d+)`)

// LineSizingRule warns when pipes sharing a service-number key report
// different sizes. The first-seen size is the reference.
type LineSizingRule struct{}

func (r *LineSizingRule) Name() string { return "line-sizing" }

func (r *LineSizingRule) Check(ctx *Context) []Finding {
	var findings []Finding
	lineSizes := make(map[string]string)

	for _, pipe := range ctx.Model.Pipes {
		if pipe.Label == "" {
			continue
		}
		m := lineSizePattern.FindStringSubmatch(pipe.Label)
		if m == nil {
			continue
		}
		size, service, number := m[1], m[2], m[3]

		key := service + "-" + number
		if ref, ok := lineSizes[key]; ok {
			if ref != size {
				findings = append(findings, Finding{
					Rule:     r.Name(),
					Severity: SeverityWarning,
					Message:  fmt.Sprintf(`Inconsistent line sizing for %s: %s" vs %s"`, key, size, ref),
				})
			}
			continue
		}
		lineSizes[key] = size
	}

	return findings
}

// LoopCompletenessRule errors on injected loops missing a member. The
// built-in inference drops partial loops before they get here; this rule
// guards loop lists constructed by other producers.
type LoopCompletenessRule struct{}

func (r *LoopCompletenessRule) Name() string { return "loop-completeness" }

func (r *LoopCompletenessRule) Check(ctx *Context) []Finding {
	var findings []Finding

	for _, loop := range ctx.Loops {
		if loop.PrimaryElement == "" {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Control loop %s missing primary element", loop.LoopID),
			})
		}
		if loop.FinalElement == "" {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Control loop %s missing final control element", loop.LoopID),
			})
		}
	}

	return findings
}

// SafetySystemsRule warns when a vessel has no outgoing line terminating
// at a pressure-relief device (PSV/PRV tag).
type SafetySystemsRule struct{}

func (r *SafetySystemsRule) Name() string { return "safety-systems" }

func (r *SafetySystemsRule) Check(ctx *Context) []Finding {
	var findings []Finding

	for _, id := range ctx.Model.ComponentIDs() {
		vessel := ctx.Model.Components[id]
		if vessel.Class != model.ClassVessel {
			continue
		}

		hasRelief := false
		for _, pipe := range ctx.Model.Pipes {
			if pipe.From == nil || pipe.To == nil || pipe.From.ID != vessel.ID {
				continue
			}
			if strings.Contains(pipe.To.Tag, "PSV") || strings.Contains(pipe.To.Tag, "PRV") {
				hasRelief = true
				break
			}
		}

		if !hasRelief {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Vessel %s should have pressure relief protection", vessel.Tag),
			})
		}
	}

	return findings
}
