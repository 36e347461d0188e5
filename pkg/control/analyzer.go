package control

import (
	"strings"

	"github.com/dd0wney/pnid-engine/pkg/graph"
	"github.com/dd0wney/pnid-engine/pkg/logging"
	"github.com/dd0wney/pnid-engine/pkg/model"
	"github.com/dd0wney/pnid-engine/pkg/tags"
)

// Analyzer walks the signal graph from each controller and assembles
// control loops and interlocks. It is idempotent and cheap; callers re-run
// it on every change to the underlying data.
type Analyzer struct {
	model *model.Model
	conn  *graph.Connectivity
	log   logging.Logger
}

// NewAnalyzer builds an analyzer over the model and its connectivity view.
func NewAnalyzer(m *model.Model, conn *graph.Connectivity, log logging.Logger) *Analyzer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Analyzer{model: m, conn: conn, log: log}
}

// buckets groups instruments by dominant role, each in component-ID order.
type buckets struct {
	controllers  []*model.Component
	transmitters map[string]*model.Component
	valves       map[string]*model.Component
	alarms       []*model.Component
}

func (a *Analyzer) classify() buckets {
	b := buckets{
		transmitters: make(map[string]*model.Component),
		valves:       make(map[string]*model.Component),
	}

	for _, comp := range a.model.Instruments() {
		if comp.TagInfo == nil {
			continue
		}
		switch comp.TagInfo.Role() {
		case tags.RoleController:
			b.controllers = append(b.controllers, comp)
		case tags.RoleTransmitter:
			b.transmitters[comp.ID] = comp
		case tags.RoleFinalElement:
			b.valves[comp.ID] = comp
		case tags.RoleAlarm:
			b.alarms = append(b.alarms, comp)
		}
	}

	return b
}

// Loops infers one control loop per controller that has both a matching
// transmitter and a final control element one signal hop away. Partial
// loops are dropped silently; a controller missing either member yields
// nothing rather than an incomplete record.
func (a *Analyzer) Loops() []ControlLoop {
	b := a.classify()
	var loops []ControlLoop

	for _, controller := range b.controllers {
		info := controller.TagInfo

		var transmitterID, finalElementID string
		for _, neighborID := range a.conn.SignalNeighbors(controller.ID) {
			if xmtr, ok := b.transmitters[neighborID]; ok {
				// The transmitter must measure the same variable on the
				// same loop number.
				if xmtr.TagInfo.Variable == info.Variable && xmtr.TagInfo.Number == info.Number {
					transmitterID = neighborID
				}
			}

			if _, ok := b.valves[neighborID]; ok {
				finalElementID = neighborID
			} else if neighbor, ok := a.model.Components[neighborID]; ok &&
				strings.Contains(neighbor.Type, "valve") {
				finalElementID = neighborID
			}
		}

		if transmitterID == "" || finalElementID == "" {
			a.log.Debug("dropping partial loop",
				logging.String("controller", controller.ID),
				logging.Bool("has_transmitter", transmitterID != ""),
				logging.Bool("has_final_element", finalElementID != ""))
			continue
		}

		loopID := info.Variable + "C-" + info.Number
		loops = append(loops, newControlLoop(
			loopID,
			loopTypeForVariable(info.Variable),
			transmitterID,
			controller.ID,
			finalElementID,
			"",
		))
	}

	return loops
}

// Interlocks pairs each alarm-class instrument with any one-hop signal
// neighbor whose tag marks it shutdown-class: SDV or XV tags, or anything
// containing "trip" in any case.
func (a *Analyzer) Interlocks() []Interlock {
	b := a.classify()
	var interlocks []Interlock

	for _, alarm := range b.alarms {
		for _, neighborID := range a.conn.SignalNeighbors(alarm.ID) {
			neighbor, ok := a.model.Components[neighborID]
			if !ok {
				continue
			}
			if isShutdownClass(neighbor.Tag) {
				interlocks = append(interlocks, Interlock{
					Alarm:  alarm.ID,
					Action: neighborID,
					Type:   InterlockSafety,
				})
			}
		}
	}

	return interlocks
}

func isShutdownClass(tag string) bool {
	return strings.Contains(tag, "SDV") ||
		strings.Contains(tag, "XV") ||
		strings.Contains(strings.ToLower(tag), "trip")
}
