// Package control infers control loops and safety interlocks from the
// instrument tag set and the signal-connectivity graph.
package control

// LoopType classifies a control loop by its measured variable.
type LoopType string

const (
	LoopFlow        LoopType = "Flow Control"
	LoopPressure    LoopType = "Pressure Control"
	LoopLevel       LoopType = "Level Control"
	LoopTemperature LoopType = "Temperature Control"
	LoopCascade     LoopType = "Cascade Control"
	LoopRatio       LoopType = "Ratio Control"
	LoopFeedforward LoopType = "Feedforward Control"
)

// loopTypeForVariable maps a measured-variable letter to a loop type.
// Unmapped variables default to flow; that is a documented fallback, not
// an inference.
func loopTypeForVariable(variable string) LoopType {
	switch variable {
	case "F":
		return LoopFlow
	case "P":
		return LoopPressure
	case "L":
		return LoopLevel
	case "T":
		return LoopTemperature
	default:
		return LoopFlow
	}
}

// ControlLoop is a closed feedback path: transmitter -> controller ->
// final control element. Loops are derived per analysis pass and never
// persisted; they are recomputed whenever the component/pipe set changes.
type ControlLoop struct {
	LoopID         string
	Type           LoopType
	PrimaryElement string // transmitter component ID
	Controller     string // controller component ID
	FinalElement   string // valve component ID
	SetpointSource string // set only for cascade loops
	Components     []string
}

// newControlLoop fills the derived member list.
func newControlLoop(loopID string, loopType LoopType, primary, controller, final, setpoint string) ControlLoop {
	loop := ControlLoop{
		LoopID:         loopID,
		Type:           loopType,
		PrimaryElement: primary,
		Controller:     controller,
		FinalElement:   final,
		SetpointSource: setpoint,
	}
	loop.Components = []string{primary, controller, final}
	if setpoint != "" {
		loop.Components = append(loop.Components, setpoint)
	}
	return loop
}

// Interlock pairs an alarm instrument with the shutdown-class component
// its signal drives.
type Interlock struct {
	Alarm  string
	Action string
	Type   string
}

// InterlockSafety is the only interlock type currently inferred.
const InterlockSafety = "Safety Interlock"
