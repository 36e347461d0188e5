package tags

// Role is the single dominant control-system role of an instrument. Where
// a tag carries several role letters the first matching role in the
// priority order below wins; a controller that also indicates (FIC) is a
// controller for loop-inference purposes.
type Role int

const (
	RoleNone Role = iota
	RoleController
	RoleTransmitter
	RoleFinalElement
	RoleAlarm
)

func (r Role) String() string {
	switch r {
	case RoleController:
		return "Controller"
	case RoleTransmitter:
		return "Transmitter"
	case RoleFinalElement:
		return "FinalElement"
	case RoleAlarm:
		return "Alarm"
	default:
		return "None"
	}
}

// Role reduces the independent role flags to the dominant role, in
// priority order controller > transmitter > final element > alarm.
func (ti *TagInfo) Role() Role {
	switch {
	case ti.IsController:
		return RoleController
	case ti.IsTransmitter:
		return RoleTransmitter
	case ti.IsValve:
		return RoleFinalElement
	case ti.IsAlarm:
		return RoleAlarm
	default:
		return RoleNone
	}
}

// KnownPrefixes is the whitelist of recognized ISA instrument prefixes.
// Tags whose prefix falls outside this set are flagged as non-standard
// (advisory, not an error).
var KnownPrefixes = map[string]struct{}{}

func init() {
	prefixes := []string{
		"F", "P", "T", "L", "A", "V", "E", "I", "S", "Z",
		"FT", "PT", "TT", "LT", "FI", "PI", "TI", "LI",
		"FC", "PC", "TC", "LC", "FIC", "PIC", "TIC", "LIC",
		"FV", "PV", "TV", "LV", "FCV", "PCV", "TCV", "LCV",
		"FAL", "PAL", "TAL", "LAL", "FAH", "PAH", "TAH", "LAH",
		"SF", "YS", "CP", "CPT", "SCR", "SIL", "GV", "PR", "RM",
		"LS", "FS", "FA", "DP",
	}
	for _, p := range prefixes {
		KnownPrefixes[p] = struct{}{}
	}
}

// IsKnownPrefix reports whether the prefix is in the ISA whitelist.
func IsKnownPrefix(prefix string) bool {
	_, ok := KnownPrefixes[prefix]
	return ok
}
