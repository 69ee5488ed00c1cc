package state

// Control tags an emission with the nature of the change, independent of the
// payload: a loading pass, an error transition, a resume after a pause.
// Controls are immutable values; equality is by tag name.
type Control struct {
	name string
}

// Well-known control tags. The zero value is ControlInitial.
var (
	ControlInitial = Control{}
	ControlLoading = Control{name: "loading"}
	ControlStart   = Control{name: "start"}
	ControlResume  = Control{name: "resume"}
	ControlPause   = Control{name: "pause"}
	ControlStop    = Control{name: "stop"}
	ControlEnd     = Control{name: "end"}
	ControlData    = Control{name: "data"}
	ControlLag     = Control{name: "lag"}
	ControlError   = Control{name: "error"}
	ControlOver    = Control{name: "over"}
)

// CustomControl creates a tag outside the well-known set. Two custom tags
// with the same name compare equal, and a custom tag with a well-known name
// compares equal to that tag.
func CustomControl(name string) Control {
	if name == "initial" {
		return ControlInitial
	}
	return Control{name: name}
}

// String returns the tag name.
func (c Control) String() string {
	if c.name == "" {
		return "initial"
	}
	return c.name
}
