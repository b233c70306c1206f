// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the emulator has shut down, and the
	// display.Driver should return from Start.
	Quit Type = iota
	// Title is sent to the display.Driver to change the
	// title of the window. This can be used to display
	// custom information in the title bar, such as the
	// current program, or its status.
	Title
	// Tone is sent whenever the sound timer starts or stops.
	// Data holds a bool, true while the tone should sound.
	Tone
	// Halt is sent when the emulator stops on a fatal error.
	// Data holds the error.
	Halt
)

func (t Type) String() string {
	switch t {
	case Quit:
		return "Quit"
	case Title:
		return "Title"
	case Tone:
		return "Tone"
	case Halt:
		return "Halt"
	}
	return "Unknown"
}

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}
