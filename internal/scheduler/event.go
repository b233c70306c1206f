package scheduler

import "time"

type EventType int

const (
	// CPUStep executes a single instruction.
	CPUStep EventType = iota
	// TimerTick decrements the timers and presents a frame.
	TimerTick
)

func (e EventType) String() string {
	switch e {
	case CPUStep:
		return "CPUStep"
	case TimerTick:
		return "TimerTick"
	}
	return "Unknown"
}

// Event is a periodic event, fired every period of
// emulated time.
type Event struct {
	at        time.Duration
	period    time.Duration
	eventType EventType
	fn        func() error
}
