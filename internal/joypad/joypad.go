// Package joypad provides an implementation of the CHIP-8 hex
// keypad. Keys are level state, set and cleared by external
// events, with the most recent press transition latched for
// instructions that block until a key is pressed.
package joypad

import "github.com/thelolagemann/gochip8/internal/types"

// Key represents a physical key on the hex keypad, 0x0 - 0xF.
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
type Key = uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// State represents the state of the keypad.
type State struct {
	keys [types.KeyCount]bool

	// latch holds the last key to transition from released to
	// pressed since the latch was last cleared.
	latch   Key
	latched bool
}

// New returns a new keypad state with every key released.
func New() *State {
	return &State{}
}

// Press presses a key. Keys outside of 0x0 - 0xF are ignored.
func (s *State) Press(key Key) {
	if key >= types.KeyCount {
		return
	}
	if !s.keys[key] {
		s.latch = key
		s.latched = true
	}
	s.keys[key] = true
}

// Release releases a key.
func (s *State) Release(key Key) {
	if key >= types.KeyCount {
		return
	}
	s.keys[key] = false
}

// IsPressed returns true if the key is held down. Only the low
// nibble of key is considered, as the CPU passes register values.
func (s *State) IsPressed(key uint8) bool {
	return s.keys[key&0xF]
}

// ClearLatch forgets any press transition seen so far.
func (s *State) ClearLatch() {
	s.latched = false
}

// Latched consumes the latched press transition, if any.
func (s *State) Latched() (Key, bool) {
	if !s.latched {
		return 0, false
	}
	s.latched = false
	return s.latch, true
}
