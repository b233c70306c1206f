package terminal

import (
	"sort"
	"time"

	"github.com/thelolagemann/gochip8/internal/joypad"
)

// KeyMap maps the left hand side of a QWERTY keyboard onto the
// hex keypad, keeping its layout.
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var KeyMap = map[byte]joypad.Key{
	'1': joypad.Key1, '2': joypad.Key2, '3': joypad.Key3, '4': joypad.KeyC,
	'q': joypad.Key4, 'w': joypad.Key5, 'e': joypad.Key6, 'r': joypad.KeyD,
	'a': joypad.Key7, 's': joypad.Key8, 'd': joypad.Key9, 'f': joypad.KeyE,
	'z': joypad.KeyA, 'x': joypad.Key0, 'c': joypad.KeyB, 'v': joypad.KeyF,
}

// keyState tracks which keys are held. A key is held from the first
// report until hold has passed without another one.
type keyState struct {
	hold     time.Duration
	deadline map[joypad.Key]time.Time
}

func newKeyState(hold time.Duration) *keyState {
	return &keyState{hold: hold, deadline: make(map[joypad.Key]time.Time)}
}

// press records a report of key at now. It returns true if the key
// was not already held.
func (k *keyState) press(key joypad.Key, now time.Time) bool {
	_, held := k.deadline[key]
	k.deadline[key] = now.Add(k.hold)
	return !held
}

// expired releases and returns the keys whose hold has run out by now.
func (k *keyState) expired(now time.Time) []joypad.Key {
	var keys []joypad.Key
	for key, deadline := range k.deadline {
		if !now.Before(deadline) {
			keys = append(keys, key)
			delete(k.deadline, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// scanInput returns the bytes of a single read that should be acted
// on. Escape sequences, such as those sent by the arrow and function
// keys, are dropped whole. An escape is only kept when nothing
// follows it in the read, which is how a lone Esc key arrives.
func scanInput(chunk []byte) []byte {
	out := make([]byte, 0, len(chunk))
	for i := 0; i < len(chunk); i++ {
		if chunk[i] != keyEscape {
			out = append(out, chunk[i])
			continue
		}
		if i+1 == len(chunk) || chunk[i+1] == keyEscape {
			out = append(out, keyEscape)
			continue
		}

		switch chunk[i+1] {
		case '[':
			// CSI: parameters up to a final byte in 0x40 - 0x7E
			i += 2
			for i < len(chunk) && (chunk[i] < 0x40 || chunk[i] > 0x7E) {
				i++
			}
		case 'O':
			// SS3: one more byte
			i += 2
		default:
			// Alt modified key
			i++
		}
	}
	return out
}
