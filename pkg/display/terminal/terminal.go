// Package terminal provides a display driver that renders to a text
// terminal. Two rows of pixels are drawn per character cell using
// Unicode half blocks, so the 64x32 display fits in 64x16 cells.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"time"

	tm "github.com/buger/goterm"
	"golang.org/x/term"

	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03

	defaultHold = 150 * time.Millisecond
)

func init() {
	driver := &terminalDriver{log: log.NewNullLogger()}
	display.Install("terminal", driver, []display.DriverOption{
		{
			Name:        "hold",
			Default:     defaultHold,
			Value:       &driver.hold,
			Type:        "duration",
			Description: "How long a key stays pressed after the terminal last reported it",
		},
		{
			Name:        "screenshot-scale",
			Default:     8,
			Value:       &driver.screenshotScale,
			Type:        "int",
			Description: "Scale screenshots taken with 'p' by this factor",
		},
	})
}

// ErrNotTerminal is returned by Start when stdin is not a terminal.
var ErrNotTerminal = errors.New("terminal: stdin is not a terminal")

// terminalDriver implements a display driver on top of a raw mode
// terminal. Terminals report key presses but never releases, so a
// key is released once it has not been reported for the hold time.
type terminalDriver struct {
	hold            time.Duration
	screenshotScale int

	emu   display.Emulator
	log   log.Logger
	input *input

	title    string
	last     ppu.Frame
	lastHash uint64
	tone     bool
	err      error
}

func (t *terminalDriver) Initialize(emu display.Emulator) {
	t.emu = emu
}

// SetLogger sets the logger the driver reports screenshots and
// failures to.
func (t *terminalDriver) SetLogger(l log.Logger) {
	t.log = l
}

// Start starts the display driver.
func (t *terminalDriver) Start(frames <-chan ppu.Frame, evts <-chan event.Event, pressed, released chan<- joypad.Key) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < ppu.ScreenWidth || h < ppu.ScreenHeight/2+1) {
		t.log.Infof("terminal is %dx%d, at least %dx%d is needed to show the whole display", w, h, ppu.ScreenWidth, ppu.ScreenHeight/2+1)
	}

	in, err := newInput(fd)
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	t.input = in

	tm.Clear()
	tm.Output.WriteString("\033[?25l") // hide cursor
	t.draw()

	if t.hold <= 0 {
		t.hold = defaultHold
	}
	keys := newKeyState(t.hold)
	expire := time.NewTicker(t.hold / 4)
	defer expire.Stop()

	for {
		select {
		case f := <-frames:
			if h := ppu.Hash(&f); h != t.lastHash {
				t.last, t.lastHash = f, h
				t.draw()
			}
		case e := <-evts:
			switch e.Type {
			case event.Quit:
				return nil
			case event.Title:
				t.title = fmt.Sprint(e.Data)
			case event.Tone:
				t.tone, _ = e.Data.(bool)
				if t.tone {
					tm.Output.WriteString("\a")
				}
			case event.Halt:
				t.err, _ = e.Data.(error)
			}
			t.draw()
		case chunk, ok := <-in.chunks:
			if !ok {
				return nil
			}
			if quit := t.handleInput(chunk, keys, pressed); quit {
				return nil
			}
		case now := <-expire.C:
			for _, key := range keys.expired(now) {
				send(released, key)
			}
		}
	}
}

// handleInput acts on a single read of input. It reports whether
// the user asked to quit.
func (t *terminalDriver) handleInput(chunk []byte, keys *keyState, pressed chan<- joypad.Key) bool {
	for _, b := range scanInput(chunk) {
		if t.handleByte(b, keys, pressed) {
			return true
		}
	}
	return false
}

// handleByte acts on a single byte of input. It reports whether the
// user asked to quit.
func (t *terminalDriver) handleByte(b byte, keys *keyState, pressed chan<- joypad.Key) bool {
	if key, ok := KeyMap[b]; ok {
		if keys.press(key, time.Now()) {
			send(pressed, key)
		}
		return false
	}

	switch b {
	case keyEscape, keyCtrlC:
		t.emu.SendCommand(display.Close)
		return true
	case ' ':
		display.TogglePause(t.emu)
	case '\r':
		t.emu.SendCommand(display.Reset)
		t.err = nil
	case '+', '=':
		t.emu.SendCommand(emulator.SetSpeed(t.emu.InstructionsPerSecond() * 2))
	case '-', '_':
		t.emu.SendCommand(emulator.SetSpeed(t.emu.InstructionsPerSecond() / 2))
	case 'p':
		name := fmt.Sprintf("gochip8-%s.png", time.Now().Format("20060102-150405"))
		if err := utils.SaveImage(name, utils.FrameImage(ppu.ScreenWidth, ppu.ScreenHeight, t.last.Pixel, t.screenshotScale)); err != nil {
			t.log.Errorf("saving screenshot: %v", err)
		} else {
			t.log.Infof("saved screenshot to %s", name)
		}
	}
	t.draw()
	return false
}

// draw renders the last frame and the status line.
func (t *terminalDriver) draw() {
	for i, line := range Render(&t.last) {
		tm.MoveCursor(1, i+1)
		tm.Print(line)
	}
	tm.MoveCursor(1, ppu.ScreenHeight/2+1)
	tm.Print("\033[2K" + t.status())
	tm.Flush()
}

func (t *terminalDriver) status() string {
	if t.emu == nil {
		return t.title
	}
	s := fmt.Sprintf("%s | %d ips | %v | tone %s", t.title, t.emu.InstructionsPerSecond(), t.emu.Status(), utils.BoolToString(t.tone))
	if t.err != nil {
		s += " | " + t.err.Error()
	}
	return s
}

// Stop stops the display driver, restoring the terminal.
func (t *terminalDriver) Stop() error {
	tm.Output.WriteString("\033[?25h") // show cursor
	tm.MoveCursor(1, ppu.ScreenHeight/2+2)
	tm.Flush()

	if t.input == nil {
		return nil
	}
	err := t.input.Close()
	t.input = nil
	return err
}

// send hands key to the emulator without blocking, so that the
// terminal never stalls on an emulator that has stopped.
func send(ch chan<- joypad.Key, key joypad.Key) {
	select {
	case ch <- key:
	default:
	}
}
