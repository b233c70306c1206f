// Package web provides a display driver that streams frames to
// browsers over a websocket, and takes key presses back from them.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

func init() {
	driver := &webDriver{log: log.NewNullLogger()}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.addr,
			Type:        "string",
			Description: "Address to serve the websocket on",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &driver.compression,
			Type:        "bool",
			Description: "Brotli compress frames",
		},
		{
			Name:        "compression-level",
			Default:     7,
			Value:       &driver.compressionLevel,
			Type:        "int",
			Description: "Brotli quality to compress frames with (0 - 11)",
		},
	})
}

type webDriver struct {
	addr             string
	compression      bool
	compressionLevel int

	emu display.Emulator
	log log.Logger

	srv    *http.Server
	cancel context.CancelFunc
}

func (w *webDriver) Initialize(emu display.Emulator) {
	w.emu = emu
}

// SetLogger sets the logger the driver reports connections and
// failures to.
func (w *webDriver) SetLogger(l log.Logger) {
	w.log = l
}

// Start starts the display driver. It serves until the emulator
// quits, or the server fails.
func (w *webDriver) Start(frames <-chan ppu.Frame, evts <-chan event.Event, pressed, released chan<- joypad.Key) error {
	h := newHub(w.compression, utils.Clamp(0, w.compressionLevel, 11), w.log)
	if w.emu != nil {
		h.paused = func() bool { return w.emu.Status().IsPaused() }
	}

	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}
	w.log.Infof("serving on %s", ln.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	defer cancel()
	go h.run(ctx)

	w.srv = &http.Server{Handler: h, ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- w.srv.Serve(ln)
	}()

	return w.loop(h, frames, evts, pressed, released, serveErr)
}

func (w *webDriver) loop(h *hub, frames <-chan ppu.Frame, evts <-chan event.Event, pressed, released chan<- joypad.Key, serveErr <-chan error) error {
	for {
		select {
		case f := <-frames:
			if err := h.publish(&f); err != nil {
				w.log.Errorf("%v", err)
			}
		case e := <-evts:
			switch e.Type {
			case event.Quit:
				return nil
			case event.Title:
				h.queue(append([]byte{TitleInfo}, fmt.Sprint(e.Data)...))
			case event.Tone:
				on, _ := e.Data.(bool)
				h.queue([]byte{ToneInfo, utils.BoolToBit(on)})
			case event.Halt:
				h.queue(append([]byte{HaltInfo}, fmt.Sprint(e.Data)...))
			}
		case msg := <-h.input:
			w.handleMessage(h, msg, pressed, released)
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("web: %w", err)
		}
	}
}

// handleMessage acts on a message received from a client.
func (w *webDriver) handleMessage(h *hub, msg []byte, pressed, released chan<- joypad.Key) {
	switch msg[0] {
	case KeyEvent:
		if len(msg) < 3 {
			return
		}
		ch := released
		if msg[2] != 0 {
			ch = pressed
		}
		select {
		case ch <- joypad.Key(msg[1] & 0xF):
		default:
		}
	case PausePlay:
		if w.emu != nil {
			display.TogglePause(w.emu)
			h.queue([]byte{ClientInfo, h.info()})
		}
	case ResetEmulator:
		if w.emu != nil {
			w.emu.SendCommand(display.Reset)
		}
	}
}

// Stop stops the display driver, closing every connection.
func (w *webDriver) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	if w.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.srv.Shutdown(ctx)
}
