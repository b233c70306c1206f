package chip8

import (
	"context"
	"fmt"
	"time"

	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// PollInterval is how often Start samples the clock.
const PollInterval = time.Millisecond

type command struct {
	packet   emulator.CommandPacket
	response chan emulator.ResponsePacket
}

// Start runs the VM on the calling goroutine until ctx is cancelled,
// a Close command is received, or the program fails. Frames are
// published to fb at most once per timer tick, and only when the
// display has changed; if fb is full the frame is retried on the next
// tick with whatever the display holds then. Tone changes and halts
// are published to events without blocking. Key events are applied
// between updates, never mid-instruction.
//
// Start returns the fatal error that stopped the program, or nil on
// shutdown.
func (v *VM) Start(ctx context.Context, fb chan<- ppu.Frame, events chan<- event.Event, pressed, released <-chan joypad.Key) error {
	v.running.Store(true)
	defer v.running.Store(false)

	poll := time.NewTicker(PollInterval)
	defer poll.Stop()

	tone := false
	publish := func(e event.Event) {
		select {
		case events <- e:
		default:
			v.Logger.Debugf("dropped %v event", e.Type)
		}
	}
	defer publish(event.Event{Type: event.Quit})

	for {
		select {
		case <-ctx.Done():
			v.status.Store(int32(emulator.Halted))
			return nil
		case cmd := <-v.commands:
			cmd.response <- v.handleCommand(cmd.packet)
			if cmd.packet.Command == emulator.CommandClose {
				return nil
			}
		case key := <-pressed:
			v.Press(key)
		case key := <-released:
			v.Release(key)
		case <-poll.C:
			if err := v.Update(); err != nil {
				publish(event.Event{Type: event.Halt, Data: err})
				return err
			}
			if !v.FrameReady() {
				continue
			}

			if v.Dirty() {
				select {
				case fb <- v.ppu.Peek():
					v.ppu.Frame()
				default:
				}
			}
			if v.tone != tone {
				tone = v.tone
				publish(event.Event{Type: event.Tone, Data: tone})
			}
		}
	}
}

// SendCommand sends a command packet to the VM. While Start is
// running, the command is handed to its goroutine and SendCommand
// blocks until it has been handled; otherwise it is handled
// immediately on the calling goroutine.
func (v *VM) SendCommand(packet emulator.CommandPacket) emulator.ResponsePacket {
	if !v.running.Load() {
		return v.handleCommand(packet)
	}

	cmd := command{packet: packet, response: make(chan emulator.ResponsePacket, 1)}
	select {
	case v.commands <- cmd:
		return <-cmd.response
	case <-time.After(time.Second):
		return emulator.ResponsePacket{Command: packet.Command, Error: fmt.Errorf("%v: emulator is not responding", packet.Command)}
	}
}

func (v *VM) handleCommand(packet emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: packet.Command}

	switch packet.Command {
	case emulator.CommandPause:
		if v.Status() == emulator.Running {
			v.status.Store(int32(emulator.Paused))
			v.Logger.Infof("paused")
		}
	case emulator.CommandResume:
		if v.Status() == emulator.Paused {
			v.status.Store(int32(emulator.Running))
			v.Logger.Infof("resumed")
		}
	case emulator.CommandReset:
		v.Reset()
	case emulator.CommandClose:
		v.status.Store(int32(emulator.Halted))
	case emulator.CommandSetSpeed:
		ips, err := packet.Speed()
		if err != nil {
			resp.Error = err
			break
		}
		v.SetInstructionsPerSecond(ips)
		v.Logger.Infof("speed set to %d instructions per second", v.InstructionsPerSecond())
	default:
		resp.Error = fmt.Errorf("unknown command %v", packet.Command)
	}

	resp.Data = []byte(v.Status().String())
	return resp
}
