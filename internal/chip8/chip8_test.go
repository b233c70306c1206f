package chip8

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/scheduler"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// program assembles instruction words into program bytes.
func program(words ...uint16) []byte {
	b := make([]byte, 0, len(words)*2)
	for _, w := range words {
		b = append(b, uint8(w>>8), uint8(w))
	}
	return b
}

func newTestVM(t *testing.T, opts ...Opt) (*VM, *scheduler.ManualClock) {
	t.Helper()
	clock := scheduler.NewManualClock()
	v, err := New(append([]Opt{WithClock(clock), WithSeed(1)}, opts...)...)
	require.NoError(t, err)
	return v, clock
}

func TestVM_ClearAndLoop(t *testing.T) {
	v, clock := newTestVM(t, WithProgram(program(0x00E0, 0x1200)))

	seen := make(map[uint16]bool)
	for i := 0; i < 20; i++ {
		clock.Advance(time.Second)
		require.NoError(t, v.Update())
		assert.Contains(t, []uint16{0x200, 0x202}, v.PC())
		seen[v.PC()] = true

		assert.Equal(t, emulator.Running, v.Status())
		assert.Equal(t, ppu.Frame{}, v.Frame())
	}
	assert.NoError(t, v.Err())

	// one instruction per update alternates between CLS and the jump
	v.SetInstructionsPerSecond(100)
	for i := 0; i < 3; i++ {
		clock.Advance(10 * time.Millisecond)
		require.NoError(t, v.Update())
		seen[v.PC()] = true
	}
	assert.Equal(t, map[uint16]bool{0x200: true, 0x202: true}, seen)
}

func TestVM_TimerCountdown(t *testing.T) {
	v, clock := newTestVM(t, WithProgram(program(0x6A0A, 0xFA15, 0x1204)))
	require.NoError(t, v.Step())
	require.NoError(t, v.Step())
	require.Equal(t, uint8(10), v.Timer.Delay)

	for i := 0; i < 5; i++ {
		clock.Advance(scheduler.Period(60))
		require.NoError(t, v.Update())
	}
	assert.Equal(t, uint8(5), v.Timer.Delay)

	for i := 0; i < 5; i++ {
		clock.Advance(scheduler.Period(60))
		require.NoError(t, v.Update())
	}
	assert.Equal(t, uint8(0), v.Timer.Delay)

	for i := 0; i < 30; i++ {
		clock.Advance(scheduler.Period(60))
		require.NoError(t, v.Update())
	}
	assert.Equal(t, uint8(0), v.Timer.Delay)
}

func TestVM_Tone(t *testing.T) {
	// ST = 2
	v, clock := newTestVM(t, WithProgram(program(0x6002, 0xF018, 0x1204)))
	require.NoError(t, v.Step())
	require.NoError(t, v.Step())
	assert.False(t, v.Tone(), "tone is only sampled on a tick")

	clock.Advance(scheduler.Period(60))
	require.NoError(t, v.Update())
	assert.True(t, v.Tone())
	assert.True(t, v.FrameReady())
	assert.False(t, v.FrameReady())

	clock.Advance(scheduler.Period(60))
	require.NoError(t, v.Update())
	assert.False(t, v.Tone())
}

func TestVM_AwaitKey(t *testing.T) {
	v, clock := newTestVM(t, WithProgram(program(0xF70A, 0x1202)))

	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		require.NoError(t, v.Update())
		require.Equal(t, uint16(0x200), v.PC())
	}

	v.Press(joypad.Key7)
	clock.Advance(scheduler.Period(DefaultInstructionsPerSecond))
	require.NoError(t, v.Update())

	assert.Equal(t, uint8(7), v.CPU.V[7])
	assert.Equal(t, uint16(0x202), v.PC())
}

func TestVM_Backlog(t *testing.T) {
	// V0 += 1 forever, at one instruction per millisecond
	v, clock := newTestVM(t, InstructionsPerSecond(1000), WithProgram(program(0x7001, 0x1200)))

	clock.Advance(10 * time.Second)
	require.NoError(t, v.Update())

	assert.Equal(t, uint8(MaxBacklog/time.Millisecond/2), v.CPU.V[0])
}

func TestVM_Fault(t *testing.T) {
	v, clock := newTestVM(t, WithProgram(program(0x6001, 0xF0FF)))

	clock.Advance(time.Second)
	err := v.Update()
	require.ErrorIs(t, err, types.ErrInvalidInstruction)

	var fault *types.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, uint16(0x202), fault.PC)
	assert.Equal(t, uint16(0xF0FF), fault.Opcode)
	assert.Equal(t, emulator.Errored, v.Status())

	// the error is sticky
	clock.Advance(time.Second)
	assert.Equal(t, err, v.Update())
	assert.Equal(t, err, v.Step())
	assert.Equal(t, uint16(0x202), v.PC())

	// until the machine is reset
	v.Reset()
	assert.NoError(t, v.Err())
	assert.Equal(t, uint16(0x200), v.PC())
	assert.Equal(t, emulator.Running, v.Status())
}

func TestVM_ProgramTooLarge(t *testing.T) {
	_, err := New(WithProgram(make([]byte, types.MaxProgramSize+1)))
	require.ErrorIs(t, err, types.ErrProgramTooLarge)

	v, _ := newTestVM(t, WithProgram(program(0x1234)))
	err = v.Load(make([]byte, types.MaxProgramSize+1))
	require.True(t, errors.Is(err, types.ErrProgramTooLarge))
	assert.Equal(t, uint8(0x12), v.MMU.Read(0x200))
	assert.Equal(t, uint8(0x34), v.MMU.Read(0x201))

	// the largest program fits
	require.NoError(t, v.Load(make([]byte, types.MaxProgramSize)))
}

func TestVM_Independent(t *testing.T) {
	a, clockA := newTestVM(t, WithProgram(program(0x6042, 0x1202)))
	b, _ := newTestVM(t, WithProgram(program(0x6024, 0x1202)))

	clockA.Advance(time.Second)
	require.NoError(t, a.Update())

	assert.Equal(t, uint8(0x42), a.CPU.V[0])
	assert.Equal(t, uint8(0x00), b.CPU.V[0])
	assert.Equal(t, uint16(0x200), b.PC())
}

func TestVM_Seed(t *testing.T) {
	rnd := program(0xC0FF, 0xC1FF, 0xC2FF)
	a, _ := newTestVM(t, WithSeed(42), WithProgram(rnd))
	b, _ := newTestVM(t, WithSeed(42), WithProgram(rnd))

	for i := 0; i < 3; i++ {
		require.NoError(t, a.Step())
		require.NoError(t, b.Step())
	}
	assert.Equal(t, a.CPU.V, b.CPU.V)

	// a reset replays the same sequence
	want := a.CPU.V
	a.Reset()
	for i := 0; i < 3; i++ {
		require.NoError(t, a.Step())
	}
	assert.Equal(t, want, a.CPU.V)
}

func TestVM_Commands(t *testing.T) {
	v, clock := newTestVM(t, WithProgram(program(0x7001, 0x1200)))

	resp := v.SendCommand(emulator.CommandPacket{Command: emulator.CommandPause})
	require.NoError(t, resp.Error)
	assert.Equal(t, emulator.Paused, v.Status())

	clock.Advance(time.Second)
	require.NoError(t, v.Update())
	assert.Equal(t, uint8(0), v.CPU.V[0], "paused VM must not execute")

	v.SendCommand(emulator.CommandPacket{Command: emulator.CommandResume})
	assert.Equal(t, emulator.Running, v.Status())
	clock.Advance(10 * time.Millisecond)
	require.NoError(t, v.Update())
	assert.NotZero(t, v.CPU.V[0])

	resp = v.SendCommand(emulator.SetSpeed(2000))
	require.NoError(t, resp.Error)
	assert.Equal(t, 2000, v.InstructionsPerSecond())

	v.SendCommand(emulator.SetSpeed(0))
	assert.Equal(t, MinInstructionsPerSecond, v.InstructionsPerSecond())

	resp = v.SendCommand(emulator.CommandPacket{Command: emulator.CommandSetSpeed, Data: []byte("fast")})
	assert.Error(t, resp.Error)

	v.SendCommand(emulator.CommandPacket{Command: emulator.CommandReset})
	assert.Equal(t, uint8(0), v.CPU.V[0])
	assert.Equal(t, uint16(0x200), v.PC())

	resp = v.SendCommand(emulator.CommandPacket{Command: emulator.Command(99)})
	assert.Error(t, resp.Error)
}

func TestVM_Start(t *testing.T) {
	// draw glyph 0 at (0, 0), then loop
	v, clock := newTestVM(t, WithProgram(program(0x6000, 0xF029, 0xD005, 0x1206)))

	fb := make(chan ppu.Frame, 1)
	events := make(chan event.Event, 8)
	pressed := make(chan joypad.Key)
	released := make(chan joypad.Key)

	done := make(chan error, 1)
	go func() {
		done <- v.Start(context.Background(), fb, events, pressed, released)
	}()

	clock.Advance(100 * time.Millisecond)

	select {
	case frame := <-fb:
		assert.True(t, frame.Pixel(0, 0))
		assert.False(t, frame.Pixel(4, 0))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a frame")
	}

	pressed <- joypad.KeyA
	resp := v.SendCommand(emulator.CommandPacket{Command: emulator.CommandClose})
	require.NoError(t, resp.Error)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Start to return")
	}

	assert.True(t, v.Keypad.IsPressed(joypad.KeyA))
	assert.Equal(t, emulator.Halted, v.Status())

	var last event.Event
	for len(events) > 0 {
		last = <-events
	}
	assert.Equal(t, event.Quit, last.Type)
}

func TestVM_StartFault(t *testing.T) {
	v, clock := newTestVM(t, WithProgram(program(0x00EE)))

	events := make(chan event.Event, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- v.Start(ctx, make(chan ppu.Frame, 1), events, nil, nil)
	}()
	clock.Advance(10 * time.Millisecond)

	select {
	case err := <-done:
		require.ErrorIs(t, err, types.ErrStackUnderflow)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Start to return")
	}

	e := <-events
	assert.Equal(t, event.Halt, e.Type)
	assert.ErrorIs(t, e.Data.(error), types.ErrStackUnderflow)
}

func TestVM_StartCancel(t *testing.T) {
	v, _ := newTestVM(t, WithProgram(program(0x1200)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- v.Start(ctx, make(chan ppu.Frame, 1), make(chan event.Event, 1), nil, nil)
	}()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Start to return")
	}
	assert.Equal(t, emulator.Halted, v.Status())
}
