package emulator

import (
	"fmt"
	"strconv"
)

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator, reloading the program.
	CommandReset
	// CommandSetSpeed sets the instruction rate of the emulator.
	CommandSetSpeed
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "Pause"
	case CommandResume:
		return "Resume"
	case CommandClose:
		return "Close"
	case CommandReset:
		return "Reset"
	case CommandSetSpeed:
		return "SetSpeed"
	default:
		return "Unknown"
	}
}

// SetSpeed returns a CommandSetSpeed packet setting the
// instruction rate to ips instructions per second.
func SetSpeed(ips int) CommandPacket {
	return CommandPacket{Command: CommandSetSpeed, Data: []byte(strconv.Itoa(ips))}
}

// Speed decodes the instruction rate carried by a
// CommandSetSpeed packet.
func (c CommandPacket) Speed() (int, error) {
	ips, err := strconv.Atoi(string(c.Data))
	if err != nil {
		return 0, fmt.Errorf("decoding speed %q: %w", c.Data, err)
	}
	return ips, nil
}
