package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hashicorp/go-multierror"

	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	_ "github.com/thelolagemann/gochip8/pkg/display/terminal"
	_ "github.com/thelolagemann/gochip8/pkg/display/web"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

var (
	_ display.Emulator = &chip8.VM{}
)

func main() {
	if len(display.InstalledDrivers) == 0 {
		log.New().Fatal("No display drivers installed. Please compile with at least one display driver")
	}

	romFile := flag.String("rom", "", "The program to load (.ch8, or a .zip, .gz or .7z archive containing one)")
	ips := flag.Int("ips", chip8.DefaultInstructionsPerSecond, "The number of instructions to execute per second")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, "+strings.Join(display.Names(), " or "))
	seed := flag.Uint64("seed", 0, "Seed for the random number generator, 0 picks one at random")
	debug := flag.Bool("debug", false, "Enable debug logging")
	logFile := flag.String("log", "", "Write the log to this file instead of stderr")

	display.RegisterFlags()
	flag.Parse()

	var w io.Writer = os.Stderr
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.New().Fatal(err.Error())
		}
		defer f.Close()
		w = f
	}
	logger := log.NewWithConfig(w, *debug)

	if err := run(logger, *romFile, *displayDriver, *ips, *seed); err != nil {
		logger.Fatal(err.Error())
	}
}

func run(logger log.Logger, romFile, driverName string, ips int, seed uint64) error {
	if romFile == "" {
		return errors.New("no program given, use -rom")
	}
	rom, err := utils.LoadFile(romFile)
	if err != nil {
		return err
	}

	opts := []chip8.Opt{
		chip8.WithLogger(logger),
		chip8.InstructionsPerSecond(ips),
		chip8.WithProgram(rom),
	}
	if seed != 0 {
		opts = append(opts, chip8.WithSeed(seed))
	}
	vm, err := chip8.New(opts...)
	if err != nil {
		return fmt.Errorf("loading %s: %w", romFile, err)
	}
	logger.Infof("loaded %s (%d bytes) at %d instructions per second", romFile, len(rom), vm.InstructionsPerSecond())

	driver := display.GetDriver(driverName)
	// check to make sure the driver is valid
	if driver == nil {
		return fmt.Errorf("invalid display driver %q, installed drivers are %s", driverName, strings.Join(display.Names(), ", "))
	}
	if d, ok := driver.(interface{ SetLogger(log.Logger) }); ok {
		d.SetLogger(logger)
	}

	// attach the VM to the driver
	driver.Initialize(vm)

	// create framebuffer
	fb := make(chan ppu.Frame, 1)

	// create various channels
	events := make(chan event.Event, 60)
	pressed := make(chan joypad.Key, 16)
	released := make(chan joypad.Key, 16)

	events <- event.Event{Type: event.Title, Data: filepath.Base(romFile)}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// start the VM in a goroutine
	vmErr := make(chan error, 1)
	go func() {
		vmErr <- vm.Start(ctx, fb, events, pressed, released)
	}()

	driverErr := driver.Start(fb, events, pressed, released)
	cancel()

	var result *multierror.Error
	result = multierror.Append(result, <-vmErr, driverErr, driver.Stop())
	err = result.ErrorOrNil()

	var fault *types.Fault
	if errors.As(err, &fault) {
		logger.Errorf("program halted at PC 0x%03X (opcode 0x%04X): %v", fault.PC, fault.Opcode, fault.Err)
	}

	return err
}
