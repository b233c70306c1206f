//go:build unix

package terminal

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// input puts a terminal into raw, non-blocking mode and reads it on
// its own goroutine. Each read is delivered whole, so that escape
// sequences arrive together.
type input struct {
	fd       int
	oldState *term.State
	chunks   chan []byte

	stop    chan struct{}
	done    chan struct{}
	stopped sync.Once
}

func newInput(fd int) (*input, error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, oldState)
		return nil, err
	}

	in := &input{
		fd:       fd,
		oldState: oldState,
		chunks:   make(chan []byte, 16),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go in.read()
	return in, nil
}

func (in *input) read() {
	defer close(in.done)
	defer close(in.chunks)

	buf := make([]byte, 16)
	for {
		select {
		case <-in.stop:
			return
		default:
		}

		n, err := unix.Read(in.fd, buf)
		if n > 0 {
			select {
			case in.chunks <- append([]byte(nil), buf[:n]...):
			case <-in.stop:
				return
			}
		}
		switch {
		case err == unix.EAGAIN || err == unix.EINTR:
			time.Sleep(5 * time.Millisecond)
		case err != nil:
			return
		case n == 0:
			// end of input
			return
		}
	}
}

// Close stops reading and restores the terminal.
func (in *input) Close() error {
	in.stopped.Do(func() {
		close(in.stop)
	})
	<-in.done

	if err := unix.SetNonblock(in.fd, false); err != nil {
		return err
	}
	return term.Restore(in.fd, in.oldState)
}
