package web

import (
	"context"
	"encoding/binary"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/log"
)

const cacheSize = 64

type hub struct {
	clients map[*Client]bool

	broadcast            chan []byte
	register, unregister chan *Client
	input                chan []byte

	compression      bool
	compressionLevel int
	currentID        uint8

	frames   *cache
	lastHash uint64
	last     []byte

	paused func() bool
	log    log.Logger

	// done is closed once run has returned.
	done chan struct{}

	mu sync.Mutex
}

func newHub(compression bool, level int, l log.Logger) *hub {
	empty := ppu.Pack(&ppu.Frame{})
	return &hub{
		clients:          make(map[*Client]bool),
		broadcast:        make(chan []byte, 16),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		input:            make(chan []byte, 64),
		compression:      compression,
		compressionLevel: level,
		frames:           newCache(cacheSize),
		lastHash:         xxhash.Sum64(empty),
		last:             empty,
		paused:           func() bool { return false },
		log:              l,
		done:             make(chan struct{}),
	}
}

// ServeHTTP upgrades a request to a websocket connection and
// registers it as a client.
func (w *hub) ServeHTTP(wr http.ResponseWriter, r *http.Request) {
	wr.Header().Set("Access-Control-Allow-Origin", "*")

	// upgrade the connection to a websocket connection
	conn, err := upgrader.Upgrade(wr, r, nil)
	if err != nil {
		w.log.Errorf("upgrading connection from %s: %v", r.RemoteAddr, err)
		return
	}

	// create new client
	c := w.newClient(conn, r)

	// send initial data, before the pumps start so that it
	// is the first thing the client sees
	c.Send <- []byte{ClientInfo, w.info()}
	if payload, err := w.sync(); err == nil {
		c.Send <- append([]byte{FrameSync}, payload...)
	} else {
		w.log.Errorf("syncing %s: %v", r.RemoteAddr, err)
	}
	w.frames.RLock()
	c.Send <- append([]byte{FrameCacheSync}, w.frames.sync()...)
	w.frames.RUnlock()

	select {
	case w.register <- c:
	case <-w.done:
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.ReadPump()
	go c.WritePump()
}

// run handles registration and broadcasting until ctx is done.
func (w *hub) run(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			for c := range w.clients {
				close(c.Send)
				delete(w.clients, c)
			}
			return
		case <-t.C:
			// periodic latency updates
			var data []byte
			w.mu.Lock()
			for c := range w.clients {
				latencyBuf := make([]byte, 2)
				binary.LittleEndian.PutUint16(latencyBuf, c.avgLatency)
				data = append(data, c.ID)
				data = append(data, latencyBuf...)
			}
			w.mu.Unlock()
			w.send(append([]byte{ServerInfo}, data...))
		case c := <-w.register:
			w.clients[c] = true
			w.log.Debugf("client %d connected from %s", c.ID, c.Metadata.RemoteAddr)
		case c := <-w.unregister:
			// is this client still registered
			if _, ok := w.clients[c]; ok {
				delete(w.clients, c)
				close(c.Send)
				w.log.Debugf("client %d disconnected", c.ID)

				// notify connected clients that this client has disconnected
				w.send([]byte{ClientClosing, c.ID})
			}
		case msg := <-w.broadcast:
			w.send(msg)
		}
	}
}

// send queues msg for every client, dropping clients that have
// fallen too far behind.
func (w *hub) send(msg []byte) {
	for c := range w.clients {
		select {
		case c.Send <- msg:
		default:
			close(c.Send)
			delete(w.clients, c)
		}
	}
}

// publish broadcasts f, unless it is identical to the last frame
// published. Frames held in the cache are sent as their index.
func (w *hub) publish(f *ppu.Frame) error {
	packed := ppu.Pack(f)
	hash := xxhash.Sum64(packed)

	w.mu.Lock()
	if hash == w.lastHash {
		w.mu.Unlock()
		return nil
	}
	w.lastHash = hash
	w.last = packed
	w.mu.Unlock()

	w.frames.Lock()
	defer w.frames.Unlock()

	if idx := w.frames.index(hash); idx != -1 {
		w.queue([]byte{FrameCache, uint8(idx)})
		return nil
	}

	payload, err := w.encode(packed)
	if err != nil {
		return err
	}
	idx := w.frames.add(hash, payload)
	w.queue(append([]byte{Frame, uint8(idx)}, payload...))
	return nil
}

// queue hands msg to run for broadcasting. Messages queued after
// run has returned are dropped.
func (w *hub) queue(msg []byte) {
	select {
	case w.broadcast <- msg:
	case <-w.done:
	}
}

// sync returns the encoded last frame.
func (w *hub) sync() ([]byte, error) {
	w.mu.Lock()
	last := w.last
	w.mu.Unlock()
	return w.encode(last)
}

func (w *hub) encode(packed []byte) ([]byte, error) {
	if !w.compression {
		return packed, nil
	}
	return compress(packed, w.compressionLevel)
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Emulator running
//	Bit 1: Emulator paused
//	Bit 2: Compression enabled
func (w *hub) info() byte {
	info := uint8(0)
	if w.paused() {
		info |= types.Bit1
	} else {
		info |= types.Bit0
	}
	if w.compression {
		info |= types.Bit2
	}

	return info
}

// newClient creates a new client for conn.
func (w *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.currentID++

	c := &Client{
		hub:         w,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          w.currentID,
		connectedAt: time.Now(),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 4,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
