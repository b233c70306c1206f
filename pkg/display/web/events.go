package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame carries a new frame: [Frame, cache index, payload...].
	// The payload is the display packed one bit per pixel, brotli
	// compressed when compression is enabled.
	Frame Type = iota
	// FrameCache repeats a frame the client already holds:
	// [FrameCache, cache index].
	FrameCache
	// FrameSync carries the current frame to a newly connected
	// client: [FrameSync, payload...].
	FrameSync
	// FrameCacheSync carries the frame cache to a newly connected
	// client, as a sequence of [length (2 bytes LE), index, payload...].
	FrameCacheSync
	// ClientInfo carries the hub settings: [ClientInfo, info], see hub.info.
	ClientInfo
	// ServerInfo carries the latency of each connected client:
	// [ServerInfo, (id, latency ms (2 bytes LE))...].
	ServerInfo
	// ToneInfo reports the tone starting or stopping: [ToneInfo, on].
	ToneInfo
	// HaltInfo reports a fatal error: [HaltInfo, message...].
	HaltInfo
	// TitleInfo carries the title of the program: [TitleInfo, title...].
	TitleInfo
	// ClientClosing reports another client disconnecting: [ClientClosing, id].
	ClientClosing
)

// Event is the first byte of every message received from a client.
type Event = uint8

const (
	_ Event = iota
	// KeyEvent presses or releases a key: [KeyEvent, key, pressed].
	KeyEvent
	// PausePlay toggles the emulator between paused and running.
	PausePlay
	// ResetEmulator restarts the program.
	ResetEmulator
	KeepAlive = 254
	Closing   = 255
)
