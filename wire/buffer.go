// Package wire implements the IMAP4rev1 wire-format codec: a chunked byte
// buffer plus a grammar encoder that serializes the typed command/response
// AST (see the root imap package) into RFC 3501 bytes.
//
// The buffer never reads from or writes to a network connection; it is a
// passive value. Callers alternate write_* operations with NextChunk draws
// and hand the drained bytes to their own transport.
package wire

import (
	imap "github.com/imapwire/codec"
)

// Role distinguishes which side of the connection a buffer serializes for;
// only the client side must honor the synchronizing-literal stop-point
// protocol.
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

// ClientOptions is the negotiated client-side formatting policy, built
// deterministically from the server's advertised capability list.
type ClientOptions struct {
	UseQuotedString                  bool
	UseSynchronizingLiteral          bool
	UseNonSynchronizingLiteralPlus   bool
	UseNonSynchronizingLiteralMinus  bool
	UseBinaryLiteral                 bool
}

// ClientOptionsFromCapabilities builds ClientOptions from a server's
// advertised capabilities: quoted strings and synchronizing literals are
// always available as the baseline; LITERAL+ takes precedence over
// LITERAL- when the server advertises both.
func ClientOptionsFromCapabilities(caps []imap.Cap) ClientOptions {
	opts := ClientOptions{
		UseQuotedString:         true,
		UseSynchronizingLiteral: true,
	}
	set := imap.NewCapSet(caps...)
	if set.Has(imap.CapLiteralPlus) {
		opts.UseNonSynchronizingLiteralPlus = true
	} else if set.Has(imap.CapLiteralMinus) {
		opts.UseNonSynchronizingLiteralMinus = true
	}
	opts.UseBinaryLiteral = set.Has(imap.CapBinary)
	return opts
}

// ServerOptions is the negotiated server-side formatting policy.
type ServerOptions struct {
	UseQuotedString bool
}

// ServerOptionsFromCapabilities builds ServerOptions from a server's
// advertised capabilities.
func ServerOptionsFromCapabilities(caps []imap.Cap) ServerOptions {
	return ServerOptions{UseQuotedString: true}
}

// Mode is the sender role and its negotiated encoding options: Client
// carries ClientOptions, Server additionally tracks the streaming_attributes
// sub-flag used by the FETCH-response state machine. After construction a
// buffer's mode changes only through that flag and SetClientOptions.
type Mode struct {
	Role    Role
	Client  ClientOptions
	Server  ServerOptions
	// StreamingAttributes is server-mode state: true once a FETCH response
	// has emitted at least one attribute since its Start/StartUID event.
	StreamingAttributes bool
}

// ClientMode builds a client-role Mode.
func ClientMode(opts ClientOptions) Mode {
	return Mode{Role: RoleClient, Client: opts}
}

// ServerMode builds a server-role Mode.
func ServerMode(opts ServerOptions) Mode {
	return Mode{Role: RoleServer, Server: opts}
}

// IsClient reports whether m is client-role.
func (m Mode) IsClient() bool { return m.Role == RoleClient }

// Chunk is one drained segment ready for the transport to send.
type Chunk struct {
	Bytes              []byte
	WaitForContinuation bool
}

// Empty reports whether the chunk carries no bytes.
func (c Chunk) Empty() bool { return len(c.Bytes) == 0 }

// EncodeBuffer is a growable byte sink carrying chunk metadata: the sender's
// Mode, the accumulated bytes, an ordered queue of stop-point offsets, and a
// logging-mode flag. Grammar writers append to it; the owner alternates
// write_* calls with NextChunk draws.
//
// The zero value is not usable; construct with NewEncodeBuffer.
type EncodeBuffer struct {
	mode        Mode
	buf         []byte
	readerIndex int
	stopPoints  []int
	logging     bool
}

// NewEncodeBuffer creates an empty buffer in the given mode.
func NewEncodeBuffer(mode Mode) *EncodeBuffer {
	return &EncodeBuffer{mode: mode}
}

// Mode returns the buffer's current mode.
func (b *EncodeBuffer) Mode() Mode { return b.mode }

// SetClientOptions replaces the client-side encoding options. Valid only
// between commands, never mid-write — swapping modes mid-encode would make
// already-written bytes inconsistent with the new option set.
func (b *EncodeBuffer) SetClientOptions(opts ClientOptions) {
	if b.mode.Role != RoleClient {
		panic("wire: SetClientOptions on a non-client buffer")
	}
	b.mode.Client = opts
}

// SetLogging toggles logging mode: literal payloads and quoted-string
// bodies are replaced with the placeholder "∅", preserving length metadata
// and overall structure.
func (b *EncodeBuffer) SetLogging(logging bool) { b.logging = logging }

// Logging reports whether logging mode is active.
func (b *EncodeBuffer) Logging() bool { return b.logging }

// WriteBytes appends raw bytes and returns the number of bytes appended.
// All byte operations are infallible.
func (b *EncodeBuffer) WriteBytes(p []byte) int {
	b.buf = append(b.buf, p...)
	return len(p)
}

// WriteString appends a raw string and returns the number of bytes appended.
func (b *EncodeBuffer) WriteString(s string) int {
	b.buf = append(b.buf, s...)
	return len(s)
}

// WriteByte appends a single byte and returns 1.
func (b *EncodeBuffer) WriteByte(c byte) int {
	b.buf = append(b.buf, c)
	return 1
}

// WriteBuffer appends the readable contents of another buffer (used when
// composing a sub-encoding, e.g. a nested literal's own grammar) and merges
// its stop points, shifted to this buffer's current write offset.
func (b *EncodeBuffer) WriteBuffer(other *EncodeBuffer) int {
	offset := len(b.buf)
	n := b.WriteBytes(other.buf[other.readerIndex:])
	for _, sp := range other.stopPoints {
		if sp >= other.readerIndex {
			b.stopPoints = append(b.stopPoints, offset+(sp-other.readerIndex))
		}
	}
	return n
}

// MarkStopPoint records the current write offset as an explicit chunk
// boundary in client mode; no-op in server mode. Returns 0 so it composes
// inline with byte-count-returning writers (e.g. n := a(b) + b.MarkStopPoint()).
func (b *EncodeBuffer) MarkStopPoint() int {
	if b.mode.Role != RoleClient {
		return 0
	}
	offset := len(b.buf)
	if n := len(b.stopPoints); n > 0 && b.stopPoints[n-1] > offset {
		panic("wire: stop points must be non-decreasing")
	}
	b.stopPoints = append(b.stopPoints, offset)
	return 0
}

// NextChunk drains the next chunk, disallowing an empty result (the caller
// must avoid calling this when nothing remains; see NextChunkAllowEmpty).
func (b *EncodeBuffer) NextChunk() Chunk {
	c := b.NextChunkAllowEmpty(false)
	return c
}

// NextChunkAllowEmpty drains the next chunk: in server mode it always drains
// everything at once; in client mode it pops the earliest pending stop
// point first (so the caller can await a server continuation before
// sending the rest), then drains any remainder once no stop points are
// left. In client mode, when allowEmpty is false and nothing remains to
// drain, it panics: draining past the end is a caller bug, not a runtime
// error. Server mode never panics and returns an empty chunk instead.
func (b *EncodeBuffer) NextChunkAllowEmpty(allowEmpty bool) Chunk {
	if b.mode.Role == RoleServer {
		return b.drainRemainder(false)
	}

	if len(b.stopPoints) > 0 {
		stop := b.stopPoints[0]
		b.stopPoints = b.stopPoints[1:]
		bytes := b.buf[b.readerIndex:stop]
		b.readerIndex = stop
		return Chunk{Bytes: bytes, WaitForContinuation: true}
	}

	if b.readerIndex < len(b.buf) {
		return b.drainRemainder(false)
	}

	if !allowEmpty {
		panic("wire: NextChunk called with nothing left to drain")
	}
	return Chunk{}
}

func (b *EncodeBuffer) drainRemainder(wait bool) Chunk {
	bytes := b.buf[b.readerIndex:]
	b.readerIndex = len(b.buf)
	return Chunk{Bytes: bytes, WaitForContinuation: wait}
}

// Clear discards all buffered bytes and stop points, resetting the buffer to
// its just-constructed state (mode is preserved).
func (b *EncodeBuffer) Clear() {
	b.buf = b.buf[:0]
	b.readerIndex = 0
	b.stopPoints = nil
}

// Readable reports how many unread bytes remain in the buffer.
func (b *EncodeBuffer) Readable() int { return len(b.buf) - b.readerIndex }

// StopPoints exposes the pending stop-point offsets, for tests asserting
// well-formedness.
func (b *EncodeBuffer) StopPoints() []int {
	out := make([]int, len(b.stopPoints))
	copy(out, b.stopPoints)
	return out
}

// Bytes returns the full written byte sequence regardless of how much has
// already been drained via NextChunk. Used by callers that want the whole
// encoding at once (e.g. tests, or a non-chunked transport).
func (b *EncodeBuffer) Bytes() []byte {
	return append([]byte(nil), b.buf...)
}
