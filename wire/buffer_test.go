package wire

import (
	"bytes"
	"strconv"
	"testing"
)

func clientBuffer() *EncodeBuffer {
	return NewEncodeBuffer(ClientMode(ClientOptions{UseQuotedString: true, UseSynchronizingLiteral: true}))
}

func TestEncodeBufferQuotedShortString(t *testing.T) {
	b := clientBuffer()
	b.WriteIMAPString("INBOX")
	chunk := b.NextChunk()
	if got, want := string(chunk.Bytes), `"INBOX"`; got != want {
		t.Errorf("chunk = %q, want %q", got, want)
	}
	if chunk.WaitForContinuation {
		t.Error("a quoted string's chunk should not wait for a continuation")
	}
}

func TestEncodeBufferSynchronizingLiteralAwaitsContinuation(t *testing.T) {
	b := clientBuffer()
	// a string with a double quote can't be sent quoted (it would require
	// escaping, but length alone already forces a literal once it exceeds
	// the quoted-string length cap); use an over-length string instead.
	payload := bytes.Repeat([]byte("a"), quotedStringMaxLen+1)
	b.WriteIMAPString(string(payload))

	header := b.NextChunk()
	if !header.WaitForContinuation {
		t.Fatal("a synchronizing literal's header chunk must wait for a server continuation")
	}
	if got, want := string(header.Bytes), "{"+strconv.Itoa(len(payload))+"}\r\n"; got != want {
		t.Errorf("literal header = %q, want %q", got, want)
	}

	body := b.NextChunk()
	if body.WaitForContinuation {
		t.Error("the literal payload chunk should not itself wait for a continuation")
	}
	if !bytes.Equal(body.Bytes, payload) {
		t.Error("literal payload chunk should carry the exact payload bytes")
	}
}

func TestEncodeBufferServerModeDrainsWholeBuffer(t *testing.T) {
	b := NewEncodeBuffer(ServerMode(ServerOptions{UseQuotedString: true}))
	b.WriteIMAPString("INBOX")
	b.MarkStopPoint() // no-op in server mode
	chunk := b.NextChunk()
	if got, want := string(chunk.Bytes), `"INBOX"`; got != want {
		t.Errorf("server-mode chunk = %q, want %q", got, want)
	}
	if b.Readable() != 0 {
		t.Error("draining a server-mode buffer should leave nothing readable")
	}
}

func TestEncodeBufferNextChunkPanicsWhenExhausted(t *testing.T) {
	b := clientBuffer()
	b.WriteIMAPString("INBOX")
	b.MarkStopPoint()
	b.NextChunk()

	defer func() {
		if recover() == nil {
			t.Fatal("NextChunk on an exhausted buffer should panic")
		}
	}()
	b.NextChunk()
}

func TestEncodeBufferNextChunkAllowEmpty(t *testing.T) {
	b := clientBuffer()
	b.WriteIMAPString("INBOX")
	b.MarkStopPoint()
	b.NextChunk()

	chunk := b.NextChunkAllowEmpty(true)
	if !chunk.Empty() {
		t.Error("NextChunkAllowEmpty on an exhausted buffer should return an empty chunk, not panic")
	}
}

func TestEncodeBufferClearResetsState(t *testing.T) {
	b := clientBuffer()
	b.WriteIMAPString("INBOX")
	b.MarkStopPoint()
	b.Clear()

	if b.Readable() != 0 {
		t.Error("Clear should leave nothing readable")
	}
	if len(b.StopPoints()) != 0 {
		t.Error("Clear should discard pending stop points")
	}
}

func TestWriteLiteral8RequiresBinaryCapability(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{}))
	defer func() {
		if recover() == nil {
			t.Fatal("WriteLiteral8 without the BINARY capability should panic")
		}
	}()
	b.WriteLiteral8([]byte("hello"))
}

func TestWriteLiteral8WithBinaryCapability(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{UseBinaryLiteral: true}))
	b.WriteLiteral8([]byte("hi"))
	b.MarkStopPoint()

	header := b.NextChunk()
	if got, want := string(header.Bytes), "~{2}\r\n"; got != want {
		t.Errorf("literal8 header = %q, want %q", got, want)
	}
	body := b.NextChunk()
	if got, want := string(body.Bytes), "hi"; got != want {
		t.Errorf("literal8 body = %q, want %q", got, want)
	}
}
