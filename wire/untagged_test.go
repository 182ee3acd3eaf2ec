package wire

import (
	"testing"

	imap "github.com/imapwire/codec"
)

func encodeResponse(r imap.Response) string {
	b := NewEncodeBuffer(ServerMode(ServerOptions{UseQuotedString: true}))
	WriteResponse(b, r)
	return string(b.Bytes())
}

func TestWriteResponseUntaggedExists(t *testing.T) {
	r := imap.ResponseUntagged{Data: imap.UntaggedExists{NumMessages: 42}}
	if got, want := encodeResponse(r), "* 42 EXISTS\r\n"; got != want {
		t.Errorf("encoded EXISTS = %q, want %q", got, want)
	}
}

func TestWriteResponseUntaggedExpunge(t *testing.T) {
	r := imap.ResponseUntagged{Data: imap.UntaggedExpunge{SeqNum: 5}}
	if got, want := encodeResponse(r), "* 5 EXPUNGE\r\n"; got != want {
		t.Errorf("encoded EXPUNGE = %q, want %q", got, want)
	}
}

func TestWriteResponseUntaggedCapability(t *testing.T) {
	r := imap.ResponseUntagged{Data: imap.UntaggedCapability{Caps: []imap.Cap{imap.CapIMAP4rev1, imap.CapIdle}}}
	if got, want := encodeResponse(r), "* CAPABILITY IMAP4rev1 IDLE\r\n"; got != want {
		t.Errorf("encoded CAPABILITY = %q, want %q", got, want)
	}
}

func TestWriteResponseIdleStarted(t *testing.T) {
	r := imap.ResponseIdleStarted{}
	if got, want := encodeResponse(r), "+ idling\r\n"; got != want {
		t.Errorf("encoded idle-started marker = %q, want %q", got, want)
	}
}

func TestWriteResponseTaggedOK(t *testing.T) {
	r := imap.ResponseTagged{Tag: "A1", Response: &imap.StatusResponse{Type: imap.StatusResponseTypeOK, Text: "done"}}
	if got, want := encodeResponse(r), "A1 OK done\r\n"; got != want {
		t.Errorf("encoded tagged OK = %q, want %q", got, want)
	}
}
