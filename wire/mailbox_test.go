package wire

import "testing"

func TestWriteMailboxNameInboxCaseInsensitive(t *testing.T) {
	for _, name := range []string{"INBOX", "inbox", "InBoX"} {
		b := NewEncodeBuffer(ClientMode(ClientOptions{UseQuotedString: true}))
		WriteMailboxName(b, name)
		if got, want := string(b.Bytes()), "INBOX"; got != want {
			t.Errorf("WriteMailboxName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestWriteMailboxNameModifiedUTF7(t *testing.T) {
	b := NewEncodeBuffer(ClientMode(ClientOptions{UseQuotedString: true}))
	WriteMailboxName(b, "Sent.日本語")
	if got, want := string(b.Bytes()), `"Sent.&ZeVnLIqe-"`; got != want {
		t.Errorf("WriteMailboxName(non-ASCII) = %q, want %q", got, want)
	}
}
