package wire

import (
	"testing"

	imap "github.com/imapwire/codec"
)

func encodeCommand(cmd *imap.Command) string {
	b := NewEncodeBuffer(ClientMode(ClientOptions{UseQuotedString: true, UseSynchronizingLiteral: true}))
	WriteCommand(b, cmd)
	return string(b.Bytes())
}

func TestWriteCommandSelect(t *testing.T) {
	cmd := &imap.Command{
		Tag:  "A1",
		Body: &imap.MailboxSelectionCommand{Verb: imap.VerbSelect, Mailbox: "INBOX"},
	}
	if got, want := encodeCommand(cmd), "A1 SELECT INBOX\r\n"; got != want {
		t.Errorf("encoded SELECT = %q, want %q", got, want)
	}
}

func TestWriteCommandUIDFetchSingleAttribute(t *testing.T) {
	cmd := &imap.Command{
		Tag: "A2",
		Body: &imap.FetchCommand{
			UID:     true,
			Numbers: imap.NewMessageIdentifierSet[imap.UID](1, 2, 3),
			Attrs:   []imap.FetchAttribute{imap.FetchAttrFlags{}},
		},
	}
	if got, want := encodeCommand(cmd), "A2 UID FETCH 1:3 FLAGS\r\n"; got != want {
		t.Errorf("encoded UID FETCH = %q, want %q", got, want)
	}
}

func TestWriteCommandUIDStoreSilentAdd(t *testing.T) {
	cmd := &imap.Command{
		Tag: "A3",
		Body: &imap.StoreCommand{
			UID:     true,
			Numbers: imap.NewMessageIdentifierSet[imap.UID](20, 21, 22),
			Flags:   imap.StoreFlags{Action: imap.StoreFlagsAdd, Silent: true, Flags: []imap.Flag{imap.FlagSeen, imap.FlagDeleted}},
		},
	}
	if got, want := encodeCommand(cmd), "A3 UID STORE 20:22 +FLAGS.SILENT (\\Seen \\Deleted)\r\n"; got != want {
		t.Errorf("encoded UID STORE = %q, want %q", got, want)
	}
}

func TestWriteCommandIdle(t *testing.T) {
	cmd := &imap.Command{Tag: "A4", Body: &imap.IdleCommand{}}
	if got, want := encodeCommand(cmd), "A4 IDLE\r\n"; got != want {
		t.Errorf("encoded IDLE = %q, want %q", got, want)
	}
}

func TestWriteCommandLogout(t *testing.T) {
	cmd := &imap.Command{Tag: "A5", Body: &imap.LogoutCommand{}}
	if got, want := encodeCommand(cmd), "A5 LOGOUT\r\n"; got != want {
		t.Errorf("encoded LOGOUT = %q, want %q", got, want)
	}
}
