package wire

import (
	"testing"

	imap "github.com/imapwire/codec"
)

func TestWriteResponseUntaggedList(t *testing.T) {
	r := imap.ResponseUntagged{Data: imap.UntaggedList{Data: imap.ListData{
		Attrs:   []imap.MailboxAttr{imap.MailboxAttrHasNoChildren},
		Delim:   '/',
		Mailbox: "INBOX",
	}}}
	if got, want := encodeResponse(r), "* LIST (\\HasNoChildren) \"/\" INBOX\r\n"; got != want {
		t.Errorf("encoded LIST = %q, want %q", got, want)
	}
}

func TestWriteResponseUntaggedStatus(t *testing.T) {
	numMessages := uint32(4)
	r := imap.ResponseUntagged{Data: imap.UntaggedStatus{Data: imap.StatusData{
		Mailbox:     "INBOX",
		NumMessages: &numMessages,
	}}}
	if got, want := encodeResponse(r), "* STATUS INBOX (MESSAGES 4)\r\n"; got != want {
		t.Errorf("encoded STATUS = %q, want %q", got, want)
	}
}

func TestWriteResponseUntaggedSearch(t *testing.T) {
	r := imap.ResponseUntagged{Data: imap.UntaggedSearch{Data: imap.SearchData{
		AllSeqNums: []uint32{2, 3, 5},
	}}}
	if got, want := encodeResponse(r), "* SEARCH 2 3 5\r\n"; got != want {
		t.Errorf("encoded SEARCH = %q, want %q", got, want)
	}
}
