package wire

import (
	"strings"

	"github.com/imapwire/codec/wire/utf7"
)

// WriteMailboxName writes a mailbox name: the literal atom INBOX
// case-insensitively, otherwise the name modified-UTF-7-encoded and written
// as an astring (RFC 3501 §5.1.3).
func WriteMailboxName(b *EncodeBuffer, name string) int {
	if strings.EqualFold(name, "INBOX") {
		return b.WriteAtom("INBOX")
	}
	return b.WriteAString(utf7.Encode(name))
}
