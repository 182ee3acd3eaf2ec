package wire

import (
	imap "github.com/imapwire/codec"
)

// WriteEnvelope writes an ENVELOPE structure: a parenthesized list of date,
// subject, from/sender/reply-to/to/cc/bcc address lists, in-reply-to, and
// message-id, each nstring- or address-list-encoded per RFC 3501 §7.4.2.
// A nil envelope writes NIL.
func WriteEnvelope(b *EncodeBuffer, e *imap.Envelope) int {
	if e == nil {
		return b.WriteNil()
	}
	n := b.WriteByte('(')
	n += writeEnvelopeDate(b, e)
	n += b.WriteSP()
	n += writeNStringField(b, e.Subject)
	n += b.WriteSP()
	n += WriteAddressList(b, e.From)
	n += b.WriteSP()
	n += WriteAddressList(b, e.Sender)
	n += b.WriteSP()
	n += WriteAddressList(b, e.ReplyTo)
	n += b.WriteSP()
	n += WriteAddressList(b, e.To)
	n += b.WriteSP()
	n += WriteAddressList(b, e.Cc)
	n += b.WriteSP()
	n += WriteAddressList(b, e.Bcc)
	n += b.WriteSP()
	n += writeNStringField(b, e.InReplyTo)
	n += b.WriteSP()
	n += writeNStringField(b, e.MessageID)
	n += b.WriteByte(')')
	return n
}

func writeEnvelopeDate(b *EncodeBuffer, e *imap.Envelope) int {
	if e.Date.IsZero() {
		return b.WriteNil()
	}
	return b.WriteQuotedString(e.Date.Format("Mon, 2 Jan 2006 15:04:05 -0700"))
}

func writeNStringField(b *EncodeBuffer, s string) int {
	if s == "" {
		return b.WriteNil()
	}
	return b.WriteIMAPString(s)
}

// WriteAddressList writes a parenthesized list of addresses, or NIL when
// addrs is empty (RFC 3501's address grammar has no "empty list" form).
func WriteAddressList(b *EncodeBuffer, addrs []*imap.Address) int {
	if len(addrs) == 0 {
		return b.WriteNil()
	}
	n := b.WriteByte('(')
	for _, a := range addrs {
		n += WriteAddress(b, a)
	}
	n += b.WriteByte(')')
	return n
}

// WriteAddress writes a single address: (name adl mailbox host).
func WriteAddress(b *EncodeBuffer, a *imap.Address) int {
	n := b.WriteByte('(')
	n += writeNStringField(b, a.Name)
	n += b.WriteSP()
	n += b.WriteNil() // adl (source route) is obsolete, always NIL
	n += b.WriteSP()
	n += writeNStringField(b, a.Mailbox)
	n += b.WriteSP()
	n += writeNStringField(b, a.Host)
	n += b.WriteByte(')')
	return n
}
