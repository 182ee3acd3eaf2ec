package wire

import (
	"fmt"
	"time"

	imap "github.com/imapwire/codec"
)

// WriteFetchResponse writes one FetchResponse event, tracking the
// streaming_attributes sub-flag on the buffer's mode between calls. A full
// message's FETCH response is the sequence Start/StartUID, zero or more
// SimpleAttribute/StreamingBegin+*Bytes+End, terminated by Finish.
func WriteFetchResponse(b *EncodeBuffer, ev imap.FetchResponse) int {
	switch e := ev.(type) {
	case imap.FetchResponseStart:
		n := b.WriteString("* ")
		n += b.WriteString(fmt.Sprintf("%d", e.SeqNum))
		n += b.WriteString(" FETCH (")
		b.mode.StreamingAttributes = false
		return n

	case imap.FetchResponseStartUID:
		n := b.WriteString("* ")
		n += b.WriteString(fmt.Sprintf("%d", e.SeqNum))
		n += b.WriteString(" UIDFETCH (")
		b.mode.StreamingAttributes = false
		return n

	case imap.FetchResponseSimpleAttribute:
		n := 0
		if b.mode.StreamingAttributes {
			n += b.WriteSP()
		}
		n += WriteFetchAttributeValue(b, e.Value)
		b.mode.StreamingAttributes = true
		return n

	case imap.FetchResponseStreamingBegin:
		n := 0
		if b.mode.StreamingAttributes {
			n += b.WriteSP()
		}
		n += b.WriteString(e.Kind)
		n += b.WriteSP()
		n += b.WriteByte('{')
		n += b.WriteString(fmt.Sprintf("%d", e.Size))
		n += b.WriteByte('}')
		n += b.WriteCRLF()
		b.mode.StreamingAttributes = true
		return n

	case imap.FetchResponseStreamingBytes:
		return b.WriteBytes(e.Data)

	case imap.FetchResponseStreamingEnd:
		return 0

	case imap.FetchResponseFinish:
		n := b.WriteByte(')')
		n += b.WriteCRLF()
		b.mode.StreamingAttributes = false
		return n

	default:
		panic(fmt.Sprintf("wire: unhandled FetchResponse %T", ev))
	}
}

// WriteFetchAttributeValue writes one already-materialized attribute value
// in FETCH-response position (e.g. "UID 42", "FLAGS (\\Seen)").
func WriteFetchAttributeValue(b *EncodeBuffer, v imap.FetchAttributeValue) int {
	switch val := v.(type) {
	case imap.FetchValueUID:
		return b.WriteString("UID ") + b.WriteString(fmt.Sprintf("%d", val.UID))
	case imap.FetchValueFlags:
		n := b.WriteString("FLAGS ")
		n += WriteArray(b, val.Flags, "", " ", "", true, func(b *EncodeBuffer, f imap.Flag) int {
			return b.WriteString(string(f))
		})
		return n
	case imap.FetchValueInternalDate:
		n := b.WriteString("INTERNALDATE ")
		n += WriteDateTime(b, time.Time(val.Date))
		return n
	case imap.FetchValueRFC822Size:
		return b.WriteString("RFC822.SIZE ") + b.WriteString(fmt.Sprintf("%d", val.Size))
	case imap.FetchValueModSeq:
		n := b.WriteString("MODSEQ (")
		n += b.WriteString(fmt.Sprintf("%d", val.ModSeq))
		n += b.WriteByte(')')
		return n
	case imap.FetchValueEnvelope:
		n := b.WriteString("ENVELOPE ")
		n += WriteEnvelope(b, val.Envelope)
		return n
	case imap.FetchValueBodyStruct:
		if val.Extended {
			n := b.WriteString("BODYSTRUCTURE ")
			n += WriteBodyStructure(b, val.Struct, true)
			return n
		}
		n := b.WriteString("BODY ")
		n += WriteBodyStructure(b, val.Struct, false)
		return n
	case imap.FetchValueAtom:
		n := b.WriteString(val.Atom)
		if val.Arg != "" {
			n += b.WriteSP()
			n += b.WriteString(val.Arg)
		}
		return n
	default:
		panic(fmt.Sprintf("wire: unhandled FetchAttributeValue %T", v))
	}
}
