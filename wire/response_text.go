package wire

import (
	"encoding/base64"
	"fmt"

	imap "github.com/imapwire/codec"
)

// WriteResponseTextCode writes one response code in brackets, e.g.
// "[READ-ONLY]" or "[APPENDUID 1 5]". It covers the full RFC 3501
// enumeration plus extensions; an unrecognized ResponseCodeOther is encoded
// verbatim (METADATA TOOMANY/NOPRIVATE and similar server-only codes are
// written but never parsed back by this codec).
func WriteResponseTextCode(b *EncodeBuffer, code imap.ResponseCode, arg interface{}) int {
	n := b.WriteByte('[')
	if other, ok := arg.(imap.ResponseCodeOther); ok {
		n += b.WriteString(other.Atom)
		if other.Arg != "" {
			n += b.WriteSP()
			n += b.WriteString(other.Arg)
		}
	} else {
		n += b.WriteString(string(code))
		if arg != nil {
			n += b.WriteSP()
			n += writeResponseCodeArg(b, arg)
		}
	}
	n += b.WriteByte(']')
	return n
}

func writeResponseCodeArg(b *EncodeBuffer, arg interface{}) int {
	switch v := arg.(type) {
	case string:
		return b.WriteString(v)
	case []imap.Cap:
		return WriteArray(b, v, "", " ", "", false, func(b *EncodeBuffer, c imap.Cap) int {
			return b.WriteString(string(c))
		})
	case []imap.Flag:
		return WriteArray(b, v, "", " ", "", true, func(b *EncodeBuffer, f imap.Flag) int {
			return b.WriteString(string(f))
		})
	case uint32:
		return b.WriteString(fmt.Sprintf("%d", v))
	case uint64:
		return b.WriteString(fmt.Sprintf("%d", v))
	case imap.AppendUIDCodeArg:
		n := b.WriteString(fmt.Sprintf("%d", v.UIDValidity))
		n += b.WriteSP()
		n += b.WriteString(fmt.Sprintf("%d", v.UID))
		return n
	case imap.CopyUIDCodeArg:
		n := b.WriteString(fmt.Sprintf("%d", v.UIDValidity))
		n += b.WriteSP()
		n += b.WriteString(v.SourceUIDs.String())
		n += b.WriteSP()
		n += b.WriteString(v.DestUIDs.String())
		return n
	default:
		return b.WriteString(fmt.Sprint(v))
	}
}

// WriteResponseText writes a resp-text: the optional "[code] " prefix
// (only present when code is non-empty) then the text. If the text is
// empty, a single space is written instead — the IMAP grammar of resp-text
// requires at least one character after the optional code.
func WriteResponseText(b *EncodeBuffer, code imap.ResponseCode, arg interface{}, text string) int {
	n := 0
	if code != "" {
		n += WriteResponseTextCode(b, code, arg)
		n += b.WriteSP()
	}
	if text == "" {
		n += b.WriteSP()
	} else {
		n += b.WriteString(text)
	}
	return n
}

// WriteStatusResponse writes a full status response line: "<tag> OK|NO|BAD
// <resp-text>\r\n", or the untagged "* OK|NO|BAD|BYE|PREAUTH ..." form when
// tag is "" or "*".
func WriteStatusResponse(b *EncodeBuffer, tag string, r *imap.StatusResponse) int {
	n := 0
	if tag == "" || tag == "*" {
		n += b.WriteString("* ")
	} else {
		n += b.WriteString(tag)
		n += b.WriteSP()
	}
	n += b.WriteString(string(r.Type))
	n += b.WriteSP()
	n += WriteResponseText(b, r.Code, r.CodeArg, r.Text)
	n += b.WriteCRLF()
	return n
}

// WriteTaggedResponse writes a tagged completion response.
func WriteTaggedResponse(b *EncodeBuffer, tag string, r *imap.StatusResponse) int {
	return WriteStatusResponse(b, tag, r)
}

// WriteContinuationRequest writes a "+ ..." continuation request: response
// text, or base64-of-data when Data is set (SASL challenge carrier), then
// CRLF.
func WriteContinuationRequest(b *EncodeBuffer, text string, data []byte) int {
	n := b.WriteString("+ ")
	if data != nil {
		n += b.WriteString(base64.StdEncoding.EncodeToString(data))
	} else {
		n += b.WriteString(text)
	}
	n += b.WriteCRLF()
	return n
}
