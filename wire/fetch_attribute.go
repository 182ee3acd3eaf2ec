package wire

import (
	"fmt"
	"strconv"

	imap "github.com/imapwire/codec"
)

// WriteFetchAttrs writes the FETCH command's attribute list: a bare macro
// atom (ALL/FAST/FULL is not modeled here, only explicit attribute lists)
// for a single attribute, or a parenthesized list for several.
func WriteFetchAttrs(b *EncodeBuffer, attrs []imap.FetchAttribute) int {
	if len(attrs) == 1 {
		return WriteFetchAttr(b, attrs[0])
	}
	return WriteArray(b, attrs, "", " ", "", true, WriteFetchAttr)
}

// WriteFetchAttr writes a single requested FETCH attribute.
func WriteFetchAttr(b *EncodeBuffer, attr imap.FetchAttribute) int {
	switch a := attr.(type) {
	case imap.FetchAttrEnvelope:
		return b.WriteString("ENVELOPE")
	case imap.FetchAttrFlags:
		return b.WriteString("FLAGS")
	case imap.FetchAttrInternalDate:
		return b.WriteString("INTERNALDATE")
	case imap.FetchAttrRFC822Size:
		return b.WriteString("RFC822.SIZE")
	case imap.FetchAttrUID:
		return b.WriteString("UID")
	case imap.FetchAttrModSeq:
		return b.WriteString("MODSEQ")
	case imap.FetchAttrSaveDate:
		return b.WriteString("SAVEDATE")
	case imap.FetchAttrEmailID:
		return b.WriteString("EMAILID")
	case imap.FetchAttrThreadID:
		return b.WriteString("THREADID")
	case imap.FetchAttrBodyStructure:
		if a.Extended {
			return b.WriteString("BODYSTRUCTURE")
		}
		return b.WriteString("BODY")
	case imap.FetchAttrBodySection:
		n := b.WriteString("BODY")
		if a.Peek {
			n += b.WriteString(".PEEK")
		}
		n += b.WriteByte('[')
		n += writeBodySectionName(b, a.Section)
		n += b.WriteByte(']')
		n += writeSectionPartial(b, a.Section)
		return n
	case imap.FetchAttrBinarySection:
		n := b.WriteString("BINARY")
		if a.Peek {
			n += b.WriteString(".PEEK")
		}
		n += b.WriteByte('[')
		n += writePartNumber(b, a.Part)
		n += b.WriteByte(']')
		n += writeSectionPartialFields(b, a.Partial)
		return n
	case imap.FetchAttrBinarySize:
		n := b.WriteString("BINARY.SIZE[")
		n += writePartNumber(b, a.Part)
		n += b.WriteByte(']')
		return n
	case imap.FetchAttrPreview:
		n := b.WriteString("PREVIEW")
		if a.Lazy {
			n += b.WriteString(" (LAZY)")
		}
		return n
	case imap.FetchAttrGmail:
		return b.WriteString(a.Name)
	default:
		panic(fmt.Sprintf("wire: unhandled FetchAttribute %T", attr))
	}
}

func writeBodySectionName(b *EncodeBuffer, s *imap.BodySectionName) int {
	if s == nil {
		return 0
	}
	n := 0
	if len(s.Part) > 0 {
		n += writePartNumber(b, s.Part)
		if s.Specifier != "" {
			n += b.WriteByte('.')
		}
	}
	if s.Specifier == "" {
		return n
	}
	n += b.WriteString(s.Specifier)
	if len(s.Fields) > 0 {
		if s.NotFields {
			n += b.WriteString(".NOT")
		}
		n += b.WriteSP()
		n += WriteArray(b, s.Fields, "", " ", "", true, func(b *EncodeBuffer, f string) int {
			return b.WriteIMAPString(f)
		})
	}
	return n
}

func writePartNumber(b *EncodeBuffer, part []int) int {
	n := 0
	for i, p := range part {
		if i > 0 {
			n += b.WriteByte('.')
		}
		n += b.WriteString(strconv.Itoa(p))
	}
	return n
}

func writeSectionPartial(b *EncodeBuffer, s *imap.BodySectionName) int {
	if s == nil {
		return 0
	}
	return writeSectionPartialFields(b, s.Partial)
}

func writeSectionPartialFields(b *EncodeBuffer, p *imap.SectionPartial) int {
	if p == nil {
		return 0
	}
	n := b.WriteByte('<')
	n += b.WriteString(strconv.FormatInt(p.Offset, 10))
	n += b.WriteByte('.')
	n += b.WriteString(strconv.FormatInt(p.Count, 10))
	n += b.WriteByte('>')
	return n
}
