package wire

import (
	"sort"
	"strconv"
	"strings"

	imap "github.com/imapwire/codec"
)

// WriteBodyStructure writes a BODY or BODYSTRUCTURE value (RFC 3501
// §7.4.2): multipart parts are a parenthesized list of children followed by
// the subtype; single parts are type/subtype/params/id/description/
// encoding/size, with message/rfc822 and text/* adding envelope/body/lines
// or lines respectively, and, when extended is true, the extension fields
// (MD5, disposition, language, location). A nil body structure writes NIL.
func WriteBodyStructure(b *EncodeBuffer, bs *imap.BodyStructure, extended bool) int {
	if bs == nil {
		return b.WriteNil()
	}
	n := b.WriteByte('(')
	if bs.IsMultipart() {
		for i := range bs.Children {
			n += WriteBodyStructure(b, &bs.Children[i], extended)
		}
		n += b.WriteSP()
		n += b.WriteIMAPString(strings.ToUpper(bs.Subtype))
		if extended {
			n += b.WriteSP()
			n += writeBodyExtensionMultipart(b, bs)
		}
		n += b.WriteByte(')')
		return n
	}

	n += b.WriteIMAPString(strings.ToUpper(bs.Type))
	n += b.WriteSP()
	n += b.WriteIMAPString(strings.ToUpper(bs.Subtype))
	n += b.WriteSP()
	n += writeBodyFieldParams(b, bs.Params)
	n += b.WriteSP()
	n += writeNStringField(b, bs.ID)
	n += b.WriteSP()
	n += writeNStringField(b, bs.Description)
	n += b.WriteSP()
	n += writeNStringField(b, nonEmptyOr(bs.Encoding, "7BIT"))
	n += b.WriteSP()
	n += b.WriteString(uitoa(bs.Size))

	switch strings.ToLower(bs.Type) {
	case "message":
		if strings.EqualFold(bs.Subtype, "rfc822") {
			n += b.WriteSP()
			n += WriteEnvelope(b, bs.Envelope)
			n += b.WriteSP()
			n += WriteBodyStructure(b, bs.BodyStructure, extended)
			n += b.WriteSP()
			n += b.WriteString(uitoa(bs.Lines))
		}
	case "text":
		n += b.WriteSP()
		n += b.WriteString(uitoa(bs.Lines))
	}

	if extended {
		n += b.WriteSP()
		n += writeBodyExtensionSinglePart(b, bs)
	}
	n += b.WriteByte(')')
	return n
}

// writeBodyFieldParams writes Content-Type-style parameters. Go map
// iteration order is randomized, so keys are sorted first to keep repeated
// encodes of the same structure byte-identical.
func writeBodyFieldParams(b *EncodeBuffer, params map[string]string) int {
	if len(params) == 0 {
		return b.WriteNil()
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := b.WriteByte('(')
	for i, k := range keys {
		if i > 0 {
			n += b.WriteSP()
		}
		n += b.WriteIMAPString(strings.ToUpper(k))
		n += b.WriteSP()
		n += b.WriteIMAPString(params[k])
	}
	n += b.WriteByte(')')
	return n
}

func writeBodyExtensionMultipart(b *EncodeBuffer, bs *imap.BodyStructure) int {
	n := writeBodyFieldParams(b, bs.Params)
	n += b.WriteSP()
	n += writeDisposition(b, bs)
	n += b.WriteSP()
	n += writeLanguage(b, bs.Language)
	n += b.WriteSP()
	n += writeNStringField(b, bs.Location)
	return n
}

func writeBodyExtensionSinglePart(b *EncodeBuffer, bs *imap.BodyStructure) int {
	n := writeNStringField(b, bs.MD5)
	n += b.WriteSP()
	n += writeDisposition(b, bs)
	n += b.WriteSP()
	n += writeLanguage(b, bs.Language)
	n += b.WriteSP()
	n += writeNStringField(b, bs.Location)
	return n
}

func writeDisposition(b *EncodeBuffer, bs *imap.BodyStructure) int {
	if bs.Disposition == "" {
		return b.WriteNil()
	}
	n := b.WriteByte('(')
	n += b.WriteIMAPString(strings.ToUpper(bs.Disposition))
	n += b.WriteSP()
	n += writeBodyFieldParams(b, bs.DispositionParams)
	n += b.WriteByte(')')
	return n
}

func writeLanguage(b *EncodeBuffer, lang []string) int {
	if len(lang) == 0 {
		return b.WriteNil()
	}
	return WriteArray(b, lang, "", " ", "", true, func(b *EncodeBuffer, s string) int {
		return b.WriteIMAPString(s)
	})
}

func nonEmptyOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func uitoa(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
