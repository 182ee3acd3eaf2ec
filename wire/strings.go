package wire

import "strconv"

// isAtomChar reports whether b is a valid atom character: any CHAR except
// the atom-specials.
func isAtomChar(b byte) bool {
	if b < 0x20 || b > 0x7e {
		return false
	}
	switch b {
	case '(', ')', '{', ' ', '%', '*', '"', '\\', ']':
		return false
	}
	return true
}

// IsAtomSpecial reports whether b is an atom-special character.
func IsAtomSpecial(b byte) bool { return !isAtomChar(b) }

// IsQuotedSpecial reports whether b must be backslash-escaped inside a
// quoted string.
func IsQuotedSpecial(b byte) bool { return b == '"' || b == '\\' }

// isQuotedChar reports whether b may appear unescaped inside quoted-string
// content: printable ASCII excluding '"', '\', and control bytes.
func isQuotedChar(b byte) bool {
	if b < 0x20 || b > 0x7e {
		return false
	}
	return b != '"' && b != '\\'
}

const quotedStringMaxLen = 70
const literalMinusMaxLen = 4096

// stringEncoding identifies which of the four IMAP string encodings a given
// byte sequence resolves to under a mode/options pair.
type stringEncoding int

const (
	encQuoted stringEncoding = iota
	encServerLiteral
	encClientSyncLiteral
	encClientNonSyncPlus
	encClientNonSyncMinus
)

// allQuotedChars reports whether every byte of s is a quoted char.
func allQuotedChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isQuotedChar(s[i]) {
			return false
		}
	}
	return true
}

// chooseEncoding implements the string-encoding selection table and its
// precedence: quoted first, then server literal or (client-side) the
// negotiated non-synchronizing form, falling back to a synchronizing
// literal.
func (b *EncodeBuffer) chooseEncoding(s string) stringEncoding {
	quotable := len(s) <= quotedStringMaxLen && allQuotedChars(s)

	if b.mode.Role == RoleServer {
		if quotable && b.mode.Server.UseQuotedString {
			return encQuoted
		}
		return encServerLiteral
	}

	opts := b.mode.Client
	if quotable && opts.UseQuotedString {
		return encQuoted
	}
	if opts.UseNonSynchronizingLiteralMinus && len(s) <= literalMinusMaxLen {
		return encClientNonSyncMinus
	}
	if opts.UseNonSynchronizingLiteralPlus {
		return encClientNonSyncPlus
	}
	return encClientSyncLiteral
}

// WriteQuotedString writes a quoted string, escaping '"' and '\'. In
// logging mode the body is replaced with the "∅" placeholder, preserving
// the delimiters but not the length (quoted bodies carry no length prefix
// to preserve, unlike literals).
func (b *EncodeBuffer) WriteQuotedString(s string) int {
	n := b.WriteByte('"')
	if b.logging {
		n += b.WriteString("∅")
	} else {
		for i := 0; i < len(s); i++ {
			if IsQuotedSpecial(s[i]) {
				n += b.WriteByte('\\')
			}
			n += b.WriteByte(s[i])
		}
	}
	n += b.WriteByte('"')
	return n
}

// writeLiteralHeader writes the "{N}" / "{N+}" / "{N-}" prefix (without
// CRLF) for the given encoding and length.
func (b *EncodeBuffer) writeLiteralHeader(enc stringEncoding, n int) int {
	written := b.WriteByte('{')
	written += b.WriteString(strconv.Itoa(n))
	switch enc {
	case encClientNonSyncPlus:
		written += b.WriteByte('+')
	case encClientNonSyncMinus:
		written += b.WriteByte('-')
	}
	written += b.WriteByte('}')
	return written
}

// WriteIMAPString writes an IMAP string token (the grammar's `string`, not
// to be confused with EncodeBuffer.WriteString for raw bytes above),
// choosing quoted or literal encoding per chooseEncoding. Only the
// synchronizing-literal branch marks a stop point (after the literal
// header); logging mode replaces literal payloads with "∅" while
// preserving the length prefix.
func (b *EncodeBuffer) WriteIMAPString(s string) int {
	enc := b.chooseEncoding(s)
	switch enc {
	case encQuoted:
		return b.WriteQuotedString(s)
	case encServerLiteral:
		n := b.writeLiteralHeader(enc, len(s))
		n += b.WriteString("\r\n")
		n += b.writeLiteralPayload(s)
		return n
	case encClientSyncLiteral:
		n := b.writeLiteralHeader(enc, len(s))
		n += b.WriteString("\r\n")
		n += b.MarkStopPoint()
		n += b.writeLiteralPayload(s)
		return n
	default: // encClientNonSyncPlus, encClientNonSyncMinus
		n := b.writeLiteralHeader(enc, len(s))
		n += b.WriteString("\r\n")
		n += b.writeLiteralPayload(s)
		return n
	}
}

func (b *EncodeBuffer) writeLiteralPayload(s string) int {
	if b.logging {
		return b.WriteString("∅")
	}
	return b.WriteString(s)
}

// WriteLiteral8 writes a binary literal (RFC 3516 LITERAL8): "~{N}\r\n" plus
// a stop point, then the raw payload. Requires the BINARY capability in
// client mode; calling it otherwise panics.
func (b *EncodeBuffer) WriteLiteral8(data []byte) int {
	if b.mode.Role == RoleClient && !b.mode.Client.UseBinaryLiteral {
		panic("wire: WriteLiteral8 requires the BINARY capability")
	}
	n := b.WriteByte('~')
	n += b.WriteByte('{')
	n += b.WriteString(strconv.Itoa(len(data)))
	n += b.WriteByte('}')
	n += b.WriteString("\r\n")
	n += b.MarkStopPoint()
	if b.logging {
		n += b.WriteString("∅")
	} else {
		n += b.WriteBytes(data)
	}
	return n
}

// WriteAtom writes s verbatim as an atom (no quoting, no case rewriting).
func (b *EncodeBuffer) WriteAtom(s string) int { return b.WriteString(s) }

// WriteAString writes an astring, always in its IMAP-string form (quoted or
// literal); it never emits a bare atom.
func (b *EncodeBuffer) WriteAString(s string) int { return b.WriteIMAPString(s) }

// WriteNString writes an nstring: NIL if s is nil, else the string.
func (b *EncodeBuffer) WriteNString(s *string) int {
	if s == nil {
		return b.WriteNil()
	}
	return b.WriteIMAPString(*s)
}

// WriteNil writes the literal token NIL.
func (b *EncodeBuffer) WriteNil() int { return b.WriteString("NIL") }

// WriteSP writes a single space.
func (b *EncodeBuffer) WriteSP() int { return b.WriteByte(' ') }

// WriteCRLF writes a CRLF.
func (b *EncodeBuffer) WriteCRLF() int { return b.WriteString("\r\n") }

