package wire

import (
	"fmt"
	"strconv"

	imap "github.com/imapwire/codec"
)

// WriteSearchKey writes a SearchKey predicate per RFC 3501 §6.4.4 search-key
// grammar (plus CONDSTORE/WITHIN/FILTER extensions).
func WriteSearchKey(b *EncodeBuffer, key imap.SearchKey) int {
	switch k := key.(type) {
	case imap.SearchKeyAll:
		return b.WriteString("ALL")

	case imap.SearchKeySeqNum:
		return WriteSeqSet(b, k.Set)

	case imap.SearchKeyUID:
		n := b.WriteString("UID ")
		n += WriteUIDSet(b, k.Set)
		return n

	case imap.SearchKeyUIDBefore:
		n := b.WriteString("UID ")
		n += b.WriteString(fmt.Sprintf("1:%d", uint32(k.Before)-1))
		return n

	case imap.SearchKeyUIDAfter:
		n := b.WriteString("UID ")
		n += b.WriteString(fmt.Sprintf("%d:*", uint32(k.After)+1))
		return n

	case imap.SearchKeyFlag:
		return b.WriteString(flagSearchAtom(k.Flag, k.Negate))

	case imap.SearchKeyKeyword:
		atom := "KEYWORD"
		if k.Negate {
			atom = "UNKEYWORD"
		}
		n := b.WriteString(atom)
		n += b.WriteSP()
		n += b.WriteAString(k.Keyword)
		return n

	case imap.SearchKeyHeader:
		n := b.WriteString("HEADER ")
		n += b.WriteAString(k.Field)
		n += b.WriteSP()
		n += b.WriteIMAPString(k.Value)
		return n

	case imap.SearchKeyBody:
		n := b.WriteString("BODY ")
		n += b.WriteIMAPString(k.Value)
		return n

	case imap.SearchKeyText:
		n := b.WriteString("TEXT ")
		n += b.WriteIMAPString(k.Value)
		return n

	case imap.SearchKeyDate:
		n := b.WriteString(dateSearchAtom(k.Kind))
		n += b.WriteSP()
		n += WriteDate(b, k.Date)
		return n

	case imap.SearchKeySize:
		atom := "LARGER"
		if k.Kind == imap.SearchKeySmaller {
			atom = "SMALLER"
		}
		n := b.WriteString(atom)
		n += b.WriteSP()
		n += b.WriteString(strconv.FormatInt(k.N, 10))
		return n

	case imap.SearchKeyModSeq:
		n := b.WriteString("MODSEQ ")
		if k.Entry != "" {
			n += b.WriteAString(k.Entry)
			n += b.WriteSP()
			n += b.WriteString(k.EntryType)
			n += b.WriteSP()
		}
		n += b.WriteString(strconv.FormatUint(k.ModSeq, 10))
		return n

	case imap.SearchKeyOlder:
		n := b.WriteString("OLDER ")
		n += b.WriteString(strconv.FormatInt(k.Seconds, 10))
		return n

	case imap.SearchKeyYounger:
		n := b.WriteString("YOUNGER ")
		n += b.WriteString(strconv.FormatInt(k.Seconds, 10))
		return n

	case imap.SearchKeyFilter:
		n := b.WriteString("FILTER ")
		n += b.WriteAString(k.Name)
		return n

	case imap.SearchKeyNot:
		n := b.WriteString("NOT ")
		n += writeSearchKeyOperand(b, k.Key)
		return n

	case imap.SearchKeyOr:
		n := b.WriteString("OR ")
		n += writeSearchKeyOperand(b, k.A)
		n += b.WriteSP()
		n += writeSearchKeyOperand(b, k.B)
		return n

	case imap.SearchKeyAnd:
		return WriteArray(b, k.Children, "", " ", "", false, WriteSearchKey)

	default:
		panic(fmt.Sprintf("wire: unhandled SearchKey %T", key))
	}
}

// writeSearchKeyOperand writes an operand of NOT or OR, parenthesizing a
// conjunction so it stays a single search-key.
func writeSearchKeyOperand(b *EncodeBuffer, key imap.SearchKey) int {
	if and, ok := key.(imap.SearchKeyAnd); ok {
		return WriteArray(b, and.Children, "", " ", "", true, WriteSearchKey)
	}
	return WriteSearchKey(b, key)
}

func flagSearchAtom(f imap.Flag, negate bool) string {
	var atom string
	switch f {
	case imap.FlagAnswered:
		atom = "ANSWERED"
	case imap.FlagDeleted:
		atom = "DELETED"
	case imap.FlagFlagged:
		atom = "FLAGGED"
	case imap.FlagSeen:
		atom = "SEEN"
	case imap.FlagDraft:
		atom = "DRAFT"
	case imap.FlagRecent:
		atom = "RECENT"
	default:
		atom = string(f)
	}
	if negate {
		return "UN" + atom
	}
	return atom
}

func dateSearchAtom(kind imap.SearchKeyDateKind) string {
	switch kind {
	case imap.SearchKeyDateBefore:
		return "BEFORE"
	case imap.SearchKeyDateOn:
		return "ON"
	case imap.SearchKeyDateSince:
		return "SINCE"
	case imap.SearchKeySentBefore:
		return "SENTBEFORE"
	case imap.SearchKeySentOn:
		return "SENTON"
	case imap.SearchKeySentSince:
		return "SENTSINCE"
	default:
		panic(fmt.Sprintf("wire: unhandled SearchKeyDateKind %d", kind))
	}
}
