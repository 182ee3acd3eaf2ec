package wire

import (
	imap "github.com/imapwire/codec"
)

// WriteSeqSet writes a sequence-set's canonical ranges, comma-separated,
// using "*" for the implicit maximum and "n:m" for ranges.
func WriteSeqSet(b *EncodeBuffer, set *imap.SeqSet) int {
	return writeNumSet(b, set)
}

// WriteUIDSet writes a UID-set's canonical ranges. Identical wire form to
// WriteSeqSet; kept as a distinct entry point so call sites document which
// identifier kind they're encoding.
func WriteUIDSet(b *EncodeBuffer, set *imap.UIDSet) int {
	return writeNumSet(b, set)
}

func writeNumSet(b *EncodeBuffer, set imap.NumSet) int {
	return b.WriteString(set.String())
}

// WriteSavedSearchResult writes the "$" SEARCHRES sentinel (RFC 5182).
func WriteSavedSearchResult(b *EncodeBuffer) int {
	return b.WriteString(imap.SavedSearchResult)
}
