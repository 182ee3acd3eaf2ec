package wire

import (
	"fmt"
	"sort"
	"strconv"

	imap "github.com/imapwire/codec"
)

// WriteResponse writes one server-originated event: untagged data, a fetch
// streaming event, a tagged completion, BYE, a continuation request, or the
// IDLE-started marker.
func WriteResponse(b *EncodeBuffer, r imap.Response) int {
	switch resp := r.(type) {
	case imap.ResponseUntagged:
		n := b.WriteString("* ")
		n += WriteUntaggedData(b, resp.Data)
		n += b.WriteCRLF()
		return n
	case imap.ResponseFetchEvent:
		return WriteFetchResponse(b, resp.Event)
	case imap.ResponseTagged:
		return WriteStatusResponse(b, resp.Tag, resp.Response)
	case imap.ResponseBye:
		return WriteStatusResponse(b, "", resp.Response)
	case imap.ResponseContinuation:
		return WriteContinuationRequest(b, resp.Text, resp.Data)
	case imap.ResponseIdleStarted:
		n := b.WriteString("+ idling")
		n += b.WriteCRLF()
		return n
	default:
		panic(fmt.Sprintf("wire: unhandled Response %T", r))
	}
}

// WriteUntaggedData writes the body of one untagged ("* ...") line, without
// the leading "* " or trailing CRLF.
func WriteUntaggedData(b *EncodeBuffer, data imap.UntaggedData) int {
	switch d := data.(type) {
	case imap.UntaggedExists:
		return writeNumberedAtom(b, d.NumMessages, "EXISTS")
	case imap.UntaggedRecent:
		return writeNumberedAtom(b, d.NumMessages, "RECENT")
	case imap.UntaggedExpunge:
		return writeNumberedAtom(b, d.SeqNum, "EXPUNGE")
	case imap.UntaggedVanished:
		n := b.WriteString("VANISHED")
		if d.Earlier {
			n += b.WriteString(" (EARLIER)")
		}
		n += b.WriteSP()
		n += WriteUIDSet(b, d.UIDs)
		return n
	case imap.UntaggedCapability:
		n := b.WriteString("CAPABILITY")
		n += WriteArray(b, d.Caps, " ", " ", "", false, func(b *EncodeBuffer, c imap.Cap) int {
			return b.WriteString(string(c))
		})
		return n
	case imap.UntaggedFlags:
		n := b.WriteString("FLAGS ")
		n += WriteArray(b, d.Flags, "", " ", "", true, func(b *EncodeBuffer, f imap.Flag) int {
			return b.WriteString(string(f))
		})
		return n
	case imap.UntaggedList:
		return writeListData(b, "LIST", d.Data)
	case imap.UntaggedLSub:
		return writeListData(b, "LSUB", d.Data)
	case imap.UntaggedSearch:
		return writeSearchData(b, d.Data, false)
	case imap.UntaggedESearch:
		return writeSearchData(b, d.Data, true)
	case imap.UntaggedStatus:
		return writeStatusData(b, d.Data)
	case imap.UntaggedNamespace:
		return writeNamespaceData(b, d.Data)
	case imap.UntaggedQuota:
		return writeQuotaData(b, d.Data)
	case imap.UntaggedQuotaRoot:
		return writeQuotaRootData(b, d.Data)
	case imap.UntaggedACL:
		return writeACLData(b, d.Data)
	case imap.UntaggedListRights:
		return writeACLListRightsData(b, d.Data)
	case imap.UntaggedMyRights:
		return writeACLMyRightsData(b, d.Data)
	case imap.UntaggedMetadata:
		return writeMetadataData(b, d.Data)
	case imap.UntaggedID:
		n := b.WriteString("ID ")
		n += writeIDData(b, d.Data)
		return n
	case imap.UntaggedEnabled:
		n := b.WriteString("ENABLED")
		n += WriteArray(b, d.Caps, " ", " ", "", false, func(b *EncodeBuffer, c imap.Cap) int {
			return b.WriteString(string(c))
		})
		return n
	case imap.UntaggedSort:
		return writeSortData(b, d.Data)
	case imap.UntaggedThread:
		return writeThreadData(b, d.Data)
	default:
		panic(fmt.Sprintf("wire: unhandled UntaggedData %T", data))
	}
}

func writeNumberedAtom(b *EncodeBuffer, n uint32, atom string) int {
	c := b.WriteString(strconv.FormatUint(uint64(n), 10))
	c += b.WriteSP()
	c += b.WriteString(atom)
	return c
}

func writeListData(b *EncodeBuffer, verb string, d imap.ListData) int {
	n := b.WriteString(verb)
	n += b.WriteSP()
	n += WriteArray(b, d.Attrs, "", " ", "", true, func(b *EncodeBuffer, a imap.MailboxAttr) int {
		return b.WriteString(string(a))
	})
	n += b.WriteSP()
	if d.Delim == 0 {
		n += b.WriteNil()
	} else {
		n += b.WriteQuotedString(string(d.Delim))
	}
	n += b.WriteSP()
	n += WriteMailboxName(b, d.Mailbox)
	if ext := writeListExtendedData(b, d); ext > 0 {
		n += ext
	}
	return n
}

func writeListExtendedData(b *EncodeBuffer, d imap.ListData) int {
	if d.OldName == "" && len(d.ChildInfo) == 0 && d.Status == nil && d.MyRights == "" && d.Metadata == nil {
		return 0
	}
	n := b.WriteString(" (")
	first := true
	writeSP := func() {
		if !first {
			n += b.WriteSP()
		}
		first = false
	}
	if d.OldName != "" {
		writeSP()
		n += b.WriteString("OLDNAME (")
		n += WriteMailboxName(b, d.OldName)
		n += b.WriteByte(')')
	}
	if len(d.ChildInfo) > 0 {
		writeSP()
		n += b.WriteString("CHILDINFO (")
		n += WriteArray(b, d.ChildInfo, "", " ", "", false, func(b *EncodeBuffer, s string) int {
			return b.WriteIMAPString(s)
		})
		n += b.WriteByte(')')
	}
	if d.Status != nil {
		writeSP()
		n += b.WriteString("STATUS ")
		n += writeStatusDataFields(b, *d.Status)
	}
	if d.MyRights != "" {
		writeSP()
		n += b.WriteString("MYRIGHTS ")
		n += b.WriteAString(d.MyRights)
	}
	if d.Metadata != nil {
		writeSP()
		n += b.WriteString("METADATA (")
		n += writeStringMap(b, d.Metadata)
		n += b.WriteByte(')')
	}
	n += b.WriteByte(')')
	return n
}

func writeStringMap(b *EncodeBuffer, m map[string]string) int {
	keys := sortedKeys(m)
	pairs := make([]OrderedPair[string, string], len(keys))
	for i, k := range keys {
		pairs[i] = OrderedPair[string, string]{Key: k, Val: m[k]}
	}
	return WriteOrderedMap(b, pairs, "", " ", "", false, func(b *EncodeBuffer, k, v string) int {
		n := b.WriteAString(k)
		n += b.WriteSP()
		n += b.WriteIMAPString(v)
		return n
	})
}

func writeStatusData(b *EncodeBuffer, d imap.StatusData) int {
	n := b.WriteString("STATUS ")
	n += WriteMailboxName(b, d.Mailbox)
	n += b.WriteSP()
	n += writeStatusDataFields(b, d)
	return n
}

func writeStatusDataFields(b *EncodeBuffer, d imap.StatusData) int {
	n := b.WriteByte('(')
	first := true
	writeSP := func() {
		if !first {
			n += b.WriteSP()
		}
		first = false
	}
	if d.NumMessages != nil {
		writeSP()
		n += b.WriteString("MESSAGES ")
		n += b.WriteString(strconv.FormatUint(uint64(*d.NumMessages), 10))
	}
	if d.UIDNext != nil {
		writeSP()
		n += b.WriteString("UIDNEXT ")
		n += b.WriteString(strconv.FormatUint(uint64(*d.UIDNext), 10))
	}
	if d.UIDValidity != nil {
		writeSP()
		n += b.WriteString("UIDVALIDITY ")
		n += b.WriteString(strconv.FormatUint(uint64(*d.UIDValidity), 10))
	}
	if d.NumUnseen != nil {
		writeSP()
		n += b.WriteString("UNSEEN ")
		n += b.WriteString(strconv.FormatUint(uint64(*d.NumUnseen), 10))
	}
	if d.NumRecent != nil {
		writeSP()
		n += b.WriteString("RECENT ")
		n += b.WriteString(strconv.FormatUint(uint64(*d.NumRecent), 10))
	}
	if d.Size != nil {
		writeSP()
		n += b.WriteString("SIZE ")
		n += b.WriteString(strconv.FormatInt(*d.Size, 10))
	}
	if d.AppendLimit != nil {
		writeSP()
		n += b.WriteString("APPENDLIMIT ")
		n += b.WriteString(strconv.FormatUint(uint64(*d.AppendLimit), 10))
	}
	if d.HighestModSeq != nil {
		writeSP()
		n += b.WriteString("HIGHESTMODSEQ ")
		n += b.WriteString(strconv.FormatUint(*d.HighestModSeq, 10))
	}
	if d.MailboxID != "" {
		writeSP()
		n += b.WriteString("MAILBOXID (")
		n += b.WriteAString(d.MailboxID)
		n += b.WriteByte(')')
	}
	n += b.WriteByte(')')
	return n
}

func writeSearchData(b *EncodeBuffer, d imap.SearchData, esearch bool) int {
	if !esearch {
		n := b.WriteString("SEARCH")
		if d.UID {
			for _, uid := range d.AllUIDs {
				n += b.WriteSP()
				n += b.WriteString(strconv.FormatUint(uint64(uid), 10))
			}
		} else {
			for _, num := range d.AllSeqNums {
				n += b.WriteSP()
				n += b.WriteString(strconv.FormatUint(uint64(num), 10))
			}
		}
		if d.ModSeq != 0 {
			n += b.WriteString(" (MODSEQ ")
			n += b.WriteString(strconv.FormatUint(d.ModSeq, 10))
			n += b.WriteByte(')')
		}
		return n
	}

	n := b.WriteString("ESEARCH")
	if d.UID {
		n += b.WriteString(" UID")
	}
	if d.Min != 0 {
		n += b.WriteString(" MIN ")
		n += b.WriteString(strconv.FormatUint(uint64(d.Min), 10))
	}
	if d.Max != 0 {
		n += b.WriteString(" MAX ")
		n += b.WriteString(strconv.FormatUint(uint64(d.Max), 10))
	}
	if d.All != nil && !d.All.IsEmpty() {
		n += b.WriteString(" ALL ")
		n += WriteSeqSet(b, d.All)
	}
	if d.Count != 0 {
		n += b.WriteString(" COUNT ")
		n += b.WriteString(strconv.FormatUint(uint64(d.Count), 10))
	}
	if d.ModSeq != 0 {
		n += b.WriteString(" MODSEQ ")
		n += b.WriteString(strconv.FormatUint(d.ModSeq, 10))
	}
	if d.Partial != nil {
		n += b.WriteString(" PARTIAL (")
		n += b.WriteString(strconv.FormatInt(int64(d.Partial.Offset), 10))
		n += b.WriteByte(':')
		n += b.WriteString(strconv.FormatUint(uint64(d.Partial.Total), 10))
		n += b.WriteByte(')')
		n += b.WriteSP()
		n += WriteArray(b, d.Partial.UIDs, "", ",", "", false, func(b *EncodeBuffer, u imap.UID) int {
			return b.WriteString(strconv.FormatUint(uint64(u), 10))
		})
	}
	return n
}

func writeNamespaceData(b *EncodeBuffer, d imap.NamespaceData) int {
	n := b.WriteString("NAMESPACE")
	for _, group := range [][]imap.NamespaceDescriptor{d.Personal, d.Other, d.Shared} {
		n += b.WriteSP()
		n += writeNamespaceGroup(b, group)
	}
	return n
}

func writeNamespaceGroup(b *EncodeBuffer, group []imap.NamespaceDescriptor) int {
	if len(group) == 0 {
		return b.WriteNil()
	}
	return WriteArray(b, group, "", "", "", true, func(b *EncodeBuffer, ns imap.NamespaceDescriptor) int {
		n := b.WriteByte('(')
		n += WriteMailboxName(b, ns.Prefix)
		n += b.WriteSP()
		if ns.Delim == 0 {
			n += b.WriteNil()
		} else {
			n += b.WriteQuotedString(string(ns.Delim))
		}
		n += b.WriteByte(')')
		return n
	})
}

func writeQuotaData(b *EncodeBuffer, d imap.QuotaData) int {
	n := b.WriteString("QUOTA ")
	n += WriteMailboxName(b, d.Root)
	n += b.WriteSP()
	n += WriteArray(b, d.Resources, "", " ", "", true, func(b *EncodeBuffer, r imap.QuotaResourceData) int {
		n := b.WriteString(string(r.Name))
		n += b.WriteSP()
		n += b.WriteString(strconv.FormatInt(r.Usage, 10))
		n += b.WriteSP()
		n += b.WriteString(strconv.FormatInt(r.Limit, 10))
		return n
	})
	return n
}

func writeQuotaRootData(b *EncodeBuffer, d imap.QuotaRootData) int {
	n := b.WriteString("QUOTAROOT ")
	n += WriteMailboxName(b, d.Mailbox)
	n += WriteArray(b, d.Roots, " ", " ", "", false, func(b *EncodeBuffer, root string) int {
		return WriteMailboxName(b, root)
	})
	return n
}

func writeACLData(b *EncodeBuffer, d imap.ACLData) int {
	n := b.WriteString("ACL ")
	n += WriteMailboxName(b, d.Mailbox)
	keys := sortedKeys(d.Rights)
	for _, id := range keys {
		n += b.WriteSP()
		n += b.WriteAString(id)
		n += b.WriteSP()
		n += b.WriteAString(string(d.Rights[id]))
	}
	return n
}

func writeACLListRightsData(b *EncodeBuffer, d imap.ACLListRightsData) int {
	n := b.WriteString("LISTRIGHTS ")
	n += WriteMailboxName(b, d.Mailbox)
	n += b.WriteSP()
	n += b.WriteAString(d.Identifier)
	n += b.WriteSP()
	n += b.WriteAString(string(d.Required))
	n += WriteArray(b, d.Optional, " ", " ", "", false, func(b *EncodeBuffer, r imap.ACLRights) int {
		return b.WriteAString(string(r))
	})
	return n
}

func writeACLMyRightsData(b *EncodeBuffer, d imap.ACLMyRightsData) int {
	n := b.WriteString("MYRIGHTS ")
	n += WriteMailboxName(b, d.Mailbox)
	n += b.WriteSP()
	n += b.WriteAString(string(d.Rights))
	return n
}

func writeMetadataData(b *EncodeBuffer, d imap.MetadataData) int {
	n := b.WriteString("METADATA ")
	n += WriteMailboxName(b, d.Mailbox)
	n += b.WriteSP()
	keys := sortedKeys(d.Entries)
	pairs := make([]OrderedPair[string, *string], len(keys))
	for i, k := range keys {
		pairs[i] = OrderedPair[string, *string]{Key: k, Val: d.Entries[k]}
	}
	n += WriteOrderedMap(b, pairs, "", " ", "", true, func(b *EncodeBuffer, k string, v *string) int {
		n := b.WriteAString(k)
		n += b.WriteSP()
		n += writeNStringPtr(b, v)
		return n
	})
	return n
}

func writeSortData(b *EncodeBuffer, d imap.SortData) int {
	n := b.WriteString("SORT")
	n += WriteArray(b, d.AllNums, " ", " ", "", false, func(b *EncodeBuffer, num uint32) int {
		return b.WriteString(strconv.FormatUint(uint64(num), 10))
	})
	return n
}

func writeThreadData(b *EncodeBuffer, d imap.ThreadData) int {
	n := b.WriteString("THREAD")
	if len(d.Threads) == 0 {
		return n
	}
	n += b.WriteSP()
	n += WriteArray(b, d.Threads, "", "", "", false, writeThreadNode)
	return n
}

func writeThreadNode(b *EncodeBuffer, t imap.Thread) int {
	n := b.WriteByte('(')
	n += writeThreadChain(b, t)
	n += b.WriteByte(')')
	return n
}

// writeThreadChain writes a thread node followed by its descendants: a
// single child continues the same chain ("parent child grandchild"); two or
// more children each open a new parenthesized sub-thread.
func writeThreadChain(b *EncodeBuffer, t imap.Thread) int {
	n := b.WriteString(strconv.FormatUint(uint64(t.Num), 10))
	switch len(t.Children) {
	case 0:
		return n
	case 1:
		n += b.WriteSP()
		n += writeThreadChain(b, t.Children[0])
		return n
	default:
		for _, child := range t.Children {
			n += b.WriteSP()
			n += writeThreadNode(b, child)
		}
		return n
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
