package wire

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"

	imap "github.com/imapwire/codec"
)

// WriteCommand writes a full client command: tag, verb and arguments, CRLF.
// APPEND is the exception: it ends after the literal header, because the
// message bytes and the closing CRLF are written by the caller.
func WriteCommand(b *EncodeBuffer, cmd *imap.Command) int {
	n := b.WriteString(cmd.Tag)
	n += b.WriteSP()
	n += writeCommandBody(b, cmd.Body)
	if _, ok := cmd.Body.(*imap.AppendCommand); !ok {
		n += b.WriteCRLF()
	}
	return n
}

func writeCommandBody(b *EncodeBuffer, body imap.CommandBody) int {
	switch c := body.(type) {
	case *imap.MailboxSelectionCommand:
		return writeMailboxSelectionCommand(b, c)
	case *imap.FetchCommand:
		return writeFetchCommand(b, c)
	case *imap.StoreCommand:
		return writeStoreCommand(b, c)
	case *imap.SearchCommand:
		return writeSearchCommand(b, c)
	case *imap.CopyCommand:
		return writeUIDPrefixedMailboxCommand(b, imap.CommandCopy, c.UID, c.Numbers, c.Mailbox)
	case *imap.MoveCommand:
		return writeUIDPrefixedMailboxCommand(b, imap.CommandMove, c.UID, c.Numbers, c.Mailbox)
	case *imap.IdleCommand:
		return b.WriteString(imap.CommandIdle)
	case *imap.AuthenticateCommand:
		return writeAuthenticateCommand(b, c)
	case *imap.StartTLSCommand:
		return b.WriteString(imap.CommandStartTLS)
	case *imap.LogoutCommand:
		return b.WriteString(imap.CommandLogout)
	case *imap.CompressCommand:
		n := b.WriteString(imap.CommandCompress)
		n += b.WriteSP()
		n += b.WriteString(c.Mechanism)
		return n
	case *imap.NoopCommand:
		return b.WriteString("NOOP")
	case *imap.CheckCommand:
		return b.WriteString("CHECK")
	case *imap.ExpungeCommand:
		return writeExpungeCommand(b, c)
	case *imap.AppendCommand:
		return writeAppendCommand(b, c)
	case *imap.CreateCommand:
		return writeCreateCommand(b, c)
	case *imap.DeleteCommand:
		return writeMailboxOnlyCommand(b, imap.CommandDelete, c.Mailbox)
	case *imap.RenameCommand:
		n := b.WriteString(imap.CommandRename)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.From)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.To)
		return n
	case *imap.SubscribeCommand:
		return writeMailboxOnlyCommand(b, imap.CommandSubscribe, c.Mailbox)
	case *imap.UnsubscribeCommand:
		return writeMailboxOnlyCommand(b, imap.CommandUnsubscribe, c.Mailbox)
	case *imap.ListCommand:
		return writeListCommand(b, c)
	case *imap.LSubCommand:
		n := b.WriteString(imap.CommandLsub)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Reference)
		n += b.WriteSP()
		n += b.WriteIMAPString(c.Pattern)
		return n
	case *imap.StatusCommand:
		return writeStatusCommand(b, c)
	case *imap.IDCommand:
		n := b.WriteString("ID")
		n += b.WriteSP()
		n += writeIDData(b, c.Params)
		return n
	case *imap.NamespaceCommand:
		return b.WriteString(imap.CommandNamespace)
	case *imap.EnableCommand:
		n := b.WriteString("ENABLE")
		n += b.WriteSP()
		n += WriteArray(b, c.Capabilities, "", " ", "", false, func(b *EncodeBuffer, cap imap.Cap) int {
			return b.WriteString(string(cap))
		})
		return n
	case *imap.ResetKeyCommand:
		return writeResetKeyCommand(b, c)
	case *imap.GetMetadataCommand:
		return writeGetMetadataCommand(b, c)
	case *imap.SetMetadataCommand:
		return writeSetMetadataCommand(b, c)
	case *imap.GetQuotaCommand:
		n := b.WriteString(imap.CommandGetQuota)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Root)
		return n
	case *imap.GetQuotaRootCommand:
		return writeMailboxOnlyCommand(b, imap.CommandGetQuotaRoot, c.Mailbox)
	case *imap.SetQuotaCommand:
		return writeSetQuotaCommand(b, c)
	case *imap.SetACLCommand:
		n := b.WriteString(imap.CommandSetACL)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Mailbox)
		n += b.WriteSP()
		n += b.WriteAString(c.Identifier)
		n += b.WriteSP()
		n += b.WriteAString(string(c.Rights))
		return n
	case *imap.DeleteACLCommand:
		n := b.WriteString(imap.CommandDeleteACL)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Mailbox)
		n += b.WriteSP()
		n += b.WriteAString(c.Identifier)
		return n
	case *imap.GetACLCommand:
		return writeMailboxOnlyCommand(b, imap.CommandGetACL, c.Mailbox)
	case *imap.ListRightsCommand:
		n := b.WriteString(imap.CommandListRights)
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Mailbox)
		n += b.WriteSP()
		n += b.WriteAString(c.Identifier)
		return n
	case *imap.MyRightsCommand:
		return writeMailboxOnlyCommand(b, imap.CommandMyRights, c.Mailbox)
	case *imap.SortCommand:
		return writeSortCommand(b, c)
	case *imap.ThreadCommand:
		return writeThreadCommand(b, c)
	case *imap.CapabilityCommand:
		return b.WriteString(imap.CommandCapability)
	case *imap.CustomCommand:
		n := b.WriteString(c.Name)
		n += WriteArray(b, c.Args, " ", " ", "", false, func(b *EncodeBuffer, a string) int {
			return b.WriteAString(a)
		})
		return n
	default:
		panic(fmt.Sprintf("wire: unhandled CommandBody %T", body))
	}
}

func writeMailboxOnlyCommand(b *EncodeBuffer, verb, mailbox string) int {
	n := b.WriteString(verb)
	n += b.WriteSP()
	n += WriteMailboxName(b, mailbox)
	return n
}

func writeNumSetArg(b *EncodeBuffer, numbers imap.NumSet) int {
	switch s := numbers.(type) {
	case *imap.SeqSet:
		return WriteSeqSet(b, s)
	case *imap.UIDSet:
		return WriteUIDSet(b, s)
	default:
		if numbers == nil {
			return 0
		}
		return b.WriteString(numbers.String())
	}
}

func writeUIDPrefixedMailboxCommand(b *EncodeBuffer, verb string, uid bool, numbers imap.NumSet, mailbox string) int {
	n := 0
	if uid {
		n += b.WriteString(imap.CommandUID)
		n += b.WriteSP()
	}
	n += b.WriteString(verb)
	n += b.WriteSP()
	n += writeNumSetArg(b, numbers)
	n += b.WriteSP()
	n += WriteMailboxName(b, mailbox)
	return n
}

func writeMailboxSelectionCommand(b *EncodeBuffer, c *imap.MailboxSelectionCommand) int {
	n := b.WriteString(c.Verb.String())
	if c.Mailbox != "" {
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Mailbox)
	}
	if c.Options.CondStore || c.Options.QResync != nil {
		n += b.WriteString(" (")
		first := true
		if c.Options.CondStore {
			n += b.WriteString("CONDSTORE")
			first = false
		}
		if c.Options.QResync != nil {
			if !first {
				n += b.WriteSP()
			}
			n += b.WriteString("QRESYNC ")
			n += writeQResync(b, c.Options.QResync)
		}
		n += b.WriteByte(')')
	}
	return n
}

func writeQResync(b *EncodeBuffer, q *imap.SelectQResync) int {
	n := b.WriteByte('(')
	n += b.WriteString(strconv.FormatUint(uint64(q.UIDValidity), 10))
	n += b.WriteSP()
	n += b.WriteString(strconv.FormatUint(q.ModSeq, 10))
	if q.KnownUIDs != nil {
		n += b.WriteSP()
		n += WriteUIDSet(b, q.KnownUIDs)
	}
	if q.SeqMatch != nil {
		n += b.WriteSP()
		n += b.WriteByte('(')
		n += WriteSeqSet(b, q.SeqMatch.SeqNums)
		n += b.WriteSP()
		n += WriteUIDSet(b, q.SeqMatch.UIDs)
		n += b.WriteByte(')')
	}
	n += b.WriteByte(')')
	return n
}

func writeFetchCommand(b *EncodeBuffer, c *imap.FetchCommand) int {
	n := 0
	if c.UID {
		n += b.WriteString(imap.CommandUID)
		n += b.WriteSP()
	}
	n += b.WriteString(imap.CommandFetch)
	n += b.WriteSP()
	n += writeNumSetArg(b, c.Numbers)
	n += b.WriteSP()
	n += WriteFetchAttrs(b, c.Attrs)
	if c.ChangedSince != nil {
		n += b.WriteString(" (CHANGEDSINCE ")
		n += b.WriteString(strconv.FormatUint(c.ChangedSince.ModSeq, 10))
		if c.ChangedSince.Vanished {
			n += b.WriteString(" VANISHED")
		}
		n += b.WriteByte(')')
	}
	return n
}

func writeStoreCommand(b *EncodeBuffer, c *imap.StoreCommand) int {
	n := 0
	if c.UID {
		n += b.WriteString(imap.CommandUID)
		n += b.WriteSP()
	}
	n += b.WriteString(imap.CommandStore)
	n += b.WriteSP()
	n += writeNumSetArg(b, c.Numbers)
	if c.UnchangedSince != 0 {
		n += b.WriteString(" (UNCHANGEDSINCE ")
		n += b.WriteString(strconv.FormatUint(c.UnchangedSince, 10))
		n += b.WriteByte(')')
	}
	n += b.WriteSP()
	n += b.WriteString(c.Flags.Action.String())
	if c.Flags.Silent {
		n += b.WriteString(".SILENT")
	}
	n += b.WriteSP()
	n += WriteArray(b, c.Flags.Flags, "", " ", "", true, func(b *EncodeBuffer, f imap.Flag) int {
		return b.WriteString(string(f))
	})
	return n
}

func writeSearchCommand(b *EncodeBuffer, c *imap.SearchCommand) int {
	n := 0
	if c.UID {
		n += b.WriteString(imap.CommandUID)
		n += b.WriteSP()
	}
	n += b.WriteString(imap.CommandSearch)
	if ret := writeSearchReturnOptions(b, c.Options, c.ESearch); ret > 0 {
		n += ret
	}
	if c.Charset != "" {
		n += b.WriteString(" CHARSET ")
		n += b.WriteString(c.Charset)
	}
	n += b.WriteSP()
	n += WriteSearchKey(b, c.Key)
	return n
}

func writeSearchReturnOptions(b *EncodeBuffer, opts imap.SearchOptions, esearch bool) int {
	if !esearch && !opts.ReturnMin && !opts.ReturnMax && !opts.ReturnAll &&
		!opts.ReturnCount && !opts.ReturnSave && opts.ReturnPartial == nil {
		return 0
	}
	n := b.WriteString(" RETURN (")
	first := true
	writeSP := func() {
		if !first {
			n += b.WriteSP()
		}
		first = false
	}
	if opts.ReturnMin {
		writeSP()
		n += b.WriteString("MIN")
	}
	if opts.ReturnMax {
		writeSP()
		n += b.WriteString("MAX")
	}
	if opts.ReturnAll {
		writeSP()
		n += b.WriteString("ALL")
	}
	if opts.ReturnCount {
		writeSP()
		n += b.WriteString("COUNT")
	}
	if opts.ReturnSave {
		writeSP()
		n += b.WriteString("SAVE")
	}
	if opts.ReturnPartial != nil {
		writeSP()
		n += b.WriteString("PARTIAL ")
		n += b.WriteString(strconv.FormatInt(int64(opts.ReturnPartial.Offset), 10))
		n += b.WriteByte(':')
		n += b.WriteString(strconv.FormatUint(uint64(opts.ReturnPartial.Count), 10))
	}
	n += b.WriteByte(')')
	return n
}

func writeAuthenticateCommand(b *EncodeBuffer, c *imap.AuthenticateCommand) int {
	n := b.WriteString(imap.CommandAuthenticate)
	n += b.WriteSP()
	n += b.WriteString(c.Mechanism)
	if c.InitialResponse != nil {
		n += b.WriteSP()
		n += writeSASLData(b, c.InitialResponse)
	}
	return n
}

func writeExpungeCommand(b *EncodeBuffer, c *imap.ExpungeCommand) int {
	if c.UIDs == nil {
		return b.WriteString(imap.CommandExpunge)
	}
	n := b.WriteString(imap.CommandUID)
	n += b.WriteSP()
	n += b.WriteString(imap.CommandExpunge)
	n += b.WriteSP()
	n += WriteUIDSet(b, c.UIDs)
	return n
}

// writeAppendCommand writes the APPEND command's mailbox/per-message
// flag-date-size headers (WriteCommand writes the tag). The message bytes themselves are streamed by the
// caller directly through the EncodeBuffer after each literal's stop point
// is reached; this function only frames the headers the protocol requires
// before each literal.
func writeAppendCommand(b *EncodeBuffer, c *imap.AppendCommand) int {
	n := b.WriteString(imap.CommandAppend)
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Mailbox)
	for _, msg := range c.Messages {
		n += b.WriteSP()
		n += writeAppendMessageHeader(b, msg)
	}
	return n
}

func writeAppendMessageHeader(b *EncodeBuffer, msg imap.AppendMessage) int {
	n := 0
	if len(msg.Flags) > 0 {
		n += WriteArray(b, msg.Flags, "", " ", "", true, func(b *EncodeBuffer, f imap.Flag) int {
			return b.WriteString(string(f))
		})
		n += b.WriteSP()
	}
	if !msg.InternalDate.IsZero() {
		n += WriteDateTime(b, msg.InternalDate)
		n += b.WriteSP()
	}
	if msg.Binary {
		n += b.WriteString("~")
	}
	n += b.WriteByte('{')
	n += b.WriteString(strconv.FormatInt(msg.Size, 10))
	if b.mode.IsClient() {
		switch {
		case b.mode.Client.UseNonSynchronizingLiteralPlus:
			n += b.WriteByte('+')
		case b.mode.Client.UseNonSynchronizingLiteralMinus && msg.Size <= literalMinusMaxLen:
			n += b.WriteByte('-')
		}
	}
	n += b.WriteByte('}')
	n += b.WriteCRLF()
	b.MarkStopPoint()
	return n
}

func writeCreateCommand(b *EncodeBuffer, c *imap.CreateCommand) int {
	n := b.WriteString(imap.CommandCreate)
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Mailbox)
	if c.SpecialUse != "" {
		n += b.WriteString(" (USE (")
		n += b.WriteString(string(c.SpecialUse))
		n += b.WriteString("))")
	}
	return n
}

func writeListCommand(b *EncodeBuffer, c *imap.ListCommand) int {
	n := b.WriteString(imap.CommandList)
	if sel := writeListSelectionOptions(b, c.Options); sel > 0 {
		n += sel
	}
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Reference)
	n += b.WriteSP()
	if len(c.Patterns) == 1 {
		n += b.WriteIMAPString(c.Patterns[0])
	} else {
		n += WriteArray(b, c.Patterns, "", " ", "", true, func(b *EncodeBuffer, p string) int {
			return b.WriteIMAPString(p)
		})
	}
	if ret := writeListReturnOptions(b, c.Options); ret > 0 {
		n += ret
	}
	return n
}

func writeListSelectionOptions(b *EncodeBuffer, opts imap.ListOptions) int {
	if !opts.SelectSubscribed && !opts.SelectRemote && !opts.SelectRecursiveMatch && !opts.SelectSpecialUse {
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
	if opts.SelectSubscribed {
		writeSP()
		n += b.WriteString("SUBSCRIBED")
	}
	if opts.SelectRemote {
		writeSP()
		n += b.WriteString("REMOTE")
	}
	if opts.SelectRecursiveMatch {
		writeSP()
		n += b.WriteString("RECURSIVEMATCH")
	}
	if opts.SelectSpecialUse {
		writeSP()
		n += b.WriteString("SPECIAL-USE")
	}
	n += b.WriteByte(')')
	return n
}

func writeListReturnOptions(b *EncodeBuffer, opts imap.ListOptions) int {
	if !opts.ReturnSubscribed && !opts.ReturnChildren && !opts.ReturnSpecialUse &&
		opts.ReturnStatus == nil && !opts.ReturnMyRights && opts.ReturnMetadata == nil {
		return 0
	}
	n := b.WriteString(" RETURN (")
	first := true
	writeSP := func() {
		if !first {
			n += b.WriteSP()
		}
		first = false
	}
	if opts.ReturnSubscribed {
		writeSP()
		n += b.WriteString("SUBSCRIBED")
	}
	if opts.ReturnChildren {
		writeSP()
		n += b.WriteString("CHILDREN")
	}
	if opts.ReturnSpecialUse {
		writeSP()
		n += b.WriteString("SPECIAL-USE")
	}
	if opts.ReturnMyRights {
		writeSP()
		n += b.WriteString("MYRIGHTS")
	}
	if opts.ReturnStatus != nil {
		writeSP()
		n += b.WriteString("STATUS ")
		n += writeStatusOptionsList(b, *opts.ReturnStatus)
	}
	if opts.ReturnMetadata != nil {
		writeSP()
		n += b.WriteString("METADATA (")
		n += WriteArray(b, opts.ReturnMetadata.Options, "", " ", "", false, func(b *EncodeBuffer, s string) int {
			return b.WriteAString(s)
		})
		n += b.WriteByte(')')
	}
	n += b.WriteByte(')')
	return n
}

func writeStatusCommand(b *EncodeBuffer, c *imap.StatusCommand) int {
	n := b.WriteString(imap.CommandStatus)
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Mailbox)
	n += b.WriteSP()
	n += writeStatusOptionsList(b, c.Options)
	return n
}

func writeStatusOptionsList(b *EncodeBuffer, opts imap.StatusOptions) int {
	n := b.WriteByte('(')
	first := true
	writeSP := func() {
		if !first {
			n += b.WriteSP()
		}
		first = false
	}
	add := func(want bool, name string) {
		if want {
			writeSP()
			n += b.WriteString(name)
		}
	}
	add(opts.NumMessages, "MESSAGES")
	add(opts.UIDNext, "UIDNEXT")
	add(opts.UIDValidity, "UIDVALIDITY")
	add(opts.NumUnseen, "UNSEEN")
	add(opts.NumRecent, "RECENT")
	add(opts.Size, "SIZE")
	add(opts.AppendLimit, "APPENDLIMIT")
	add(opts.HighestModSeq, "HIGHESTMODSEQ")
	add(opts.MailboxID, "MAILBOXID")
	n += b.WriteByte(')')
	return n
}

func writeIDData(b *EncodeBuffer, data imap.IDData) int {
	if len(data) == 0 {
		return b.WriteNil()
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]OrderedPair[string, *string], len(keys))
	for i, k := range keys {
		pairs[i] = OrderedPair[string, *string]{Key: k, Val: data[k]}
	}
	return WriteOrderedMap(b, pairs, "", " ", "", true, func(b *EncodeBuffer, k string, v *string) int {
		n := b.WriteIMAPString(k)
		n += b.WriteSP()
		n += writeNStringPtr(b, v)
		return n
	})
}

func writeNStringPtr(b *EncodeBuffer, s *string) int {
	if s == nil {
		return b.WriteNil()
	}
	return b.WriteIMAPString(*s)
}

func writeResetKeyCommand(b *EncodeBuffer, c *imap.ResetKeyCommand) int {
	n := b.WriteString(imap.CommandResetKey)
	if c.Mailbox != "" {
		n += b.WriteSP()
		n += WriteMailboxName(b, c.Mailbox)
	}
	for _, m := range c.Mechanisms {
		n += b.WriteSP()
		n += b.WriteAString(m)
	}
	return n
}

func writeGetMetadataCommand(b *EncodeBuffer, c *imap.GetMetadataCommand) int {
	n := b.WriteString(imap.CommandGetMetadata)
	if opt := writeMetadataOptions(b, c.Options); opt > 0 {
		n += opt
	}
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Mailbox)
	n += b.WriteSP()
	n += WriteArray(b, c.Entries, "", " ", "", true, func(b *EncodeBuffer, s string) int {
		return b.WriteAString(s)
	})
	return n
}

func writeMetadataOptions(b *EncodeBuffer, opts imap.MetadataOptions) int {
	if opts.MaxSize == nil && opts.Depth == "" {
		return 0
	}
	n := b.WriteString(" (")
	first := true
	if opts.MaxSize != nil {
		n += b.WriteString("MAXSIZE ")
		n += b.WriteString(strconv.FormatInt(*opts.MaxSize, 10))
		first = false
	}
	if opts.Depth != "" {
		if !first {
			n += b.WriteSP()
		}
		n += b.WriteString("DEPTH ")
		n += b.WriteString(opts.Depth)
	}
	n += b.WriteByte(')')
	return n
}

func writeSetMetadataCommand(b *EncodeBuffer, c *imap.SetMetadataCommand) int {
	n := b.WriteString(imap.CommandSetMetadata)
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Mailbox)
	n += b.WriteSP()
	n += WriteArray(b, c.Entries, "", " ", "", true, func(b *EncodeBuffer, e imap.MetadataEntry) int {
		n := b.WriteAString(e.Name)
		n += b.WriteSP()
		n += writeNStringPtr(b, e.Value)
		return n
	})
	return n
}

func writeSetQuotaCommand(b *EncodeBuffer, c *imap.SetQuotaCommand) int {
	n := b.WriteString(imap.CommandSetQuota)
	n += b.WriteSP()
	n += WriteMailboxName(b, c.Root)
	n += b.WriteSP()
	n += WriteArray(b, c.Resources, "", " ", "", true, func(b *EncodeBuffer, r imap.QuotaResourceData) int {
		n := b.WriteString(string(r.Name))
		n += b.WriteSP()
		n += b.WriteString(strconv.FormatInt(r.Limit, 10))
		return n
	})
	return n
}

func writeSortCommand(b *EncodeBuffer, c *imap.SortCommand) int {
	n := 0
	if c.UID {
		n += b.WriteString(imap.CommandUID)
		n += b.WriteSP()
	}
	n += b.WriteString(imap.CommandSort)
	n += b.WriteSP()
	n += WriteArray(b, c.Sort, "", " ", "", true, func(b *EncodeBuffer, s imap.SortCriterion) int {
		n := 0
		if s.Reverse {
			n += b.WriteString("REVERSE ")
		}
		n += b.WriteString(string(s.Key))
		return n
	})
	n += b.WriteSP()
	n += b.WriteString(c.Charset)
	n += b.WriteSP()
	n += WriteSearchKey(b, c.Key)
	return n
}

func writeThreadCommand(b *EncodeBuffer, c *imap.ThreadCommand) int {
	n := 0
	if c.UID {
		n += b.WriteString(imap.CommandUID)
		n += b.WriteSP()
	}
	n += b.WriteString(imap.CommandThread)
	n += b.WriteSP()
	n += b.WriteString(string(c.Algorithm))
	n += b.WriteSP()
	n += b.WriteString(c.Charset)
	n += b.WriteSP()
	n += WriteSearchKey(b, c.Key)
	return n
}

// writeSASLData writes a SASL initial-response/challenge: "=" for a
// zero-length response, else base64.
func writeSASLData(b *EncodeBuffer, data []byte) int {
	if len(data) == 0 {
		return b.WriteByte('=')
	}
	return b.WriteString(base64.StdEncoding.EncodeToString(data))
}
