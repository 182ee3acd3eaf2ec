// Package pipeline classifies IMAP commands by the RFC 3501 §5.5
// concurrency rules and decides whether a candidate command may start
// while other commands are still running. It is a pure projection over
// the imap.Command AST: no I/O, no session state.
package pipeline

import (
	"fmt"

	imap "github.com/imapwire/codec"
)

// FlagScope names which messages a flag-touching requirement or
// behavior applies to. All means "every message in the selected
// mailbox" (used when the command's own target set isn't known ahead
// of evaluation, e.g. SEARCH/SORT/THREAD predicates); otherwise the
// scope is the command's own identifier set.
type FlagScope struct {
	All     bool
	UIDs    *imap.UIDSet
	SeqNums *imap.SeqSet
}

func allScope() *FlagScope { return &FlagScope{All: true} }

func numSetScope(ns imap.NumSet, uid bool) *FlagScope {
	if ns == nil {
		return allScope()
	}
	if uid {
		if s, ok := ns.(*imap.UIDSet); ok {
			return &FlagScope{UIDs: s}
		}
	} else {
		if s, ok := ns.(*imap.SeqSet); ok {
			return &FlagScope{SeqNums: s}
		}
	}
	return allScope()
}

// intersects reports whether a and b might touch a common message. A
// nil receiver or nil argument means "no requirement/behavior of this
// kind" and never intersects. Scopes expressed in different identifier
// spaces (UID vs sequence number) can't be compared without a live
// mailbox mapping, so that case conservatively assumes overlap.
func (a *FlagScope) intersects(b *FlagScope) bool {
	if a == nil || b == nil {
		return false
	}
	if a.All || b.All {
		return true
	}
	switch {
	case a.UIDs != nil && b.UIDs != nil:
		return a.UIDs.Intersects(b.UIDs)
	case a.SeqNums != nil && b.SeqNums != nil:
		return a.SeqNums.Intersects(b.SeqNums)
	case a.UIDs == nil && a.SeqNums == nil:
		return false
	case b.UIDs == nil && b.SeqNums == nil:
		return false
	default:
		return true
	}
}

// RequirementSet is the set of preconditions a running command places
// on any command that tries to start concurrently with it.
type RequirementSet struct {
	NoMailboxCommandsRunning  bool
	NoUntaggedExpungeResponse bool
	NoUIDBasedCommandRunning  bool
	NoFlagChanges             *FlagScope
	NoFlagReads               *FlagScope
}

// BehaviorSet is the set of properties a command exhibits while it
// runs, checked against other commands' RequirementSet.
type BehaviorSet struct {
	ChangesMailboxSelection   bool
	DependsOnMailboxSelection bool
	MayTriggerUntaggedExpunge bool
	IsUIDBased                bool
	ChangesFlags              *FlagScope
	ReadsFlags                *FlagScope
	Barrier                   bool
}

// CanStart reports whether a command with candidate may begin while a
// command with running's requirements is already in flight. A Barrier
// candidate can never start alongside anything else; otherwise every
// requirement of running must be left unviolated by candidate.
func CanStart(candidate BehaviorSet, running RequirementSet) bool {
	if candidate.Barrier {
		return false
	}
	if running.NoMailboxCommandsRunning && (candidate.ChangesMailboxSelection || candidate.DependsOnMailboxSelection) {
		return false
	}
	if running.NoUntaggedExpungeResponse && candidate.MayTriggerUntaggedExpunge {
		return false
	}
	if running.NoUIDBasedCommandRunning && candidate.IsUIDBased {
		return false
	}
	if running.NoFlagChanges.intersects(candidate.ChangesFlags) {
		return false
	}
	if running.NoFlagReads.intersects(candidate.ReadsFlags) {
		return false
	}
	return true
}

// Requirements classifies what cmd requires of any command attempting
// to start while cmd is running.
func Requirements(body imap.CommandBody) RequirementSet {
	switch cmd := body.(type) {
	case *imap.MailboxSelectionCommand:
		return RequirementSet{NoMailboxCommandsRunning: true}

	case *imap.FetchCommand:
		var r RequirementSet
		if !cmd.UID {
			// Only a sequence-number FETCH is endangered by an interleaved
			// EXPUNGE renumbering messages mid-command; UID FETCH addresses
			// messages by an identifier that renumbering never changes.
			r.NoUntaggedExpungeResponse = true
			r.NoUIDBasedCommandRunning = true
		}
		if fetchReadsFlags(cmd.Attrs) {
			r.NoFlagChanges = numSetScope(cmd.Numbers, cmd.UID)
		}
		return r

	case *imap.StoreCommand:
		var r RequirementSet
		if !cmd.UID {
			r.NoUntaggedExpungeResponse = true
			r.NoUIDBasedCommandRunning = true
		}
		r.NoFlagReads = numSetScope(cmd.Numbers, cmd.UID)
		if !cmd.Flags.Silent {
			r.NoFlagChanges = numSetScope(cmd.Numbers, cmd.UID)
		}
		return r

	case *imap.SearchCommand:
		return searchRequirements(cmd.Key, cmd.UID)

	case *imap.SortCommand:
		return searchRequirements(cmd.Key, cmd.UID)

	case *imap.ThreadCommand:
		return searchRequirements(cmd.Key, cmd.UID)

	case *imap.CopyCommand:
		return RequirementSet{NoUntaggedExpungeResponse: true, NoUIDBasedCommandRunning: true}

	case *imap.MoveCommand:
		return RequirementSet{NoUntaggedExpungeResponse: true, NoUIDBasedCommandRunning: true}

	case *imap.ExpungeCommand:
		return RequirementSet{NoUntaggedExpungeResponse: true, NoUIDBasedCommandRunning: true}

	case *imap.CustomCommand:
		return RequirementSet{
			NoMailboxCommandsRunning:  true,
			NoUntaggedExpungeResponse: true,
			NoUIDBasedCommandRunning:  true,
			NoFlagChanges:             allScope(),
			NoFlagReads:               allScope(),
		}

	default:
		return RequirementSet{}
	}
}

// Behaviors classifies what cmd exhibits while it runs.
func Behaviors(body imap.CommandBody) BehaviorSet {
	switch cmd := body.(type) {
	case *imap.MailboxSelectionCommand:
		return BehaviorSet{ChangesMailboxSelection: true, MayTriggerUntaggedExpunge: true}

	case *imap.FetchCommand:
		// UID FETCH does not carry MayTriggerUntaggedExpunge: like UID STORE
		// and unlike UID COPY/MOVE/EXPUNGE, its addressing is immune to the
		// renumbering an untagged EXPUNGE would cause, so it poses none of
		// the ambiguity that behavior exists to flag for sequence-number
		// based peers.
		b := BehaviorSet{DependsOnMailboxSelection: true, IsUIDBased: cmd.UID}
		if fetchReadsFlags(cmd.Attrs) {
			b.ReadsFlags = numSetScope(cmd.Numbers, cmd.UID)
		}
		return b

	case *imap.StoreCommand:
		b := BehaviorSet{ChangesFlags: numSetScope(cmd.Numbers, cmd.UID), IsUIDBased: cmd.UID}
		if !cmd.Flags.Silent {
			b.ReadsFlags = numSetScope(cmd.Numbers, cmd.UID)
		}
		return b

	case *imap.SearchCommand:
		return searchBehaviors(cmd.Key, cmd.UID)

	case *imap.SortCommand:
		return searchBehaviors(cmd.Key, cmd.UID)

	case *imap.ThreadCommand:
		return searchBehaviors(cmd.Key, cmd.UID)

	case *imap.CopyCommand:
		b := BehaviorSet{DependsOnMailboxSelection: true, MayTriggerUntaggedExpunge: true}
		b.IsUIDBased = cmd.UID
		return b

	case *imap.MoveCommand:
		b := BehaviorSet{DependsOnMailboxSelection: true, MayTriggerUntaggedExpunge: true}
		b.IsUIDBased = cmd.UID
		return b

	case *imap.ExpungeCommand:
		b := BehaviorSet{DependsOnMailboxSelection: true, MayTriggerUntaggedExpunge: true}
		b.IsUIDBased = cmd.UIDs != nil
		return b

	case *imap.IdleCommand:
		return BehaviorSet{Barrier: true, DependsOnMailboxSelection: true, MayTriggerUntaggedExpunge: true}

	case *imap.AuthenticateCommand, *imap.StartTLSCommand, *imap.LogoutCommand, *imap.CompressCommand:
		return BehaviorSet{Barrier: true}

	case *imap.AppendCommand:
		return BehaviorSet{Barrier: true}

	case *imap.NoopCommand, *imap.CheckCommand:
		return BehaviorSet{DependsOnMailboxSelection: true, MayTriggerUntaggedExpunge: true}

	case *imap.CreateCommand, *imap.DeleteCommand, *imap.RenameCommand,
		*imap.SubscribeCommand, *imap.UnsubscribeCommand, *imap.ListCommand,
		*imap.LSubCommand, *imap.StatusCommand, *imap.IDCommand,
		*imap.NamespaceCommand, *imap.EnableCommand, *imap.ResetKeyCommand,
		*imap.GetMetadataCommand, *imap.SetMetadataCommand, *imap.GetQuotaCommand,
		*imap.GetQuotaRootCommand, *imap.SetQuotaCommand, *imap.SetACLCommand,
		*imap.DeleteACLCommand, *imap.GetACLCommand, *imap.ListRightsCommand,
		*imap.MyRightsCommand:
		return BehaviorSet{MayTriggerUntaggedExpunge: true}

	case *imap.CapabilityCommand:
		return BehaviorSet{}

	case *imap.CustomCommand:
		return BehaviorSet{Barrier: true}

	default:
		panic(fmt.Sprintf("pipeline: unclassified CommandBody %T", cmd))
	}
}

func fetchReadsFlags(attrs []imap.FetchAttribute) bool {
	for _, a := range attrs {
		if imap.FetchAttrReadsFlags(a) {
			return true
		}
	}
	return false
}
