package pipeline

import (
	"testing"

	imap "github.com/imapwire/codec"
)

func TestCanStart_FetchAfterSelect(t *testing.T) {
	selectRunning := Requirements(&imap.MailboxSelectionCommand{Verb: imap.VerbSelect, Mailbox: "INBOX"})
	fetchCandidate := Behaviors(&imap.FetchCommand{
		Numbers: imap.NewMessageIdentifierSet[imap.SeqNum](1, 2, 3),
		Attrs:   []imap.FetchAttribute{imap.FetchAttrUID{}},
	})

	if CanStart(fetchCandidate, selectRunning) {
		t.Fatal("FETCH must not be allowed to start while SELECT is running")
	}
}

func TestCanStart_ParallelFetchDisjointUIDStore(t *testing.T) {
	fetchRunning := Requirements(&imap.FetchCommand{
		UID:     true,
		Numbers: imap.NewMessageIdentifierSet[imap.UID](1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
		Attrs:   []imap.FetchAttribute{imap.FetchAttrFlags{}},
	})
	storeCandidate := Behaviors(&imap.StoreCommand{
		UID:     true,
		Numbers: imap.NewMessageIdentifierSet[imap.UID](20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30),
		Flags:   imap.StoreFlags{Action: imap.StoreFlagsAdd, Flags: []imap.Flag{imap.FlagSeen}},
	})

	if !CanStart(storeCandidate, fetchRunning) {
		t.Fatal("UID STORE on disjoint UIDs must be allowed alongside a UID FETCH reading flags")
	}
}

func TestCanStart_OverlappingUIDStoreBlocked(t *testing.T) {
	fetchRunning := Requirements(&imap.FetchCommand{
		UID:     true,
		Numbers: imap.NewMessageIdentifierSet[imap.UID](1, 2, 3, 4, 5),
		Attrs:   []imap.FetchAttribute{imap.FetchAttrFlags{}},
	})
	storeCandidate := Behaviors(&imap.StoreCommand{
		UID:     true,
		Numbers: imap.NewMessageIdentifierSet[imap.UID](5, 6, 7),
		Flags:   imap.StoreFlags{Action: imap.StoreFlagsAdd, Flags: []imap.Flag{imap.FlagSeen}},
	})

	if CanStart(storeCandidate, fetchRunning) {
		t.Fatal("UID STORE touching UID 5 must not be allowed alongside a FETCH reading flags for UID 5")
	}
}

func TestCanStart_BarrierAlwaysRejected(t *testing.T) {
	idleCandidate := Behaviors(&imap.IdleCommand{})
	if CanStart(idleCandidate, RequirementSet{}) {
		t.Fatal("a Barrier command must never be allowed to start alongside anything")
	}
}

func TestCanStart_CapabilityIsConcurrencySafe(t *testing.T) {
	fetchRunning := Requirements(&imap.FetchCommand{
		Numbers: imap.NewMessageIdentifierSet[imap.SeqNum](1),
		Attrs:   []imap.FetchAttribute{imap.FetchAttrUID{}},
	})
	capabilityCandidate := Behaviors(&imap.CapabilityCommand{})

	if !CanStart(capabilityCandidate, fetchRunning) {
		t.Fatal("CAPABILITY carries no behaviors and should be safe alongside any running command")
	}
}

func TestCanStart_ListBlockedByRunningFetch(t *testing.T) {
	fetchRunning := Requirements(&imap.FetchCommand{
		Numbers: imap.NewMessageIdentifierSet[imap.SeqNum](1),
		Attrs:   []imap.FetchAttribute{imap.FetchAttrUID{}},
	})
	listCandidate := Behaviors(&imap.ListCommand{Reference: "", Patterns: []string{"%"}})

	if CanStart(listCandidate, fetchRunning) {
		t.Fatal("LIST behaves as MayTriggerUntaggedExpunge, which a running FETCH's NoUntaggedExpungeResponse requirement forbids")
	}
}

func TestSearchKeyReferences(t *testing.T) {
	seenKey := imap.SearchKeyFlag{Flag: imap.FlagSeen}
	uidKey := imap.SearchKeyUID{Set: imap.NewMessageIdentifierSet[imap.UID](1, 2)}
	and := imap.And(seenKey, uidKey)

	if !referencesFlags(and) {
		t.Error("And(seenKey, uidKey) should reference flags via its Seen child")
	}
	if !referencesUIDs(and) {
		t.Error("And(seenKey, uidKey) should reference UIDs via its UID child")
	}
	if referencesSeqNums(and) {
		t.Error("And(seenKey, uidKey) should not reference sequence numbers")
	}

	filter := imap.SearchKeyFilter{Name: "saved"}
	if !referencesFlags(filter) || !referencesUIDs(filter) || !referencesSeqNums(filter) {
		t.Error("an opaque Filter key must conservatively reference sequence numbers, UIDs, and flags")
	}
}

func TestSearchRequirementsAllScope(t *testing.T) {
	key := imap.SearchKeyFlag{Flag: imap.FlagDeleted}
	req := searchRequirements(key, false)
	if req.NoFlagChanges == nil || !req.NoFlagChanges.All {
		t.Fatal("SEARCH referencing flags must fall back to the whole-mailbox scope, since its match set is not known ahead of evaluation")
	}
}

func TestScheduler_RejectsConflictingCommand(t *testing.T) {
	s := NewScheduler(nil)

	selectCmd := &imap.MailboxSelectionCommand{Verb: imap.VerbSelect, Mailbox: "INBOX"}
	if !s.TryStart("A1", selectCmd) {
		t.Fatal("first command should always be accepted")
	}

	fetchCmd := &imap.FetchCommand{
		Numbers: imap.NewMessageIdentifierSet[imap.SeqNum](1),
		Attrs:   []imap.FetchAttribute{imap.FetchAttrUID{}},
	}
	if s.TryStart("A2", fetchCmd) {
		t.Fatal("FETCH should be rejected while SELECT is still running")
	}

	s.Complete("A1")
	if !s.TryStart("A2", fetchCmd) {
		t.Fatal("FETCH should be accepted once SELECT has completed")
	}
}
