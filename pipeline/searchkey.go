package pipeline

import imap "github.com/imapwire/codec"

// searchRequirements/searchBehaviors classify SEARCH, SORT, and THREAD
// alike: all three carry a SearchKey predicate (RFC 5256 reuses SEARCH's
// key grammar) evaluated against the selected mailbox. Because the set
// of messages the predicate actually matches isn't known without
// evaluating it live, any flag reference falls back to the whole-mailbox
// scope — unlike FETCH/STORE, which carry an explicit identifier set.
func searchRequirements(key imap.SearchKey, uid bool) RequirementSet {
	r := RequirementSet{}
	if referencesSeqNums(key) {
		r.NoUntaggedExpungeResponse = true
		r.NoUIDBasedCommandRunning = true
	}
	if referencesFlags(key) {
		r.NoFlagChanges = allScope()
	}
	return r
}

func searchBehaviors(key imap.SearchKey, uid bool) BehaviorSet {
	b := BehaviorSet{}
	if uid || referencesUIDs(key) {
		b.IsUIDBased = true
	}
	if referencesFlags(key) {
		b.ReadsFlags = allScope()
	}
	return b
}

// referencesSeqNums reports whether key matches messages by sequence
// number, directly or through an opaque filter whose expansion is
// unknown to the encoder.
func referencesSeqNums(key imap.SearchKey) bool {
	switch k := key.(type) {
	case imap.SearchKeySeqNum:
		return true
	case imap.SearchKeyFilter:
		return true
	case imap.SearchKeyAnd:
		return anyChild(k.Children, referencesSeqNums)
	case imap.SearchKeyOr:
		return referencesSeqNums(k.A) || referencesSeqNums(k.B)
	case imap.SearchKeyNot:
		return referencesSeqNums(k.Key)
	default:
		return false
	}
}

// referencesUIDs reports whether key matches or filters by UID.
func referencesUIDs(key imap.SearchKey) bool {
	switch k := key.(type) {
	case imap.SearchKeyUID:
		return true
	case imap.SearchKeyUIDBefore:
		return true
	case imap.SearchKeyUIDAfter:
		return true
	case imap.SearchKeyFilter:
		return true
	case imap.SearchKeyAnd:
		return anyChild(k.Children, referencesUIDs)
	case imap.SearchKeyOr:
		return referencesUIDs(k.A) || referencesUIDs(k.B)
	case imap.SearchKeyNot:
		return referencesUIDs(k.Key)
	default:
		return false
	}
}

// referencesFlags reports whether key's result depends on a message's
// flag state, including CONDSTORE's per-entry MODSEQ comparator.
func referencesFlags(key imap.SearchKey) bool {
	switch k := key.(type) {
	case imap.SearchKeyFlag:
		return true
	case imap.SearchKeyKeyword:
		return true
	case imap.SearchKeyFilter:
		return true
	case imap.SearchKeyModSeq:
		return k.Entry != "" || k.EntryType != ""
	case imap.SearchKeyAnd:
		return anyChild(k.Children, referencesFlags)
	case imap.SearchKeyOr:
		return referencesFlags(k.A) || referencesFlags(k.B)
	case imap.SearchKeyNot:
		return referencesFlags(k.Key)
	default:
		return false
	}
}

func anyChild(children []imap.SearchKey, pred func(imap.SearchKey) bool) bool {
	for _, c := range children {
		if pred(c) {
			return true
		}
	}
	return false
}
