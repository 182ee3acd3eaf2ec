package imap

// FetchAttribute is a single requested data item in a FETCH/UID FETCH
// command. It is a closed sum type: the grammar encoder switches on the
// concrete type to choose the wire atom, and the pipelining governor
// inspects the slice to decide whether the command reads flags.
type FetchAttribute interface {
	isFetchAttribute()
}

type (
	// FetchAttrEnvelope requests ENVELOPE.
	FetchAttrEnvelope struct{}
	// FetchAttrFlags requests FLAGS.
	FetchAttrFlags struct{}
	// FetchAttrInternalDate requests INTERNALDATE.
	FetchAttrInternalDate struct{}
	// FetchAttrRFC822Size requests RFC822.SIZE.
	FetchAttrRFC822Size struct{}
	// FetchAttrUID requests UID.
	FetchAttrUID struct{}
	// FetchAttrModSeq requests MODSEQ (CONDSTORE).
	FetchAttrModSeq struct{}
	// FetchAttrSaveDate requests SAVEDATE (RFC 8514).
	FetchAttrSaveDate struct{}
	// FetchAttrEmailID requests EMAILID (RFC 8474).
	FetchAttrEmailID struct{}
	// FetchAttrThreadID requests THREADID (RFC 8474).
	FetchAttrThreadID struct{}
)

// FetchAttrBodyStructure requests BODY (Extended=false) or BODYSTRUCTURE
// (Extended=true).
type FetchAttrBodyStructure struct{ Extended bool }

// FetchAttrBodySection requests BODY[section]<partial>, optionally
// BODY.PEEK.
type FetchAttrBodySection struct {
	Section *BodySectionName
	Peek    bool
}

// FetchAttrBinarySection requests BINARY[part]<partial> (RFC 3516).
type FetchAttrBinarySection struct {
	Part    []int
	Partial *SectionPartial
	Peek    bool
}

// FetchAttrBinarySize requests BINARY.SIZE[part] (RFC 3516).
type FetchAttrBinarySize struct{ Part []int }

// FetchAttrPreview requests PREVIEW, optionally PREVIEW (LAZY) (RFC 8970).
type FetchAttrPreview struct{ Lazy bool }

// FetchAttrGmail requests a Gmail IMAP extension attribute
// (X-GM-MSGID, X-GM-THRID, X-GM-LABELS); Name holds the literal atom.
type FetchAttrGmail struct{ Name string }

func (FetchAttrEnvelope) isFetchAttribute()      {}
func (FetchAttrFlags) isFetchAttribute()         {}
func (FetchAttrInternalDate) isFetchAttribute()  {}
func (FetchAttrRFC822Size) isFetchAttribute()    {}
func (FetchAttrUID) isFetchAttribute()           {}
func (FetchAttrModSeq) isFetchAttribute()        {}
func (FetchAttrSaveDate) isFetchAttribute()      {}
func (FetchAttrEmailID) isFetchAttribute()       {}
func (FetchAttrThreadID) isFetchAttribute()      {}
func (FetchAttrBodyStructure) isFetchAttribute() {}
func (FetchAttrBodySection) isFetchAttribute()   {}
func (FetchAttrBinarySection) isFetchAttribute() {}
func (FetchAttrBinarySize) isFetchAttribute()    {}
func (FetchAttrPreview) isFetchAttribute()       {}
func (FetchAttrGmail) isFetchAttribute()         {}

// FetchAttrReadsFlags reports whether requesting attr causes the server to
// read (and thus report) the message's flag state — used by the
// pipelining governor to add ReadsFlags/NoFlagReads constraints.
func FetchAttrReadsFlags(attr FetchAttribute) bool {
	_, ok := attr.(FetchAttrFlags)
	return ok
}

// BodySectionName names a BODY[] section.
type BodySectionName struct {
	// Specifier is HEADER, HEADER.FIELDS, HEADER.FIELDS.NOT, TEXT, MIME, or
	// empty for the whole part/message.
	Specifier string
	// Part is the dotted MIME part number, e.g. []int{1,2} for "1.2".
	Part []int
	// Fields lists header field names for HEADER.FIELDS[.NOT].
	Fields    []string
	NotFields bool
	Partial   *SectionPartial
}

// SectionPartial is a <offset.count> byte range.
type SectionPartial struct {
	Offset int64
	Count  int64
}

// ChangedSinceModifier attaches CHANGEDSINCE (and, with Vanished, the
// QRESYNC VANISHED request) to a FETCH/UID FETCH command.
type ChangedSinceModifier struct {
	ModSeq   uint64
	Vanished bool
}

// FetchResponse is one event in the streaming server→client FETCH event
// sequence for a single message. A full message's data is the sequence
// Start/StartUID, zero or more SimpleAttribute/StreamingBegin+*Bytes+End,
// terminated by Finish — see wire.WriteFetchResponse, which tracks the
// minimal "streaming_attributes" state machine between events.
type FetchResponse interface {
	isFetchResponse()
}

// FetchResponseStart begins "* n FETCH (".
type FetchResponseStart struct{ SeqNum uint32 }

// FetchResponseStartUID begins "* n UIDFETCH (" (RFC 9586 UIDONLY).
type FetchResponseStartUID struct{ SeqNum uint32 }

// FetchResponseSimpleAttribute emits one non-streamed attribute value
// (already rendered to an AST leaf understood by the grammar encoder,
// e.g. a FetchAttributeValue below).
type FetchResponseSimpleAttribute struct{ Value FetchAttributeValue }

// FetchResponseStreamingBegin emits a section header such as
// "BODY[TEXT] {size}\r\n" and arms the decoder/transport to expect Size
// raw bytes next.
type FetchResponseStreamingBegin struct {
	Kind string // e.g. "BODY[TEXT]", "BINARY[1]"
	Size int64
}

// FetchResponseStreamingBytes carries a chunk of the streamed section's
// raw bytes (no framing of its own).
type FetchResponseStreamingBytes struct{ Data []byte }

// FetchResponseStreamingEnd is a logical marker with no wire bytes: it
// tells the caller the current streamed section is complete.
type FetchResponseStreamingEnd struct{}

// FetchResponseFinish emits ")\r\n", closing the FETCH response.
type FetchResponseFinish struct{}

func (FetchResponseStart) isFetchResponse()           {}
func (FetchResponseStartUID) isFetchResponse()        {}
func (FetchResponseSimpleAttribute) isFetchResponse() {}
func (FetchResponseStreamingBegin) isFetchResponse()  {}
func (FetchResponseStreamingBytes) isFetchResponse()  {}
func (FetchResponseStreamingEnd) isFetchResponse()    {}
func (FetchResponseFinish) isFetchResponse()          {}

// FetchAttributeValue is a fully-materialized, already-fetched attribute
// value ready for the grammar encoder (as opposed to FetchAttribute, which
// only names what was requested).
type FetchAttributeValue interface {
	isFetchAttributeValue()
}

type (
	FetchValueUID          struct{ UID UID }
	FetchValueFlags        struct{ Flags []Flag }
	FetchValueInternalDate struct{ Date InternalDate }
	FetchValueRFC822Size   struct{ Size int64 }
	FetchValueModSeq       struct{ ModSeq uint64 }
	FetchValueEnvelope     struct{ Envelope *Envelope }
	FetchValueBodyStruct   struct {
		Struct   *BodyStructure
		Extended bool
	}
	FetchValueAtom struct{ Atom, Arg string } // e.g. SAVEDATE, EMAILID, X-GM-*
)

func (FetchValueUID) isFetchAttributeValue()          {}
func (FetchValueFlags) isFetchAttributeValue()        {}
func (FetchValueInternalDate) isFetchAttributeValue() {}
func (FetchValueRFC822Size) isFetchAttributeValue()   {}
func (FetchValueModSeq) isFetchAttributeValue()       {}
func (FetchValueEnvelope) isFetchAttributeValue()     {}
func (FetchValueBodyStruct) isFetchAttributeValue()   {}
func (FetchValueAtom) isFetchAttributeValue()         {}
