package imap

import "time"

// Command is a client-originated request: a tag plus a verb-specific
// payload. The AST covers RFC 3501 plus the negotiated extensions listed
// throughout this package; see CommandBody for the closed set of verbs.
type Command struct {
	Tag  string
	Body CommandBody
}

// CommandBody is implemented by every concrete command payload type. The
// grammar encoder (wire.WriteCommand) switches on the concrete type to
// produce wire bytes; the pipelining governor (package pipeline) switches
// on it to classify Requirements/Behaviors.
type CommandBody interface {
	isCommandBody()
}

// MailboxSelectionVerb distinguishes the four verbs that share pipelining
// classification: they all change or depend on which mailbox is selected.
type MailboxSelectionVerb int

const (
	VerbSelect MailboxSelectionVerb = iota
	VerbExamine
	VerbUnselect
	VerbClose
)

func (v MailboxSelectionVerb) String() string {
	switch v {
	case VerbSelect:
		return CommandSelect
	case VerbExamine:
		return CommandExamine
	case VerbUnselect:
		return CommandUnselect
	case VerbClose:
		return CommandClose
	default:
		return "SELECT"
	}
}

// MailboxSelectionCommand covers SELECT, EXAMINE, UNSELECT, and CLOSE:
// Mailbox is empty for UNSELECT/CLOSE.
type MailboxSelectionCommand struct {
	Verb    MailboxSelectionVerb
	Mailbox string
	Options SelectOptions
}

// SelectOptions specifies options for the SELECT/EXAMINE command.
type SelectOptions struct {
	CondStore bool
	QResync   *SelectQResync
}

// SelectQResync contains QRESYNC parameters (RFC 7162).
type SelectQResync struct {
	UIDValidity uint32
	ModSeq      uint64
	KnownUIDs   *UIDSet
	SeqMatch    *QResyncSeqMatch
}

// QResyncSeqMatch pairs known sequence numbers with UIDs for QRESYNC.
type QResyncSeqMatch struct {
	SeqNums *SeqSet
	UIDs    *UIDSet
}

// SelectData represents the data returned by SELECT/EXAMINE.
type SelectData struct {
	Flags          []Flag
	PermanentFlags []Flag
	NumMessages    uint32
	NumRecent      uint32
	UIDNext        UID
	UIDValidity    uint32
	FirstUnseen    uint32
	HighestModSeq  uint64
	ReadOnly       bool
	MailboxID      string
}

// FetchCommand is FETCH (UID=false) or UID FETCH (UID=true).
type FetchCommand struct {
	Numbers      NumSet
	UID          bool
	Attrs        []FetchAttribute
	ChangedSince *ChangedSinceModifier
}

// StoreCommand is STORE (UID=false) or UID STORE (UID=true).
type StoreCommand struct {
	Numbers        NumSet
	UID            bool
	Flags          StoreFlags
	UnchangedSince uint64 // CONDSTORE; 0 means absent
}

// StoreAction specifies how STORE modifies flags.
type StoreAction int

const (
	StoreFlagsSet StoreAction = iota
	StoreFlagsAdd
	StoreFlagsDel
)

func (a StoreAction) String() string {
	switch a {
	case StoreFlagsAdd:
		return "+FLAGS"
	case StoreFlagsDel:
		return "-FLAGS"
	default:
		return "FLAGS"
	}
}

// StoreFlags specifies the flag changes for a STORE command.
type StoreFlags struct {
	Action StoreAction
	Silent bool
	Flags  []Flag
}

// SearchCommand is SEARCH/UID SEARCH; ESearch selects the RFC 4731
// extended-result wire form ("* ESEARCH ...").
type SearchCommand struct {
	Key     SearchKey
	UID     bool
	ESearch bool
	Options SearchOptions
	Charset string
}

// CopyCommand is COPY (UID=false) or UID COPY (UID=true).
type CopyCommand struct {
	Numbers NumSet
	UID     bool
	Mailbox string
}

// MoveCommand is MOVE (UID=false) or UID MOVE (UID=true) (RFC 6851).
type MoveCommand struct {
	Numbers NumSet
	UID     bool
	Mailbox string
}

// CopyData represents the result of a COPY or MOVE command (UIDPLUS,
// RFC 4315).
type CopyData struct {
	UIDValidity uint32
	SourceUIDs  UIDSet
	DestUIDs    UIDSet
}

// IdleCommand starts IDLE (RFC 2177). The matching "DONE" line that ends
// an IDLE period is not itself a tagged command and is out of scope: it is
// part of the continuation-request protocol the transport driver handles.
type IdleCommand struct{}

// AuthenticateCommand starts AUTHENTICATE. SASL challenge/response framing
// is an external collaborator; this node only carries enough to emit
// "<tag> AUTHENTICATE <mechanism>[ <initial-response>]\r\n".
type AuthenticateCommand struct {
	Mechanism       string
	InitialResponse []byte // non-nil when SASL-IR is used
}

// StartTLSCommand starts STARTTLS.
type StartTLSCommand struct{}

// LogoutCommand is LOGOUT.
type LogoutCommand struct{}

// CompressCommand is COMPRESS (RFC 4978).
type CompressCommand struct{ Mechanism string }

// NoopCommand is NOOP.
type NoopCommand struct{}

// CheckCommand is CHECK.
type CheckCommand struct{}

// ExpungeCommand is EXPUNGE (or UID EXPUNGE with a UID set, RFC 4315).
type ExpungeCommand struct {
	UIDs *UIDSet // nil for plain EXPUNGE
}

// AppendCommand is APPEND. A single APPEND may carry a MULTIAPPEND
// (RFC 3502) sequence of Messages; the first message's literal framing is
// a pipelining Barrier because the server may issue "+" continuations
// mid-command.
type AppendCommand struct {
	Mailbox  string
	Messages []AppendMessage
}

// AppendMessage is one message within an APPEND/MULTIAPPEND command.
type AppendMessage struct {
	Flags        []Flag
	InternalDate time.Time
	Size         int64
	Binary       bool // ~{N} binary literal (RFC 3516)
	UTF8         bool // UTF8 literal notation (RFC 6855)
}

// AppendOptions/AppendData describe non-wire-AST append bookkeeping kept
// for parity with the data model a session layer would consume.
type AppendOptions struct {
	Flags        []Flag
	InternalDate time.Time
	Binary       bool
	UTF8         bool
}

// AppendData represents the result of an APPEND command (UIDPLUS).
type AppendData struct {
	UIDValidity uint32
	UID         UID
}

// CreateCommand is CREATE.
type CreateCommand struct {
	Mailbox    string
	SpecialUse MailboxAttr
}

// DeleteCommand is DELETE.
type DeleteCommand struct{ Mailbox string }

// RenameCommand is RENAME.
type RenameCommand struct{ From, To string }

// SubscribeCommand is SUBSCRIBE.
type SubscribeCommand struct{ Mailbox string }

// UnsubscribeCommand is UNSUBSCRIBE.
type UnsubscribeCommand struct{ Mailbox string }

// ListCommand is LIST (or LIST-EXTENDED with Options populated).
type ListCommand struct {
	Reference string
	Patterns  []string
	Options   ListOptions
}

// LSubCommand is the deprecated LSUB.
type LSubCommand struct {
	Reference string
	Pattern   string
}

// StatusCommand is STATUS.
type StatusCommand struct {
	Mailbox string
	Options StatusOptions
}

// StatusOptions specifies which mailbox status items to request.
type StatusOptions struct {
	NumMessages   bool
	UIDNext       bool
	UIDValidity   bool
	NumUnseen     bool
	NumRecent     bool
	Size          bool
	AppendLimit   bool
	HighestModSeq bool
	MailboxID     bool
}

// StatusData represents the data returned by a STATUS command.
type StatusData struct {
	Mailbox       string
	NumMessages   *uint32
	UIDNext       *uint32
	UIDValidity   *uint32
	NumUnseen     *uint32
	NumRecent     *uint32
	Size          *int64
	AppendLimit   *uint32
	HighestModSeq *uint64
	MailboxID     string
}

// IDCommand is ID (RFC 2971).
type IDCommand struct{ Params IDData }

// NamespaceCommand is NAMESPACE.
type NamespaceCommand struct{}

// EnableCommand is ENABLE (RFC 5161).
type EnableCommand struct{ Capabilities []Cap }

// ResetKeyCommand is RESETKEY (RFC 4467 URLAUTH).
type ResetKeyCommand struct {
	Mailbox    string
	Mechanisms []string
}

// GetMetadataCommand is GETMETADATA (RFC 5464).
type GetMetadataCommand struct {
	Mailbox string
	Entries []string
	Options MetadataOptions
}

// SetMetadataCommand is SETMETADATA.
type SetMetadataCommand struct {
	Mailbox string
	Entries []MetadataEntry
}

// GetQuotaCommand is GETQUOTA (RFC 2087).
type GetQuotaCommand struct{ Root string }

// GetQuotaRootCommand is GETQUOTAROOT.
type GetQuotaRootCommand struct{ Mailbox string }

// SetQuotaCommand is SETQUOTA.
type SetQuotaCommand struct {
	Root      string
	Resources []QuotaResourceData
}

// SetACLCommand is SETACL (RFC 4314).
type SetACLCommand struct {
	Mailbox    string
	Identifier string
	Rights     ACLRights // prefixed with +/- for relative changes
}

// DeleteACLCommand is DELETEACL.
type DeleteACLCommand struct {
	Mailbox    string
	Identifier string
}

// GetACLCommand is GETACL.
type GetACLCommand struct{ Mailbox string }

// ListRightsCommand is LISTRIGHTS.
type ListRightsCommand struct {
	Mailbox    string
	Identifier string
}

// MyRightsCommand is MYRIGHTS.
type MyRightsCommand struct{ Mailbox string }

// SortCommand is SORT/UID SORT (RFC 5256).
type SortCommand struct {
	UID     bool
	Key     SearchKey
	Sort    []SortCriterion
	Charset string
}

// ThreadCommand is THREAD/UID THREAD (RFC 5256).
type ThreadCommand struct {
	UID       bool
	Algorithm ThreadAlgorithm
	Key       SearchKey
	Charset   string
}

// CapabilityCommand is CAPABILITY.
type CapabilityCommand struct{}

// CustomCommand is an opaque, unrecognized command — e.g. a vendor
// extension the encoder doesn't model as a typed node. The pipelining
// governor treats it conservatively as a Barrier requiring every other
// requirement.
type CustomCommand struct {
	Name string
	Args []string
}

func (*MailboxSelectionCommand) isCommandBody() {}
func (*FetchCommand) isCommandBody()            {}
func (*StoreCommand) isCommandBody()            {}
func (*SearchCommand) isCommandBody()           {}
func (*CopyCommand) isCommandBody()             {}
func (*MoveCommand) isCommandBody()             {}
func (*IdleCommand) isCommandBody()             {}
func (*AuthenticateCommand) isCommandBody()     {}
func (*StartTLSCommand) isCommandBody()         {}
func (*LogoutCommand) isCommandBody()           {}
func (*CompressCommand) isCommandBody()         {}
func (*NoopCommand) isCommandBody()             {}
func (*CheckCommand) isCommandBody()            {}
func (*ExpungeCommand) isCommandBody()          {}
func (*AppendCommand) isCommandBody()           {}
func (*CreateCommand) isCommandBody()           {}
func (*DeleteCommand) isCommandBody()           {}
func (*RenameCommand) isCommandBody()           {}
func (*SubscribeCommand) isCommandBody()        {}
func (*UnsubscribeCommand) isCommandBody()      {}
func (*ListCommand) isCommandBody()             {}
func (*LSubCommand) isCommandBody()             {}
func (*StatusCommand) isCommandBody()           {}
func (*IDCommand) isCommandBody()               {}
func (*NamespaceCommand) isCommandBody()        {}
func (*EnableCommand) isCommandBody()           {}
func (*ResetKeyCommand) isCommandBody()         {}
func (*GetMetadataCommand) isCommandBody()      {}
func (*SetMetadataCommand) isCommandBody()      {}
func (*GetQuotaCommand) isCommandBody()         {}
func (*GetQuotaRootCommand) isCommandBody()     {}
func (*SetQuotaCommand) isCommandBody()         {}
func (*SetACLCommand) isCommandBody()           {}
func (*DeleteACLCommand) isCommandBody()        {}
func (*GetACLCommand) isCommandBody()           {}
func (*ListRightsCommand) isCommandBody()       {}
func (*MyRightsCommand) isCommandBody()         {}
func (*SortCommand) isCommandBody()             {}
func (*ThreadCommand) isCommandBody()           {}
func (*CapabilityCommand) isCommandBody()       {}
func (*CustomCommand) isCommandBody()           {}

// Command verb names, used by the grammar encoder and for diagnostics.
const (
	CommandCapability = "CAPABILITY"
	CommandNoop       = "NOOP"
	CommandLogout     = "LOGOUT"

	CommandStartTLS     = "STARTTLS"
	CommandAuthenticate = "AUTHENTICATE"

	CommandEnable      = "ENABLE"
	CommandSelect      = "SELECT"
	CommandExamine     = "EXAMINE"
	CommandCreate      = "CREATE"
	CommandDelete      = "DELETE"
	CommandRename      = "RENAME"
	CommandSubscribe   = "SUBSCRIBE"
	CommandUnsubscribe = "UNSUBSCRIBE"
	CommandList        = "LIST"
	CommandLsub        = "LSUB"
	CommandNamespace   = "NAMESPACE"
	CommandStatus      = "STATUS"
	CommandAppend      = "APPEND"
	CommandIdle        = "IDLE"

	CommandClose    = "CLOSE"
	CommandUnselect = "UNSELECT"
	CommandExpunge  = "EXPUNGE"
	CommandSearch   = "SEARCH"
	CommandFetch    = "FETCH"
	CommandStore    = "STORE"
	CommandCopy     = "COPY"
	CommandMove     = "MOVE"
	CommandSort     = "SORT"
	CommandThread   = "THREAD"
	CommandUID      = "UID"

	CommandCompress       = "COMPRESS"
	CommandGetQuota       = "GETQUOTA"
	CommandGetQuotaRoot   = "GETQUOTAROOT"
	CommandSetQuota       = "SETQUOTA"
	CommandSetACL         = "SETACL"
	CommandDeleteACL      = "DELETEACL"
	CommandGetACL         = "GETACL"
	CommandListRights     = "LISTRIGHTS"
	CommandMyRights       = "MYRIGHTS"
	CommandSetMetadata    = "SETMETADATA"
	CommandGetMetadata    = "GETMETADATA"
	CommandResetKey       = "RESETKEY"
	CommandUnauthenticate = "UNAUTHENTICATE"
)
