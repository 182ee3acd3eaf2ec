package pipeline

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"

	imap "github.com/imapwire/codec"
)

// Scheduler is a reference consumer of CanStart: a minimal in-memory
// tracker of in-flight commands that a transport driver can ask before
// writing a new command's bytes. It is demo/integration-test tooling,
// not part of the pure governor — CanStart/Requirements/Behaviors work
// without it.
//
// Scheduling decisions are published on an event bus rather than
// returned solely through TryStart, so a host application can observe
// them (e.g. for logging or metrics) without the governor taking a
// transport dependency.
const (
	EventCommandStarted   = "pipeline:command_started"
	EventCommandCompleted = "pipeline:command_completed"
	EventCommandRejected  = "pipeline:command_rejected"
)

type inFlight struct {
	tag          string
	requirements RequirementSet
}

// Scheduler tracks in-flight commands and decides whether a candidate
// may start alongside them.
type Scheduler struct {
	mu      sync.Mutex
	running map[string]inFlight
	bus     *evbus.EventBus
	log     *logrus.Logger
}

// NewScheduler creates a Scheduler. log may be nil, in which case a
// default logrus.Logger is used.
func NewScheduler(log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		running: make(map[string]inFlight),
		bus:     evbus.New(),
		log:     log,
	}
}

// Subscribe registers fn for one of the EventCommand* topics.
func (s *Scheduler) Subscribe(topic string, fn interface{}) error {
	return s.bus.Subscribe(topic, fn)
}

// TryStart decides whether cmd may start given every command currently
// tracked as running, and if so records it under tag. Callers that
// receive false must not write cmd's bytes onto the wire yet.
func (s *Scheduler) TryStart(tag string, cmd imap.CommandBody) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := Behaviors(cmd)
	for _, r := range s.running {
		if !CanStart(candidate, r.requirements) {
			s.log.WithFields(logrus.Fields{"tag": tag, "blocked_by": r.tag}).
				Debug("pipeline: command rejected")
			s.bus.Publish(EventCommandRejected, tag, r.tag)
			return false
		}
	}

	s.running[tag] = inFlight{tag: tag, requirements: Requirements(cmd)}
	s.log.WithField("tag", tag).Debug("pipeline: command started")
	s.bus.Publish(EventCommandStarted, tag)
	return true
}

// Complete marks tag's command as finished, freeing the requirements it
// held against subsequent candidates.
func (s *Scheduler) Complete(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.running[tag]; !ok {
		return
	}
	delete(s.running, tag)
	s.log.WithField("tag", tag).Debug("pipeline: command completed")
	s.bus.Publish(EventCommandCompleted, tag)
}

// Running returns the tags of every command currently tracked as
// in-flight, for diagnostics.
func (s *Scheduler) Running() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := make([]string, 0, len(s.running))
	for tag := range s.running {
		tags = append(tags, tag)
	}
	return tags
}
