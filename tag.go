package imap

import (
	"strings"

	"github.com/google/uuid"
)

// NewTag generates a command tag suitable for Command.Tag. Unlike a
// stateful per-connection counter, it needs no shared state between
// callers — useful for a codec used concurrently from multiple
// goroutines or processes (e.g. the reference scheduler in package
// pipeline, which correlates log lines across commands by tag).
//
// The result is a short uppercase alphanumeric atom (RFC 3501 tags
// exclude '+' and whitespace), derived from a UUIDv4 so collisions
// across independent callers are astronomically unlikely without
// requiring coordination.
func NewTag() string {
	id := uuid.New()
	return "A" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
