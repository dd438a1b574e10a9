package message

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/simcesplatform/domain-messages/pkg/timestamp"
)

// Generator hands out message identifiers and creation timestamps for one
// producing component. Identifiers are "<source>-<n>" with n starting at 1,
// matching the platform's id convention, and timestamps come from a
// strictly increasing source so no two messages from the same producer
// share a creation time.
//
// A Generator is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	source string
	seq    uint64
	clock  *timestamp.Source
}

// NewMessageID returns a random message identifier for one-off producers
// that do not keep a Generator.
func NewMessageID() string {
	return uuid.New().String()
}

// NewGenerator creates a Generator for the given source process id. An
// empty id gets a random UUID so ids stay unique even for anonymous
// producers.
func NewGenerator(sourceProcessID string) *Generator {
	if sourceProcessID == "" {
		sourceProcessID = uuid.New().String()
	}
	return &Generator{
		source: sourceProcessID,
		clock:  timestamp.NewSource(),
	}
}

// SourceProcessID returns the producer identifier ids are derived from.
func (g *Generator) SourceProcessID() string {
	return g.source
}

// NextMessageID returns the next message identifier in sequence.
func (g *Generator) NextMessageID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	return fmt.Sprintf("%s-%d", g.source, g.seq)
}

// NextTimestamp returns a creation timestamp strictly after any timestamp
// this generator has issued before.
func (g *Generator) NextTimestamp() string {
	return g.clock.Next()
}

// Stamp returns a copy of values with MessageId, Timestamp and
// SourceProcessId filled in from the generator where absent. Values the
// caller already set are kept, so replaying a recorded field map stays
// deterministic.
func (g *Generator) Stamp(values map[string]any) map[string]any {
	stamped := make(map[string]any, len(values)+3)
	for name, v := range values {
		stamped[name] = v
	}
	if _, ok := stamped[FieldMessageID]; !ok {
		stamped[FieldMessageID] = g.NextMessageID()
	}
	if _, ok := stamped[FieldTimestamp]; !ok {
		stamped[FieldTimestamp] = g.NextTimestamp()
	}
	if _, ok := stamped[FieldSourceProcessID]; !ok {
		stamped[FieldSourceProcessID] = g.source
	}
	return stamped
}
