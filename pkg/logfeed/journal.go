// Package logfeed is a minimal, in-memory stand-in for the replicated
// log runtime that pkg/group is designed to be driven by. It is not a
// consensus implementation; it only provides the monotonic index
// assignment, session bookkeeping and logical-time scheduling a
// single-process demo or test needs to exercise pkg/group the way a
// real log runtime would.
package logfeed

import (
	"sync"

	"go.uber.org/zap"

	"github.com/groupsm/membergroup/pkg/group"
)

// commitEntry is logfeed's group.Commit implementation: an operation
// payload stamped with a monotonic index and an owning session, adapted
// from the append-only Entry{Term,Index,Command} shape of a write-ahead
// log, minus everything disk-related such as framing, CRCs, and
// recovery.
type commitEntry struct {
	index   uint64
	session group.Session
	op      group.Op

	mu     sync.Mutex
	closed bool
}

func (c *commitEntry) Index() uint64         { return c.index }
func (c *commitEntry) Session() group.Session { return c.session }
func (c *commitEntry) Operation() group.Op    { return c.op }

// Close is idempotent: the StateMachine calls it either through its commit
// registry (retained and schedule commits) or directly from a handler
// (commits that back no stored state), so Close itself only marks the
// entry closed and tolerates being invoked twice on the same commit.
func (c *commitEntry) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Journal assigns monotonically increasing indices to commits and to the
// pseudo-transitions (session close/expire) that need one for term
// assignment but carry no operation payload.
type Journal struct {
	mu        sync.Mutex
	nextIndex uint64
	logger    *zap.SugaredLogger
}

// NewJournal creates an empty journal. logger may be nil.
func NewJournal(logger *zap.SugaredLogger) *Journal {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Journal{logger: logger}
}

// Commit assigns the next index to (session, op) and returns a group.Commit
// ready to hand to StateMachine.Apply.
func (j *Journal) Commit(session group.Session, op group.Op) group.Commit {
	j.mu.Lock()
	j.nextIndex++
	idx := j.nextIndex
	j.mu.Unlock()
	j.logger.Debugw("committing operation", "index", idx, "kind", op.Kind().String())
	return &commitEntry{index: idx, session: session, op: op}
}

// Advance consumes the next index for a transition with no operation
// payload (a session close or expire) and returns it as a group.Context.
func (j *Journal) Advance() group.Context {
	j.mu.Lock()
	j.nextIndex++
	idx := j.nextIndex
	j.mu.Unlock()
	j.logger.Debugw("advancing log index", "index", idx)
	return group.IndexContext(idx)
}
