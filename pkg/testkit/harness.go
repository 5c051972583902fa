package testkit

import (
	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/logfeed"
)

// Harness bundles a journal, executor and state machine the way a real
// log runtime would drive them, so tests can submit commands and advance
// logical time without wiring the three together by hand each time.
type Harness struct {
	Journal  *logfeed.Journal
	Executor *logfeed.LogicalExecutor
	SM       *group.StateMachine
}

// New creates a fresh harness with debug-mode commit double-close
// assertions enabled, matching the conservative posture tests want.
func New() *Harness {
	journal := logfeed.NewJournal(nil)
	executor := logfeed.NewLogicalExecutor(nil)
	sm := group.New(group.Options{Executor: executor, Debug: true})
	return &Harness{Journal: journal, Executor: executor, SM: sm}
}

// Apply commits op under session and applies it, returning whatever
// StateMachine.Apply returns.
func (h *Harness) Apply(session group.Session, op group.Op) (any, error) {
	c := h.Journal.Commit(session, op)
	return h.SM.Apply(c)
}

// Join commits a Join for session and returns the assigned member id.
func (h *Harness) Join(session group.Session) uint64 {
	id, _ := h.Apply(session, group.JoinOp{})
	return id.(uint64)
}

// CloseSession runs the session-close lifecycle for session.
func (h *Harness) CloseSession(session interface {
	group.Session
	Close()
}) {
	session.Close()
	h.SM.OnSessionClose(session, h.Journal.Advance())
}

// ExpireSession runs the session-expire lifecycle for session.
func (h *Harness) ExpireSession(session interface {
	group.Session
	Expire()
}) {
	session.Expire()
	h.SM.OnSessionExpire(session, h.Journal.Advance())
}
