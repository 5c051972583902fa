package logfeed

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/groupsm/membergroup/pkg/group"
)

// Session is a concrete group.Session: the listener end of a single
// client's connection to the group, identified by a caller-chosen session
// id. That id is separate from the member-ids of the Joins the session
// commits, which are the Join commits' log indices.
type Session struct {
	mu     sync.Mutex
	id     uint64
	state  group.SessionState
	sink   func(event string, payload any)
	logger *zap.SugaredLogger
	tag    string
}

// NewSession creates an OPEN session bound to id, delivering published
// events to sink. sink is called synchronously from inside Apply, so it
// must not block or re-enter the state machine.
func NewSession(id uint64, sink func(event string, payload any), logger *zap.SugaredLogger) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{
		id:     id,
		state:  group.SessionOpen,
		sink:   sink,
		logger: logger,
		tag:    uuid.NewString(),
	}
}

func (s *Session) ID() uint64 { return s.id }

func (s *Session) State() group.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Publish delivers event to the session's sink. listenerSet already
// filters to OPEN sessions before calling this, so Session itself does
// not gate delivery on its own state.
func (s *Session) Publish(event string, payload any) {
	if s.sink == nil {
		return
	}
	s.sink(event, payload)
}

// Close transitions the session to CLOSED. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != group.SessionOpen {
		return
	}
	s.state = group.SessionClosed
	s.logger.Debugw("session closed", "session", s.id, "tag", s.tag)
}

// Expire transitions the session to EXPIRED. Idempotent.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != group.SessionOpen {
		return
	}
	s.state = group.SessionExpired
	s.logger.Debugw("session expired", "session", s.id, "tag", s.tag)
}
