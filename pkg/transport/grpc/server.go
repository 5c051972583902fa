package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"

	grpc "google.golang.org/grpc"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"

	"go.uber.org/zap"

	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/logfeed"
)

// Server exposes a group.StateMachine over gRPC: every Submit call
// commits one operation through the journal and applies it, exactly the
// way an in-process caller would, just arriving over the network instead.
type Server struct {
	UnimplementedGroupTransportServer

	mu       sync.RWMutex
	addr     string
	sm       *group.StateMachine
	journal  *logfeed.Journal
	sessions map[uint64]*logfeed.Session
	server   *grpc.Server
	listener net.Listener
	logger   *zap.SugaredLogger
}

// NewServer wires a Server to an already-constructed state machine and
// journal. Sessions it creates for Submit calls have no event sink, so
// events published to them are dropped; this package only speaks
// request/response.
func NewServer(addr string, sm *group.StateMachine, journal *logfeed.Journal, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		addr:     addr,
		sm:       sm,
		journal:  journal,
		sessions: make(map[uint64]*logfeed.Session),
		logger:   logger,
	}
}

// Start begins serving on addr in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	s.server = grpc.NewServer()
	RegisterGroupTransportServer(s.server, s)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			s.logger.Errorw("gRPC server stopped", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		s.server.GracefulStop()
	}
	if s.listener != nil {
		s.listener.Close()
	}
}

// sessionFor returns the logfeed.Session backing id, creating an OPEN one
// on first use with the given sink. The sink of an existing session is not
// changed; a nil sink means its events are delivered nowhere.
func (s *Server) sessionFor(id uint64, sink func(event string, payload any)) *logfeed.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := logfeed.NewSession(id, sink, s.logger)
	s.sessions[id] = sess
	return sess
}

// CloseSession marks a client's session closed and runs the state
// machine's session-close lifecycle against it.
func (s *Server) CloseSession(id uint64) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	sess.Close()
	s.sm.OnSessionClose(sess, s.journal.Advance())
}

// Submit implements GroupTransportServer: decode the request envelope,
// commit it against the journal, apply it, and encode the result back.
func (s *Server) Submit(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	var req requestEnvelope
	if err := decodeGob(in.GetValue(), &req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	op := req.toOp()
	if op == nil {
		return nil, fmt.Errorf("unrecognized operation kind %v", req.Kind)
	}

	sess := s.sessionFor(req.SessionID, nil)
	commit := s.journal.Commit(sess, op)
	result, err := s.sm.Apply(commit)

	resp := responseEnvelope{Result: result}
	if err != nil {
		resp.ErrMsg = err.Error()
	}

	out, encErr := encodeGob(resp)
	if encErr != nil {
		return nil, fmt.Errorf("encode response: %w", encErr)
	}
	return wrapperspb.Bytes(out), nil
}
