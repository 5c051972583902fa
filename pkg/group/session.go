package group

import "sort"

// SessionState is the lifecycle state of a session as observed by the
// state machine. The log runtime is the source of truth; the state
// machine only ever reads it.
type SessionState int

const (
	SessionOpen SessionState = iota
	SessionClosed
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionClosed:
		return "closed"
	case SessionExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Session is a client connection to the group, as exposed by the log
// runtime. ID must be stable and totally ordered: the listener set
// iterates sessions in ascending ID order to make event delivery
// deterministic across replicas.
type Session interface {
	ID() uint64
	State() SessionState
	Publish(event string, payload any)
}

// listenerSet tracks every session that has executed Listen, in the
// order Listen was first applied for it. Listen is idempotent:
// re-listening on an already-listening session is a no-op and does not
// move the session to the back.
type listenerSet struct {
	order []uint64
	byID  map[uint64]Session
}

func newListenerSet() *listenerSet {
	return &listenerSet{byID: make(map[uint64]Session)}
}

func (l *listenerSet) add(s Session) {
	if _, ok := l.byID[s.ID()]; ok {
		l.byID[s.ID()] = s
		return
	}
	l.byID[s.ID()] = s
	l.order = append(l.order, s.ID())
}

func (l *listenerSet) remove(id uint64) {
	if _, ok := l.byID[id]; !ok {
		return
	}
	delete(l.byID, id)
	for i, sid := range l.order {
		if sid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// snapshotSorted returns the currently-registered sessions sorted by
// ascending ID. Sorting the live set rather than relying on insertion
// order keeps iteration stable even if a caller feeds listeners out of
// ID order.
func (l *listenerSet) snapshotSorted() []Session {
	ids := make([]uint64, 0, len(l.byID))
	for id := range l.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	sessions := make([]Session, len(ids))
	for i, id := range ids {
		sessions[i] = l.byID[id]
	}
	return sessions
}

func (l *listenerSet) get(id uint64) (Session, bool) {
	s, ok := l.byID[id]
	return s, ok
}

// publish delivers event/payload to every listener currently open, in
// ascending session-id order.
func (l *listenerSet) publish(event string, payload any) {
	for _, s := range l.snapshotSorted() {
		if s.State() == SessionOpen {
			s.Publish(event, payload)
		}
	}
}
