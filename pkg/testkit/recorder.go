package testkit

import (
	"sync"

	"github.com/groupsm/membergroup/pkg/group"
)

// RecordedEvent is one event delivered to a Recorder session.
type RecordedEvent struct {
	Event   string
	Payload any
}

// Recorder is a group.Session that captures every event published to it,
// in delivery order, for assertions in tests. It never closes itself;
// tests drive Close/Expire explicitly.
type Recorder struct {
	mu     sync.Mutex
	id     uint64
	state  group.SessionState
	events []RecordedEvent
}

// NewRecorder creates an OPEN recorder session with the given id.
func NewRecorder(id uint64) *Recorder {
	return &Recorder{id: id, state: group.SessionOpen}
}

func (r *Recorder) ID() uint64 { return r.id }

func (r *Recorder) State() group.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Recorder) Publish(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{Event: event, Payload: payload})
}

func (r *Recorder) Close()  { r.setState(group.SessionClosed) }
func (r *Recorder) Expire() { r.setState(group.SessionExpired) }

func (r *Recorder) setState(s group.SessionState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

// Events returns a snapshot of every event recorded so far.
func (r *Recorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// EventNames returns just the Event field of each recorded event, the
// shape most assertions in practice want to compare against.
func (r *Recorder) EventNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Event
	}
	return names
}
