package group

// Event names published to listener sessions.
const (
	EventJoin    = "join"
	EventLeave   = "leave"
	EventElect   = "elect"
	EventResign  = "resign"
	EventTerm    = "term"
	EventMessage = "message"
	EventExecute = "execute"
)

// MessageEvent is the payload of an EventMessage publication (Send).
type MessageEvent struct {
	Sender  uint64
	Topic   string
	Payload any
}

// ExecuteEvent is the payload of an EventExecute publication (Execute and
// fired Schedule callbacks).
type ExecuteEvent struct {
	Callback any
}
