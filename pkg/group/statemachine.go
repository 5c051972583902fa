package group

import "fmt"

// Options configure a StateMachine at construction time.
type Options struct {
	// Executor backs the Schedule command's logical delay. When nil, New
	// uses a default that runs each callback immediately.
	Executor Executor
	// Debug, when true, makes the internal commit registry panic on a
	// double-close instead of silently ignoring it.
	Debug bool
}

// StateMachine is the single transition function invoked once per
// committed log entry, plus the indices (commit registry, member
// directory, property store, listener set, elector) that back it.
//
// A StateMachine is not safe for concurrent use. The log runtime invokes
// it from exactly one goroutine at a time, so it holds no lock of its own.
type StateMachine struct {
	reg        *commitRegistry
	directory  *memberDirectory
	properties *propertyStore
	listeners  *listenerSet
	elect      elector
	executor   Executor
	deleted    bool
}

// New creates an empty group state machine.
func New(opts Options) *StateMachine {
	if opts.Executor == nil {
		opts.Executor = noopExecutor{}
	}
	return &StateMachine{
		reg:        newCommitRegistry(opts.Debug),
		directory:  newMemberDirectory(),
		properties: newPropertyStore(),
		listeners:  newListenerSet(),
		executor:   opts.Executor,
	}
}

// Leader returns the current leader member-id, if any.
func (sm *StateMachine) Leader() (uint64, bool) { return sm.elect.Leader() }

// Term returns the current term.
func (sm *StateMachine) Term() uint64 { return sm.elect.Term() }

// Members returns every current member-id in ascending order.
func (sm *StateMachine) Members() []uint64 { return sm.directory.idsSorted() }

// Property returns the stored value for (member, name), or nil.
func (sm *StateMachine) Property(member uint64, name string) any {
	return sm.properties.get(member, name)
}

// Apply applies a single committed entry, dispatching on its operation
// kind. It is invoked once per committed log entry, in strict log order.
func (sm *StateMachine) Apply(c Commit) (any, error) {
	if sm.deleted {
		c.Close()
		return nil, fmt.Errorf("%w: apply after delete", ErrInternalFailure)
	}

	switch op := c.Operation().(type) {
	case JoinOp:
		return sm.applyJoin(c)
	case LeaveOp:
		return nil, sm.applyLeave(c, op)
	case ListenOp:
		return sm.applyListen(c)
	case ResignOp:
		return nil, sm.applyResign(c, op)
	case SetPropertyOp:
		return nil, sm.applySetProperty(c, op)
	case GetPropertyOp:
		return sm.applyGetProperty(c, op)
	case RemovePropertyOp:
		return nil, sm.applyRemoveProperty(c, op)
	case SendOp:
		return nil, sm.applySend(c, op)
	case ScheduleOp:
		return nil, sm.applySchedule(c, op)
	case ExecuteOp:
		return nil, sm.applyExecute(c, op)
	default:
		c.Close()
		return nil, fmt.Errorf("%w: unrecognized operation %T", ErrInternalFailure, op)
	}
}

// applyJoin admits a new member, publishes the join, and runs the
// startup election the first time a member appears.
func (sm *StateMachine) applyJoin(c Commit) (uint64, error) {
	id := c.Index()
	sm.directory.insert(id, c)
	sm.reg.retain(c)

	sm.listeners.publish(EventJoin, id)

	if sm.elect.Term() == 0 {
		sm.elect.incrementTerm(c.Index(), sm.listeners)
	}
	if _, ok := sm.elect.Leader(); !ok {
		sm.elect.electLeader(sm.directory, sm.listeners)
	}
	return id, nil
}

// applyLeave removes a member and its properties, re-electing a leader
// if the departing member held the role.
func (sm *StateMachine) applyLeave(c Commit, op LeaveOp) error {
	defer sm.reg.release(c)

	joinCommit, ok := sm.directory.remove(op.Member)
	if !ok {
		return nil
	}
	sm.properties.removeMember(sm.reg, op.Member)

	if sm.elect.isLeader(op.Member) {
		sm.elect.resignLeader(false, sm.directory, sm.listeners)
		sm.elect.incrementTerm(c.Index(), sm.listeners)
		sm.elect.electLeader(sm.directory, sm.listeners)
	}

	sm.listeners.publish(EventLeave, op.Member)
	sm.reg.release(joinCommit)
	return nil
}

// applyListen registers the submitting session as a listener and returns
// a snapshot of current member ids.
func (sm *StateMachine) applyListen(c Commit) ([]uint64, error) {
	defer c.Close()
	sm.listeners.add(c.Session())
	return sm.directory.idsSorted(), nil
}

// applyResign steps the current leader down and elects a replacement.
// Resign on a member that is not the current leader is a no-op that
// still closes the commit.
func (sm *StateMachine) applyResign(c Commit, op ResignOp) error {
	defer c.Close()
	if !sm.elect.isLeader(op.Member) {
		return nil
	}
	sm.elect.resignLeader(true, sm.directory, sm.listeners)
	sm.elect.incrementTerm(c.Index(), sm.listeners)
	sm.elect.electLeader(sm.directory, sm.listeners)
	return nil
}

// applySetProperty stores a value for (member, name), displacing and
// closing whatever commit previously backed it.
func (sm *StateMachine) applySetProperty(c Commit, op SetPropertyOp) error {
	if !sm.directory.has(op.Member) {
		sm.reg.release(c)
		return nil
	}
	sm.properties.set(sm.reg, op.Member, op.Name, c)
	return nil
}

// applyGetProperty returns the stored value for (member, name), or nil.
func (sm *StateMachine) applyGetProperty(c Commit, op GetPropertyOp) (any, error) {
	defer c.Close()
	return sm.properties.get(op.Member, op.Name), nil
}

// applyRemoveProperty clears a stored property value, if one exists.
func (sm *StateMachine) applyRemoveProperty(c Commit, op RemovePropertyOp) error {
	defer c.Close()
	sm.properties.remove(sm.reg, op.Member, op.Name)
	return nil
}

// applySend delivers a message event to the target member's session.
func (sm *StateMachine) applySend(c Commit, op SendOp) error {
	defer c.Close()
	target, ok := sm.directory.get(op.Target)
	if !ok {
		return ErrUnknownMember
	}
	target.Session().Publish(EventMessage, MessageEvent{
		Sender:  c.Session().ID(),
		Topic:   op.Topic,
		Payload: op.Message,
	})
	return nil
}

// applyExecute delivers an execute event to the target member's session.
func (sm *StateMachine) applyExecute(c Commit, op ExecuteOp) error {
	defer c.Close()
	target, ok := sm.directory.get(op.Member)
	if !ok {
		return ErrUnknownMember
	}
	target.Session().Publish(EventExecute, ExecuteEvent{Callback: op.Callback})
	return nil
}

// applySchedule registers a delayed task with the logical executor. Its
// callback re-checks membership when it fires, since the member may have
// left in the meantime, and closes the Schedule commit itself exactly
// once, whether or not the member is still present.
func (sm *StateMachine) applySchedule(c Commit, op ScheduleOp) error {
	if !sm.directory.has(op.Member) {
		sm.reg.release(c)
		return ErrUnknownMember
	}

	member := op.Member
	callback := op.Callback
	err := sm.executor.Schedule(op.DelayMS, func() {
		defer sm.reg.release(c)
		target, ok := sm.directory.get(member)
		if !ok {
			return
		}
		target.Session().Publish(EventExecute, ExecuteEvent{Callback: callback})
	})
	if err != nil {
		sm.reg.release(c)
		return fmt.Errorf("%w: %v", ErrScheduleRejected, err)
	}
	return nil
}

// Delete closes and drops every retained Join and SetProperty commit and
// clears all indices. No further commands may be applied afterward.
func (sm *StateMachine) Delete() {
	for _, id := range sm.directory.idsSorted() {
		if c, ok := sm.directory.remove(id); ok {
			sm.properties.removeMember(sm.reg, id)
			sm.reg.release(c)
		}
	}
	sm.listeners = newListenerSet()
	sm.elect = elector{}
	sm.deleted = true
}

// noopExecutor is the default Executor when none is supplied: it runs the
// callback immediately instead of deferring it. Fine for callers that
// never issue Schedule commands; anyone exercising delayed callbacks
// should supply a real logical-time Executor (see pkg/logfeed).
type noopExecutor struct{}

func (noopExecutor) Schedule(_ uint64, fn func()) error {
	fn()
	return nil
}
