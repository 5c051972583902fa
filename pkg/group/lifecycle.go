package group

// OnSessionClose handles a normal session close: every member owned by
// the session is removed.
func (sm *StateMachine) OnSessionClose(s Session, ctx Context) {
	sm.sessionGone(s, ctx)
}

// OnSessionExpire handles a session expiry. Expire behaves identically
// to close: a member owned by a session that will never come back is
// removed exactly like one whose session explicitly closed.
func (sm *StateMachine) OnSessionExpire(s Session, ctx Context) {
	sm.sessionGone(s, ctx)
}

// sessionGone is the shared close/expire path. Every departing member is
// fully removed from the directory and property store before any
// re-election is attempted, so electLeader never observes
// partially-removed state.
func (sm *StateMachine) sessionGone(s Session, ctx Context) {
	sm.listeners.remove(s.ID())

	var left []uint64
	for _, id := range sm.directory.idsSorted() {
		c, ok := sm.directory.get(id)
		if ok && c.Session().ID() == s.ID() {
			left = append(left, id)
		}
	}
	if len(left) == 0 {
		return
	}

	leftSet := make(map[uint64]bool, len(left))
	joinCommits := make(map[uint64]Commit, len(left))
	for _, id := range left {
		c, ok := sm.directory.remove(id)
		if !ok {
			continue
		}
		sm.properties.removeMember(sm.reg, id)
		joinCommits[id] = c
		leftSet[id] = true
	}

	if leaderID, ok := sm.elect.Leader(); ok && leftSet[leaderID] {
		sm.elect.resignLeader(false, sm.directory, sm.listeners)
		sm.elect.incrementTerm(ctx.Index(), sm.listeners)
		sm.elect.electLeader(sm.directory, sm.listeners)
	}

	for _, id := range left {
		sm.listeners.publish(EventLeave, id)
	}
	for _, id := range left {
		if c, ok := joinCommits[id]; ok {
			sm.reg.release(c)
		}
	}
}
