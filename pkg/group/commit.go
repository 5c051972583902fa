package group

import "sync"

// Commit is a single committed log entry: an operation payload plus its
// total-order index and the session that submitted it. The log runtime
// owns the commit until Close is called; Close must be idempotent on the
// runtime's side.
type Commit interface {
	// Index is the monotonic, unique log index of this entry.
	Index() uint64
	// Session is the session that submitted the operation.
	Session() Session
	// Operation is the decoded command payload.
	Operation() Op
	// Close releases the commit back to the log runtime. Idempotent.
	Close()
}

// commitRegistry tracks every commit retained by the state machine, as
// opposed to closed immediately after its handler runs, and ensures no
// retained commit is ever closed twice. Every index in memberDirectory
// and propertyStore is also a key here while the commit it backs is
// alive.
//
// This is not a reference count in the "N owners" sense. Exactly one
// index owns each live commit at a time, so it is a single-owner release
// tracker with an optional debug assertion.
type commitRegistry struct {
	mu     sync.Mutex
	debug  bool
	closed map[uint64]bool
	live   map[uint64]Commit
}

func newCommitRegistry(debug bool) *commitRegistry {
	return &commitRegistry{
		debug:  debug,
		closed: make(map[uint64]bool),
		live:   make(map[uint64]Commit),
	}
}

// retain registers c as backing persistent state. Must be paired with
// exactly one later call to release (directly, or via replace).
func (r *commitRegistry) retain(c Commit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[c.Index()] = c
}

// release closes c and removes it from the live set. Safe to call on a
// commit that was never retained (the common case: a commit that is
// closed immediately by its handler without ever backing stored state).
func (r *commitRegistry) release(c Commit) {
	if c == nil {
		return
	}
	r.mu.Lock()
	idx := c.Index()
	if r.debug && r.closed[idx] {
		r.mu.Unlock()
		panic("group: commit closed twice")
	}
	r.closed[idx] = true
	delete(r.live, idx)
	r.mu.Unlock()
	c.Close()
}

// replace closes the previously retained commit at the same key, if any,
// and retains the new one in its place. The displaced owner must close
// whenever one index supersedes another, for example a SetProperty
// overwriting an older value.
func (r *commitRegistry) replace(prev Commit, next Commit) {
	if prev != nil {
		r.release(prev)
	}
	r.retain(next)
}

// liveCount reports how many commits are currently retained. Nothing in
// the module calls it at present.
func (r *commitRegistry) liveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
