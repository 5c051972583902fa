// Package group implements the deterministic state machine behind a single
// replicated membership group: member join/leave, leader election,
// per-member properties, session-scoped event delivery, and scheduled
// callbacks.
//
// A StateMachine is driven exclusively by Apply, OnSessionClose,
// OnSessionExpire and Delete, invoked once per committed log entry in
// strict log order by an external, out-of-process log runtime. It takes no
// lock around a transition (the commit registry's mutex only guards its own
// maps), performs no I/O, and never blocks: every method call is a single,
// synchronous transition.
package group
