package group

// Executor is the logical-time delay primitive the Schedule command
// hands a callback to. Implementations must invoke fn exactly once,
// later, on the state machine's own apply thread, as an ordinary
// transition and never concurrently with it. Wall-clock time must not
// influence when fn runs relative to other committed entries; only
// logical/log-time order does.
type Executor interface {
	Schedule(delayMS uint64, fn func()) error
}
