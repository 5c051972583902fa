package group

// Context supplies the current transition's log index for the two
// lifecycle entry points that have no Commit of their own. Session close
// and session expire still need the applying index to run incrementTerm,
// but unlike Apply there is no committed operation payload to carry it.
type Context interface {
	Index() uint64
}

// IndexContext is the trivial Context implementation: a bare index.
type IndexContext uint64

func (c IndexContext) Index() uint64 { return uint64(c) }
