package group

import "sort"

// memberDirectory maps member-id to its Join commit, plus the FIFO
// candidate queue used by the elector. Member-id equals the log index
// of the Join commit that created it; candidate-queue membership is
// always a subset of the directory minus the current leader.
type memberDirectory struct {
	byID       map[uint64]Commit
	candidates []uint64
}

func newMemberDirectory() *memberDirectory {
	return &memberDirectory{byID: make(map[uint64]Commit)}
}

func (d *memberDirectory) has(id uint64) bool {
	_, ok := d.byID[id]
	return ok
}

func (d *memberDirectory) get(id uint64) (Commit, bool) {
	c, ok := d.byID[id]
	return c, ok
}

// insert records a new member and appends it to the candidate queue's
// tail, for FIFO tie-break ordering.
func (d *memberDirectory) insert(id uint64, c Commit) {
	d.byID[id] = c
	d.candidates = append(d.candidates, id)
}

// remove drops a member from the directory and from the candidate queue,
// wherever it sits: a member may be mid-queue, at the head, or absent
// from the queue entirely if it is the current leader. Returns the
// member's Join commit so the caller can close it after any dependent
// election bookkeeping runs.
func (d *memberDirectory) remove(id uint64) (Commit, bool) {
	c, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	delete(d.byID, id)
	d.removeCandidate(id)
	return c, true
}

func (d *memberDirectory) removeCandidate(id uint64) {
	for i, cid := range d.candidates {
		if cid == id {
			d.candidates = append(d.candidates[:i], d.candidates[i+1:]...)
			return
		}
	}
}

func (d *memberDirectory) pushCandidate(id uint64) {
	d.candidates = append(d.candidates, id)
}

// popCandidate pops the head of the FIFO queue, or reports false if empty.
func (d *memberDirectory) popCandidate() (uint64, bool) {
	if len(d.candidates) == 0 {
		return 0, false
	}
	id := d.candidates[0]
	d.candidates = d.candidates[1:]
	return id, true
}

func (d *memberDirectory) count() int {
	return len(d.byID)
}

// idsSorted returns every current member-id in ascending order. Used by
// Listen's snapshot-of-current-member-ids return value, which must be
// deterministic across replicas.
func (d *memberDirectory) idsSorted() []uint64 {
	ids := make([]uint64, 0, len(d.byID))
	for id := range d.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
