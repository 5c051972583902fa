package testkit

import (
	"fmt"
	"sync"

	"github.com/groupsm/membergroup/pkg/group"
)

// Sample is one observation of a state machine's election state, taken
// after a transition has been applied.
type Sample struct {
	Index     uint64
	Term      uint64
	Leader    uint64
	HasLeader bool
}

// Violation describes a single broken invariant.
type Violation struct {
	Type        string
	Description string
}

// InvariantChecker accumulates Samples across a run and checks them
// against the election invariants: term values never decrease, and no
// term is ever observed with two different leaders.
type InvariantChecker struct {
	mu      sync.Mutex
	samples []Sample
}

// NewInvariantChecker creates an empty checker.
func NewInvariantChecker() *InvariantChecker {
	return &InvariantChecker{}
}

// Record takes a Sample of sm's current election state, tagged with the
// log index of the transition that produced it.
func (ic *InvariantChecker) Record(index uint64, sm *group.StateMachine) {
	leader, hasLeader := sm.Leader()
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.samples = append(ic.samples, Sample{
		Index:     index,
		Term:      sm.Term(),
		Leader:    leader,
		HasLeader: hasLeader,
	})
}

// Check evaluates every recorded Sample and returns whether all
// invariants held, plus the list of violations found.
func (ic *InvariantChecker) Check() (bool, []Violation) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	var violations []Violation
	violations = append(violations, ic.checkTermMonotonic()...)
	violations = append(violations, ic.checkLeaderStableWithinTerm()...)
	return len(violations) == 0, violations
}

func (ic *InvariantChecker) checkTermMonotonic() []Violation {
	var violations []Violation
	var prev uint64
	for _, s := range ic.samples {
		if s.Term < prev {
			violations = append(violations, Violation{
				Type:        "TERM_REGRESSION",
				Description: fmt.Sprintf("term went from %d to %d at index %d", prev, s.Term, s.Index),
			})
		}
		prev = s.Term
	}
	return violations
}

func (ic *InvariantChecker) checkLeaderStableWithinTerm() []Violation {
	var violations []Violation
	leaderByTerm := make(map[uint64]uint64)
	for _, s := range ic.samples {
		if !s.HasLeader {
			continue
		}
		if known, ok := leaderByTerm[s.Term]; ok {
			if known != s.Leader {
				violations = append(violations, Violation{
					Type:        "DUAL_LEADER",
					Description: fmt.Sprintf("term %d has both leader %d and leader %d", s.Term, known, s.Leader),
				})
			}
			continue
		}
		leaderByTerm[s.Term] = s.Leader
	}
	return violations
}
