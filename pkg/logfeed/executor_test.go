package logfeed

import (
	"testing"

	"github.com/groupsm/membergroup/pkg/group"
)

func TestScheduleFiresInDeadlineOrder(t *testing.T) {
	e := NewLogicalExecutor(nil)
	var fired []string

	e.Schedule(100, func() { fired = append(fired, "late") })
	e.Schedule(10, func() { fired = append(fired, "early") })
	e.Schedule(50, func() { fired = append(fired, "mid") })

	e.Advance(100)

	want := []string{"early", "mid", "late"}
	if len(fired) != len(want) {
		t.Fatalf("expected %d callbacks to fire, got %d: %v", len(want), len(fired), fired)
	}
	for i, w := range want {
		if fired[i] != w {
			t.Errorf("expected fired[%d]=%s, got %s", i, w, fired[i])
		}
	}
}

func TestScheduleTieBreaksOnOrderOfRegistration(t *testing.T) {
	e := NewLogicalExecutor(nil)
	var fired []int

	for i := 0; i < 3; i++ {
		i := i
		e.Schedule(10, func() { fired = append(fired, i) })
	}
	e.Advance(10)

	for i, v := range fired {
		if v != i {
			t.Errorf("expected registration-order tie break, got %v", fired)
			break
		}
	}
}

func TestAdvanceOnlyFiresDueCallbacks(t *testing.T) {
	e := NewLogicalExecutor(nil)
	fired := 0
	e.Schedule(100, func() { fired++ })

	e.Advance(50)
	if fired != 0 {
		t.Errorf("expected callback not due yet, fired=%d", fired)
	}
	if e.Pending() != 1 {
		t.Errorf("expected 1 pending callback, got %d", e.Pending())
	}

	e.Advance(50)
	if fired != 1 {
		t.Errorf("expected callback to fire once total elapsed time reaches its delay, fired=%d", fired)
	}
}

func TestJournalAssignsMonotonicIndices(t *testing.T) {
	j := NewJournal(nil)
	sess := NewSession(1, nil, nil)

	c1 := j.Commit(sess, group.JoinOp{})
	c2 := j.Commit(sess, group.JoinOp{})

	if c2.Index() <= c1.Index() {
		t.Errorf("expected strictly increasing indices, got %d then %d", c1.Index(), c2.Index())
	}

	ctx := j.Advance()
	if ctx.Index() <= c2.Index() {
		t.Errorf("expected Advance to consume an index after the prior commits, got %d", ctx.Index())
	}
}
