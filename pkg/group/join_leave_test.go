package group_test

import (
	"testing"

	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/testkit"
)

func TestFirstJoinElectsLeader(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)

	if _, err := h.Apply(sess, group.ListenOp{}); err != nil {
		t.Fatalf("unexpected error on listen: %v", err)
	}

	id := h.Join(sess)
	if id == 0 {
		t.Fatalf("expected a nonzero member id, got %d", id)
	}

	leader, ok := h.SM.Leader()
	if !ok || leader != id {
		t.Errorf("expected %d to be elected leader, got leader=%d ok=%v", id, leader, ok)
	}
	if h.SM.Term() != id {
		t.Errorf("expected term to equal the electing index %d, got %d", id, h.SM.Term())
	}

	names := sess.EventNames()
	if len(names) < 3 || names[0] != group.EventJoin || names[1] != group.EventTerm || names[2] != group.EventElect {
		t.Errorf("expected join,term,elect ordering, got %v", names)
	}
}

func TestSecondJoinDoesNotReplaceLeader(t *testing.T) {
	h := testkit.New()
	a := testkit.NewRecorder(1)
	b := testkit.NewRecorder(2)

	idA := h.Join(a)

	if _, err := h.Apply(b, group.ListenOp{}); err != nil {
		t.Fatalf("unexpected error on listen: %v", err)
	}
	idB := h.Join(b)

	leader, ok := h.SM.Leader()
	if !ok || leader != idA {
		t.Errorf("expected first joiner %d to remain leader, got %d", idA, leader)
	}

	bNames := b.EventNames()
	for _, n := range bNames {
		if n == group.EventElect {
			t.Errorf("second member should not observe another election, got %v", bNames)
		}
	}
	_ = idB
}

func TestLeaveRemovesMember(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)
	id := h.Join(sess)

	if _, err := h.Apply(sess, group.LeaveOp{Member: id}); err != nil {
		t.Fatalf("unexpected error on leave: %v", err)
	}

	members := h.SM.Members()
	if len(members) != 0 {
		t.Errorf("expected no members after leave, got %v", members)
	}
	if _, ok := h.SM.Leader(); ok {
		t.Errorf("expected no leader after the only member leaves")
	}
}

func TestLeaveOfLeaderElectsNextCandidate(t *testing.T) {
	h := testkit.New()
	a := testkit.NewRecorder(1)
	b := testkit.NewRecorder(2)

	idA := h.Join(a)
	idB := h.Join(b)

	if _, err := h.Apply(a, group.LeaveOp{Member: idA}); err != nil {
		t.Fatalf("unexpected error on leave: %v", err)
	}

	leader, ok := h.SM.Leader()
	if !ok || leader != idB {
		t.Errorf("expected %d to become leader after %d left, got leader=%d ok=%v", idB, idA, leader, ok)
	}
}

func TestLeaveOfUnknownMemberIsNoop(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)

	if _, err := h.Apply(sess, group.LeaveOp{Member: 999}); err != nil {
		t.Errorf("expected leaving an unknown member to be a no-op, got error: %v", err)
	}
}
