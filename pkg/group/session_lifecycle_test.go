package group_test

import (
	"testing"

	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/testkit"
)

func TestSessionCloseRemovesAllItsMembers(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)

	idA := h.Join(sess)
	idB := h.Join(sess)

	h.CloseSession(sess)

	members := h.SM.Members()
	if len(members) != 0 {
		t.Errorf("expected both %d and %d to be removed on session close, members=%v", idA, idB, members)
	}
}

func TestSessionCloseOfLeaderReelectsFromOtherSession(t *testing.T) {
	h := testkit.New()
	leaderSess := testkit.NewRecorder(1)
	otherSess := testkit.NewRecorder(2)

	idLeader := h.Join(leaderSess)
	idOther := h.Join(otherSess)

	if leader, ok := h.SM.Leader(); !ok || leader != idLeader {
		t.Fatalf("expected %d to be initial leader", idLeader)
	}

	h.CloseSession(leaderSess)

	leader, ok := h.SM.Leader()
	if !ok || leader != idOther {
		t.Errorf("expected %d to be elected after the leader's session closed, got leader=%d ok=%v", idOther, leader, ok)
	}
}

func TestSessionExpireBehavesLikeClose(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)
	id := h.Join(sess)

	h.ExpireSession(sess)

	if h.SM.Property(id, "anything") != nil {
		t.Errorf("expected member to be fully gone after session expiry")
	}
	members := h.SM.Members()
	if len(members) != 0 {
		t.Errorf("expected no members left after session expiry, got %v", members)
	}
}

func TestClosingUnrelatedSessionLeavesMembersAlone(t *testing.T) {
	h := testkit.New()
	a := testkit.NewRecorder(1)
	b := testkit.NewRecorder(2)

	idA := h.Join(a)
	h.Join(b)

	h.CloseSession(b)

	members := h.SM.Members()
	if len(members) != 1 || members[0] != idA {
		t.Errorf("expected only %d to remain, got %v", idA, members)
	}
}

func TestListenerStopsReceivingAfterItsOwnSessionCloses(t *testing.T) {
	h := testkit.New()
	listener := testkit.NewRecorder(1)
	actor := testkit.NewRecorder(2)

	if _, err := h.Apply(listener, group.ListenOp{}); err != nil {
		t.Fatalf("unexpected error on listen: %v", err)
	}

	h.CloseSession(listener)

	before := len(listener.EventNames())

	h.Join(actor)

	after := len(listener.EventNames())
	if after != before {
		t.Errorf("expected a closed listener to receive no further events, before=%d after=%d", before, after)
	}
}
