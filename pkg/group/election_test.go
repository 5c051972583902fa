package group_test

import (
	"testing"

	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/testkit"
)

func TestResignRequeuesAtTail(t *testing.T) {
	h := testkit.New()
	a := testkit.NewRecorder(1)
	b := testkit.NewRecorder(2)
	c := testkit.NewRecorder(3)

	idA := h.Join(a)
	idB := h.Join(b)
	idC := h.Join(c)

	if leader, ok := h.SM.Leader(); !ok || leader != idA {
		t.Fatalf("expected %d to be initial leader, got %d", idA, leader)
	}

	if _, err := h.Apply(a, group.ResignOp{Member: idA}); err != nil {
		t.Fatalf("unexpected error on resign: %v", err)
	}

	leader, ok := h.SM.Leader()
	if !ok || leader != idB {
		t.Errorf("expected %d to be elected after %d resigned, got %d", idB, idA, leader)
	}

	// idA was requeued at the tail, behind idC; once idB also resigns, idC
	// should be elected ahead of idA.
	if _, err := h.Apply(b, group.ResignOp{Member: idB}); err != nil {
		t.Fatalf("unexpected error on resign: %v", err)
	}
	leader, ok = h.SM.Leader()
	if !ok || leader != idC {
		t.Errorf("expected %d to be elected ahead of requeued %d, got %d", idC, idA, leader)
	}
}

func TestResignByNonLeaderIsNoop(t *testing.T) {
	h := testkit.New()
	a := testkit.NewRecorder(1)
	b := testkit.NewRecorder(2)

	idA := h.Join(a)
	idB := h.Join(b)

	if _, err := h.Apply(b, group.ResignOp{Member: idB}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leader, ok := h.SM.Leader()
	if !ok || leader != idA {
		t.Errorf("expected resign by non-leader %d to be a no-op, leader still %d, got %d", idB, idA, leader)
	}
}

func TestTermIncreasesMonotonically(t *testing.T) {
	h := testkit.New()
	a := testkit.NewRecorder(1)
	idA := h.Join(a)

	term1 := h.SM.Term()

	if _, err := h.Apply(a, group.ResignOp{Member: idA}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	term2 := h.SM.Term()

	if term2 <= term1 {
		t.Errorf("expected term to strictly increase across a resign+reelect, got %d then %d", term1, term2)
	}
}
