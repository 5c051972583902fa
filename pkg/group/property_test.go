package group_test

import (
	"testing"

	"github.com/groupsm/membergroup/pkg/group"
	"github.com/groupsm/membergroup/pkg/testkit"
)

func TestSetAndGetProperty(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)
	id := h.Join(sess)

	if _, err := h.Apply(sess, group.SetPropertyOp{Member: id, Name: "color", Value: "blue"}); err != nil {
		t.Fatalf("unexpected error setting property: %v", err)
	}

	value := h.SM.Property(id, "color")
	if value != "blue" {
		t.Errorf("expected color=blue, got %v", value)
	}
}

func TestSetPropertyReplacesPrevious(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)
	id := h.Join(sess)

	h.Apply(sess, group.SetPropertyOp{Member: id, Name: "color", Value: "blue"})
	h.Apply(sess, group.SetPropertyOp{Member: id, Name: "color", Value: "red"})

	value := h.SM.Property(id, "color")
	if value != "red" {
		t.Errorf("expected the second set to win with color=red, got %v", value)
	}
}

func TestSetPropertyOnUnknownMemberIsNoop(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)

	if _, err := h.Apply(sess, group.SetPropertyOp{Member: 999, Name: "x", Value: 1}); err != nil {
		t.Errorf("expected set on unknown member to be a silent no-op, got error: %v", err)
	}
}

func TestRemovePropertyClearsValue(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)
	id := h.Join(sess)

	h.Apply(sess, group.SetPropertyOp{Member: id, Name: "color", Value: "blue"})
	if _, err := h.Apply(sess, group.RemovePropertyOp{Member: id, Name: "color"}); err != nil {
		t.Fatalf("unexpected error removing property: %v", err)
	}

	if value := h.SM.Property(id, "color"); value != nil {
		t.Errorf("expected property to be gone after removal, got %v", value)
	}
}

func TestLeaveClearsAllProperties(t *testing.T) {
	h := testkit.New()
	sess := testkit.NewRecorder(1)
	id := h.Join(sess)

	h.Apply(sess, group.SetPropertyOp{Member: id, Name: "color", Value: "blue"})
	h.Apply(sess, group.SetPropertyOp{Member: id, Name: "size", Value: "large"})

	h.Apply(sess, group.LeaveOp{Member: id})

	if value := h.SM.Property(id, "color"); value != nil {
		t.Errorf("expected color to be gone after leave, got %v", value)
	}
	if value := h.SM.Property(id, "size"); value != nil {
		t.Errorf("expected size to be gone after leave, got %v", value)
	}
}
