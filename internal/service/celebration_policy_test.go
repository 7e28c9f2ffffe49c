package service

import "testing"

func TestShouldCelebrateOncePerUserAndUnit(t *testing.T) {
	policy := NewCelebrationPolicy()

	if !policy.ShouldCelebrate(1, "unidad1", 100, 4) {
		t.Fatal("first full completion should celebrate")
	}
	if policy.ShouldCelebrate(1, "unidad1", 100, 4) {
		t.Error("second full completion of the same unit should not celebrate again")
	}

	// Other units and other users keep their own state.
	if !policy.ShouldCelebrate(1, "unidad2", 100, 4) {
		t.Error("a different unit for the same user should celebrate")
	}
	if !policy.ShouldCelebrate(2, "unidad1", 100, 4) {
		t.Error("the same unit for a different user should celebrate")
	}
}

func TestShouldCelebrateRequiresFullCompletion(t *testing.T) {
	policy := NewCelebrationPolicy()

	if policy.ShouldCelebrate(1, "unidad1", 75, 3) {
		t.Error("partial completion must not celebrate")
	}
	if policy.ShouldCelebrate(1, "unidad1", 100, 0) {
		t.Error("full percentage with no completed lessons must not celebrate")
	}

	// The failed attempts above must not consume the celebration.
	if !policy.ShouldCelebrate(1, "unidad1", 100, 4) {
		t.Error("real completion after failed guards should still celebrate")
	}
}

func TestResetStartsANewSession(t *testing.T) {
	policy := NewCelebrationPolicy()

	policy.ShouldCelebrate(1, "unidad1", 100, 4)
	policy.Reset()

	if !policy.ShouldCelebrate(1, "unidad1", 100, 4) {
		t.Error("after Reset the unit should celebrate again")
	}
}
