package service

import "sync"

type celebrationKey struct {
	userID  uint
	unitKey string
}

// CelebrationPolicy decides when the one-time "unit completed" signal fires.
// Each (user, unit) pair moves from not-celebrated to celebrated at most
// once per session (a session is one process run); the transition is one-way
// and only a restart resets it. The guard on completedCount keeps a freshly
// initialized zero-lesson unit from celebrating.
type CelebrationPolicy struct {
	mu         sync.Mutex
	celebrated map[celebrationKey]bool
}

func NewCelebrationPolicy() *CelebrationPolicy {
	return &CelebrationPolicy{
		celebrated: make(map[celebrationKey]bool),
	}
}

// ShouldCelebrate returns true exactly once per user and unit per session,
// and only when the unit is fully complete with at least one lesson actually
// marked. Returning true records the pair as celebrated as a side effect.
func (p *CelebrationPolicy) ShouldCelebrate(userID uint, unitKey string, percentage, completedCount int) bool {
	if percentage != 100 || completedCount <= 0 {
		return false
	}

	key := celebrationKey{userID: userID, unitKey: unitKey}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.celebrated[key] {
		return false
	}
	p.celebrated[key] = true
	return true
}

// Reset clears all celebration state, starting a new session.
func (p *CelebrationPolicy) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.celebrated = make(map[celebrationKey]bool)
}
