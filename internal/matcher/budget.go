package matcher

import "sync"

// Budget is the run-wide ceiling on deep inspections. Slots are reserved
// before work is dispatched and never returned.
type Budget struct {
	mu        sync.Mutex
	ceiling   int
	remaining int
}

// NewBudget returns a budget with ceiling slots. Negative ceilings are zero.
func NewBudget(ceiling int) *Budget {
	ceiling = max(ceiling, 0)
	return &Budget{ceiling: ceiling, remaining: ceiling}
}

// Reserve grants up to want slots and returns how many were granted.
func (b *Budget) Reserve(want int) int {
	if b == nil || want <= 0 {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	granted := min(want, b.remaining)
	b.remaining -= granted
	return granted
}

// Remaining returns the slots still available.
func (b *Budget) Remaining() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// Granted returns the slots handed out so far.
func (b *Budget) Granted() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ceiling - b.remaining
}

// Exhausted reports whether no slots remain.
func (b *Budget) Exhausted() bool {
	return b.Remaining() == 0
}
