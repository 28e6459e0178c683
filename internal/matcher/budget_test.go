package matcher

import (
	"sync"
	"testing"
)

func TestBudgetReserveNeverOverspends(t *testing.T) {
	budget := NewBudget(5)
	if got := budget.Reserve(4); got != 4 {
		t.Fatalf("first reserve = %d, want 4", got)
	}
	if got := budget.Reserve(4); got != 1 {
		t.Fatalf("second reserve = %d, want 1", got)
	}
	if got := budget.Reserve(4); got != 0 {
		t.Fatalf("third reserve = %d, want 0", got)
	}
	if !budget.Exhausted() {
		t.Fatal("expected budget to be exhausted")
	}
	if budget.Granted() != 5 {
		t.Fatalf("granted = %d, want 5", budget.Granted())
	}
}

func TestBudgetConcurrentReservations(t *testing.T) {
	const ceiling = 37
	budget := NewBudget(ceiling)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(want int) {
			defer wg.Done()
			got := budget.Reserve(want)
			mu.Lock()
			total += got
			mu.Unlock()
		}(i%4 + 1)
	}
	wg.Wait()

	if total != ceiling {
		t.Fatalf("granted %d slots, want exactly %d", total, ceiling)
	}
	if budget.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", budget.Remaining())
	}
}

func TestBudgetEdgeCases(t *testing.T) {
	if got := NewBudget(-3).Reserve(1); got != 0 {
		t.Fatalf("negative ceiling granted %d", got)
	}
	if got := NewBudget(3).Reserve(0); got != 0 {
		t.Fatalf("zero request granted %d", got)
	}
	var nilBudget *Budget
	if got := nilBudget.Reserve(2); got != 0 {
		t.Fatalf("nil budget granted %d", got)
	}
}
