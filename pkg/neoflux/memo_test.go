package neoflux

import (
	"sync"
	"testing"
)

func TestMemoBasic(t *testing.T) {
	computations := 0
	count := NewSignal(5)

	doubled := NewMemo(func() int {
		computations++
		return count.Get() * 2
	})

	// First read computes
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	// Second read uses cache
	if doubled.Get() != 10 {
		t.Errorf("expected 10, got %d", doubled.Get())
	}
	if computations != 1 {
		t.Errorf("expected still 1 computation (cached), got %d", computations)
	}
}

func TestMemoRecomputation(t *testing.T) {
	computations := 0
	count := NewSignal(5)

	doubled := NewMemo(func() int {
		computations++
		return count.Get() * 2
	})

	// Initial computation
	_ = doubled.Get()
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	// Change source
	count.Set(10)

	// Should recompute
	if doubled.Get() != 20 {
		t.Errorf("expected 20, got %d", doubled.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestMemoLazyComputation(t *testing.T) {
	computations := 0
	count := NewSignal(5)

	doubled := NewMemo(func() int {
		computations++
		return count.Get() * 2
	})

	// No computation yet
	if computations != 0 {
		t.Errorf("expected 0 computations before read, got %d", computations)
	}

	// First read triggers computation
	_ = doubled.Get()
	if computations != 1 {
		t.Errorf("expected 1 computation after read, got %d", computations)
	}

	// Multiple invalidations should still only recompute once on read
	count.Set(10)
	count.Set(15)
	count.Set(20)

	if computations != 1 {
		t.Errorf("expected still 1 computation before read, got %d", computations)
	}

	// Read should trigger single recomputation
	_ = doubled.Get()
	if computations != 2 {
		t.Errorf("expected 2 computations after read, got %d", computations)
	}
}

func TestMemoPeek(t *testing.T) {
	count := NewSignal(5)
	doubled := NewMemo(func() int {
		return count.Get() * 2
	})

	// Peek computes the value but does not subscribe the caller
	listener := newTestListener()
	WithListener(listener, func() {
		if doubled.Peek() != 10 {
			t.Errorf("expected 10, got %d", doubled.Peek())
		}
	})

	count.Set(10)
	if listener.getDirtyCount() != 0 {
		t.Errorf("Peek should not subscribe, got %d notifications", listener.getDirtyCount())
	}
}

func TestMemoChain(t *testing.T) {
	// Chained memos: count -> doubled -> quadrupled
	count := NewSignal(2)

	doubled := NewMemo(func() int {
		return count.Get() * 2
	})

	quadrupled := NewMemo(func() int {
		return doubled.Get() * 2
	})

	if quadrupled.Get() != 8 {
		t.Errorf("expected 8, got %d", quadrupled.Get())
	}

	count.Set(3)
	if quadrupled.Get() != 12 {
		t.Errorf("expected 12, got %d", quadrupled.Get())
	}
}

func TestMemoSubscription(t *testing.T) {
	count := NewSignal(5)
	doubled := NewMemo(func() int {
		return count.Get() * 2
	})

	listener := newTestListener()
	WithListener(listener, func() {
		_ = doubled.Get()
	})

	// Changing source should invalidate memo and notify listener
	count.Set(10)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
}

func TestMemoDiamondDependency(t *testing.T) {
	// Diamond pattern: A -> B, A -> C, B+C -> D
	//         A
	//        / \
	//       B   C
	//        \ /
	//         D
	a := NewSignal(1)

	b := NewMemo(func() int {
		return a.Get() * 2
	})

	c := NewMemo(func() int {
		return a.Get() * 3
	})

	computations := 0
	d := NewMemo(func() int {
		computations++
		return b.Get() + c.Get()
	})

	// Initial: d = (1*2) + (1*3) = 5
	if d.Get() != 5 {
		t.Errorf("expected 5, got %d", d.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	// Change a to 2: d = (2*2) + (2*3) = 10, and the double mark through
	// b and c must collapse into one recomputation.
	a.Set(2)
	if d.Get() != 10 {
		t.Errorf("expected 10, got %d", d.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations after diamond update, got %d", computations)
	}
}

func TestMemoDynamicDependencies(t *testing.T) {
	flag := NewSignal(true)
	a := NewSignal(1)
	b := NewSignal(2)

	computations := 0
	result := NewMemo(func() int {
		computations++
		if flag.Get() {
			return a.Get()
		}
		return b.Get()
	})

	// Initially reads flag and a
	if result.Get() != 1 {
		t.Errorf("expected 1, got %d", result.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation, got %d", computations)
	}

	// Changing b should not trigger recomputation (not a current dependency)
	b.Set(20)
	if computations != 1 {
		t.Errorf("changing b should not recompute, got %d", computations)
	}

	// Changing a should trigger recomputation
	a.Set(10)
	_ = result.Get()
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}

	// Switch to b
	flag.Set(false)
	if result.Get() != 20 {
		t.Errorf("expected 20, got %d", result.Get())
	}

	// Now a should not trigger, but b should
	computations = 0
	a.Set(100)
	if computations != 0 {
		t.Errorf("changing a should not recompute when using b, got %d", computations)
	}

	b.Set(200)
	if result.Get() != 200 {
		t.Errorf("expected 200, got %d", result.Get())
	}
	if computations != 1 {
		t.Errorf("expected 1 computation after b change, got %d", computations)
	}
}

func TestMemoCustomEquals(t *testing.T) {
	type point struct {
		X, Y int
	}

	src := NewSignal(point{1, 2})

	// Equality that only looks at X: changing Y recomputes but does not
	// count as a change downstream.
	quantized := NewMemo(func() point {
		return src.Get()
	}).WithEquals(func(a, b point) bool {
		return a.X == b.X
	})

	listener := newTestListener()
	WithListener(listener, func() {
		_ = quantized.Get()
	})

	v0 := quantized.base.version.Load()

	src.Set(point{1, 99})
	_ = quantized.Get()
	if quantized.base.version.Load() != v0 {
		t.Error("recompute to an equal value should not advance the version")
	}

	src.Set(point{2, 99})
	_ = quantized.Get()
	if quantized.base.version.Load() != v0+1 {
		t.Error("recompute to a different value should advance the version")
	}
}

func TestMemoUnchangedSourceSkipsRecompute(t *testing.T) {
	// source -> floor -> label. Writing source so that floor lands on the
	// same value must not recompute label: the stale mark reaches it, but
	// the version check at refresh time says nothing changed.
	source := NewSignal(10)

	floor := NewMemo(func() int {
		return source.Get() / 10
	})

	labelComputations := 0
	label := NewMemo(func() string {
		labelComputations++
		if floor.Get() > 0 {
			return "some"
		}
		return "none"
	})

	if label.Get() != "some" {
		t.Errorf("expected %q, got %q", "some", label.Get())
	}
	if labelComputations != 1 {
		t.Errorf("expected 1 computation, got %d", labelComputations)
	}

	// 10/10 == 19/10 == 1: floor recomputes to an equal value.
	source.Set(19)
	if label.Get() != "some" {
		t.Errorf("expected %q, got %q", "some", label.Get())
	}
	if labelComputations != 1 {
		t.Errorf("label should not recompute when floor is unchanged, got %d", labelComputations)
	}

	// 25/10 == 2: a real change flows through.
	source.Set(25)
	_ = label.Get()
	if labelComputations != 2 {
		t.Errorf("expected 2 computations after real change, got %d", labelComputations)
	}
}

func TestMemoCircularDependencyPanics(t *testing.T) {
	var memo *Memo[int]
	memo = NewMemo(func() int {
		return memo.Get() + 1
	})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected circular dependency panic")
		}
		cde, ok := r.(*CircularDependencyError)
		if !ok {
			t.Fatalf("expected *CircularDependencyError, got %T: %v", r, r)
		}
		if cde.NodeID != memo.ID() {
			t.Errorf("error should name node %d, got %d", memo.ID(), cde.NodeID)
		}
	}()

	_ = memo.Get()
}

func TestMemoIndirectCircularDependencyPanics(t *testing.T) {
	var a, b *Memo[int]
	a = NewMemo(func() int {
		return b.Get() + 1
	})
	b = NewMemo(func() int {
		return a.Get() + 1
	})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected circular dependency panic")
		} else if _, ok := r.(*CircularDependencyError); !ok {
			t.Fatalf("expected *CircularDependencyError, got %T: %v", r, r)
		}
	}()

	_ = a.Get()
}

func TestMemoDisposeFreezesValue(t *testing.T) {
	count := NewSignal(5)

	computations := 0
	var doubled *Memo[int]
	CreateRoot(func(dispose func()) struct{} {
		doubled = NewMemo(func() int {
			computations++
			return count.Get() * 2
		})
		if doubled.Get() != 10 {
			t.Errorf("expected 10, got %d", doubled.Get())
		}
		dispose()
		return struct{}{}
	})

	// Source keeps changing; the disposed memo neither recomputes nor
	// loses its last value.
	count.Set(100)
	if doubled.Get() != 10 {
		t.Errorf("disposed memo should keep last value 10, got %d", doubled.Get())
	}
	if doubled.Peek() != 10 {
		t.Errorf("disposed memo Peek should keep last value 10, got %d", doubled.Peek())
	}
	if computations != 1 {
		t.Errorf("disposed memo should not recompute, got %d computations", computations)
	}
}

func TestMemoConcurrentReads(t *testing.T) {
	source := NewSignal(1)
	derived := NewMemo(func() int {
		return source.Get() * 2
	})

	var wg sync.WaitGroup
	const numGoroutines = 50
	const numIterations = 200

	wg.Add(numGoroutines + 1)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				v := derived.Get()
				if v%2 != 0 {
					t.Errorf("derived value should always be even, got %d", v)
					return
				}
			}
		}()
	}
	go func() {
		defer wg.Done()
		for j := 0; j < numIterations; j++ {
			source.Set(j)
		}
	}()
	wg.Wait()

	// Settled state
	if derived.Get() != source.Get()*2 {
		t.Errorf("expected %d, got %d", source.Get()*2, derived.Get())
	}
}
